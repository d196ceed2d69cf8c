package persistent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/orsoie/gallery-service/internal/entity"
	"github.com/orsoie/gallery-service/pkg/postgres"
)

const (
	// Tables
	seatingTable = "seating_tables"
	rsvpTable    = "rsvp"

	// Columns
	idColumn        = "id"
	eventCodeColumn = "event_code"
	nameColumn      = "name"
	guestsColumn    = "guests"
	answersColumn   = "answers"
	createdAtColumn = "created_at"
)

type GuestRepo struct {
	*postgres.Postgres
}

func NewGuestRepo(pg *postgres.Postgres) *GuestRepo {
	return &GuestRepo{pg}
}

func (r *GuestRepo) Tables(ctx context.Context, eventCode string) ([]entity.SeatingTable, error) {
	sql, args, err := r.Builder.
		Select(idColumn, eventCodeColumn, nameColumn, guestsColumn).
		From(seatingTable).
		Where(squirrel.Eq{eventCodeColumn: eventCode}).
		OrderBy(idColumn).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("GuestRepo - Tables - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("GuestRepo - Tables - executor.Query: %w", err)
	}
	defer rows.Close()

	tables := []entity.SeatingTable{}
	for rows.Next() {
		var table entity.SeatingTable
		err = rows.Scan(&table.ID, &table.EventCode, &table.Name, &table.Guests)
		if err != nil {
			return nil, fmt.Errorf("GuestRepo - Tables - rows.Scan: %w", err)
		}
		tables = append(tables, table)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("GuestRepo - Tables - rows.Err: %w", err)
	}

	return tables, nil
}

func (r *GuestRepo) CreateRSVP(ctx context.Context, rsvp *entity.RSVP) error {
	answers, err := json.Marshal(rsvp.Answers)
	if err != nil {
		return fmt.Errorf("GuestRepo - CreateRSVP - json.Marshal: %w", err)
	}

	sql, args, err := r.Builder.
		Insert(rsvpTable).
		Columns(idColumn, eventCodeColumn, answersColumn, createdAtColumn).
		Values(rsvp.ID, rsvp.EventCode, answers, rsvp.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("GuestRepo - CreateRSVP - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("GuestRepo - CreateRSVP - executor.Exec: %w", err)
	}

	return nil
}

func (r *GuestRepo) ListRSVP(ctx context.Context, eventCode string) ([]entity.RSVP, error) {
	sql, args, err := r.Builder.
		Select(idColumn, eventCodeColumn, answersColumn, createdAtColumn).
		From(rsvpTable).
		Where(squirrel.Eq{eventCodeColumn: eventCode}).
		OrderBy(createdAtColumn + " DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("GuestRepo - ListRSVP - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("GuestRepo - ListRSVP - executor.Query: %w", err)
	}
	defer rows.Close()

	rsvps := []entity.RSVP{}
	for rows.Next() {
		var (
			rsvp    entity.RSVP
			answers []byte
		)
		err = rows.Scan(&rsvp.ID, &rsvp.EventCode, &answers, &rsvp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("GuestRepo - ListRSVP - rows.Scan: %w", err)
		}

		rsvp.Answers = map[string]any{}
		if len(answers) > 0 {
			if err = json.Unmarshal(answers, &rsvp.Answers); err != nil {
				return nil, fmt.Errorf("GuestRepo - ListRSVP - json.Unmarshal: %w", err)
			}
		}

		rsvps = append(rsvps, rsvp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("GuestRepo - ListRSVP - rows.Err: %w", err)
	}

	return rsvps, nil
}
