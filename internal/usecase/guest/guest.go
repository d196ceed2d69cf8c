package guest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orsoie/gallery-service/internal/entity"
	"github.com/orsoie/gallery-service/internal/repo"
)

type GuestUseCase struct {
	guests repo.GuestRepo
}

func New(guests repo.GuestRepo) *GuestUseCase {
	return &GuestUseCase{guests: guests}
}

func (uc *GuestUseCase) Tables(ctx context.Context, eventCode string) ([]entity.SeatingTable, error) {
	tables, err := uc.guests.Tables(ctx, eventCode)
	if err != nil {
		return nil, fmt.Errorf("GuestUseCase - Tables - uc.guests.Tables: %w", err)
	}

	return tables, nil
}

func (uc *GuestUseCase) SubmitRSVP(ctx context.Context, eventCode string, answers map[string]any) (*entity.RSVP, error) {
	rsvp := &entity.RSVP{
		ID:        uuid.New(),
		EventCode: eventCode,
		Answers:   answers,
		CreatedAt: time.Now(),
	}

	err := uc.guests.CreateRSVP(ctx, rsvp)
	if err != nil {
		return nil, fmt.Errorf("GuestUseCase - SubmitRSVP - uc.guests.CreateRSVP: %w", err)
	}

	return rsvp, nil
}

func (uc *GuestUseCase) ListRSVP(ctx context.Context, eventCode string) ([]entity.RSVP, error) {
	rsvps, err := uc.guests.ListRSVP(ctx, eventCode)
	if err != nil {
		return nil, fmt.Errorf("GuestUseCase - ListRSVP - uc.guests.ListRSVP: %w", err)
	}

	return rsvps, nil
}
