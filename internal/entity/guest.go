package entity

import (
	"time"

	"github.com/google/uuid"
)

// SeatingTable is one table of the seating plan for an event.
type SeatingTable struct {
	ID        int      `json:"id"`
	EventCode string   `json:"event_code"`
	Name      string   `json:"name"`
	Guests    []string `json:"guests"`
}

// RSVP stores one submitted confirmation form. Answers keep whatever
// fields the form sent, verbatim.
type RSVP struct {
	ID        uuid.UUID      `json:"id"`
	EventCode string         `json:"event_code"`
	Answers   map[string]any `json:"answers"`
	CreatedAt time.Time      `json:"created_at"`
}
