package entity

import (
	"time"

	"github.com/google/uuid"
)

// Status is the RSVP lifecycle state, stored as the native rsvp_status enum.
// The toggle operation only ever produces StatusGoing; the remaining states
// are kept so richer transitions can be added without a schema change.
type Status string

const (
	StatusGoing      Status = "going"
	StatusWaitlisted Status = "waitlisted"
	StatusInterested Status = "interested"
	StatusDeclined   Status = "declined"
	StatusCanceled   Status = "canceled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusGoing, StatusWaitlisted, StatusInterested, StatusDeclined, StatusCanceled:
		return true
	}
	return false
}

// Rsvp records a user's attendance intent for an event. At most one row
// exists per (user, event) pair, enforced by uq_rsvps_user_event.
type Rsvp struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	EventID     uuid.UUID `db:"event_id" json:"event_id"`
	Status      Status    `db:"status" json:"status"`
	GuestsCount int       `db:"guests_count" json:"guests_count"`
	Note        *string   `db:"note" json:"note,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Seats returns the seats this RSVP occupies: the attendee plus guests for a
// "going" row, zero for every other status.
func (r *Rsvp) Seats() int {
	if r.Status != StatusGoing {
		return 0
	}
	return 1 + r.GuestsCount
}
