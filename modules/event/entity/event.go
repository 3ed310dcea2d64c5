package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a scheduled gathering owned by its organizer. Capacity is
// advisory; nil means unlimited.
type Event struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description,omitempty"`
	Wishlist     *string   `db:"wishlist" json:"wishlist,omitempty"`
	StartsAt     time.Time `db:"starts_at" json:"starts_at"`
	EndsAt       time.Time `db:"ends_at" json:"ends_at"`
	Capacity     *int      `db:"capacity" json:"capacity,omitempty"`
	IsPublic     bool      `db:"is_public" json:"is_public"`
	AddressLine1 *string   `db:"address_line1" json:"address_line1,omitempty"`
	AddressLine2 *string   `db:"address_line2" json:"address_line2,omitempty"`
	OrganizerID  uuid.UUID `db:"organizer_id" json:"organizer_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// EventWithSeats carries the event row together with the aggregated seat
// count from the RSVP ledger.
type EventWithSeats struct {
	Event
	SeatsTaken int `db:"seats_taken" json:"seats_taken"`
}

// IsFull reports whether the aggregated seats reach the capacity. Events
// without a capacity are never full.
func (e *EventWithSeats) IsFull() bool {
	return e.Capacity != nil && e.SeatsTaken >= *e.Capacity
}

// CategoryRef is the category view attached to event responses.
type CategoryRef struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Slug string    `db:"slug" json:"slug"`
	Name string    `db:"name" json:"name"`
}
