package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is append-only; there is no edit or delete surface.
type Comment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Rating holds one score per (user, event) pair; re-rating overwrites.
type Rating struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Score     int       `db:"score" json:"score"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RatingSummary is the aggregate view over an event's ratings.
type RatingSummary struct {
	Average *float64 `db:"average" json:"average"`
	Count   int      `db:"count" json:"count"`
}
