package entity

import "github.com/google/uuid"

// Category is a named tag attachable to events, many-to-many. The slug is
// derived from the name at creation and never changes afterwards.
type Category struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Slug string    `db:"slug" json:"slug"`
	Name string    `db:"name" json:"name"`
}
