package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity record. Organizer ownership, RSVPs and comments hang
// off it by id; it is never hard-deleted through the API.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Username  *string   `db:"username" json:"username,omitempty"`
	FullName  *string   `db:"full_name" json:"full_name,omitempty"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	Password  string    `db:"password_hash" json:"-"`
	IsAdmin   bool      `db:"is_admin" json:"is_admin"`
	IsBanned  bool      `db:"is_banned" json:"is_banned"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
