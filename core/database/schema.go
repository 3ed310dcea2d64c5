package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements is applied in order on startup. Every statement is
// idempotent so restarts are safe. The uniqueness constraints on
// rsvps(user_id, event_id) and ratings(user_id, event_id) are load-bearing:
// concurrent duplicate inserts must fail at the storage layer, not be caught
// by application checks.
var schemaStatements = []string{
	`DO $$ BEGIN
		CREATE TYPE rsvp_status AS ENUM ('going', 'waitlisted', 'interested', 'declined', 'canceled');
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,

	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email         VARCHAR(255) NOT NULL UNIQUE,
		username      VARCHAR(50) UNIQUE,
		full_name     VARCHAR(255),
		avatar_url    TEXT,
		password_hash TEXT NOT NULL,
		is_admin      BOOLEAN NOT NULL DEFAULT false,
		is_banned     BOOLEAN NOT NULL DEFAULT false,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		slug VARCHAR(80) NOT NULL UNIQUE,
		name VARCHAR(120) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title         VARCHAR(255) NOT NULL,
		description   TEXT,
		wishlist      TEXT,
		starts_at     TIMESTAMPTZ NOT NULL,
		ends_at       TIMESTAMPTZ NOT NULL,
		capacity      INTEGER,
		is_public     BOOLEAN NOT NULL DEFAULT true,
		address_line1 VARCHAR(255),
		address_line2 VARCHAR(255),
		organizer_id  UUID NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT chk_event_time CHECK (ends_at > starts_at),
		CONSTRAINT chk_event_capacity CHECK (capacity IS NULL OR capacity > 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_starts_at ON events (starts_at)`,
	`CREATE INDEX IF NOT EXISTS idx_events_organizer ON events (organizer_id)`,

	`CREATE TABLE IF NOT EXISTS event_categories (
		event_id    UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		PRIMARY KEY (event_id, category_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_event_categories_category ON event_categories (category_id)`,

	`CREATE TABLE IF NOT EXISTS rsvps (
		id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		event_id     UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		status       rsvp_status NOT NULL,
		guests_count INTEGER NOT NULL DEFAULT 0 CHECK (guests_count >= 0),
		note         TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT uq_rsvps_user_event UNIQUE (user_id, event_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rsvps_event_status ON rsvps (event_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_rsvps_user ON rsvps (user_id)`,

	`CREATE TABLE IF NOT EXISTS event_comments (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_id   UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		body       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_event_comments_event ON event_comments (event_id)`,

	`CREATE TABLE IF NOT EXISTS ratings (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_id   UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		score      INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT uq_ratings_user_event UNIQUE (user_id, event_id)
	)`,
}

// ApplySchema creates the persisted layout if it does not exist yet.
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
