package repository

import (
	"context"
	"database/sql"

	"eventhub/core/database"
	"eventhub/core/logger"
	"eventhub/modules/rsvp/entity"

	"github.com/google/uuid"
)

// RsvpRepository handles RSVP database operations. It also reads the events
// table for existence and capacity, the same way attendance is always
// resolved against a concrete event.
type RsvpRepository struct {
	DB database.Database
}

func NewRsvpRepository(db database.Database) *RsvpRepository {
	return &RsvpRepository{DB: db}
}

type RsvpRepositoryInterface interface {
	GetByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*entity.Rsvp, error)
	CreateGoing(ctx context.Context, rsvp *entity.Rsvp) (*entity.Rsvp, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ListGoingByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Rsvp, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Rsvp, error)
	SumSeatsTaken(ctx context.Context, eventID uuid.UUID) (int, error)
	GetEventCapacity(ctx context.Context, eventID uuid.UUID) (capacity *int, found bool, err error)
}

const rsvpColumns = `id, user_id, event_id, status, guests_count, note, created_at, updated_at`

func (r *RsvpRepository) GetByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*entity.Rsvp, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE user_id = $1 AND event_id = $2`

	var rsvp entity.Rsvp
	err := r.DB.GetContext(ctx, &rsvp, query, userID, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("RsvpRepository:GetByUserAndEvent", err)
		return nil, err
	}

	return &rsvp, nil
}

// CreateGoing inserts a new "going" row. A concurrent insert for the same
// (user, event) pair fails with a unique violation; the service recovers by
// re-reading.
func (r *RsvpRepository) CreateGoing(ctx context.Context, rsvp *entity.Rsvp) (*entity.Rsvp, error) {
	query := `
		INSERT INTO rsvps (user_id, event_id, status, guests_count, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + rsvpColumns

	var created entity.Rsvp
	err := r.DB.GetContext(ctx, &created, query,
		rsvp.UserID, rsvp.EventID, entity.StatusGoing, rsvp.GuestsCount, rsvp.Note)
	if err != nil {
		if !database.IsUniqueViolation(err) && !database.IsForeignKeyViolation(err) {
			logger.Error("RsvpRepository:CreateGoing", err)
		}
		return nil, err
	}

	return &created, nil
}

func (r *RsvpRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rsvps WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("RsvpRepository:DeleteByID", err)
		return err
	}
	return nil
}

func (r *RsvpRepository) ListGoingByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Rsvp, error) {
	query := `
		SELECT ` + rsvpColumns + `
		FROM rsvps
		WHERE event_id = $1 AND status = $2
		ORDER BY created_at
	`

	var rsvps []entity.Rsvp
	err := r.DB.SelectContext(ctx, &rsvps, query, eventID, entity.StatusGoing)
	if err != nil {
		logger.Error("RsvpRepository:ListGoingByEvent", err)
		return nil, err
	}

	return rsvps, nil
}

func (r *RsvpRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Rsvp, error) {
	query := `
		SELECT ` + rsvpColumns + `
		FROM rsvps
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var rsvps []entity.Rsvp
	err := r.DB.SelectContext(ctx, &rsvps, query, userID)
	if err != nil {
		logger.Error("RsvpRepository:ListByUser", err)
		return nil, err
	}

	return rsvps, nil
}

// SumSeatsTaken is the query-pushdown form of entity.SeatsTaken; the two
// must agree for the same ledger state.
func (r *RsvpRepository) SumSeatsTaken(ctx context.Context, eventID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(1 + guests_count), 0)
		FROM rsvps
		WHERE event_id = $1 AND status = $2
	`

	var total int
	err := r.DB.GetContext(ctx, &total, query, eventID, entity.StatusGoing)
	if err != nil {
		logger.Error("RsvpRepository:SumSeatsTaken", err)
		return 0, err
	}

	return total, nil
}

func (r *RsvpRepository) GetEventCapacity(ctx context.Context, eventID uuid.UUID) (*int, bool, error) {
	query := `SELECT capacity FROM events WHERE id = $1`

	var capacity *int
	err := r.DB.GetContext(ctx, &capacity, query, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		logger.Error("RsvpRepository:GetEventCapacity", err)
		return nil, false, err
	}

	return capacity, true, nil
}
