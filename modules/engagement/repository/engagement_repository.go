package repository

import (
	"context"

	"eventhub/core/database"
	"eventhub/core/logger"
	"eventhub/modules/engagement/entity"

	"github.com/google/uuid"
)

// EngagementRepository handles comment and rating database operations.
type EngagementRepository struct {
	DB database.Database
}

func NewEngagementRepository(db database.Database) *EngagementRepository {
	return &EngagementRepository{DB: db}
}

type EngagementRepositoryInterface interface {
	AddComment(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	ListCommentsByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Comment, error)
	UpsertRating(ctx context.Context, rating *entity.Rating) (*entity.Rating, error)
	GetRatingSummary(ctx context.Context, eventID uuid.UUID) (*entity.RatingSummary, error)
	EventExists(ctx context.Context, eventID uuid.UUID) (bool, error)
}

func (r *EngagementRepository) AddComment(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	query := `
		INSERT INTO event_comments (event_id, user_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, event_id, user_id, body, created_at`

	var created entity.Comment
	err := r.DB.GetContext(ctx, &created, query, comment.EventID, comment.UserID, comment.Body)
	if err != nil {
		if !database.IsForeignKeyViolation(err) {
			logger.Error("EngagementRepository:AddComment", err)
		}
		return nil, err
	}

	return &created, nil
}

func (r *EngagementRepository) ListCommentsByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Comment, error) {
	query := `
		SELECT id, event_id, user_id, body, created_at
		FROM event_comments
		WHERE event_id = $1
		ORDER BY created_at`

	var comments []entity.Comment
	err := r.DB.SelectContext(ctx, &comments, query, eventID)
	if err != nil {
		logger.Error("EngagementRepository:ListCommentsByEvent", err)
		return nil, err
	}

	return comments, nil
}

// UpsertRating keeps one row per (user, event); a repeat rating overwrites
// the score in place.
func (r *EngagementRepository) UpsertRating(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	query := `
		INSERT INTO ratings (event_id, user_id, score)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, event_id)
		DO UPDATE SET score = EXCLUDED.score, updated_at = now()
		RETURNING id, event_id, user_id, score, created_at, updated_at`

	var saved entity.Rating
	err := r.DB.GetContext(ctx, &saved, query, rating.EventID, rating.UserID, rating.Score)
	if err != nil {
		if !database.IsForeignKeyViolation(err) {
			logger.Error("EngagementRepository:UpsertRating", err)
		}
		return nil, err
	}

	return &saved, nil
}

func (r *EngagementRepository) GetRatingSummary(ctx context.Context, eventID uuid.UUID) (*entity.RatingSummary, error) {
	query := `
		SELECT AVG(score) AS average, COUNT(*) AS count
		FROM ratings
		WHERE event_id = $1`

	var summary entity.RatingSummary
	err := r.DB.GetContext(ctx, &summary, query, eventID)
	if err != nil {
		logger.Error("EngagementRepository:GetRatingSummary", err)
		return nil, err
	}

	return &summary, nil
}

func (r *EngagementRepository) EventExists(ctx context.Context, eventID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`

	var exists bool
	err := r.DB.GetContext(ctx, &exists, query, eventID)
	if err != nil {
		logger.Error("EngagementRepository:EventExists", err)
		return false, err
	}

	return exists, nil
}
