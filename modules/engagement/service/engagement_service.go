package service

import (
	"context"
	"strings"

	"eventhub/core/database"
	"eventhub/core/errors"
	"eventhub/modules/engagement/dto"
	"eventhub/modules/engagement/entity"
	"eventhub/modules/engagement/repository"

	"github.com/google/uuid"
)

type EngagementService struct {
	repo repository.EngagementRepositoryInterface
}

type EngagementServiceInterface interface {
	AddComment(ctx context.Context, userID, eventID uuid.UUID, req *dto.AddCommentRequest) (*dto.CommentResponse, *errors.AppError)
	ListComments(ctx context.Context, eventID uuid.UUID) ([]dto.CommentResponse, *errors.AppError)
	RateEvent(ctx context.Context, userID, eventID uuid.UUID, req *dto.RateEventRequest) (*dto.RatingResponse, *errors.AppError)
	GetRatingSummary(ctx context.Context, eventID uuid.UUID) (*dto.RatingSummaryResponse, *errors.AppError)
}

func NewEngagementService(repo repository.EngagementRepositoryInterface) EngagementServiceInterface {
	return &EngagementService{repo: repo}
}

func (s *EngagementService) AddComment(ctx context.Context, userID, eventID uuid.UUID, req *dto.AddCommentRequest) (*dto.CommentResponse, *errors.AppError) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "comment body is required", nil)
	}

	created, err := s.repo.AddComment(ctx, &entity.Comment{
		EventID: eventID,
		UserID:  userID,
		Body:    body,
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to add comment", err)
	}

	return dto.ToCommentResponse(created), nil
}

func (s *EngagementService) ListComments(ctx context.Context, eventID uuid.UUID) ([]dto.CommentResponse, *errors.AppError) {
	exists, err := s.repo.EventExists(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up event", err)
	}
	if !exists {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	comments, err := s.repo.ListCommentsByEvent(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list comments", err)
	}

	return dto.ToCommentResponses(comments), nil
}

// RateEvent records a 1..5 score; a repeat rating by the same user replaces
// the previous one instead of adding a row.
func (s *EngagementService) RateEvent(ctx context.Context, userID, eventID uuid.UUID, req *dto.RateEventRequest) (*dto.RatingResponse, *errors.AppError) {
	if req.Score < 1 || req.Score > 5 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "score must be between 1 and 5", nil)
	}

	saved, err := s.repo.UpsertRating(ctx, &entity.Rating{
		EventID: eventID,
		UserID:  userID,
		Score:   req.Score,
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save rating", err)
	}

	return dto.ToRatingResponse(saved), nil
}

func (s *EngagementService) GetRatingSummary(ctx context.Context, eventID uuid.UUID) (*dto.RatingSummaryResponse, *errors.AppError) {
	exists, err := s.repo.EventExists(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up event", err)
	}
	if !exists {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	summary, err := s.repo.GetRatingSummary(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load rating summary", err)
	}

	return &dto.RatingSummaryResponse{
		EventID: eventID.String(),
		Average: summary.Average,
		Count:   summary.Count,
	}, nil
}
