package service

import (
	"context"

	"eventhub/core/database"
	"eventhub/core/errors"
	"eventhub/core/logger"
	"eventhub/modules/rsvp/dto"
	"eventhub/modules/rsvp/entity"
	"eventhub/modules/rsvp/repository"

	"github.com/google/uuid"
)

// RsvpService owns the RSVP ledger: the toggle protocol and seat accounting.
type RsvpService struct {
	repo repository.RsvpRepositoryInterface
}

type RsvpServiceInterface interface {
	Toggle(ctx context.Context, userID, eventID uuid.UUID, req *dto.ToggleRequest) (*dto.ToggleResponse, *errors.AppError)
	GetAttendance(ctx context.Context, eventID uuid.UUID) (*dto.AttendanceResponse, *errors.AppError)
	GetMyRsvps(ctx context.Context, userID uuid.UUID) ([]dto.RsvpResponse, *errors.AppError)
}

func NewRsvpService(repo repository.RsvpRepositoryInterface) RsvpServiceInterface {
	return &RsvpService{repo: repo}
}

// Toggle flips a user's attendance for an event: no row means a new "going"
// row is created (with optional guests and note); an existing "going" row is
// deleted outright. Deletion is the only form of "not going" here, the row
// is never parked in declined/canceled. Fullness never blocks the create
// path; capacity is advisory.
func (s *RsvpService) Toggle(ctx context.Context, userID, eventID uuid.UUID, req *dto.ToggleRequest) (*dto.ToggleResponse, *errors.AppError) {
	capacity, found, err := s.repo.GetEventCapacity(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up event", err)
	}
	if !found {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	guests := 0
	var note *string
	if req != nil {
		if req.GuestsCount < 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "guests_count must not be negative", nil)
		}
		guests = req.GuestsCount
		if req.Note != "" {
			note = &req.Note
		}
	}

	existing, err := s.repo.GetByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up RSVP", err)
	}

	switch {
	case existing == nil:
		created, err := s.repo.CreateGoing(ctx, &entity.Rsvp{
			UserID:      userID,
			EventID:     eventID,
			GuestsCount: guests,
			Note:        note,
		})
		if err != nil {
			if database.IsUniqueViolation(err) {
				// Lost a race with a concurrent toggle for the same pair;
				// the unique constraint kept the ledger at one row. Report
				// the winner's state instead of failing.
				winner, errGet := s.repo.GetByUserAndEvent(ctx, userID, eventID)
				if errGet != nil {
					return nil, errors.NewAppError(errors.ErrInternalServer, "failed to recover from concurrent RSVP", errGet)
				}
				if winner == nil {
					return s.buildToggleResponse(ctx, eventID, capacity, dto.StatusAbsent)
				}
				return s.buildToggleResponse(ctx, eventID, capacity, string(winner.Status))
			}
			if database.IsForeignKeyViolation(err) {
				return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
			}
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create RSVP", err)
		}
		return s.buildToggleResponse(ctx, eventID, capacity, string(created.Status))

	case existing.Status == entity.StatusGoing:
		if err := s.repo.DeleteByID(ctx, existing.ID); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to retract RSVP", err)
		}
		return s.buildToggleResponse(ctx, eventID, capacity, dto.StatusAbsent)

	default:
		// Unreachable through the exposed surface: only "going" rows are
		// ever created. Left as a no-op so a hand-edited ledger does not
		// get mangled.
		logger.Warn("RsvpService:Toggle: row in non-going status left untouched",
			"event_id", eventID.String(), "status", string(existing.Status))
		return s.buildToggleResponse(ctx, eventID, capacity, string(existing.Status))
	}
}

func (s *RsvpService) buildToggleResponse(ctx context.Context, eventID uuid.UUID, capacity *int, status string) (*dto.ToggleResponse, *errors.AppError) {
	seats, err := s.repo.SumSeatsTaken(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to count seats", err)
	}

	return &dto.ToggleResponse{
		EventID:    eventID.String(),
		Status:     status,
		SeatsTaken: seats,
		IsFull:     entity.IsFull(capacity, seats),
	}, nil
}

// GetAttendance returns the seat-accounting view for an event. A slightly
// stale count under concurrent toggles is acceptable; fullness is advisory.
func (s *RsvpService) GetAttendance(ctx context.Context, eventID uuid.UUID) (*dto.AttendanceResponse, *errors.AppError) {
	capacity, found, err := s.repo.GetEventCapacity(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up event", err)
	}
	if !found {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	going, err := s.repo.ListGoingByEvent(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list RSVPs", err)
	}

	seats := entity.SeatsTaken(going)

	return &dto.AttendanceResponse{
		EventID:    eventID.String(),
		SeatsTaken: seats,
		Capacity:   capacity,
		IsFull:     entity.IsFull(capacity, seats),
		Going:      dto.ToRsvpResponses(going),
	}, nil
}

func (s *RsvpService) GetMyRsvps(ctx context.Context, userID uuid.UUID) ([]dto.RsvpResponse, *errors.AppError) {
	rsvps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list RSVPs", err)
	}
	return dto.ToRsvpResponses(rsvps), nil
}
