package service

import (
	"context"
	"strings"

	"eventhub/core/database"
	"eventhub/core/errors"
	"eventhub/modules/event/dto"
	"eventhub/modules/event/entity"
	"eventhub/modules/event/repository"

	"github.com/google/uuid"
)

// UserDirectory answers the admin question for delete authorization. The
// auth module provides the implementation.
type UserDirectory interface {
	IsUserAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type EventService struct {
	repo  repository.EventRepositoryInterface
	users UserDirectory
}

type EventServiceInterface interface {
	Create(ctx context.Context, organizerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError)
	Update(ctx context.Context, actorID, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	Delete(ctx context.Context, actorID, id uuid.UUID) *errors.AppError
	ListPublic(ctx context.Context) ([]dto.EventResponse, *errors.AppError)
	ListMine(ctx context.Context, organizerID uuid.UUID) ([]dto.EventResponse, *errors.AppError)
	Search(ctx context.Context, req *dto.SearchEventsRequest) ([]dto.EventResponse, *errors.AppError)
}

func NewEventService(repo repository.EventRepositoryInterface, users UserDirectory) EventServiceInterface {
	return &EventService{repo: repo, users: users}
}

// validateWindow rejects an event whose window is empty or inverted before
// any row is written. The DB CHECK is the backstop.
func validateWindow(req *dto.CreateEventRequest) *errors.AppError {
	if strings.TrimSpace(req.Title) == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}
	if !req.EndsAt.After(req.StartsAt) {
		return errors.NewAppError(errors.ErrInvalidInput, "ends_at must be after starts_at", nil)
	}
	if req.Capacity != nil && *req.Capacity < 1 {
		return errors.NewAppError(errors.ErrInvalidInput, "capacity must be at least 1", nil)
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, organizerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	if appErr := validateWindow(req); appErr != nil {
		return nil, appErr
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	event := &entity.Event{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Wishlist:     req.Wishlist,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Capacity:     req.Capacity,
		IsPublic:     isPublic,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		OrganizerID:  organizerID,
	}

	created, err := s.repo.Create(ctx, event, req.CategoryIDs)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, errors.NewAppError(errors.ErrNotFound, "category not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create event", err)
	}

	return s.toResponse(ctx, created)
}

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	return s.toResponse(ctx, event)
}

// Update replaces the editable fields. Only the organizer may edit; admins
// do not get edit rights, only delete.
func (s *EventService) Update(ctx context.Context, actorID, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up event", err)
	}
	if existing == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if existing.OrganizerID != actorID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the organizer may edit this event", nil)
	}

	createReq := dto.CreateEventRequest(*req)
	if appErr := validateWindow(&createReq); appErr != nil {
		return nil, appErr
	}

	isPublic := existing.IsPublic
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	event := &entity.Event{
		ID:           id,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Wishlist:     req.Wishlist,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		Capacity:     req.Capacity,
		IsPublic:     isPublic,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		OrganizerID:  existing.OrganizerID,
	}

	updated, err := s.repo.Update(ctx, event, req.CategoryIDs)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, errors.NewAppError(errors.ErrNotFound, "category not found", nil)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update event", err)
	}

	return s.toResponse(ctx, updated)
}

// Delete removes the event and, via cascade, its RSVPs, comments and
// ratings. The organizer and admins may delete; anyone else is refused with
// no side effect.
func (s *EventService) Delete(ctx context.Context, actorID, id uuid.UUID) *errors.AppError {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to look up event", err)
	}
	if existing == nil {
		return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	if existing.OrganizerID != actorID {
		isAdmin, err := s.users.IsUserAdmin(ctx, actorID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "failed to check permissions", err)
		}
		if !isAdmin {
			return errors.NewAppError(errors.ErrForbidden, "only the organizer or an admin may delete this event", nil)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete event", err)
	}

	return nil
}

func (s *EventService) ListPublic(ctx context.Context) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list events", err)
	}
	return s.toResponses(ctx, events)
}

func (s *EventService) ListMine(ctx context.Context, organizerID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list events", err)
	}
	return s.toResponses(ctx, events)
}

func (s *EventService) Search(ctx context.Context, req *dto.SearchEventsRequest) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.Search(ctx, strings.TrimSpace(req.Query), ParseTags(req.Tags))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to search events", err)
	}
	return s.toResponses(ctx, events)
}

// ParseTags splits a comma-separated tag list, trims each tag and drops
// empty entries.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (s *EventService) toResponse(ctx context.Context, event *entity.EventWithSeats) (*dto.EventResponse, *errors.AppError) {
	categories, err := s.repo.GetCategoriesForEvent(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load categories", err)
	}
	return dto.ToEventResponse(event, categories), nil
}

func (s *EventService) toResponses(ctx context.Context, events []entity.EventWithSeats) ([]dto.EventResponse, *errors.AppError) {
	ids := make([]uuid.UUID, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].ID)
	}

	byEvent, err := s.repo.GetCategoriesForEvents(ctx, ids)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load categories", err)
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, *dto.ToEventResponse(&events[i], byEvent[events[i].ID]))
	}
	return responses, nil
}
