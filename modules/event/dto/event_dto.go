package dto

import (
	"time"

	"eventhub/modules/event/entity"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	Wishlist     *string     `json:"wishlist"`
	StartsAt     time.Time   `json:"starts_at"`
	EndsAt       time.Time   `json:"ends_at"`
	Capacity     *int        `json:"capacity"`
	IsPublic     *bool       `json:"is_public"`
	AddressLine1 *string     `json:"address_line1"`
	AddressLine2 *string     `json:"address_line2"`
	CategoryIDs  []uuid.UUID `json:"category_ids"`
}

// UpdateEventRequest is a full replacement of the editable fields; omitted
// optionals clear their columns.
type UpdateEventRequest struct {
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	Wishlist     *string     `json:"wishlist"`
	StartsAt     time.Time   `json:"starts_at"`
	EndsAt       time.Time   `json:"ends_at"`
	Capacity     *int        `json:"capacity"`
	IsPublic     *bool       `json:"is_public"`
	AddressLine1 *string     `json:"address_line1"`
	AddressLine2 *string     `json:"address_line2"`
	CategoryIDs  []uuid.UUID `json:"category_ids"`
}

type SearchEventsRequest struct {
	Query string `query:"q"`
	Tags  string `query:"tags"`
}

type EventResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Description  *string              `json:"description,omitempty"`
	Wishlist     *string              `json:"wishlist,omitempty"`
	StartsAt     time.Time            `json:"starts_at"`
	EndsAt       time.Time            `json:"ends_at"`
	Capacity     *int                 `json:"capacity,omitempty"`
	IsPublic     bool                 `json:"is_public"`
	AddressLine1 *string              `json:"address_line1,omitempty"`
	AddressLine2 *string              `json:"address_line2,omitempty"`
	OrganizerID  string               `json:"organizer_id"`
	SeatsTaken   int                  `json:"seats_taken"`
	IsFull       bool                 `json:"is_full"`
	Categories   []entity.CategoryRef `json:"categories"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func ToEventResponse(e *entity.EventWithSeats, categories []entity.CategoryRef) *EventResponse {
	if e == nil {
		return nil
	}
	if categories == nil {
		categories = []entity.CategoryRef{}
	}
	return &EventResponse{
		ID:           e.ID.String(),
		Title:        e.Title,
		Description:  e.Description,
		Wishlist:     e.Wishlist,
		StartsAt:     e.StartsAt,
		EndsAt:       e.EndsAt,
		Capacity:     e.Capacity,
		IsPublic:     e.IsPublic,
		AddressLine1: e.AddressLine1,
		AddressLine2: e.AddressLine2,
		OrganizerID:  e.OrganizerID.String(),
		SeatsTaken:   e.SeatsTaken,
		IsFull:       e.IsFull(),
		Categories:   categories,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
