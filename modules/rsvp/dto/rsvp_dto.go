package dto

import (
	"time"

	"eventhub/modules/rsvp/entity"
)

// ===================== Request DTOs =====================

// ToggleRequest carries optional extras applied when the toggle creates a
// new "going" row. They are ignored on retraction.
type ToggleRequest struct {
	GuestsCount int    `json:"guests_count"`
	Note        string `json:"note"`
}

// ===================== Response DTOs =====================

// ToggleResponse reports the ledger state after a toggle. Status is "going"
// after a creation and "absent" after a retraction.
type ToggleResponse struct {
	EventID    string `json:"event_id"`
	Status     string `json:"status"`
	SeatsTaken int    `json:"seats_taken"`
	IsFull     bool   `json:"is_full"`
}

type RsvpResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EventID     string    `json:"event_id"`
	Status      string    `json:"status"`
	GuestsCount int       `json:"guests_count"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AttendanceResponse is the seat-accounting view of an event.
type AttendanceResponse struct {
	EventID    string         `json:"event_id"`
	SeatsTaken int            `json:"seats_taken"`
	Capacity   *int           `json:"capacity,omitempty"`
	IsFull     bool           `json:"is_full"`
	Going      []RsvpResponse `json:"going"`
}

// StatusAbsent is the reported state after a retraction; it is not a stored
// enum value, absence of the row is the state.
const StatusAbsent = "absent"

// ===================== Mapper Functions =====================

func ToRsvpResponse(r *entity.Rsvp) *RsvpResponse {
	if r == nil {
		return nil
	}
	resp := &RsvpResponse{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		EventID:     r.EventID.String(),
		Status:      string(r.Status),
		GuestsCount: r.GuestsCount,
		CreatedAt:   r.CreatedAt,
	}
	if r.Note != nil {
		resp.Note = *r.Note
	}
	return resp
}

func ToRsvpResponses(rsvps []entity.Rsvp) []RsvpResponse {
	result := make([]RsvpResponse, 0, len(rsvps))
	for i := range rsvps {
		result = append(result, *ToRsvpResponse(&rsvps[i]))
	}
	return result
}
