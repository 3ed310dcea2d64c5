package validator

import (
	"strings"
	"time"

	"eventhub/modules/event/dto"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Errors []FieldError `json:"errors,omitempty"`
}

func (r *ValidationResult) HasError() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) add(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

func validateCore(result *ValidationResult, title string, startsAt, endsAt time.Time, capacity *int) {
	if strings.TrimSpace(title) == "" {
		result.add("title", "title is required")
	}
	if len(title) > 255 {
		result.add("title", "title must be at most 255 characters")
	}
	if startsAt.IsZero() {
		result.add("starts_at", "starts_at is required")
	}
	if endsAt.IsZero() {
		result.add("ends_at", "ends_at is required")
	}
	if !startsAt.IsZero() && !endsAt.IsZero() && !endsAt.After(startsAt) {
		result.add("ends_at", "ends_at must be after starts_at")
	}
	if capacity != nil && *capacity < 1 {
		result.add("capacity", "capacity must be at least 1")
	}
}

func ValidateCreateEventRequest(req *dto.CreateEventRequest) *ValidationResult {
	result := &ValidationResult{}
	validateCore(result, req.Title, req.StartsAt, req.EndsAt, req.Capacity)
	return result
}

func ValidateUpdateEventRequest(req *dto.UpdateEventRequest) *ValidationResult {
	result := &ValidationResult{}
	validateCore(result, req.Title, req.StartsAt, req.EndsAt, req.Capacity)
	return result
}
