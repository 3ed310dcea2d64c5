package validator

import (
	"regexp"
	"strings"

	"eventhub/modules/auth/dto"
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

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidateRegisterRequest(req *dto.RegisterRequest) *ValidationResult {
	result := &ValidationResult{}
	if strings.TrimSpace(req.Email) == "" {
		result.add("email", "email is required")
	} else if !emailPattern.MatchString(req.Email) {
		result.add("email", "email is not valid")
	}
	if len(req.Email) > 255 {
		result.add("email", "email must be at most 255 characters")
	}
	if req.Username != "" && len(req.Username) > 50 {
		result.add("username", "username must be at most 50 characters")
	}
	if len(req.FullName) > 255 {
		result.add("full_name", "full name must be at most 255 characters")
	}
	if len(req.Password) < 8 {
		result.add("password", "password must be at least 8 characters")
	}
	return result
}

func ValidateLoginRequest(req *dto.LoginRequest) *ValidationResult {
	result := &ValidationResult{}
	if strings.TrimSpace(req.Identifier) == "" {
		result.add("identifier", "identifier is required")
	}
	if req.Password == "" {
		result.add("password", "password is required")
	}
	return result
}

func ValidateUpdateProfileRequest(req *dto.UpdateProfileRequest) *ValidationResult {
	result := &ValidationResult{}
	if req.Username != "" && len(req.Username) > 50 {
		result.add("username", "username must be at most 50 characters")
	}
	if len(req.FullName) > 255 {
		result.add("full_name", "full name must be at most 255 characters")
	}
	return result
}
