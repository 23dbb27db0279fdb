// Package response defines the standard JSON envelope used by every HTTP
// handler, kept separate from package api so that internal/api (the
// router) and internal/api/handlers (the per-domain handlers it wires up)
// can both depend on it without an import cycle.
package response

import (
	"time"

	"github.com/schedcu/orsched/internal/entity"
)

// APIResponse is the standard response format for all endpoints.
type APIResponse struct {
	Data             interface{}              `json:"data,omitempty"`
	ValidationResult *entity.ValidationResult `json:"validation,omitempty"`
	Error            *ErrorResponse           `json:"error,omitempty"`
	Meta             Meta                     `json:"meta"`
}

// ErrorResponse contains error details.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains response metadata.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Version   string    `json:"version,omitempty"`
}

// Success returns a successful APIResponse.
func Success(data interface{}) *APIResponse {
	return &APIResponse{
		Data:             data,
		ValidationResult: entity.NewValidationResult(),
		Meta: Meta{
			Timestamp: time.Now().UTC(),
			Version:   "1.0",
		},
	}
}

// ErrorWithCode returns an error APIResponse.
func ErrorWithCode(code, message string) *APIResponse {
	return &APIResponse{
		Error: &ErrorResponse{
			Code:    code,
			Message: message,
		},
		Meta: Meta{
			Timestamp: time.Now().UTC(),
			Version:   "1.0",
		},
	}
}

// ValidationError returns a validation error APIResponse.
func ValidationError(code, message string) *APIResponse {
	return &APIResponse{
		ValidationResult: entity.NewValidationError(code, message),
		Meta: Meta{
			Timestamp: time.Now().UTC(),
			Version:   "1.0",
		},
	}
}
