package entity

import (
	"time"

	"github.com/google/uuid"
)

// OptimizationRun is the persisted record of one call to the optimizer
// core: what was asked for, what came back, and how it went. It is the
// host's "remember this happened" layer sitting on top of the core's
// stateless, in-memory OptimizationResult (spec.md's Non-goals exclude
// persistence from the core itself).
type OptimizationRun struct {
	ID              uuid.UUID      `json:"id"`
	HospitalID      uuid.UUID      `json:"hospital_id"`
	SchedulingDate  time.Time      `json:"scheduling_date"`
	Status          string         `json:"status"`
	Variant         string         `json:"variant"`
	Seed            *int64         `json:"seed,omitempty"`
	ParametersJSON  string         `json:"parameters"`
	ResultCost      *float64       `json:"result_cost,omitempty"`
	ResultJSON      *string        `json:"result,omitempty"`
	IterationsRun   int            `json:"iterations_run"`
	ErrorMessage    *string        `json:"error_message,omitempty"`
	CacheHit        bool           `json:"cache_hit"`
	CreatedAt       time.Time      `json:"created_at"`
	CreatedBy       uuid.UUID      `json:"created_by"`
	StartedAt       *time.Time     `json:"started_at,omitempty"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	DeletedAt       *time.Time     `json:"deleted_at,omitempty"`
	DeletedBy       *uuid.UUID     `json:"deleted_by,omitempty"`
}

// RunStatus mirrors optimizer.RunStatus as a persisted string; kept as a
// distinct type here so the host's stored representation does not couple
// directly to the optimizer package's Go type.
type RunStatus string

const (
	RunStatusPending   RunStatus = "Pending"
	RunStatusRunning   RunStatus = "Running"
	RunStatusCompleted RunStatus = "Completed"
	RunStatusFailed    RunStatus = "Failed"
	RunStatusCancelled RunStatus = "Cancelled"
	RunStatusTimedOut  RunStatus = "TimedOut"
)

// ValidationResult provides a structured validation/error response used at
// every host-facing boundary (import, optimize request, run parameters).
type ValidationResult struct {
	Valid    bool                   `json:"valid"`
	Code     string                 `json:"code"` // VALIDATION_SUCCESS, PARSE_ERROR, etc.
	Severity string                 `json:"severity"`
	Message  string                 `json:"message"`
	Context  map[string]interface{} `json:"context,omitempty"`
}

// NewOptimizationRun creates a new run record with a generated ID and
// timestamps, in the Pending status.
func NewOptimizationRun(hospitalID, userID uuid.UUID, schedulingDate time.Time, variant, parametersJSON string) *OptimizationRun {
	return &OptimizationRun{
		ID:             uuid.New(),
		HospitalID:     hospitalID,
		SchedulingDate: schedulingDate,
		Status:         string(RunStatusPending),
		Variant:        variant,
		ParametersJSON: parametersJSON,
		CreatedAt:      time.Now().UTC(),
		CreatedBy:      userID,
	}
}

// MarkStarted transitions a run to Running.
func (r *OptimizationRun) MarkStarted() error {
	if r.Status != string(RunStatusPending) {
		return ErrInvalidRunStateTransition
	}
	now := time.Now().UTC()
	r.Status = string(RunStatusRunning)
	r.StartedAt = &now
	return nil
}

// Complete transitions a run to a terminal status, recording the result.
func (r *OptimizationRun) Complete(status RunStatus, cost float64, resultJSON string, iterations int) {
	now := time.Now().UTC()
	r.Status = string(status)
	r.ResultCost = &cost
	r.ResultJSON = &resultJSON
	r.IterationsRun = iterations
	r.CompletedAt = &now
}

// Fail transitions a run to Failed, recording the error.
func (r *OptimizationRun) Fail(errMsg string) {
	now := time.Now().UTC()
	r.Status = string(RunStatusFailed)
	r.ErrorMessage = &errMsg
	r.CompletedAt = &now
}

// IsDeleted reports whether a run is soft-deleted.
func (r *OptimizationRun) IsDeleted() bool {
	return r.DeletedAt != nil
}

// SoftDelete marks a run as deleted without removing data.
func (r *OptimizationRun) SoftDelete(deleterID uuid.UUID) {
	now := time.Now().UTC()
	r.DeletedAt = &now
	r.DeletedBy = &deleterID
}

// ValidateDateRange ensures end date is after or equal to start date.
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// NewValidationResult creates a successful validation result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Code:     "VALIDATION_SUCCESS",
		Severity: "INFO",
		Message:  "Validation passed",
		Context:  make(map[string]interface{}),
	}
}

// NewValidationError creates a validation error result.
func NewValidationError(code, message string) *ValidationResult {
	return &ValidationResult{
		Valid:    false,
		Code:     code,
		Severity: "ERROR",
		Message:  message,
		Context:  make(map[string]interface{}),
	}
}

// NewValidationWarning creates a validation warning result.
func NewValidationWarning(code, message string) *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Code:     code,
		Severity: "WARNING",
		Message:  message,
		Context:  make(map[string]interface{}),
	}
}

// AddContext adds contextual information to the validation result.
func (vr *ValidationResult) AddContext(key string, value interface{}) {
	if vr.Context == nil {
		vr.Context = make(map[string]interface{})
	}
	vr.Context[key] = value
}
