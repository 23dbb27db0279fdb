package entity

import (
	"time"

	"github.com/google/uuid"
)

// Type aliases for domain IDs and temporal types
type (
	HospitalID  = uuid.UUID
	PersonID    = uuid.UUID
	SurgeryID   = uuid.UUID
	RoomID      = uuid.UUID
	RunID       = uuid.UUID
	AuditLogID  = uuid.UUID
	UserID      = uuid.UUID
	JobQueueID  = uuid.UUID
	Date        = time.Time
	Time        = time.Time
)

// Helper functions for creating instances
func Now() time.Time {
	return time.Now().UTC()
}

func NowPtr() *time.Time {
	now := time.Now().UTC()
	return &now
}

// Hospital represents a hospital facility.
type Hospital struct {
	ID        uuid.UUID
	Name      string
	Code      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Person represents a hospital staff member: a surgeon eligible to be
// referenced by a Surgery's SurgeonID, or other scheduling staff.
// Specialty constrains which surgery types a surgeon may be matched
// against at the import boundary (the optimizer core has no notion of
// specialty; it only sees the SurgeonID it was handed).
type Person struct {
	ID        uuid.UUID
	Email     string // Primary identifier
	Name      string
	Specialty SpecialtyType
	Active    bool
	Aliases   []string // For matching imported case-list names
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// SpecialtyType classifies a surgeon's area of practice.
type SpecialtyType string

const (
	SpecialtyBodyOnly  SpecialtyType = "BODY_ONLY"
	SpecialtyNeuroOnly SpecialtyType = "NEURO_ONLY"
	SpecialtyBoth      SpecialtyType = "BOTH"
)

// AuditLog tracks all admin actions for compliance and debugging.
type AuditLog struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Action    string // e.g., "RUN_OPTIMIZATION", "IMPORT_CASE_LIST"
	Resource  string // e.g., "OptimizationRun#123"
	OldValues string // JSON
	NewValues string // JSON
	Timestamp time.Time
	IPAddress string
}

// IsDeleted reports whether a person is soft-deleted.
func (p *Person) IsDeleted() bool {
	return p.DeletedAt != nil
}

// SoftDelete marks a person as deleted.
func (p *Person) SoftDelete(deleterID uuid.UUID) {
	now := time.Now().UTC()
	p.DeletedAt = &now
}

// User represents a system user with authentication and authorization.
type User struct {
	ID           uuid.UUID
	Email        string // Unique identifier
	Name         string
	PasswordHash string
	Role         UserRole
	HospitalID   *uuid.UUID // NULL for system admin
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
	DeletedAt    *time.Time
}

// UserRole defines user authorization levels.
type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleScheduler UserRole = "SCHEDULER"
	UserRoleViewer    UserRole = "VIEWER"
)

// JobQueue represents an async job for processing.
type JobQueue struct {
	ID           uuid.UUID
	JobType      string // OPTIMIZE_RUN | CASE_LIST_IMPORT
	Payload      map[string]interface{}
	Status       JobQueueStatus
	Result       map[string]interface{}
	ErrorMessage *string
	RetryCount   int
	MaxRetries   int
	CreatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
}

// JobQueueStatus represents the status of a job in the queue.
type JobQueueStatus string

const (
	JobQueueStatusPending    JobQueueStatus = "PENDING"
	JobQueueStatusProcessing JobQueueStatus = "PROCESSING"
	JobQueueStatusComplete   JobQueueStatus = "COMPLETE"
	JobQueueStatusFailed     JobQueueStatus = "FAILED"
	JobQueueStatusRetry      JobQueueStatus = "RETRY"
)
