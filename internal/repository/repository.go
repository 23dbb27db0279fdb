package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
)

// Database provides access to all repositories
type Database interface {
	// Transaction management
	BeginTx(ctx context.Context) (Transaction, error)

	// Repository accessors
	HospitalRepository() HospitalRepository
	PersonRepository() PersonRepository
	SurgeryRepository() SurgeryRepository
	RoomRepository() RoomRepository
	SurgeryTypeRepository() SurgeryTypeRepository
	SDSTRepository() SDSTRepository
	OptimizationRunRepository() OptimizationRunRepository
	AuditLogRepository() AuditLogRepository
	UserRepository() UserRepository
	JobQueueRepository() JobQueueRepository

	// Connection management
	Close() error
	Health(ctx context.Context) error
}

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error

	HospitalRepository() HospitalRepository
	PersonRepository() PersonRepository
	SurgeryRepository() SurgeryRepository
	RoomRepository() RoomRepository
	SurgeryTypeRepository() SurgeryTypeRepository
	SDSTRepository() SDSTRepository
	OptimizationRunRepository() OptimizationRunRepository
	AuditLogRepository() AuditLogRepository
	UserRepository() UserRepository
	JobQueueRepository() JobQueueRepository
}

// HospitalRepository defines data access operations for hospitals
type HospitalRepository interface {
	Create(ctx context.Context, hospital *entity.Hospital) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Hospital, error)
	GetAll(ctx context.Context) ([]*entity.Hospital, error)
	Update(ctx context.Context, hospital *entity.Hospital) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// PersonRepository defines data access operations for persons (staff members)
type PersonRepository interface {
	Create(ctx context.Context, person *entity.Person) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Person, error)
	GetByEmail(ctx context.Context, email string) (*entity.Person, error)
	GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.Person, error)
	Update(ctx context.Context, person *entity.Person) error
	Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// SurgeryRepository defines data access operations for pending surgeries.
type SurgeryRepository interface {
	Create(ctx context.Context, surgery *entity.Surgery) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Surgery, error)
	GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.Surgery, error)
	Update(ctx context.Context, surgery *entity.Surgery) error
	Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	// Batch insert used by the case-list importer.
	CreateBatch(ctx context.Context, surgeries []*entity.Surgery) error
}

// RoomRepository defines data access operations for operating rooms.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// SurgeryTypeRepository defines data access operations for the surgery type
// catalog a hospital's SDST matrix is keyed against.
type SurgeryTypeRepository interface {
	Create(ctx context.Context, surgeryType *entity.SurgeryType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SurgeryType, error)
	GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.SurgeryType, error)
	GetByCode(ctx context.Context, hospitalID uuid.UUID, code string) (*entity.SurgeryType, error)
	Update(ctx context.Context, surgeryType *entity.SurgeryType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SDSTRepository defines data access operations for a hospital's
// sequence-dependent setup time matrix.
type SDSTRepository interface {
	Upsert(ctx context.Context, entry *entity.SDSTEntry) error
	GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.SDSTEntry, error)
	DeleteByHospital(ctx context.Context, hospitalID uuid.UUID) error
}

// OptimizationRunRepository defines data access operations for persisted
// optimization runs.
type OptimizationRunRepository interface {
	Create(ctx context.Context, run *entity.OptimizationRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OptimizationRun, error)
	GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.OptimizationRun, error)
	GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.OptimizationRun, error)
	Update(ctx context.Context, run *entity.OptimizationRun) error
	Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// AuditLogRepository defines data access operations for audit logs
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AuditLog, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AuditLog, error)
	GetByResource(ctx context.Context, resource string) ([]*entity.AuditLog, error)
	GetByAction(ctx context.Context, action string) ([]*entity.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error)
	Count(ctx context.Context) (int64, error)
}

// UserRepository defines data access operations for users
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.User, error)
	GetByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// JobQueueRepository defines data access operations for job queue
type JobQueueRepository interface {
	Create(ctx context.Context, job *entity.JobQueue) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.JobQueue, error)
	GetByStatus(ctx context.Context, status entity.JobQueueStatus) ([]*entity.JobQueue, error)
	GetByType(ctx context.Context, jobType string) ([]*entity.JobQueue, error)
	GetPending(ctx context.Context) ([]*entity.JobQueue, error)
	Update(ctx context.Context, job *entity.JobQueue) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CleanupOldJobs(ctx context.Context, daysOld int) (int64, error)
}

// NotFoundError represents a record not found error
type NotFoundError struct {
	ResourceType string
	ResourceID   string
}

// Error implements the error interface for NotFoundError
func (e *NotFoundError) Error() string {
	return "not found: " + e.ResourceType + " " + e.ResourceID
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ValidationError represents a validation error
type ValidationError struct {
	Message string
	Field   string
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
