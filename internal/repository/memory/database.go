package memory

import (
	"context"

	"github.com/schedcu/orsched/internal/repository"
)

// Database is an in-memory implementation of repository.Database, used by
// service/job/handler tests that want a real Database rather than a
// per-method mock. Everything lives in process memory and is lost on
// restart; there is no persistence and no real transaction isolation.
type Database struct {
	hospitals    *HospitalRepository
	persons      *PersonRepository
	surgeries    *SurgeryRepository
	rooms        *RoomRepository
	surgeryTypes *SurgeryTypeRepository
	sdst         *SDSTRepository
	runs         *OptimizationRunRepository
	auditLogs    *AuditLogRepository
	users        *UserRepository
	jobQueue     *JobQueueRepository
}

// NewDatabase constructs an empty in-memory Database.
func NewDatabase() *Database {
	return &Database{
		hospitals:    NewHospitalRepository(),
		persons:      NewPersonRepository(),
		surgeries:    NewSurgeryRepository(),
		rooms:        NewRoomRepository(),
		surgeryTypes: NewSurgeryTypeRepository(),
		sdst:         NewSDSTRepository(),
		runs:         NewOptimizationRunRepository(),
		auditLogs:    NewAuditLogRepository(),
		users:        NewUserRepository(),
		jobQueue:     NewJobQueueRepository(),
	}
}

func (d *Database) HospitalRepository() repository.HospitalRepository               { return d.hospitals }
func (d *Database) PersonRepository() repository.PersonRepository                   { return d.persons }
func (d *Database) SurgeryRepository() repository.SurgeryRepository                 { return d.surgeries }
func (d *Database) RoomRepository() repository.RoomRepository                       { return d.rooms }
func (d *Database) SurgeryTypeRepository() repository.SurgeryTypeRepository         { return d.surgeryTypes }
func (d *Database) SDSTRepository() repository.SDSTRepository                       { return d.sdst }
func (d *Database) OptimizationRunRepository() repository.OptimizationRunRepository { return d.runs }
func (d *Database) AuditLogRepository() repository.AuditLogRepository               { return d.auditLogs }
func (d *Database) UserRepository() repository.UserRepository                       { return d.users }
func (d *Database) JobQueueRepository() repository.JobQueueRepository               { return d.jobQueue }

// Close is a no-op; there is no underlying connection to release.
func (d *Database) Close() error { return nil }

// Health always reports healthy; there is no external dependency to probe.
func (d *Database) Health(ctx context.Context) error { return nil }

// BeginTx returns a Transaction backed by the same repositories as the
// Database itself. The in-memory store has no real transaction isolation:
// Commit and Rollback are both no-ops, since every write already lands
// directly in the shared maps. This is acceptable for dev/test use but is
// exactly why production deployments use internal/repository/postgres.
func (d *Database) BeginTx(ctx context.Context) (repository.Transaction, error) {
	return &Transaction{db: d}, nil
}

// Transaction is the in-memory implementation of repository.Transaction.
type Transaction struct {
	db *Database
}

func (t *Transaction) HospitalRepository() repository.HospitalRepository       { return t.db.hospitals }
func (t *Transaction) PersonRepository() repository.PersonRepository           { return t.db.persons }
func (t *Transaction) SurgeryRepository() repository.SurgeryRepository         { return t.db.surgeries }
func (t *Transaction) RoomRepository() repository.RoomRepository               { return t.db.rooms }
func (t *Transaction) SurgeryTypeRepository() repository.SurgeryTypeRepository { return t.db.surgeryTypes }
func (t *Transaction) SDSTRepository() repository.SDSTRepository               { return t.db.sdst }
func (t *Transaction) OptimizationRunRepository() repository.OptimizationRunRepository {
	return t.db.runs
}
func (t *Transaction) AuditLogRepository() repository.AuditLogRepository { return t.db.auditLogs }
func (t *Transaction) UserRepository() repository.UserRepository         { return t.db.users }
func (t *Transaction) JobQueueRepository() repository.JobQueueRepository { return t.db.jobQueue }

// Commit is a no-op; see Database.BeginTx.
func (t *Transaction) Commit() error { return nil }

// Rollback is a no-op; see Database.BeginTx.
func (t *Transaction) Rollback() error { return nil }
