package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/schedcu/orsched/internal/repository"
)

// Database is the concrete PostgreSQL implementation of repository.Database.
// NewDatabase constructs one repository instance per entity up front and
// the accessors reuse it; all repositories share the same
// connection pool and therefore see the same prepared-statement cache.
type Database struct {
	db *DB

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

// NewDatabase wraps an open PostgreSQL connection pool as a repository.Database.
func NewDatabase(db *DB) *Database {
	return &Database{
		db:           db,
		hospitals:    NewHospitalRepository(db.DB),
		persons:      NewPersonRepository(db.DB),
		surgeries:    NewSurgeryRepository(db.DB),
		rooms:        NewRoomRepository(db.DB),
		surgeryTypes: NewSurgeryTypeRepository(db.DB),
		sdst:         NewSDSTRepository(db.DB),
		runs:         NewOptimizationRunRepository(db.DB),
		auditLogs:    NewAuditLogRepository(db.DB),
		users:        NewUserRepository(db.DB),
		jobQueue:     NewJobQueueRepository(db.DB),
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

// Close closes the underlying connection pool.
func (d *Database) Close() error { return d.db.Close() }

// Health checks database connectivity.
func (d *Database) Health(ctx context.Context) error { return d.db.Health(ctx) }

// BeginTx opens a PostgreSQL transaction and returns a Transaction whose
// repository accessors all operate against the same *sql.Tx.
func (d *Database) BeginTx(ctx context.Context) (repository.Transaction, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return newTransaction(tx), nil
}

// Transaction is the concrete PostgreSQL implementation of
// repository.Transaction. Every repository accessor returns an instance
// bound to the same *sql.Tx, so writes across multiple entities (for
// example persisting a run's terminal status alongside its audit log
// entry) either all commit or all roll back together.
type Transaction struct {
	tx *sql.Tx

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

func newTransaction(tx *sql.Tx) *Transaction {
	return &Transaction{
		tx:           tx,
		hospitals:    NewHospitalRepository(tx),
		persons:      NewPersonRepository(tx),
		surgeries:    NewSurgeryRepository(tx),
		rooms:        NewRoomRepository(tx),
		surgeryTypes: NewSurgeryTypeRepository(tx),
		sdst:         NewSDSTRepository(tx),
		runs:         NewOptimizationRunRepository(tx),
		auditLogs:    NewAuditLogRepository(tx),
		users:        NewUserRepository(tx),
		jobQueue:     NewJobQueueRepository(tx),
	}
}

func (t *Transaction) HospitalRepository() repository.HospitalRepository             { return t.hospitals }
func (t *Transaction) PersonRepository() repository.PersonRepository                 { return t.persons }
func (t *Transaction) SurgeryRepository() repository.SurgeryRepository               { return t.surgeries }
func (t *Transaction) RoomRepository() repository.RoomRepository                     { return t.rooms }
func (t *Transaction) SurgeryTypeRepository() repository.SurgeryTypeRepository       { return t.surgeryTypes }
func (t *Transaction) SDSTRepository() repository.SDSTRepository                     { return t.sdst }
func (t *Transaction) OptimizationRunRepository() repository.OptimizationRunRepository { return t.runs }
func (t *Transaction) AuditLogRepository() repository.AuditLogRepository             { return t.auditLogs }
func (t *Transaction) UserRepository() repository.UserRepository                     { return t.users }
func (t *Transaction) JobQueueRepository() repository.JobQueueRepository             { return t.jobQueue }

// Commit commits the transaction.
func (t *Transaction) Commit() error { return t.tx.Commit() }

// Rollback rolls back the transaction.
func (t *Transaction) Rollback() error { return t.tx.Rollback() }
