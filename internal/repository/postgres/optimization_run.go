package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

// OptimizationRunRepository implements repository.OptimizationRunRepository for PostgreSQL
type OptimizationRunRepository struct {
	db Executor
}

// NewOptimizationRunRepository creates a new OptimizationRunRepository
func NewOptimizationRunRepository(db Executor) *OptimizationRunRepository {
	return &OptimizationRunRepository{db: db}
}

// Create creates a new optimization run record
func (r *OptimizationRunRepository) Create(ctx context.Context, run *entity.OptimizationRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	query := `
		INSERT INTO optimization_runs
		(id, hospital_id, scheduling_date, status, variant, seed, parameters, result_cost, result,
		 iterations_run, error_message, cache_hit, created_at, created_by, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.HospitalID, run.SchedulingDate, run.Status, run.Variant, run.Seed,
		run.ParametersJSON, run.ResultCost, run.ResultJSON, run.IterationsRun, run.ErrorMessage,
		run.CacheHit, run.CreatedAt, run.CreatedBy, run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create optimization run: %w", err)
	}
	return nil
}

const optimizationRunColumns = `
	id, hospital_id, scheduling_date, status, variant, seed, parameters, result_cost, result,
	iterations_run, error_message, cache_hit, created_at, created_by, started_at, completed_at,
	deleted_at, deleted_by
`

func scanOptimizationRun(scanner interface {
	Scan(dest ...interface{}) error
}) (*entity.OptimizationRun, error) {
	run := &entity.OptimizationRun{}
	err := scanner.Scan(
		&run.ID, &run.HospitalID, &run.SchedulingDate, &run.Status, &run.Variant, &run.Seed,
		&run.ParametersJSON, &run.ResultCost, &run.ResultJSON, &run.IterationsRun, &run.ErrorMessage,
		&run.CacheHit, &run.CreatedAt, &run.CreatedBy, &run.StartedAt, &run.CompletedAt,
		&run.DeletedAt, &run.DeletedBy,
	)
	return run, err
}

// GetByID retrieves an optimization run by ID
func (r *OptimizationRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OptimizationRun, error) {
	query := `SELECT` + optimizationRunColumns + `FROM optimization_runs WHERE id = $1 AND deleted_at IS NULL`

	run, err := scanOptimizationRun(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "OptimizationRun", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get optimization run: %w", err)
	}

	return run, nil
}

// GetByHospital retrieves all active runs for a hospital
func (r *OptimizationRunRepository) GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.OptimizationRun, error) {
	query := `SELECT` + optimizationRunColumns + `FROM optimization_runs WHERE hospital_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query optimization runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.OptimizationRun
	for rows.Next() {
		run, err := scanOptimizationRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan optimization run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetByHospitalAndDate retrieves all active runs for a hospital's scheduling date
func (r *OptimizationRunRepository) GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.OptimizationRun, error) {
	query := `SELECT` + optimizationRunColumns + `FROM optimization_runs WHERE hospital_id = $1 AND scheduling_date = $2 AND deleted_at IS NULL ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, hospitalID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query optimization runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.OptimizationRun
	for rows.Next() {
		run, err := scanOptimizationRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan optimization run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Update updates an optimization run, typically after it reaches a terminal status.
func (r *OptimizationRunRepository) Update(ctx context.Context, run *entity.OptimizationRun) error {
	query := `
		UPDATE optimization_runs
		SET status = $2, result_cost = $3, result = $4, iterations_run = $5,
		    error_message = $6, cache_hit = $7, started_at = $8, completed_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		run.ID, run.Status, run.ResultCost, run.ResultJSON, run.IterationsRun,
		run.ErrorMessage, run.CacheHit, run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update optimization run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "OptimizationRun", ResourceID: run.ID.String()}
	}

	return nil
}

// Delete marks an optimization run as deleted.
func (r *OptimizationRunRepository) Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error {
	query := `
		UPDATE optimization_runs
		SET deleted_at = NOW(), deleted_by = $2
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id, deleterID)
	if err != nil {
		return fmt.Errorf("failed to delete optimization run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "OptimizationRun", ResourceID: id.String()}
	}

	return nil
}

// Count returns the count of active optimization runs.
func (r *OptimizationRunRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM optimization_runs WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count optimization runs: %w", err)
	}
	return count, nil
}
