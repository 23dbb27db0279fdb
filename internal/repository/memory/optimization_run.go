package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

// OptimizationRunRepository is an in-memory implementation for testing.
type OptimizationRunRepository struct {
	mu         sync.RWMutex
	runs       map[uuid.UUID]*entity.OptimizationRun
	queryCount int
}

// NewOptimizationRunRepository creates a new in-memory optimization run repository.
func NewOptimizationRunRepository() *OptimizationRunRepository {
	return &OptimizationRunRepository{
		runs: make(map[uuid.UUID]*entity.OptimizationRun),
	}
}

// Create stores a new optimization run.
func (r *OptimizationRunRepository) Create(ctx context.Context, run *entity.OptimizationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queryCount++

	if run == nil {
		return &repository.NotFoundError{ResourceType: "OptimizationRun", ResourceID: "nil"}
	}

	r.runs[run.ID] = run
	return nil
}

// GetByID retrieves a run by ID (excluding soft-deleted).
func (r *OptimizationRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OptimizationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queryCount++

	run, exists := r.runs[id]
	if !exists || run.IsDeleted() {
		return nil, &repository.NotFoundError{ResourceType: "OptimizationRun", ResourceID: id.String()}
	}

	return run, nil
}

// GetByHospital retrieves all active runs for a hospital.
func (r *OptimizationRunRepository) GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.OptimizationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queryCount++

	var result []*entity.OptimizationRun
	for _, run := range r.runs {
		if run.HospitalID == hospitalID && !run.IsDeleted() {
			result = append(result, run)
		}
	}

	return result, nil
}

// GetByHospitalAndDate retrieves all active runs for a hospital's scheduling date.
func (r *OptimizationRunRepository) GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.OptimizationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queryCount++

	var result []*entity.OptimizationRun
	for _, run := range r.runs {
		if run.HospitalID == hospitalID && sameDate(run.SchedulingDate, date) && !run.IsDeleted() {
			result = append(result, run)
		}
	}

	return result, nil
}

// Update updates an existing run.
func (r *OptimizationRunRepository) Update(ctx context.Context, run *entity.OptimizationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queryCount++

	if run == nil {
		return &repository.NotFoundError{ResourceType: "OptimizationRun", ResourceID: "nil"}
	}

	if _, exists := r.runs[run.ID]; !exists {
		return &repository.NotFoundError{ResourceType: "OptimizationRun", ResourceID: run.ID.String()}
	}

	r.runs[run.ID] = run
	return nil
}

// Delete performs a soft delete.
func (r *OptimizationRunRepository) Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queryCount++

	run, exists := r.runs[id]
	if !exists {
		return &repository.NotFoundError{ResourceType: "OptimizationRun", ResourceID: id.String()}
	}

	run.SoftDelete(deleterID)
	r.runs[id] = run
	return nil
}

// Count returns the total number of active runs.
func (r *OptimizationRunRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queryCount++

	count := int64(0)
	for _, run := range r.runs {
		if !run.IsDeleted() {
			count++
		}
	}

	return count, nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *OptimizationRunRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets query count.
func (r *OptimizationRunRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = make(map[uuid.UUID]*entity.OptimizationRun)
	r.queryCount = 0
}
