package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

// JobQueueRepository is an in-memory implementation for testing.
type JobQueueRepository struct {
	mu         sync.RWMutex
	jobs       map[uuid.UUID]*entity.JobQueue
	queryCount int
}

// NewJobQueueRepository creates a new in-memory job queue repository.
func NewJobQueueRepository() *JobQueueRepository {
	return &JobQueueRepository{
		jobs: make(map[uuid.UUID]*entity.JobQueue),
	}
}

// Create stores a new job.
func (r *JobQueueRepository) Create(ctx context.Context, job *entity.JobQueue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if job == nil {
		return &repository.NotFoundError{ResourceType: "JobQueue", ResourceID: "nil"}
	}
	r.jobs[job.ID] = job
	return nil
}

// GetByID retrieves a job by ID.
func (r *JobQueueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.JobQueue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	job, exists := r.jobs[id]
	if !exists {
		return nil, &repository.NotFoundError{ResourceType: "JobQueue", ResourceID: id.String()}
	}
	return job, nil
}

// GetByStatus retrieves all jobs with a given status.
func (r *JobQueueRepository) GetByStatus(ctx context.Context, status entity.JobQueueStatus) ([]*entity.JobQueue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	var result []*entity.JobQueue
	for _, job := range r.jobs {
		if job.Status == status {
			result = append(result, job)
		}
	}
	return result, nil
}

// GetByType retrieves all jobs of a given type.
func (r *JobQueueRepository) GetByType(ctx context.Context, jobType string) ([]*entity.JobQueue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	var result []*entity.JobQueue
	for _, job := range r.jobs {
		if job.JobType == jobType {
			result = append(result, job)
		}
	}
	return result, nil
}

// GetPending retrieves all jobs awaiting processing.
func (r *JobQueueRepository) GetPending(ctx context.Context) ([]*entity.JobQueue, error) {
	return r.GetByStatus(ctx, entity.JobQueueStatusPending)
}

// Update updates an existing job.
func (r *JobQueueRepository) Update(ctx context.Context, job *entity.JobQueue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if _, exists := r.jobs[job.ID]; !exists {
		return &repository.NotFoundError{ResourceType: "JobQueue", ResourceID: job.ID.String()}
	}
	r.jobs[job.ID] = job
	return nil
}

// Delete removes a job.
func (r *JobQueueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if _, exists := r.jobs[id]; !exists {
		return &repository.NotFoundError{ResourceType: "JobQueue", ResourceID: id.String()}
	}
	delete(r.jobs, id)
	return nil
}

// Count returns the total number of jobs.
func (r *JobQueueRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	return int64(len(r.jobs)), nil
}

// CleanupOldJobs deletes completed/failed jobs older than daysOld and
// reports how many were removed.
func (r *JobQueueRepository) CleanupOldJobs(ctx context.Context, daysOld int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	cutoff := time.Now().UTC().AddDate(0, 0, -daysOld)
	var removed int64
	for id, job := range r.jobs {
		terminal := job.Status == entity.JobQueueStatusComplete || job.Status == entity.JobQueueStatusFailed
		if terminal && job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(r.jobs, id)
			removed++
		}
	}
	return removed, nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *JobQueueRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets query count.
func (r *JobQueueRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = make(map[uuid.UUID]*entity.JobQueue)
	r.queryCount = 0
}
