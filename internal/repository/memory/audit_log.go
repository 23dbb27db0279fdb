package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

// AuditLogRepository is an in-memory implementation for testing.
type AuditLogRepository struct {
	mu         sync.RWMutex
	logs       map[uuid.UUID]*entity.AuditLog
	queryCount int
}

// NewAuditLogRepository creates a new in-memory audit log repository.
func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{
		logs: make(map[uuid.UUID]*entity.AuditLog),
	}
}

// Create stores a new audit log entry.
func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if log == nil {
		return &repository.NotFoundError{ResourceType: "AuditLog", ResourceID: "nil"}
	}
	r.logs[log.ID] = log
	return nil
}

// GetByID retrieves an audit log entry by ID.
func (r *AuditLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	log, exists := r.logs[id]
	if !exists {
		return nil, &repository.NotFoundError{ResourceType: "AuditLog", ResourceID: id.String()}
	}
	return log, nil
}

// GetByUser retrieves all audit log entries for a user.
func (r *AuditLogRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	var result []*entity.AuditLog
	for _, log := range r.logs {
		if log.UserID == userID {
			result = append(result, log)
		}
	}
	return result, nil
}

// GetByResource retrieves all audit log entries against a resource string,
// e.g. "OptimizationRun#<uuid>".
func (r *AuditLogRepository) GetByResource(ctx context.Context, resource string) ([]*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	var result []*entity.AuditLog
	for _, log := range r.logs {
		if log.Resource == resource {
			result = append(result, log)
		}
	}
	return result, nil
}

// GetByAction retrieves all audit log entries for a given action.
func (r *AuditLogRepository) GetByAction(ctx context.Context, action string) ([]*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	var result []*entity.AuditLog
	for _, log := range r.logs {
		if log.Action == action {
			result = append(result, log)
		}
	}
	return result, nil
}

// ListRecent retrieves the most recent audit log entries, newest first.
func (r *AuditLogRepository) ListRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	all := make([]*entity.AuditLog, 0, len(r.logs))
	for _, log := range r.logs {
		all = append(all, log)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Count returns the total number of audit log entries.
func (r *AuditLogRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	return int64(len(r.logs)), nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *AuditLogRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets query count.
func (r *AuditLogRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = make(map[uuid.UUID]*entity.AuditLog)
	r.queryCount = 0
}
