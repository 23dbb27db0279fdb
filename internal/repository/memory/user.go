package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

// UserRepository is an in-memory implementation for testing.
type UserRepository struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]*entity.User
	queryCount int
}

// NewUserRepository creates a new in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[uuid.UUID]*entity.User),
	}
}

// Create stores a new user.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if user == nil {
		return &repository.NotFoundError{ResourceType: "User", ResourceID: "nil"}
	}
	r.users[user.ID] = user
	return nil
}

// GetByID retrieves a user by ID (excluding soft-deleted).
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	user, exists := r.users[id]
	if !exists || user.DeletedAt != nil {
		return nil, &repository.NotFoundError{ResourceType: "User", ResourceID: id.String()}
	}
	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	for _, user := range r.users {
		if user.Email == email && user.DeletedAt == nil {
			return user, nil
		}
	}
	return nil, &repository.NotFoundError{ResourceType: "User", ResourceID: email}
}

// GetByHospital retrieves all active users scoped to a hospital.
func (r *UserRepository) GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	var result []*entity.User
	for _, user := range r.users {
		if user.DeletedAt == nil && user.HospitalID != nil && *user.HospitalID == hospitalID {
			result = append(result, user)
		}
	}
	return result, nil
}

// GetByRole retrieves all active users with a given role.
func (r *UserRepository) GetByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	var result []*entity.User
	for _, user := range r.users {
		if user.DeletedAt == nil && user.Role == role {
			result = append(result, user)
		}
	}
	return result, nil
}

// Update updates an existing user.
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if _, exists := r.users[user.ID]; !exists {
		return &repository.NotFoundError{ResourceType: "User", ResourceID: user.ID.String()}
	}
	user.UpdatedAt = entity.Now()
	r.users[user.ID] = user
	return nil
}

// Delete performs a soft delete.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	user, exists := r.users[id]
	if !exists {
		return &repository.NotFoundError{ResourceType: "User", ResourceID: id.String()}
	}
	now := entity.Now()
	user.DeletedAt = &now
	return nil
}

// Count returns the total number of active users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	count := int64(0)
	for _, user := range r.users {
		if user.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *UserRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets query count.
func (r *UserRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[uuid.UUID]*entity.User)
	r.queryCount = 0
}
