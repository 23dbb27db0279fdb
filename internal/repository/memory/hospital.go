package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

// HospitalRepository is an in-memory implementation for testing.
type HospitalRepository struct {
	mu         sync.RWMutex
	hospitals  map[uuid.UUID]*entity.Hospital
	queryCount int
}

// NewHospitalRepository creates a new in-memory hospital repository.
func NewHospitalRepository() *HospitalRepository {
	return &HospitalRepository{
		hospitals: make(map[uuid.UUID]*entity.Hospital),
	}
}

// Create stores a new hospital.
func (r *HospitalRepository) Create(ctx context.Context, hospital *entity.Hospital) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if hospital == nil {
		return &repository.NotFoundError{ResourceType: "Hospital", ResourceID: "nil"}
	}
	r.hospitals[hospital.ID] = hospital
	return nil
}

// GetByID retrieves a hospital by ID.
func (r *HospitalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	hospital, exists := r.hospitals[id]
	if !exists {
		return nil, &repository.NotFoundError{ResourceType: "Hospital", ResourceID: id.String()}
	}
	return hospital, nil
}

// GetAll retrieves every hospital.
func (r *HospitalRepository) GetAll(ctx context.Context) ([]*entity.Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	result := make([]*entity.Hospital, 0, len(r.hospitals))
	for _, h := range r.hospitals {
		result = append(result, h)
	}
	return result, nil
}

// Update updates an existing hospital.
func (r *HospitalRepository) Update(ctx context.Context, hospital *entity.Hospital) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if _, exists := r.hospitals[hospital.ID]; !exists {
		return &repository.NotFoundError{ResourceType: "Hospital", ResourceID: hospital.ID.String()}
	}
	r.hospitals[hospital.ID] = hospital
	return nil
}

// Delete removes a hospital.
func (r *HospitalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if _, exists := r.hospitals[id]; !exists {
		return &repository.NotFoundError{ResourceType: "Hospital", ResourceID: id.String()}
	}
	delete(r.hospitals, id)
	return nil
}

// Count returns the total number of hospitals.
func (r *HospitalRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	return int64(len(r.hospitals)), nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *HospitalRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets query count.
func (r *HospitalRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hospitals = make(map[uuid.UUID]*entity.Hospital)
	r.queryCount = 0
}

// PersonRepository is an in-memory implementation for testing.
type PersonRepository struct {
	mu         sync.RWMutex
	people     map[uuid.UUID]*entity.Person
	queryCount int
}

// NewPersonRepository creates a new in-memory person repository.
func NewPersonRepository() *PersonRepository {
	return &PersonRepository{
		people: make(map[uuid.UUID]*entity.Person),
	}
}

// Create stores a new person.
func (r *PersonRepository) Create(ctx context.Context, person *entity.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if person == nil {
		return &repository.NotFoundError{ResourceType: "Person", ResourceID: "nil"}
	}
	r.people[person.ID] = person
	return nil
}

// GetByID retrieves a person by ID (excluding soft-deleted).
func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	person, exists := r.people[id]
	if !exists || person.DeletedAt != nil {
		return nil, &repository.NotFoundError{ResourceType: "Person", ResourceID: id.String()}
	}
	return person, nil
}

// GetByEmail retrieves a person by email.
func (r *PersonRepository) GetByEmail(ctx context.Context, email string) (*entity.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	for _, person := range r.people {
		if person.Email == email && person.DeletedAt == nil {
			return person, nil
		}
	}
	return nil, &repository.NotFoundError{ResourceType: "Person", ResourceID: email}
}

// GetByHospital returns every non-deleted person; hospitalID is not used,
// since Person carries no hospital reference.
func (r *PersonRepository) GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	var result []*entity.Person
	for _, person := range r.people {
		if person.DeletedAt == nil {
			result = append(result, person)
		}
	}
	return result, nil
}

// Update updates an existing person.
func (r *PersonRepository) Update(ctx context.Context, person *entity.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if _, exists := r.people[person.ID]; !exists {
		return &repository.NotFoundError{ResourceType: "Person", ResourceID: person.ID.String()}
	}
	person.UpdatedAt = entity.Now()
	r.people[person.ID] = person
	return nil
}

// Delete performs a soft delete.
func (r *PersonRepository) Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	person, exists := r.people[id]
	if !exists {
		return &repository.NotFoundError{ResourceType: "Person", ResourceID: id.String()}
	}
	now := entity.Now()
	person.DeletedAt = &now
	return nil
}

// Count returns the total number of active people.
func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	count := int64(0)
	for _, person := range r.people {
		if person.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *PersonRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets query count.
func (r *PersonRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.people = make(map[uuid.UUID]*entity.Person)
	r.queryCount = 0
}
