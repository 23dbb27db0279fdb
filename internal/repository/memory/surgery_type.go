package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

// SurgeryTypeRepository is an in-memory implementation for testing.
type SurgeryTypeRepository struct {
	mu           sync.RWMutex
	surgeryTypes map[uuid.UUID]*entity.SurgeryType
	queryCount   int
}

// NewSurgeryTypeRepository creates a new in-memory surgery type repository.
func NewSurgeryTypeRepository() *SurgeryTypeRepository {
	return &SurgeryTypeRepository{
		surgeryTypes: make(map[uuid.UUID]*entity.SurgeryType),
	}
}

// Create stores a new surgery type.
func (r *SurgeryTypeRepository) Create(ctx context.Context, st *entity.SurgeryType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if st == nil {
		return &repository.NotFoundError{ResourceType: "SurgeryType", ResourceID: "nil"}
	}
	r.surgeryTypes[st.ID] = st
	return nil
}

// GetByID retrieves a surgery type by ID.
func (r *SurgeryTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SurgeryType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	st, exists := r.surgeryTypes[id]
	if !exists {
		return nil, &repository.NotFoundError{ResourceType: "SurgeryType", ResourceID: id.String()}
	}
	return st, nil
}

// GetByHospital retrieves all surgery types in a hospital's catalog.
func (r *SurgeryTypeRepository) GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.SurgeryType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	var result []*entity.SurgeryType
	for _, st := range r.surgeryTypes {
		if st.HospitalID == hospitalID {
			result = append(result, st)
		}
	}
	return result, nil
}

// GetByCode retrieves a surgery type by its hospital-scoped code.
func (r *SurgeryTypeRepository) GetByCode(ctx context.Context, hospitalID uuid.UUID, code string) (*entity.SurgeryType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	for _, st := range r.surgeryTypes {
		if st.HospitalID == hospitalID && st.Code == code {
			return st, nil
		}
	}
	return nil, &repository.NotFoundError{ResourceType: "SurgeryType", ResourceID: code}
}

// Update updates an existing surgery type.
func (r *SurgeryTypeRepository) Update(ctx context.Context, st *entity.SurgeryType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if _, exists := r.surgeryTypes[st.ID]; !exists {
		return &repository.NotFoundError{ResourceType: "SurgeryType", ResourceID: st.ID.String()}
	}
	r.surgeryTypes[st.ID] = st
	return nil
}

// Delete removes a surgery type from the catalog.
func (r *SurgeryTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if _, exists := r.surgeryTypes[id]; !exists {
		return &repository.NotFoundError{ResourceType: "SurgeryType", ResourceID: id.String()}
	}
	delete(r.surgeryTypes, id)
	return nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *SurgeryTypeRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets query count.
func (r *SurgeryTypeRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surgeryTypes = make(map[uuid.UUID]*entity.SurgeryType)
	r.queryCount = 0
}

// SDSTRepository is an in-memory implementation for testing. Entries are
// keyed by (hospital, from, to) since a hospital has exactly one setup time
// between any ordered pair of surgery types.
type SDSTRepository struct {
	mu         sync.RWMutex
	entries    map[sdstKey]*entity.SDSTEntry
	queryCount int
}

type sdstKey struct {
	hospitalID uuid.UUID
	fromType   string
	toType     string
}

// NewSDSTRepository creates a new in-memory SDST repository.
func NewSDSTRepository() *SDSTRepository {
	return &SDSTRepository{
		entries: make(map[sdstKey]*entity.SDSTEntry),
	}
}

// Upsert inserts or replaces a setup-time entry.
func (r *SDSTRepository) Upsert(ctx context.Context, entry *entity.SDSTEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	if entry == nil {
		return &repository.NotFoundError{ResourceType: "SDSTEntry", ResourceID: "nil"}
	}
	key := sdstKey{hospitalID: entry.HospitalID, fromType: entry.FromType, toType: entry.ToType}
	r.entries[key] = entry
	return nil
}

// GetByHospital retrieves a hospital's full setup-time matrix as a flat list.
func (r *SDSTRepository) GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.SDSTEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.queryCount++
	var result []*entity.SDSTEntry
	for key, entry := range r.entries {
		if key.hospitalID == hospitalID {
			result = append(result, entry)
		}
	}
	return result, nil
}

// DeleteByHospital removes every setup-time entry belonging to a hospital.
func (r *SDSTRepository) DeleteByHospital(ctx context.Context, hospitalID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queryCount++
	for key := range r.entries {
		if key.hospitalID == hospitalID {
			delete(r.entries, key)
		}
	}
	return nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *SDSTRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets query count.
func (r *SDSTRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[sdstKey]*entity.SDSTEntry)
	r.queryCount = 0
}
