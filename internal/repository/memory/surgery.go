package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/repository"
)

// SurgeryRepository is an in-memory implementation for testing.
type SurgeryRepository struct {
	mu         sync.RWMutex
	surgeries  map[uuid.UUID]*entity.Surgery
	queryCount int
}

// NewSurgeryRepository creates a new in-memory surgery repository.
func NewSurgeryRepository() *SurgeryRepository {
	return &SurgeryRepository{
		surgeries: make(map[uuid.UUID]*entity.Surgery),
	}
}

// Create stores a new surgery.
func (r *SurgeryRepository) Create(ctx context.Context, surgery *entity.Surgery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queryCount++

	if surgery == nil {
		return &repository.NotFoundError{ResourceType: "Surgery", ResourceID: "nil"}
	}

	r.surgeries[surgery.ID] = surgery
	return nil
}

// CreateBatch stores multiple surgeries in a single logical operation.
func (r *SurgeryRepository) CreateBatch(ctx context.Context, surgeries []*entity.Surgery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queryCount++

	for _, s := range surgeries {
		if s == nil {
			continue
		}
		r.surgeries[s.ID] = s
	}
	return nil
}

// GetByID retrieves a surgery by ID (excluding soft-deleted).
func (r *SurgeryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Surgery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queryCount++

	surgery, exists := r.surgeries[id]
	if !exists || surgery.DeletedAt != nil {
		return nil, &repository.NotFoundError{ResourceType: "Surgery", ResourceID: id.String()}
	}

	return surgery, nil
}

// GetByHospitalAndDate retrieves all active surgeries scheduled for a hospital on a date.
func (r *SurgeryRepository) GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.Surgery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queryCount++

	var result []*entity.Surgery
	for _, s := range r.surgeries {
		if s.HospitalID == hospitalID && sameDate(s.SchedulingDate, date) && s.DeletedAt == nil {
			result = append(result, s)
		}
	}

	return result, nil
}

// Update updates an existing surgery.
func (r *SurgeryRepository) Update(ctx context.Context, surgery *entity.Surgery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queryCount++

	if surgery == nil {
		return &repository.NotFoundError{ResourceType: "Surgery", ResourceID: "nil"}
	}

	if _, exists := r.surgeries[surgery.ID]; !exists {
		return &repository.NotFoundError{ResourceType: "Surgery", ResourceID: surgery.ID.String()}
	}

	surgery.UpdatedAt = time.Now().UTC()
	r.surgeries[surgery.ID] = surgery
	return nil
}

// Delete performs a soft delete.
func (r *SurgeryRepository) Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queryCount++

	surgery, exists := r.surgeries[id]
	if !exists {
		return &repository.NotFoundError{ResourceType: "Surgery", ResourceID: id.String()}
	}

	now := time.Now().UTC()
	surgery.DeletedAt = &now
	r.surgeries[id] = surgery
	return nil
}

// Count returns the total number of active surgeries.
func (r *SurgeryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queryCount++

	count := int64(0)
	for _, s := range r.surgeries {
		if s.DeletedAt == nil {
			count++
		}
	}

	return count, nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *SurgeryRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets query count.
func (r *SurgeryRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surgeries = make(map[uuid.UUID]*entity.Surgery)
	r.queryCount = 0
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// RoomRepository is an in-memory implementation for testing.
type RoomRepository struct {
	mu         sync.RWMutex
	rooms      map[uuid.UUID]*entity.Room
	queryCount int
}

// NewRoomRepository creates a new in-memory room repository.
func NewRoomRepository() *RoomRepository {
	return &RoomRepository{
		rooms: make(map[uuid.UUID]*entity.Room),
	}
}

// Create stores a new room.
func (r *RoomRepository) Create(ctx context.Context, room *entity.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queryCount++

	if room == nil {
		return &repository.NotFoundError{ResourceType: "Room", ResourceID: "nil"}
	}

	r.rooms[room.ID] = room
	return nil
}

// GetByID retrieves a room by ID.
func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queryCount++

	room, exists := r.rooms[id]
	if !exists {
		return nil, &repository.NotFoundError{ResourceType: "Room", ResourceID: id.String()}
	}

	return room, nil
}

// GetByHospitalAndDate retrieves all rooms available for a hospital on a date.
func (r *RoomRepository) GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queryCount++

	var result []*entity.Room
	for _, room := range r.rooms {
		if room.HospitalID == hospitalID && sameDate(room.SchedulingDate, date) {
			result = append(result, room)
		}
	}

	return result, nil
}

// Update updates an existing room.
func (r *RoomRepository) Update(ctx context.Context, room *entity.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queryCount++

	if room == nil {
		return &repository.NotFoundError{ResourceType: "Room", ResourceID: "nil"}
	}

	if _, exists := r.rooms[room.ID]; !exists {
		return &repository.NotFoundError{ResourceType: "Room", ResourceID: room.ID.String()}
	}

	room.UpdatedAt = time.Now().UTC()
	r.rooms[room.ID] = room
	return nil
}

// Delete removes a room (rooms are not soft-deleted; they are a daily availability record).
func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queryCount++

	if _, exists := r.rooms[id]; !exists {
		return &repository.NotFoundError{ResourceType: "Room", ResourceID: id.String()}
	}

	delete(r.rooms, id)
	return nil
}

// Count returns the total number of rooms.
func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.queryCount++
	return int64(len(r.rooms)), nil
}

// QueryCount returns the number of queries executed (for testing purposes).
func (r *RoomRepository) QueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.queryCount
}

// Reset clears all data and resets query count.
func (r *RoomRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = make(map[uuid.UUID]*entity.Room)
	r.queryCount = 0
}
