package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/validation"
)

// MockPersonRepository is a mock implementation of PersonRepository for testing
type MockPersonRepository struct {
	mu      sync.RWMutex
	people  map[uuid.UUID]*entity.Person
	getErr  error
	saveErr error
}

// NewMockPersonRepository creates a new mock person repository
func NewMockPersonRepository() *MockPersonRepository {
	return &MockPersonRepository{
		people: make(map[uuid.UUID]*entity.Person),
	}
}

// Create stores a person (mock implementation)
func (m *MockPersonRepository) Create(ctx context.Context, person *entity.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.people[person.ID] = person
	return nil
}

// GetByID retrieves a person by ID (mock implementation)
func (m *MockPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if person, ok := m.people[id]; ok {
		return person, nil
	}
	return nil, nil
}

// GetByEmail retrieves a person by email (mock implementation)
func (m *MockPersonRepository) GetByEmail(ctx context.Context, email string) (*entity.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, person := range m.people {
		if person.Email == email {
			return person, nil
		}
	}
	return nil, nil
}

// GetByHospital returns all stored people (mock implementation; hospitalID is ignored)
func (m *MockPersonRepository) GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.Person, error) {
	return m.GetAll(ctx)
}

// Update replaces a stored person (mock implementation)
func (m *MockPersonRepository) Update(ctx context.Context, person *entity.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.people[person.ID] = person
	return nil
}

// Delete soft-deletes a person (mock implementation)
func (m *MockPersonRepository) Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if person, ok := m.people[id]; ok {
		person.SoftDelete(deleterID)
	}
	return nil
}

// GetAll retrieves all people (mock implementation)
func (m *MockPersonRepository) GetAll(ctx context.Context) ([]*entity.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var people []*entity.Person
	for _, person := range m.people {
		people = append(people, person)
	}
	return people, nil
}

// Count returns the number of stored people
func (m *MockPersonRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.people)), nil
}

// SetGetError sets the error to return from Get operations
func (m *MockPersonRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// SetSaveError sets the error to return from Create operations
func (m *MockPersonRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// CountSync returns the number of stored people without the context/error ceremony
func (m *MockPersonRepository) CountSync() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.people)
}

// Clear removes all stored people
func (m *MockPersonRepository) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people = make(map[uuid.UUID]*entity.Person)
}

// MockSurgeryRepository is a mock implementation of SurgeryRepository
type MockSurgeryRepository struct {
	mu        sync.RWMutex
	surgeries map[uuid.UUID]*entity.Surgery
	getErr    error
	saveErr   error
}

// NewMockSurgeryRepository creates a new mock surgery repository
func NewMockSurgeryRepository() *MockSurgeryRepository {
	return &MockSurgeryRepository{
		surgeries: make(map[uuid.UUID]*entity.Surgery),
	}
}

// Create stores a surgery
func (m *MockSurgeryRepository) Create(ctx context.Context, surgery *entity.Surgery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.surgeries[surgery.ID] = surgery
	return nil
}

// CreateBatch stores multiple surgeries, as the case-list importer does
func (m *MockSurgeryRepository) CreateBatch(ctx context.Context, surgeries []*entity.Surgery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, s := range surgeries {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		m.surgeries[s.ID] = s
	}
	return nil
}

// GetByID retrieves a surgery by ID
func (m *MockSurgeryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Surgery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if s, ok := m.surgeries[id]; ok {
		return s, nil
	}
	return nil, nil
}

// GetByHospitalAndDate retrieves surgeries scheduled for a hospital on a given date
func (m *MockSurgeryRepository) GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.Surgery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var surgeries []*entity.Surgery
	for _, s := range m.surgeries {
		if s.HospitalID == hospitalID && sameDay(s.SchedulingDate, date) {
			surgeries = append(surgeries, s)
		}
	}
	return surgeries, nil
}

// Update replaces a stored surgery
func (m *MockSurgeryRepository) Update(ctx context.Context, surgery *entity.Surgery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surgeries[surgery.ID] = surgery
	return nil
}

// Delete soft-deletes a surgery
func (m *MockSurgeryRepository) Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.surgeries[id]; ok {
		now := time.Now().UTC()
		s.DeletedAt = &now
	}
	return nil
}

// Count returns the number of stored surgeries
func (m *MockSurgeryRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.surgeries)), nil
}

// SetGetError sets the error to return from Get operations
func (m *MockSurgeryRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// SetSaveError sets the error to return from Create operations
func (m *MockSurgeryRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// CountSync returns the number of stored surgeries without the context/error ceremony
func (m *MockSurgeryRepository) CountSync() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.surgeries)
}

// Clear removes all stored surgeries
func (m *MockSurgeryRepository) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surgeries = make(map[uuid.UUID]*entity.Surgery)
}

// MockRoomRepository is a mock implementation of RoomRepository
type MockRoomRepository struct {
	mu      sync.RWMutex
	rooms   map[uuid.UUID]*entity.Room
	getErr  error
	saveErr error
}

// NewMockRoomRepository creates a new mock room repository
func NewMockRoomRepository() *MockRoomRepository {
	return &MockRoomRepository{
		rooms: make(map[uuid.UUID]*entity.Room),
	}
}

// Create stores a room
func (m *MockRoomRepository) Create(ctx context.Context, room *entity.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rooms[room.ID] = room
	return nil
}

// GetByID retrieves a room by ID
func (m *MockRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, nil
}

// GetByHospitalAndDate retrieves rooms available for a hospital on a given date
func (m *MockRoomRepository) GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var rooms []*entity.Room
	for _, r := range m.rooms {
		if r.HospitalID == hospitalID && sameDay(r.SchedulingDate, date) {
			rooms = append(rooms, r)
		}
	}
	return rooms, nil
}

// Update replaces a stored room
func (m *MockRoomRepository) Update(ctx context.Context, room *entity.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.ID] = room
	return nil
}

// Delete removes a room
func (m *MockRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, id)
	return nil
}

// Count returns the number of stored rooms
func (m *MockRoomRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.rooms)), nil
}

// SetGetError sets the error to return from Get operations
func (m *MockRoomRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// SetSaveError sets the error to return from Create operations
func (m *MockRoomRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// CountSync returns the number of stored rooms without the context/error ceremony
func (m *MockRoomRepository) CountSync() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// Clear removes all stored rooms
func (m *MockRoomRepository) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms = make(map[uuid.UUID]*entity.Room)
}

// MockOptimizationRunRepository is a mock implementation of OptimizationRunRepository
type MockOptimizationRunRepository struct {
	mu        sync.RWMutex
	runs      map[uuid.UUID]*entity.OptimizationRun
	getErr    error
	saveErr   error
	updateErr error
}

// NewMockOptimizationRunRepository creates a new mock optimization run repository
func NewMockOptimizationRunRepository() *MockOptimizationRunRepository {
	return &MockOptimizationRunRepository{
		runs: make(map[uuid.UUID]*entity.OptimizationRun),
	}
}

// Create stores a run
func (m *MockOptimizationRunRepository) Create(ctx context.Context, run *entity.OptimizationRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs[run.ID] = run
	return nil
}

// GetByID retrieves a run by ID
func (m *MockOptimizationRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OptimizationRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if run, ok := m.runs[id]; ok {
		return run, nil
	}
	return nil, nil
}

// GetByHospital retrieves all runs for a hospital
func (m *MockOptimizationRunRepository) GetByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*entity.OptimizationRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var runs []*entity.OptimizationRun
	for _, run := range m.runs {
		if run.HospitalID == hospitalID {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

// GetByHospitalAndDate retrieves all runs for a hospital on a given scheduling date
func (m *MockOptimizationRunRepository) GetByHospitalAndDate(ctx context.Context, hospitalID uuid.UUID, date time.Time) ([]*entity.OptimizationRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var runs []*entity.OptimizationRun
	for _, run := range m.runs {
		if run.HospitalID == hospitalID && sameDay(run.SchedulingDate, date) {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

// Update replaces a stored run
func (m *MockOptimizationRunRepository) Update(ctx context.Context, run *entity.OptimizationRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	m.runs[run.ID] = run
	return nil
}

// Delete soft-deletes a run
func (m *MockOptimizationRunRepository) Delete(ctx context.Context, id uuid.UUID, deleterID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run, ok := m.runs[id]; ok {
		run.SoftDelete(deleterID)
	}
	return nil
}

// Count returns the number of stored runs
func (m *MockOptimizationRunRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.runs)), nil
}

// SetGetError sets the error to return from Get operations
func (m *MockOptimizationRunRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// SetSaveError sets the error to return from Create operations
func (m *MockOptimizationRunRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SetUpdateError sets the error to return from Update operations
func (m *MockOptimizationRunRepository) SetUpdateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateErr = err
}

// CountSync returns the number of stored runs without the context/error ceremony
func (m *MockOptimizationRunRepository) CountSync() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

// Clear removes all stored runs
func (m *MockOptimizationRunRepository) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = make(map[uuid.UUID]*entity.OptimizationRun)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MockValidationService is a mock implementation of a validation service
type MockValidationService struct {
	mu            sync.RWMutex
	nextResult    *validation.Result
	nextErr       error
	callCount     int
	lastInputName string
}

// NewMockValidationService creates a new mock validation service
func NewMockValidationService() *MockValidationService {
	return &MockValidationService{
		nextResult: validation.NewResult(),
		callCount:  0,
	}
}

// Validate validates something and returns a result
func (m *MockValidationService) Validate(ctx context.Context, name string) (*validation.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.lastInputName = name
	return m.nextResult, m.nextErr
}

// SetNextResult sets the result to return from Validate
func (m *MockValidationService) SetNextResult(result *validation.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextResult = result
}

// SetNextError sets the error to return from Validate
func (m *MockValidationService) SetNextError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
}

// GetCallCount returns the number of times Validate was called
func (m *MockValidationService) GetCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.callCount
}

// GetLastInput returns the last input to Validate
func (m *MockValidationService) GetLastInput() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastInputName
}

// Reset resets the mock state
func (m *MockValidationService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastInputName = ""
	m.nextResult = validation.NewResult()
	m.nextErr = nil
}
