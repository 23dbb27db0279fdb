package mocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/validation"
	"github.com/schedcu/orsched/tests/helpers"
)

// TestMockPersonRepository_Create verifies mock can store persons
func TestMockPersonRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewMockPersonRepository()
	person := helpers.CreateValidPerson()

	err := repo.Create(ctx, person)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if repo.CountSync() != 1 {
		t.Error("expected 1 person in repository")
	}
}

// TestMockPersonRepository_GetByID verifies mock retrieves person by ID
func TestMockPersonRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewMockPersonRepository()
	person := helpers.CreateValidPerson()

	repo.Create(ctx, person)
	retrieved, err := repo.GetByID(ctx, person.ID)

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if retrieved == nil {
		t.Error("expected person to be retrieved")
	}
	if retrieved.Email != person.Email {
		t.Error("expected retrieved person to match")
	}
}

// TestMockPersonRepository_GetByEmail verifies mock retrieves person by email
func TestMockPersonRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewMockPersonRepository()
	email := "specific@example.com"
	person := helpers.CreateValidPersonWithEmail(email)

	repo.Create(ctx, person)
	retrieved, err := repo.GetByEmail(ctx, email)

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if retrieved == nil {
		t.Error("expected person to be retrieved")
	}
}

// TestMockPersonRepository_GetAll verifies mock retrieves all persons
func TestMockPersonRepository_GetAll(t *testing.T) {
	ctx := context.Background()
	repo := NewMockPersonRepository()

	people := helpers.BulkCreateValidPeople(5)
	for _, person := range people {
		repo.Create(ctx, person)
	}

	retrieved, err := repo.GetAll(ctx)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(retrieved) != 5 {
		t.Errorf("expected 5 persons, got %d", len(retrieved))
	}
}

// TestMockPersonRepository_Error verifies mock returns errors correctly
func TestMockPersonRepository_Error(t *testing.T) {
	ctx := context.Background()
	repo := NewMockPersonRepository()
	testErr := errors.New("database error")

	repo.SetGetError(testErr)
	_, err := repo.GetByID(ctx, uuid.New())

	if !errors.Is(err, testErr) {
		t.Error("expected mock to return set error")
	}
}

// TestMockSurgeryRepository_Create verifies mock can store surgeries
func TestMockSurgeryRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewMockSurgeryRepository()
	surgery := helpers.CreateValidSurgery()

	err := repo.Create(ctx, surgery)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if repo.CountSync() != 1 {
		t.Error("expected 1 surgery in repository")
	}
}

// TestMockSurgeryRepository_CreateBatch verifies bulk insert used by the importer
func TestMockSurgeryRepository_CreateBatch(t *testing.T) {
	ctx := context.Background()
	repo := NewMockSurgeryRepository()
	hospitalID := uuid.New()
	date := time.Now().UTC()
	surgeries := helpers.BulkCreateValidSurgeries(5, hospitalID, date)

	err := repo.CreateBatch(ctx, surgeries)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if repo.CountSync() != 5 {
		t.Errorf("expected 5 surgeries, got %d", repo.CountSync())
	}
}

// TestMockSurgeryRepository_GetByHospitalAndDate verifies scoped retrieval
func TestMockSurgeryRepository_GetByHospitalAndDate(t *testing.T) {
	ctx := context.Background()
	repo := NewMockSurgeryRepository()
	hospitalID := uuid.New()
	date := time.Now().UTC()

	matching := helpers.CreateValidSurgeryForHospital(hospitalID, date)
	other := helpers.CreateValidSurgery()

	repo.Create(ctx, matching)
	repo.Create(ctx, other)

	retrieved, err := repo.GetByHospitalAndDate(ctx, hospitalID, date)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(retrieved) != 1 {
		t.Errorf("expected 1 surgery for hospital/date, got %d", len(retrieved))
	}
}

// TestMockSurgeryRepository_Update verifies mock can update surgeries
func TestMockSurgeryRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMockSurgeryRepository()
	surgery := helpers.CreateValidSurgery()

	repo.Create(ctx, surgery)
	surgery.Urgency = "EMERGENCY"
	err := repo.Update(ctx, surgery)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	retrieved, _ := repo.GetByID(ctx, surgery.ID)
	if retrieved.Urgency != "EMERGENCY" {
		t.Error("expected surgery to be updated")
	}
}

// TestMockRoomRepository_Create verifies mock can store rooms
func TestMockRoomRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRoomRepository()
	room := helpers.CreateValidRoom()

	err := repo.Create(ctx, room)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if repo.CountSync() != 1 {
		t.Error("expected 1 room in repository")
	}
}

// TestMockRoomRepository_GetByHospitalAndDate verifies scoped retrieval
func TestMockRoomRepository_GetByHospitalAndDate(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRoomRepository()
	hospitalID := uuid.New()
	date := time.Now().UTC()

	matching := helpers.CreateValidRoomForHospital(hospitalID, date)
	other := helpers.CreateValidRoom()

	repo.Create(ctx, matching)
	repo.Create(ctx, other)

	retrieved, err := repo.GetByHospitalAndDate(ctx, hospitalID, date)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(retrieved) != 1 {
		t.Errorf("expected 1 room for hospital/date, got %d", len(retrieved))
	}
}

// TestMockOptimizationRunRepository_Create verifies mock can store runs
func TestMockOptimizationRunRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewMockOptimizationRunRepository()
	run := helpers.CreateValidOptimizationRun()

	err := repo.Create(ctx, run)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if repo.CountSync() != 1 {
		t.Error("expected 1 run in repository")
	}
}

// TestMockOptimizationRunRepository_GetByHospital verifies retrieval by hospital
func TestMockOptimizationRunRepository_GetByHospital(t *testing.T) {
	ctx := context.Background()
	repo := NewMockOptimizationRunRepository()
	hospitalID := uuid.New()

	matching := helpers.NewOptimizationRunBuilder().WithHospitalID(hospitalID).Build()
	other := helpers.CreateValidOptimizationRun()

	repo.Create(ctx, matching)
	repo.Create(ctx, other)

	retrieved, err := repo.GetByHospital(ctx, hospitalID)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(retrieved) != 1 {
		t.Errorf("expected 1 run for hospital, got %d", len(retrieved))
	}
}

// TestMockOptimizationRunRepository_Update verifies mock can update runs
func TestMockOptimizationRunRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMockOptimizationRunRepository()
	run := helpers.CreateValidOptimizationRun()

	repo.Create(ctx, run)

	run.MarkStarted()
	err := repo.Update(ctx, run)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	retrieved, _ := repo.GetByID(ctx, run.ID)
	if retrieved.Status != string(entity.RunStatusRunning) {
		t.Error("expected run to be updated")
	}
}

// TestMockValidationService_Validate verifies mock can validate
func TestMockValidationService_Validate(t *testing.T) {
	ctx := context.Background()
	service := NewMockValidationService()
	testInput := "test_input"

	result, err := service.Validate(ctx, testInput)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result == nil {
		t.Error("expected result to be set")
	}
}

// TestMockValidationService_SetNextError verifies mock returns errors
func TestMockValidationService_SetNextError(t *testing.T) {
	ctx := context.Background()
	service := NewMockValidationService()
	testErr := errors.New("validation error")

	service.SetNextError(testErr)
	_, err := service.Validate(ctx, "test")

	if !errors.Is(err, testErr) {
		t.Error("expected mock to return set error")
	}
}

// TestMockValidationService_CallTracking verifies mock tracks calls
func TestMockValidationService_CallTracking(t *testing.T) {
	ctx := context.Background()
	service := NewMockValidationService()

	service.Validate(ctx, "input1")
	service.Validate(ctx, "input2")
	service.Validate(ctx, "input3")

	if service.GetCallCount() != 3 {
		t.Error("expected 3 calls to be tracked")
	}

	if service.GetLastInput() != "input3" {
		t.Error("expected last input to be tracked")
	}
}

// TestMockValidationService_Reset verifies mock can be reset
func TestMockValidationService_Reset(t *testing.T) {
	ctx := context.Background()
	service := NewMockValidationService()

	service.Validate(ctx, "test")
	if service.GetCallCount() != 1 {
		t.Error("expected call to be tracked")
	}

	service.Reset()
	if service.GetCallCount() != 0 {
		t.Error("expected call count to be reset")
	}
	if service.GetLastInput() != "" {
		t.Error("expected last input to be reset")
	}
}

// TestMockValidationService_SetNextResult verifies mock returns custom results
func TestMockValidationService_SetNextResult(t *testing.T) {
	ctx := context.Background()
	service := NewMockValidationService()

	customResult := validation.NewResult().
		AddError("PARSE_ERROR", "Test error")
	service.SetNextResult(customResult)

	result, _ := service.Validate(ctx, "test")
	if !result.HasErrors() {
		t.Error("expected result to have errors")
	}
}

// TestMocks_ConcurrentAccess verifies mocks are thread-safe
func TestMocks_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewMockPersonRepository()

	// Create 10 people concurrently
	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func(idx int) {
			person := helpers.CreateValidPerson()
			done <- repo.Create(ctx, person)
		}(i)
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}

	if repo.CountSync() != 10 {
		t.Errorf("expected 10 people, got %d", repo.CountSync())
	}
}

// TestMocks_Clear verifies mocks can be cleared
func TestMocks_Clear(t *testing.T) {
	ctx := context.Background()
	repo := NewMockPersonRepository()

	people := helpers.BulkCreateValidPeople(5)
	for _, person := range people {
		repo.Create(ctx, person)
	}

	if repo.CountSync() != 5 {
		t.Error("expected 5 people")
	}

	repo.Clear()
	if repo.CountSync() != 0 {
		t.Error("expected 0 people after clear")
	}
}

// BenchmarkMock_PersonRepositoryCreate benchmarks mock create
func BenchmarkMock_PersonRepositoryCreate(b *testing.B) {
	ctx := context.Background()
	repo := NewMockPersonRepository()
	for i := 0; i < b.N; i++ {
		person := helpers.CreateValidPerson()
		repo.Create(ctx, person)
	}
}

// BenchmarkMock_PersonRepositoryGetByID benchmarks mock retrieval
func BenchmarkMock_PersonRepositoryGetByID(b *testing.B) {
	ctx := context.Background()
	repo := NewMockPersonRepository()
	person := helpers.CreateValidPerson()
	repo.Create(ctx, person)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		repo.GetByID(ctx, person.ID)
	}
}
