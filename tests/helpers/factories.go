package helpers

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
)

// Factory functions create valid entities with sensible defaults

// CreateValidPerson creates a valid Person with all required fields
func CreateValidPerson() *entity.Person {
	return NewPersonBuilder().Build()
}

// CreateValidPersonWithEmail creates a valid Person with a specific email
func CreateValidPersonWithEmail(email string) *entity.Person {
	return NewPersonBuilder().
		WithEmail(email).
		Build()
}

// CreateValidPersonWithSpecialty creates a valid Person with a specific specialty
func CreateValidPersonWithSpecialty(specialty entity.SpecialtyType) *entity.Person {
	return NewPersonBuilder().
		WithSpecialty(specialty).
		Build()
}

// CreateValidPersonInactive creates a valid but inactive Person
func CreateValidPersonInactive() *entity.Person {
	return NewPersonBuilder().
		WithActive(false).
		Build()
}

// CreateValidPersonDeleted creates a valid but deleted Person
func CreateValidPersonDeleted() *entity.Person {
	now := time.Now().UTC()
	return NewPersonBuilder().
		WithDeletedAt(&now).
		Build()
}

// CreateValidSurgery creates a valid Surgery with all required fields
func CreateValidSurgery() *entity.Surgery {
	return NewSurgeryBuilder().Build()
}

// CreateValidSurgeryWithUrgency creates a valid Surgery with a specific urgency level
func CreateValidSurgeryWithUrgency(urgency string) *entity.Surgery {
	return NewSurgeryBuilder().
		WithUrgency(urgency).
		Build()
}

// CreateValidSurgeryWithSurgeon creates a valid Surgery assigned to a surgeon
func CreateValidSurgeryWithSurgeon(surgeonID uuid.UUID) *entity.Surgery {
	return NewSurgeryBuilder().
		WithSurgeonID(&surgeonID).
		Build()
}

// CreateValidSurgeryWithDuration creates a valid Surgery with a specific duration
func CreateValidSurgeryWithDuration(minutes int) *entity.Surgery {
	return NewSurgeryBuilder().
		WithDurationMinutes(minutes).
		Build()
}

// CreateValidSurgeryWithEquipment creates a valid Surgery requiring specific equipment
func CreateValidSurgeryWithEquipment(equipment []string) *entity.Surgery {
	return NewSurgeryBuilder().
		WithRequiredEquipment(equipment).
		Build()
}

// CreateValidSurgeryForHospital creates a valid Surgery scoped to a hospital and date
func CreateValidSurgeryForHospital(hospitalID uuid.UUID, schedulingDate time.Time) *entity.Surgery {
	return NewSurgeryBuilder().
		WithHospitalID(hospitalID).
		WithSchedulingDate(schedulingDate).
		Build()
}

// CreateValidSurgeryDeleted creates a valid but deleted Surgery
func CreateValidSurgeryDeleted() *entity.Surgery {
	now := time.Now().UTC()
	return NewSurgeryBuilder().
		WithDeletedAt(&now).
		Build()
}

// CreateValidRoom creates a valid Room with all required fields
func CreateValidRoom() *entity.Room {
	return NewRoomBuilder().Build()
}

// CreateValidRoomWithName creates a valid Room with a specific name
func CreateValidRoomWithName(name string) *entity.Room {
	return NewRoomBuilder().
		WithName(name).
		Build()
}

// CreateValidRoomWithCapabilities creates a valid Room with specific capabilities
func CreateValidRoomWithCapabilities(capabilities []string) *entity.Room {
	return NewRoomBuilder().
		WithCapabilities(capabilities).
		Build()
}

// CreateValidRoomForHospital creates a valid Room scoped to a hospital and date
func CreateValidRoomForHospital(hospitalID uuid.UUID, schedulingDate time.Time) *entity.Room {
	return NewRoomBuilder().
		WithHospitalID(hospitalID).
		WithSchedulingDate(schedulingDate).
		Build()
}

// CreateValidSurgeryType creates a valid SurgeryType entry
func CreateValidSurgeryType(hospitalID uuid.UUID, code, label string) *entity.SurgeryType {
	return &entity.SurgeryType{
		ID:         uuid.New(),
		HospitalID: hospitalID,
		Code:       code,
		Label:      label,
	}
}

// CreateValidSDSTEntry creates a valid SDSTEntry with default setup time
func CreateValidSDSTEntry() *entity.SDSTEntry {
	return NewSDSTEntryBuilder().Build()
}

// CreateValidSDSTEntryForHospital creates an SDSTEntry scoped to a hospital between two types
func CreateValidSDSTEntryForHospital(hospitalID uuid.UUID, fromType, toType string, minutes int) *entity.SDSTEntry {
	return NewSDSTEntryBuilder().
		WithHospitalID(hospitalID).
		WithFromType(fromType).
		WithToType(toType).
		WithMinutes(minutes).
		Build()
}

// CreateValidOptimizationRun creates a valid OptimizationRun in Pending status
func CreateValidOptimizationRun() *entity.OptimizationRun {
	return NewOptimizationRunBuilder().Build()
}

// CreateValidOptimizationRunRunning creates a valid OptimizationRun in Running status
func CreateValidOptimizationRunRunning() *entity.OptimizationRun {
	startedAt := time.Now().UTC()
	return NewOptimizationRunBuilder().
		WithStatus(entity.RunStatusRunning).
		WithStartedAt(&startedAt).
		Build()
}

// CreateValidOptimizationRunCompleted creates a valid completed OptimizationRun with a result
func CreateValidOptimizationRunCompleted(cost float64) *entity.OptimizationRun {
	startedAt := time.Now().UTC().Add(-time.Minute)
	completedAt := time.Now().UTC()
	resultJSON := fmt.Sprintf(`{"cost":%f}`, cost)
	return NewOptimizationRunBuilder().
		WithStatus(entity.RunStatusCompleted).
		WithStartedAt(&startedAt).
		WithCompletedAt(&completedAt).
		WithResultCost(&cost).
		WithResultJSON(&resultJSON).
		WithIterationsRun(1000).
		Build()
}

// CreateValidOptimizationRunFailed creates a valid failed OptimizationRun with an error message
func CreateValidOptimizationRunFailed(errMsg string) *entity.OptimizationRun {
	completedAt := time.Now().UTC()
	return NewOptimizationRunBuilder().
		WithStatus(entity.RunStatusFailed).
		WithCompletedAt(&completedAt).
		WithErrorMessage(&errMsg).
		Build()
}

// CreateValidOptimizationRunDeleted creates a valid but deleted OptimizationRun
func CreateValidOptimizationRunDeleted() *entity.OptimizationRun {
	deleter := uuid.New()
	return NewOptimizationRunBuilder().
		WithDeletedBy(&deleter).
		Build()
}

// BulkCreateValidPeople creates multiple valid Person entities
func BulkCreateValidPeople(count int) []*entity.Person {
	people := make([]*entity.Person, count)
	for i := 0; i < count; i++ {
		email := fmt.Sprintf("person%d@example.com", i+1)
		people[i] = CreateValidPersonWithEmail(email)
	}
	return people
}

// BulkCreateValidSurgeries creates multiple valid Surgery entities for a hospital/date
func BulkCreateValidSurgeries(count int, hospitalID uuid.UUID, schedulingDate time.Time) []*entity.Surgery {
	urgencies := []string{"LOW", "MEDIUM", "HIGH", "EMERGENCY"}
	surgeries := make([]*entity.Surgery, count)
	for i := 0; i < count; i++ {
		surgeries[i] = NewSurgeryBuilder().
			WithHospitalID(hospitalID).
			WithSchedulingDate(schedulingDate).
			WithUrgency(urgencies[i%len(urgencies)]).
			Build()
	}
	return surgeries
}

// BulkCreateValidRooms creates multiple valid Room entities for a hospital/date
func BulkCreateValidRooms(count int, hospitalID uuid.UUID, schedulingDate time.Time) []*entity.Room {
	rooms := make([]*entity.Room, count)
	for i := 0; i < count; i++ {
		rooms[i] = NewRoomBuilder().
			WithHospitalID(hospitalID).
			WithSchedulingDate(schedulingDate).
			WithName(fmt.Sprintf("OR %d", i+1)).
			Build()
	}
	return rooms
}

// CreateValidHospital creates a valid Hospital entity
func CreateValidHospital() *entity.Hospital {
	return &entity.Hospital{
		ID:        uuid.New(),
		Name:      "Test Hospital",
		Code:      "TESTHSP",
		Location:  "Test City, State",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// CreateValidHospitalWithCode creates a Hospital with a specific code
func CreateValidHospitalWithCode(code string) *entity.Hospital {
	return &entity.Hospital{
		ID:        uuid.New(),
		Name:      fmt.Sprintf("Hospital %s", code),
		Code:      code,
		Location:  "Test City, State",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// CreateValidUser creates a valid User with VIEWER role
func CreateValidUser() *entity.User {
	now := time.Now().UTC()
	return &entity.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		Name:         "Test User",
		PasswordHash: "hashed_password_here",
		Role:         entity.UserRoleViewer,
		HospitalID:   nil, // System admin (no hospital)
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateValidUserAdmin creates a valid User with ADMIN role
func CreateValidUserAdmin() *entity.User {
	now := time.Now().UTC()
	return &entity.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		Name:         "Admin User",
		PasswordHash: "hashed_password_here",
		Role:         entity.UserRoleAdmin,
		HospitalID:   nil,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateValidUserScheduler creates a valid User with SCHEDULER role
func CreateValidUserScheduler() *entity.User {
	now := time.Now().UTC()
	hospitalID := uuid.New()
	return &entity.User{
		ID:           uuid.New(),
		Email:        "scheduler@example.com",
		Name:         "Scheduler User",
		PasswordHash: "hashed_password_here",
		Role:         entity.UserRoleScheduler,
		HospitalID:   &hospitalID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateValidAuditLog creates a valid AuditLog entry
func CreateValidAuditLog() *entity.AuditLog {
	return &entity.AuditLog{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Action:    "SUBMIT_OPTIMIZATION_RUN",
		Resource:  fmt.Sprintf("OptimizationRun#%s", uuid.New().String()),
		OldValues: `{"status":"Pending"}`,
		NewValues: `{"status":"Running"}`,
		Timestamp: time.Now().UTC(),
		IPAddress: "192.168.1.1",
	}
}

// CreateValidJobQueue creates a valid JobQueue entry
func CreateValidJobQueue() *entity.JobQueue {
	now := time.Now().UTC()
	return &entity.JobQueue{
		ID:          uuid.New(),
		JobType:     "OPTIMIZE_RUN",
		Payload:     make(map[string]interface{}),
		Status:      entity.JobQueueStatusPending,
		Result:      make(map[string]interface{}),
		RetryCount:  0,
		MaxRetries:  3,
		CreatedAt:   now,
		StartedAt:   nil,
		CompletedAt: nil,
	}
}
