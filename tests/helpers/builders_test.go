package helpers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schedcu/orsched/internal/entity"
)

// TestPersonBuilder_Default verifies PersonBuilder creates valid entities with defaults
func TestPersonBuilder_Default(t *testing.T) {
	person := NewPersonBuilder().Build()

	if person.ID == uuid.Nil {
		t.Error("expected person ID to be set")
	}
	if person.Email != "person@example.com" {
		t.Error("expected default email")
	}
	if person.Name != "Test Person" {
		t.Error("expected default name")
	}
	if person.Specialty != entity.SpecialtyBoth {
		t.Error("expected specialty to be BOTH")
	}
	if !person.Active {
		t.Error("expected person to be active")
	}
	if person.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

// TestPersonBuilder_WithMethods verifies builder methods chain and set values
func TestPersonBuilder_WithMethods(t *testing.T) {
	testID := uuid.New()
	testEmail := "custom@example.com"
	testName := "Custom Person"
	testSpecialty := entity.SpecialtyBodyOnly

	person := NewPersonBuilder().
		WithID(testID).
		WithEmail(testEmail).
		WithName(testName).
		WithSpecialty(testSpecialty).
		WithActive(false).
		Build()

	if person.ID != testID {
		t.Error("expected custom ID")
	}
	if person.Email != testEmail {
		t.Error("expected custom email")
	}
	if person.Name != testName {
		t.Error("expected custom name")
	}
	if person.Specialty != testSpecialty {
		t.Error("expected custom specialty")
	}
	if person.Active {
		t.Error("expected person to be inactive")
	}
}

// TestPersonBuilder_SoftDelete verifies soft delete tracking
func TestPersonBuilder_SoftDelete(t *testing.T) {
	now := time.Now().UTC()
	person := NewPersonBuilder().
		WithDeletedAt(&now).
		Build()

	if person.DeletedAt == nil {
		t.Error("expected DeletedAt to be set")
	}
}

// TestSurgeryBuilder_Default verifies SurgeryBuilder creates valid entities with defaults
func TestSurgeryBuilder_Default(t *testing.T) {
	surgery := NewSurgeryBuilder().Build()

	if surgery.ID == uuid.Nil {
		t.Error("expected surgery ID to be set")
	}
	if surgery.HospitalID == uuid.Nil {
		t.Error("expected hospital ID to be set")
	}
	if surgery.TypeID != "ortho" {
		t.Error("expected default type ID")
	}
	if surgery.DurationMinutes != 90 {
		t.Error("expected default duration")
	}
	if surgery.Urgency != "MEDIUM" {
		t.Error("expected default urgency")
	}
}

// TestSurgeryBuilder_AllUrgencyLevels verifies all urgency options work
func TestSurgeryBuilder_AllUrgencyLevels(t *testing.T) {
	urgencies := []string{"LOW", "MEDIUM", "HIGH", "EMERGENCY"}

	for _, urgency := range urgencies {
		surgery := NewSurgeryBuilder().
			WithUrgency(urgency).
			Build()

		if surgery.Urgency != urgency {
			t.Errorf("expected urgency %s, got %s", urgency, surgery.Urgency)
		}
	}
}

// TestSurgeryBuilder_WithSurgeon verifies surgeon assignment
func TestSurgeryBuilder_WithSurgeon(t *testing.T) {
	surgeonID := uuid.New()
	surgery := NewSurgeryBuilder().
		WithSurgeonID(&surgeonID).
		WithRequiredEquipment([]string{"fluoroscopy", "tourniquet"}).
		Build()

	if surgery.SurgeonID == nil || *surgery.SurgeonID != surgeonID {
		t.Error("expected surgeon ID to be set")
	}
	if len(surgery.RequiredEquipment) != 2 {
		t.Error("expected two pieces of equipment")
	}
}

// TestSurgeryBuilder_SoftDelete verifies soft delete tracking
func TestSurgeryBuilder_SoftDelete(t *testing.T) {
	now := time.Now().UTC()
	surgery := NewSurgeryBuilder().WithDeletedAt(&now).Build()

	if surgery.DeletedAt == nil {
		t.Error("expected DeletedAt to be set")
	}
}

// TestRoomBuilder_Default verifies RoomBuilder creates valid entities with defaults
func TestRoomBuilder_Default(t *testing.T) {
	room := NewRoomBuilder().Build()

	if room.ID == uuid.Nil {
		t.Error("expected room ID to be set")
	}
	if room.HospitalID == uuid.Nil {
		t.Error("expected hospital ID to be set")
	}
	if room.Name != "OR 1" {
		t.Error("expected default room name")
	}
	if room.ClosingTime == nil {
		t.Error("expected closing time to be set")
	}
	if !room.ClosingTime.After(room.OpeningTime) {
		t.Error("expected closing time to be after opening time")
	}
}

// TestRoomBuilder_WithCapabilities verifies capability configuration
func TestRoomBuilder_WithCapabilities(t *testing.T) {
	room := NewRoomBuilder().
		WithCapabilities([]string{"robotic", "fluoroscopy"}).
		Build()

	if len(room.Capabilities) != 2 {
		t.Error("expected two capabilities")
	}
}

// TestSDSTEntryBuilder_Default verifies SDSTEntryBuilder creates valid entities
func TestSDSTEntryBuilder_Default(t *testing.T) {
	entry := NewSDSTEntryBuilder().Build()

	if entry.HospitalID == uuid.Nil {
		t.Error("expected hospital ID to be set")
	}
	if entry.FromType == "" || entry.ToType == "" {
		t.Error("expected from/to types to be set")
	}
	if entry.Minutes <= 0 {
		t.Error("expected minutes to be positive")
	}
}

// TestSDSTEntryBuilder_WithMethods verifies chained setters
func TestSDSTEntryBuilder_WithMethods(t *testing.T) {
	hospitalID := uuid.New()
	entry := NewSDSTEntryBuilder().
		WithHospitalID(hospitalID).
		WithFromType("cardiac").
		WithToType("ortho").
		WithMinutes(60).
		Build()

	if entry.HospitalID != hospitalID {
		t.Error("expected custom hospital ID")
	}
	if entry.FromType != "cardiac" || entry.ToType != "ortho" {
		t.Error("expected custom from/to types")
	}
	if entry.Minutes != 60 {
		t.Error("expected custom minutes")
	}
}

// TestOptimizationRunBuilder_Default verifies OptimizationRunBuilder creates valid entities
func TestOptimizationRunBuilder_Default(t *testing.T) {
	run := NewOptimizationRunBuilder().Build()

	if run.ID == uuid.Nil {
		t.Error("expected run ID to be set")
	}
	if run.HospitalID == uuid.Nil {
		t.Error("expected hospital ID to be set")
	}
	if run.Status != string(entity.RunStatusPending) {
		t.Error("expected default status to be Pending")
	}
	if run.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

// TestOptimizationRunBuilder_AllStatuses verifies all status options work
func TestOptimizationRunBuilder_AllStatuses(t *testing.T) {
	statuses := []entity.RunStatus{
		entity.RunStatusPending,
		entity.RunStatusRunning,
		entity.RunStatusCompleted,
		entity.RunStatusFailed,
		entity.RunStatusCancelled,
		entity.RunStatusTimedOut,
	}

	for _, status := range statuses {
		run := NewOptimizationRunBuilder().
			WithStatus(status).
			Build()

		if run.Status != string(status) {
			t.Errorf("expected status %s, got %s", status, run.Status)
		}
	}
}

// TestOptimizationRunBuilder_WithResult verifies result fields
func TestOptimizationRunBuilder_WithResult(t *testing.T) {
	cost := 42.5
	resultJSON := `{"cost":42.5}`
	run := NewOptimizationRunBuilder().
		WithStatus(entity.RunStatusCompleted).
		WithResultCost(&cost).
		WithResultJSON(&resultJSON).
		WithIterationsRun(500).
		Build()

	if run.ResultCost == nil || *run.ResultCost != cost {
		t.Error("expected result cost to be set")
	}
	if run.IterationsRun != 500 {
		t.Error("expected iterations run to be set")
	}
}

// TestOptimizationRunBuilder_SoftDelete verifies soft delete tracking
func TestOptimizationRunBuilder_SoftDelete(t *testing.T) {
	deleter := uuid.New()
	run := NewOptimizationRunBuilder().WithDeletedBy(&deleter).Build()

	if run.DeletedBy == nil || *run.DeletedBy != deleter {
		t.Error("expected DeletedBy to be set")
	}
}

// TestBuilders_Immutability verifies builder fields don't affect other builders
func TestBuilders_Immutability(t *testing.T) {
	builder1 := NewPersonBuilder().WithEmail("person1@example.com")
	person1 := builder1.Build()

	builder2 := NewPersonBuilder().WithEmail("person2@example.com")
	person2 := builder2.Build()

	if person1.Email == person2.Email {
		t.Error("expected builders to be independent")
	}

	// Verify rebuilding with same builder uses last state
	person1b := builder1.Build()
	if person1b.Email != "person1@example.com" {
		t.Error("expected builder to remember state")
	}
}

// TestBuilders_ValidEntity_Person verifies Person entities are valid
func TestBuilders_ValidEntity_Person(t *testing.T) {
	person := NewPersonBuilder().Build()

	if person.Email == "" {
		t.Error("email is required")
	}
	if person.Name == "" {
		t.Error("name is required")
	}
	if person.ID == uuid.Nil {
		t.Error("ID is required")
	}
	if person.Specialty != entity.SpecialtyBoth &&
		person.Specialty != entity.SpecialtyBodyOnly &&
		person.Specialty != entity.SpecialtyNeuroOnly {
		t.Error("specialty must be valid enum value")
	}
}

// TestBuilders_ValidEntity_Surgery verifies Surgery entities are valid
func TestBuilders_ValidEntity_Surgery(t *testing.T) {
	surgery := NewSurgeryBuilder().Build()

	if surgery.ID == uuid.Nil {
		t.Error("ID is required")
	}
	if surgery.HospitalID == uuid.Nil {
		t.Error("hospital ID is required")
	}
	if surgery.DurationMinutes <= 0 {
		t.Error("duration must be positive")
	}
}

// TestBuilders_ValidEntity_Room verifies Room entities are valid
func TestBuilders_ValidEntity_Room(t *testing.T) {
	room := NewRoomBuilder().Build()

	if room.ID == uuid.Nil {
		t.Error("ID is required")
	}
	if room.HospitalID == uuid.Nil {
		t.Error("hospital ID is required")
	}
	if room.ClosingTime != nil && room.ClosingTime.Before(room.OpeningTime) {
		t.Error("closing time must be after opening time")
	}
}

// TestBuilders_ValidEntity_OptimizationRun verifies OptimizationRun entities are valid
func TestBuilders_ValidEntity_OptimizationRun(t *testing.T) {
	run := NewOptimizationRunBuilder().Build()

	if run.ID == uuid.Nil {
		t.Error("ID is required")
	}
	if run.HospitalID == uuid.Nil {
		t.Error("hospital ID is required")
	}
	if run.CreatedAt.IsZero() {
		t.Error("created at is required")
	}
}

// BenchmarkPersonBuilder benchmarks Person entity creation
func BenchmarkPersonBuilder(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NewPersonBuilder().Build()
	}
}

// BenchmarkSurgeryBuilder benchmarks Surgery entity creation
func BenchmarkSurgeryBuilder(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NewSurgeryBuilder().Build()
	}
}

// BenchmarkRoomBuilder benchmarks Room entity creation
func BenchmarkRoomBuilder(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NewRoomBuilder().Build()
	}
}

// BenchmarkOptimizationRunBuilder benchmarks OptimizationRun entity creation
func BenchmarkOptimizationRunBuilder(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NewOptimizationRunBuilder().Build()
	}
}

// BenchmarkComplexBuilder benchmarks creation with multiple With* calls
func BenchmarkComplexBuilder(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NewOptimizationRunBuilder().
			WithStatus(entity.RunStatusCompleted).
			WithIterationsRun(1000).
			WithCacheHit(true).
			Build()
	}
}
