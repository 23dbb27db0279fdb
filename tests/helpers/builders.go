package helpers

import (
	"time"

	"github.com/google/uuid"

	"github.com/schedcu/orsched/internal/entity"
)

// PersonBuilder builds Person entities with fluent interface
type PersonBuilder struct {
	id        uuid.UUID
	email     string
	name      string
	specialty entity.SpecialtyType
	active    bool
	aliases   []string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersonBuilder creates a new PersonBuilder
func NewPersonBuilder() *PersonBuilder {
	now := time.Now().UTC()
	return &PersonBuilder{
		id:        uuid.New(),
		email:     "person@example.com",
		name:      "Test Person",
		specialty: entity.SpecialtyBoth,
		active:    true,
		aliases:   []string{},
		createdAt: now,
		updatedAt: now,
	}
}

// Default creates a PersonBuilder with sensible defaults (calls NewPersonBuilder)
func PersonBuilder_Default() *PersonBuilder {
	return NewPersonBuilder()
}

func (pb *PersonBuilder) WithID(id uuid.UUID) *PersonBuilder {
	pb.id = id
	return pb
}

func (pb *PersonBuilder) WithEmail(email string) *PersonBuilder {
	pb.email = email
	return pb
}

func (pb *PersonBuilder) WithName(name string) *PersonBuilder {
	pb.name = name
	return pb
}

func (pb *PersonBuilder) WithSpecialty(specialty entity.SpecialtyType) *PersonBuilder {
	pb.specialty = specialty
	return pb
}

func (pb *PersonBuilder) WithActive(active bool) *PersonBuilder {
	pb.active = active
	return pb
}

func (pb *PersonBuilder) WithAliases(aliases []string) *PersonBuilder {
	pb.aliases = aliases
	return pb
}

func (pb *PersonBuilder) WithCreatedAt(createdAt time.Time) *PersonBuilder {
	pb.createdAt = createdAt
	return pb
}

func (pb *PersonBuilder) WithUpdatedAt(updatedAt time.Time) *PersonBuilder {
	pb.updatedAt = updatedAt
	return pb
}

func (pb *PersonBuilder) WithDeletedAt(deletedAt *time.Time) *PersonBuilder {
	pb.deletedAt = deletedAt
	return pb
}

// Build creates the Person entity
func (pb *PersonBuilder) Build() *entity.Person {
	return &entity.Person{
		ID:        pb.id,
		Email:     pb.email,
		Name:      pb.name,
		Specialty: pb.specialty,
		Active:    pb.active,
		Aliases:   pb.aliases,
		CreatedAt: pb.createdAt,
		UpdatedAt: pb.updatedAt,
		DeletedAt: pb.deletedAt,
	}
}

// SurgeryBuilder builds Surgery entities with fluent interface
type SurgeryBuilder struct {
	id                uuid.UUID
	hospitalID        uuid.UUID
	typeID            string
	durationMinutes   int
	surgeonID         *uuid.UUID
	requiredEquipment []string
	urgency           string
	earliestStart     *time.Time
	latestFinish      *time.Time
	urgencyDeadline   *time.Time
	schedulingDate    time.Time
	createdAt         time.Time
	updatedAt         time.Time
	deletedAt         *time.Time
}

// NewSurgeryBuilder creates a new SurgeryBuilder
func NewSurgeryBuilder() *SurgeryBuilder {
	now := time.Now().UTC()
	return &SurgeryBuilder{
		id:                uuid.New(),
		hospitalID:        uuid.New(),
		typeID:            "ortho",
		durationMinutes:   90,
		requiredEquipment: []string{},
		urgency:           "MEDIUM",
		schedulingDate:    now,
		createdAt:         now,
		updatedAt:         now,
	}
}

// Default creates a SurgeryBuilder with sensible defaults
func SurgeryBuilder_Default() *SurgeryBuilder {
	return NewSurgeryBuilder()
}

func (sb *SurgeryBuilder) WithID(id uuid.UUID) *SurgeryBuilder {
	sb.id = id
	return sb
}

func (sb *SurgeryBuilder) WithHospitalID(hospitalID uuid.UUID) *SurgeryBuilder {
	sb.hospitalID = hospitalID
	return sb
}

func (sb *SurgeryBuilder) WithTypeID(typeID string) *SurgeryBuilder {
	sb.typeID = typeID
	return sb
}

func (sb *SurgeryBuilder) WithDurationMinutes(durationMinutes int) *SurgeryBuilder {
	sb.durationMinutes = durationMinutes
	return sb
}

func (sb *SurgeryBuilder) WithSurgeonID(surgeonID *uuid.UUID) *SurgeryBuilder {
	sb.surgeonID = surgeonID
	return sb
}

func (sb *SurgeryBuilder) WithRequiredEquipment(requiredEquipment []string) *SurgeryBuilder {
	sb.requiredEquipment = requiredEquipment
	return sb
}

func (sb *SurgeryBuilder) WithUrgency(urgency string) *SurgeryBuilder {
	sb.urgency = urgency
	return sb
}

func (sb *SurgeryBuilder) WithEarliestStart(earliestStart *time.Time) *SurgeryBuilder {
	sb.earliestStart = earliestStart
	return sb
}

func (sb *SurgeryBuilder) WithLatestFinish(latestFinish *time.Time) *SurgeryBuilder {
	sb.latestFinish = latestFinish
	return sb
}

func (sb *SurgeryBuilder) WithUrgencyDeadline(urgencyDeadline *time.Time) *SurgeryBuilder {
	sb.urgencyDeadline = urgencyDeadline
	return sb
}

func (sb *SurgeryBuilder) WithSchedulingDate(schedulingDate time.Time) *SurgeryBuilder {
	sb.schedulingDate = schedulingDate
	return sb
}

func (sb *SurgeryBuilder) WithCreatedAt(createdAt time.Time) *SurgeryBuilder {
	sb.createdAt = createdAt
	return sb
}

func (sb *SurgeryBuilder) WithUpdatedAt(updatedAt time.Time) *SurgeryBuilder {
	sb.updatedAt = updatedAt
	return sb
}

func (sb *SurgeryBuilder) WithDeletedAt(deletedAt *time.Time) *SurgeryBuilder {
	sb.deletedAt = deletedAt
	return sb
}

// Build creates the Surgery entity
func (sb *SurgeryBuilder) Build() *entity.Surgery {
	return &entity.Surgery{
		ID:                sb.id,
		HospitalID:        sb.hospitalID,
		TypeID:            sb.typeID,
		DurationMinutes:   sb.durationMinutes,
		SurgeonID:         sb.surgeonID,
		RequiredEquipment: sb.requiredEquipment,
		Urgency:           sb.urgency,
		EarliestStart:     sb.earliestStart,
		LatestFinish:      sb.latestFinish,
		UrgencyDeadline:   sb.urgencyDeadline,
		SchedulingDate:    sb.schedulingDate,
		CreatedAt:         sb.createdAt,
		UpdatedAt:         sb.updatedAt,
		DeletedAt:         sb.deletedAt,
	}
}

// RoomBuilder builds Room entities with fluent interface
type RoomBuilder struct {
	id             uuid.UUID
	hospitalID     uuid.UUID
	name           string
	openingTime    time.Time
	closingTime    *time.Time
	capabilities   []string
	schedulingDate time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewRoomBuilder creates a new RoomBuilder
func NewRoomBuilder() *RoomBuilder {
	now := time.Now().UTC()
	opening := time.Date(now.Year(), now.Month(), now.Day(), 7, 0, 0, 0, now.Location())
	closing := opening.Add(10 * time.Hour)
	return &RoomBuilder{
		id:             uuid.New(),
		hospitalID:     uuid.New(),
		name:           "OR 1",
		openingTime:    opening,
		closingTime:    &closing,
		capabilities:   []string{},
		schedulingDate: now,
		createdAt:      now,
		updatedAt:      now,
	}
}

// Default creates a RoomBuilder with sensible defaults
func RoomBuilder_Default() *RoomBuilder {
	return NewRoomBuilder()
}

func (rb *RoomBuilder) WithID(id uuid.UUID) *RoomBuilder {
	rb.id = id
	return rb
}

func (rb *RoomBuilder) WithHospitalID(hospitalID uuid.UUID) *RoomBuilder {
	rb.hospitalID = hospitalID
	return rb
}

func (rb *RoomBuilder) WithName(name string) *RoomBuilder {
	rb.name = name
	return rb
}

func (rb *RoomBuilder) WithOpeningTime(openingTime time.Time) *RoomBuilder {
	rb.openingTime = openingTime
	return rb
}

func (rb *RoomBuilder) WithClosingTime(closingTime *time.Time) *RoomBuilder {
	rb.closingTime = closingTime
	return rb
}

func (rb *RoomBuilder) WithCapabilities(capabilities []string) *RoomBuilder {
	rb.capabilities = capabilities
	return rb
}

func (rb *RoomBuilder) WithSchedulingDate(schedulingDate time.Time) *RoomBuilder {
	rb.schedulingDate = schedulingDate
	return rb
}

func (rb *RoomBuilder) WithCreatedAt(createdAt time.Time) *RoomBuilder {
	rb.createdAt = createdAt
	return rb
}

func (rb *RoomBuilder) WithUpdatedAt(updatedAt time.Time) *RoomBuilder {
	rb.updatedAt = updatedAt
	return rb
}

// Build creates the Room entity
func (rb *RoomBuilder) Build() *entity.Room {
	return &entity.Room{
		ID:             rb.id,
		HospitalID:     rb.hospitalID,
		Name:           rb.name,
		OpeningTime:    rb.openingTime,
		ClosingTime:    rb.closingTime,
		Capabilities:   rb.capabilities,
		SchedulingDate: rb.schedulingDate,
		CreatedAt:      rb.createdAt,
		UpdatedAt:      rb.updatedAt,
	}
}

// SDSTEntryBuilder builds SDSTEntry entities with fluent interface
type SDSTEntryBuilder struct {
	hospitalID uuid.UUID
	fromType   string
	toType     string
	minutes    int
}

// NewSDSTEntryBuilder creates a new SDSTEntryBuilder
func NewSDSTEntryBuilder() *SDSTEntryBuilder {
	return &SDSTEntryBuilder{
		hospitalID: uuid.New(),
		fromType:   "ortho",
		toType:     "neuro",
		minutes:    30,
	}
}

// Default creates an SDSTEntryBuilder with sensible defaults
func SDSTEntryBuilder_Default() *SDSTEntryBuilder {
	return NewSDSTEntryBuilder()
}

func (eb *SDSTEntryBuilder) WithHospitalID(hospitalID uuid.UUID) *SDSTEntryBuilder {
	eb.hospitalID = hospitalID
	return eb
}

func (eb *SDSTEntryBuilder) WithFromType(fromType string) *SDSTEntryBuilder {
	eb.fromType = fromType
	return eb
}

func (eb *SDSTEntryBuilder) WithToType(toType string) *SDSTEntryBuilder {
	eb.toType = toType
	return eb
}

func (eb *SDSTEntryBuilder) WithMinutes(minutes int) *SDSTEntryBuilder {
	eb.minutes = minutes
	return eb
}

// Build creates the SDSTEntry entity
func (eb *SDSTEntryBuilder) Build() *entity.SDSTEntry {
	return &entity.SDSTEntry{
		HospitalID: eb.hospitalID,
		FromType:   eb.fromType,
		ToType:     eb.toType,
		Minutes:    eb.minutes,
	}
}

// OptimizationRunBuilder builds OptimizationRun entities with fluent interface
type OptimizationRunBuilder struct {
	id             uuid.UUID
	hospitalID     uuid.UUID
	schedulingDate time.Time
	status         entity.RunStatus
	variant        string
	seed           *int64
	parametersJSON string
	resultCost     *float64
	resultJSON     *string
	iterationsRun  int
	errorMessage   *string
	cacheHit       bool
	createdAt      time.Time
	createdBy      uuid.UUID
	startedAt      *time.Time
	completedAt    *time.Time
	deletedAt      *time.Time
	deletedBy      *uuid.UUID
}

// NewOptimizationRunBuilder creates a new OptimizationRunBuilder
func NewOptimizationRunBuilder() *OptimizationRunBuilder {
	now := time.Now().UTC()
	return &OptimizationRunBuilder{
		id:             uuid.New(),
		hospitalID:     uuid.New(),
		schedulingDate: now,
		status:         entity.RunStatusPending,
		variant:        "adaptive",
		parametersJSON: `{"variant":"adaptive"}`,
		createdAt:      now,
		createdBy:      uuid.New(),
	}
}

// Default creates an OptimizationRunBuilder with sensible defaults
func OptimizationRunBuilder_Default() *OptimizationRunBuilder {
	return NewOptimizationRunBuilder()
}

func (rb *OptimizationRunBuilder) WithID(id uuid.UUID) *OptimizationRunBuilder {
	rb.id = id
	return rb
}

func (rb *OptimizationRunBuilder) WithHospitalID(hospitalID uuid.UUID) *OptimizationRunBuilder {
	rb.hospitalID = hospitalID
	return rb
}

func (rb *OptimizationRunBuilder) WithSchedulingDate(schedulingDate time.Time) *OptimizationRunBuilder {
	rb.schedulingDate = schedulingDate
	return rb
}

func (rb *OptimizationRunBuilder) WithStatus(status entity.RunStatus) *OptimizationRunBuilder {
	rb.status = status
	return rb
}

func (rb *OptimizationRunBuilder) WithVariant(variant string) *OptimizationRunBuilder {
	rb.variant = variant
	return rb
}

func (rb *OptimizationRunBuilder) WithSeed(seed *int64) *OptimizationRunBuilder {
	rb.seed = seed
	return rb
}

func (rb *OptimizationRunBuilder) WithParametersJSON(parametersJSON string) *OptimizationRunBuilder {
	rb.parametersJSON = parametersJSON
	return rb
}

func (rb *OptimizationRunBuilder) WithResultCost(resultCost *float64) *OptimizationRunBuilder {
	rb.resultCost = resultCost
	return rb
}

func (rb *OptimizationRunBuilder) WithResultJSON(resultJSON *string) *OptimizationRunBuilder {
	rb.resultJSON = resultJSON
	return rb
}

func (rb *OptimizationRunBuilder) WithIterationsRun(iterationsRun int) *OptimizationRunBuilder {
	rb.iterationsRun = iterationsRun
	return rb
}

func (rb *OptimizationRunBuilder) WithErrorMessage(errorMessage *string) *OptimizationRunBuilder {
	rb.errorMessage = errorMessage
	return rb
}

func (rb *OptimizationRunBuilder) WithCacheHit(cacheHit bool) *OptimizationRunBuilder {
	rb.cacheHit = cacheHit
	return rb
}

func (rb *OptimizationRunBuilder) WithCreatedAt(createdAt time.Time) *OptimizationRunBuilder {
	rb.createdAt = createdAt
	return rb
}

func (rb *OptimizationRunBuilder) WithCreatedBy(createdBy uuid.UUID) *OptimizationRunBuilder {
	rb.createdBy = createdBy
	return rb
}

func (rb *OptimizationRunBuilder) WithStartedAt(startedAt *time.Time) *OptimizationRunBuilder {
	rb.startedAt = startedAt
	return rb
}

func (rb *OptimizationRunBuilder) WithCompletedAt(completedAt *time.Time) *OptimizationRunBuilder {
	rb.completedAt = completedAt
	return rb
}

func (rb *OptimizationRunBuilder) WithDeletedAt(deletedAt *time.Time) *OptimizationRunBuilder {
	rb.deletedAt = deletedAt
	return rb
}

func (rb *OptimizationRunBuilder) WithDeletedBy(deletedBy *uuid.UUID) *OptimizationRunBuilder {
	rb.deletedBy = deletedBy
	return rb
}

// Build creates the OptimizationRun entity
func (rb *OptimizationRunBuilder) Build() *entity.OptimizationRun {
	return &entity.OptimizationRun{
		ID:             rb.id,
		HospitalID:     rb.hospitalID,
		SchedulingDate: rb.schedulingDate,
		Status:         string(rb.status),
		Variant:        rb.variant,
		Seed:           rb.seed,
		ParametersJSON: rb.parametersJSON,
		ResultCost:     rb.resultCost,
		ResultJSON:     rb.resultJSON,
		IterationsRun:  rb.iterationsRun,
		ErrorMessage:   rb.errorMessage,
		CacheHit:       rb.cacheHit,
		CreatedAt:      rb.createdAt,
		CreatedBy:      rb.createdBy,
		StartedAt:      rb.startedAt,
		CompletedAt:    rb.completedAt,
		DeletedAt:      rb.deletedAt,
		DeletedBy:      rb.deletedBy,
	}
}
