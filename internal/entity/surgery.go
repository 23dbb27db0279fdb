package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/schedcu/orsched/internal/optimizer"
)

// Surgery is the persisted, host-side record of a pending case. It carries
// the same fields the optimizer core needs plus the bookkeeping (hospital,
// timestamps) the core has no business knowing about.
type Surgery struct {
	ID                uuid.UUID
	HospitalID        uuid.UUID
	TypeID            string
	DurationMinutes   int
	SurgeonID         *uuid.UUID
	RequiredEquipment []string
	Urgency           string
	EarliestStart     *time.Time
	LatestFinish      *time.Time
	UrgencyDeadline   *time.Time
	SchedulingDate    time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// Room is the persisted, host-side record of an operating room's daily
// availability and equipment capabilities.
type Room struct {
	ID             uuid.UUID
	HospitalID     uuid.UUID
	Name           string
	OpeningTime    time.Time
	ClosingTime    *time.Time
	Capabilities   []string
	SchedulingDate time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SurgeryType labels a type participating in the SDST matrix.
type SurgeryType struct {
	ID         uuid.UUID
	HospitalID uuid.UUID
	Code       string
	Label      string
}

// SDSTEntry is one persisted row of a hospital's setup-time matrix.
type SDSTEntry struct {
	HospitalID uuid.UUID
	FromType   string
	ToType     string
	Minutes    int
}

// urgencyLevels maps the host's string urgency to the optimizer's enum, in
// ascending order; unknown strings default to Low.
var urgencyLevels = map[string]optimizer.Urgency{
	"LOW":       optimizer.UrgencyLow,
	"MEDIUM":    optimizer.UrgencyMedium,
	"HIGH":      optimizer.UrgencyHigh,
	"EMERGENCY": optimizer.UrgencyEmergency,
}

// ToOptimizerSurgery converts a persisted Surgery into the optimizer's
// value type. The optimizer package never imports entity (it must remain
// host-agnostic per spec.md's Non-goals), so this conversion lives here.
func (s Surgery) ToOptimizerSurgery() optimizer.Surgery {
	equipment := make([]optimizer.EquipmentID, len(s.RequiredEquipment))
	for i, e := range s.RequiredEquipment {
		equipment[i] = optimizer.EquipmentID(e)
	}
	var surgeonID *optimizer.SurgeonID
	if s.SurgeonID != nil {
		id := optimizer.SurgeonID(s.SurgeonID.String())
		surgeonID = &id
	}
	return optimizer.Surgery{
		ID:                optimizer.SurgeryID(s.ID.String()),
		TypeID:            optimizer.SurgeryTypeID(s.TypeID),
		DurationMinutes:   s.DurationMinutes,
		SurgeonID:         surgeonID,
		RequiredEquipment: equipment,
		Urgency:           urgencyLevels[s.Urgency],
		EarliestStart:     s.EarliestStart,
		LatestFinish:      s.LatestFinish,
		UrgencyDeadline:   s.UrgencyDeadline,
	}
}

// ToOptimizerRoom converts a persisted Room into the optimizer's value type.
func (r Room) ToOptimizerRoom() optimizer.Room {
	caps := make(map[string]bool, len(r.Capabilities))
	for _, c := range r.Capabilities {
		caps[c] = true
	}
	return optimizer.Room{
		ID:           optimizer.RoomID(r.ID.String()),
		OpeningTime:  r.OpeningTime,
		ClosingTime:  r.ClosingTime,
		Capabilities: caps,
	}
}

// BuildSDSTMatrix assembles an optimizer.SDSTMatrix from a hospital's
// persisted setup-time rows.
func BuildSDSTMatrix(entries []*SDSTEntry) *optimizer.SDSTMatrix {
	m := make(map[[2]optimizer.SurgeryTypeID]int, len(entries))
	for _, e := range entries {
		m[[2]optimizer.SurgeryTypeID{optimizer.SurgeryTypeID(e.FromType), optimizer.SurgeryTypeID(e.ToType)}] = e.Minutes
	}
	return optimizer.NewSDSTMatrix(m)
}
