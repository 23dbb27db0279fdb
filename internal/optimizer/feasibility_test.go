package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func surgeon(id string) *SurgeonID {
	s := SurgeonID(id)
	return &s
}

// ============================================================================
// Test Suite: CheckFeasibility
// ============================================================================

func TestCheckFeasibility_NoViolations(t *testing.T) {
	sol := NewSolution([]RoomID{"OR1", "OR2"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1"}
	sol.RoomOrder["OR2"] = []SurgeryID{"S2"}
	sol.Assignments["S1"] = Assignment{SurgeryID: "S1", RoomID: "OR1", Start: day(8, 0), End: day(9, 0)}
	sol.Assignments["S2"] = Assignment{SurgeryID: "S2", RoomID: "OR2", Start: day(8, 0), End: day(9, 0)}

	surgeries := map[SurgeryID]Surgery{
		"S1": {ID: "S1", SurgeonID: surgeon("Dr-A")},
		"S2": {ID: "S2", SurgeonID: surgeon("Dr-B")},
	}

	assert.NoError(t, CheckFeasibility(sol, surgeries))
}

func TestCheckFeasibility_DetectsSurgeonOverlapAcrossRooms(t *testing.T) {
	sol := NewSolution([]RoomID{"OR1", "OR2"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1"}
	sol.RoomOrder["OR2"] = []SurgeryID{"S2"}
	sol.Assignments["S1"] = Assignment{SurgeryID: "S1", RoomID: "OR1", Start: day(8, 0), End: day(9, 0)}
	sol.Assignments["S2"] = Assignment{SurgeryID: "S2", RoomID: "OR2", Start: day(8, 30), End: day(9, 30)}

	surgeries := map[SurgeryID]Surgery{
		"S1": {ID: "S1", SurgeonID: surgeon("Dr-A")},
		"S2": {ID: "S2", SurgeonID: surgeon("Dr-A")},
	}

	err := CheckFeasibility(sol, surgeries)
	require.Error(t, err)
	assert.ErrorIs(t, err, errFeasibilityViolation)
}

func TestCheckFeasibility_DetectsEquipmentOverlap(t *testing.T) {
	sol := NewSolution([]RoomID{"OR1", "OR2"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1"}
	sol.RoomOrder["OR2"] = []SurgeryID{"S2"}
	sol.Assignments["S1"] = Assignment{SurgeryID: "S1", RoomID: "OR1", Start: day(8, 0), End: day(9, 0)}
	sol.Assignments["S2"] = Assignment{SurgeryID: "S2", RoomID: "OR2", Start: day(8, 30), End: day(9, 30)}

	surgeries := map[SurgeryID]Surgery{
		"S1": {ID: "S1", RequiredEquipment: []EquipmentID{"c-arm"}},
		"S2": {ID: "S2", RequiredEquipment: []EquipmentID{"c-arm"}},
	}

	err := CheckFeasibility(sol, surgeries)
	require.Error(t, err)
}

func TestCheckFeasibility_DetectsWithinRoomOrderingViolation(t *testing.T) {
	sol := NewSolution([]RoomID{"OR1"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1", "S2"}
	sol.Assignments["S1"] = Assignment{SurgeryID: "S1", RoomID: "OR1", Start: day(8, 0), End: day(9, 0)}
	sol.Assignments["S2"] = Assignment{SurgeryID: "S2", RoomID: "OR1", Start: day(8, 30), End: day(9, 30)}

	err := CheckFeasibility(sol, map[SurgeryID]Surgery{"S1": {ID: "S1"}, "S2": {ID: "S2"}})
	require.Error(t, err)
}

func TestCheckFeasibility_NoSharedSurgeonOrEquipment_Passes(t *testing.T) {
	sol := NewSolution([]RoomID{"OR1", "OR2"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1"}
	sol.RoomOrder["OR2"] = []SurgeryID{"S2"}
	sol.Assignments["S1"] = Assignment{SurgeryID: "S1", RoomID: "OR1", Start: day(8, 0), End: day(9, 0)}
	sol.Assignments["S2"] = Assignment{SurgeryID: "S2", RoomID: "OR2", Start: day(8, 0), End: day(9, 0)}

	surgeries := map[SurgeryID]Surgery{
		"S1": {ID: "S1", RequiredEquipment: []EquipmentID{"c-arm"}},
		"S2": {ID: "S2", RequiredEquipment: []EquipmentID{"laser"}},
	}
	assert.NoError(t, CheckFeasibility(sol, surgeries))
}
