package optimizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(hour, minute int) time.Time {
	return time.Date(2026, 8, 3, hour, minute, 0, 0, time.UTC)
}

// ============================================================================
// Test Suite: PriceSolution
// ============================================================================

func TestPriceSolution_FirstSurgeryUsesInitialSDST(t *testing.T) {
	rooms := map[RoomID]Room{"OR1": {ID: "OR1", OpeningTime: day(8, 0)}}
	surgeries := map[SurgeryID]Surgery{
		"S1": {ID: "S1", TypeID: "ortho", DurationMinutes: 60},
	}
	sdst := NewSDSTMatrix(map[[2]SurgeryTypeID]int{{InitialTypeID, "ortho"}: 15})

	sol := NewSolution([]RoomID{"OR1"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1"}

	priced, err := PriceSolution(sol, rooms, surgeries, sdst)
	require.NoError(t, err)

	a := priced["S1"]
	assert.Equal(t, day(8, 15), a.Start)
	assert.Equal(t, day(9, 15), a.End)
	assert.Equal(t, 15, a.SDSTApplied, "sds_applied for the first assignment equals sdst(INITIAL, type)")
}

func TestPriceSolution_SubsequentSurgeryUsesPriorType(t *testing.T) {
	rooms := map[RoomID]Room{"OR1": {ID: "OR1", OpeningTime: day(8, 0)}}
	surgeries := map[SurgeryID]Surgery{
		"S1": {ID: "S1", TypeID: "ortho", DurationMinutes: 60},
		"S2": {ID: "S2", TypeID: "cardio", DurationMinutes: 30},
	}
	sdst := NewSDSTMatrix(map[[2]SurgeryTypeID]int{
		{InitialTypeID, "ortho"}: 0,
		{"ortho", "cardio"}:      20,
	})

	sol := NewSolution([]RoomID{"OR1"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1", "S2"}

	priced, err := PriceSolution(sol, rooms, surgeries, sdst)
	require.NoError(t, err)

	assert.Equal(t, day(9, 0), priced["S1"].End)
	assert.Equal(t, day(9, 20), priced["S2"].Start)
	assert.Equal(t, 20, priced["S2"].SDSTApplied)
}

func TestPriceSolution_ClosingTimeViolation(t *testing.T) {
	closing := day(9, 0)
	rooms := map[RoomID]Room{"OR1": {ID: "OR1", OpeningTime: day(8, 0), ClosingTime: &closing}}
	surgeries := map[SurgeryID]Surgery{
		"S1": {ID: "S1", TypeID: "ortho", DurationMinutes: 90},
	}
	sol := NewSolution([]RoomID{"OR1"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1"}

	_, err := PriceSolution(sol, rooms, surgeries, NewSDSTMatrix(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, errTimingInfeasible)
}

func TestPriceSolution_EarliestStartViolation(t *testing.T) {
	earliest := day(10, 0)
	rooms := map[RoomID]Room{"OR1": {ID: "OR1", OpeningTime: day(8, 0)}}
	surgeries := map[SurgeryID]Surgery{
		"S1": {ID: "S1", TypeID: "ortho", DurationMinutes: 30, EarliestStart: &earliest},
	}
	sol := NewSolution([]RoomID{"OR1"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1"}

	_, err := PriceSolution(sol, rooms, surgeries, NewSDSTMatrix(nil))
	require.Error(t, err)
}

func TestPriceSolution_LatestFinishViolation(t *testing.T) {
	latest := day(8, 15)
	rooms := map[RoomID]Room{"OR1": {ID: "OR1", OpeningTime: day(8, 0)}}
	surgeries := map[SurgeryID]Surgery{
		"S1": {ID: "S1", TypeID: "ortho", DurationMinutes: 30, LatestFinish: &latest},
	}
	sol := NewSolution([]RoomID{"OR1"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1"}

	_, err := PriceSolution(sol, rooms, surgeries, NewSDSTMatrix(nil))
	require.Error(t, err)
}

func TestPriceSolution_ExtraIdleDelaysStart(t *testing.T) {
	rooms := map[RoomID]Room{"OR1": {ID: "OR1", OpeningTime: day(8, 0)}}
	surgeries := map[SurgeryID]Surgery{
		"S1": {ID: "S1", TypeID: "ortho", DurationMinutes: 30},
	}
	sol := NewSolution([]RoomID{"OR1"})
	sol.RoomOrder["OR1"] = []SurgeryID{"S1"}
	sol.ExtraIdle["S1"] = 45

	priced, err := PriceSolution(sol, rooms, surgeries, NewSDSTMatrix(nil))
	require.NoError(t, err)
	assert.Equal(t, day(8, 45), priced["S1"].Start, "a shift move delays the start time")
	assert.Equal(t, 0, priced["S1"].SDSTApplied, "sds_applied reports only the SDST lookup, not shift-inserted idle")
}

// ============================================================================
// Test Suite: LocalSDSTCost
// ============================================================================

func TestLocalSDSTCost_TreatsAbsentPredecessorAsInitial(t *testing.T) {
	sdst := NewSDSTMatrix(map[[2]SurgeryTypeID]int{{InitialTypeID, "ortho"}: 10})
	movedType := SurgeryTypeID("ortho")
	cost := LocalSDSTCost(sdst, nil, &movedType, nil)
	assert.Equal(t, 10, cost)
}

func TestLocalSDSTCost_SumsBothLegs(t *testing.T) {
	sdst := NewSDSTMatrix(map[[2]SurgeryTypeID]int{
		{"a", "b"}: 5,
		{"b", "c"}: 7,
	})
	a, b, c := SurgeryTypeID("a"), SurgeryTypeID("b"), SurgeryTypeID("c")
	cost := LocalSDSTCost(sdst, &a, &b, &c)
	assert.Equal(t, 12, cost)
}
