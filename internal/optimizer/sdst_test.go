package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSDSTMatrix_Lookup_DefaultsToZero(t *testing.T) {
	m := NewSDSTMatrix(nil)
	assert.Equal(t, 0, m.Lookup("ortho", "cardio"))
}

func TestSDSTMatrix_Lookup_NilReceiverSafe(t *testing.T) {
	var m *SDSTMatrix
	assert.Equal(t, 0, m.Lookup("ortho", "cardio"))
}

func TestSDSTMatrix_SetAndLookup(t *testing.T) {
	m := NewSDSTMatrix(nil)
	m.Set("ortho", "cardio", 45)
	assert.Equal(t, 45, m.Lookup("ortho", "cardio"))
	assert.Equal(t, 0, m.Lookup("cardio", "ortho"), "SDST is directional")
}

func TestSDSTMatrix_SortedEntries_Deterministic(t *testing.T) {
	m := NewSDSTMatrix(map[[2]SurgeryTypeID]int{
		{"b", "a"}: 10,
		{"a", "b"}: 5,
		{"a", "a"}: 1,
	})
	entries := m.sortedEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, sdstEntry{From: "a", To: "a", Minutes: 1}, entries[0])
	assert.Equal(t, sdstEntry{From: "a", To: "b", Minutes: 5}, entries[1])
	assert.Equal(t, sdstEntry{From: "b", To: "a", Minutes: 10}, entries[2])
}

func TestSDSTMatrix_MergeInitialSetupTable_AgreesOrMerges(t *testing.T) {
	m := NewSDSTMatrix(map[[2]SurgeryTypeID]int{{InitialTypeID, "ortho"}: 20})
	ok := m.MergeInitialSetupTable(map[SurgeryTypeID]int{"ortho": 20, "cardio": 30})
	require.True(t, ok)
	assert.Equal(t, 20, m.Lookup(InitialTypeID, "ortho"))
	assert.Equal(t, 30, m.Lookup(InitialTypeID, "cardio"))
}

func TestSDSTMatrix_MergeInitialSetupTable_DisagreementFails(t *testing.T) {
	m := NewSDSTMatrix(map[[2]SurgeryTypeID]int{{InitialTypeID, "ortho"}: 20})
	ok := m.MergeInitialSetupTable(map[SurgeryTypeID]int{"ortho": 99})
	assert.False(t, ok)
}
