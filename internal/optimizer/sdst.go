package optimizer

import "sort"

// SDSTMatrix answers the total function (from_type, to_type) -> setup
// minutes required by spec.md §3. Missing entries default to 0; the
// internal representation is sparse but Lookup always returns a value.
type SDSTMatrix struct {
	entries map[sdstKey]int
}

type sdstKey struct {
	From SurgeryTypeID
	To   SurgeryTypeID
}

// NewSDSTMatrix builds a matrix from explicit entries, stored as given; the
// matrix is a pure lookup table. Neither it nor the host's SDST loading
// rejects negative minutes.
func NewSDSTMatrix(entries map[[2]SurgeryTypeID]int) *SDSTMatrix {
	m := &SDSTMatrix{entries: make(map[sdstKey]int, len(entries))}
	for k, v := range entries {
		m.entries[sdstKey{From: k[0], To: k[1]}] = v
	}
	return m
}

// Lookup returns the setup minutes required to go from "from" to "to".
// Absent entries default to 0 per spec.md §3.
func (m *SDSTMatrix) Lookup(from, to SurgeryTypeID) int {
	if m == nil {
		return 0
	}
	return m.entries[sdstKey{From: from, To: to}]
}

// Set installs or overwrites one entry, for hosts that build a matrix
// incrementally.
func (m *SDSTMatrix) Set(from, to SurgeryTypeID, minutes int) {
	if m.entries == nil {
		m.entries = make(map[sdstKey]int)
	}
	m.entries[sdstKey{From: from, To: to}] = minutes
}

// sortedEntries returns entries sorted by (from, to) for deterministic
// fingerprinting and for equivalence checks against a legacy "initial setup"
// table (spec.md §9).
func (m *SDSTMatrix) sortedEntries() []sdstEntry {
	out := make([]sdstEntry, 0, len(m.entries))
	for k, v := range m.entries {
		out = append(out, sdstEntry{From: k.From, To: k.To, Minutes: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

type sdstEntry struct {
	From    SurgeryTypeID
	To      SurgeryTypeID
	Minutes int
}

// MergeInitialSetupTable reconciles a legacy "initial setup by type" table
// (keyed only by surgery type) with any INITIAL-sentinel rows already
// present in the matrix. If both representations specify a value for the
// same type and disagree, it returns false (the host should surface this as
// InvalidInput); otherwise the legacy table's entries are merged in.
func (m *SDSTMatrix) MergeInitialSetupTable(initialByType map[SurgeryTypeID]int) bool {
	for typeID, minutes := range initialByType {
		existing, has := m.entries[sdstKey{From: InitialTypeID, To: typeID}]
		if has && existing != minutes {
			return false
		}
		m.Set(InitialTypeID, typeID, minutes)
	}
	return true
}
