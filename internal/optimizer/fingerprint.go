package optimizer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"time"
)

// Fingerprint computes the cache key of spec.md §4.10: a content hash over
// the canonicalized input and parameters. Canonicalization sorts every
// collection the host supplied as a map so that two logically identical
// inputs built in different iteration order hash identically.
func Fingerprint(in Input, p Parameters) string {
	h := sha256.New()
	w := func(s string) { h.Write([]byte(s)); h.Write([]byte{0}) }

	w(in.SchedulingDate.UTC().Format("2006-01-02"))

	surgeryIDs := make([]SurgeryID, 0, len(in.Surgeries))
	for id := range in.Surgeries {
		surgeryIDs = append(surgeryIDs, id)
	}
	sort.Slice(surgeryIDs, func(i, j int) bool { return surgeryIDs[i] < surgeryIDs[j] })
	for _, id := range surgeryIDs {
		s := in.Surgeries[id]
		surgeon := ""
		if s.SurgeonID != nil {
			surgeon = string(*s.SurgeonID)
		}
		equipment := append([]EquipmentID(nil), s.RequiredEquipment...)
		sort.Slice(equipment, func(i, j int) bool { return equipment[i] < equipment[j] })
		w(string(s.ID))
		w(string(s.TypeID))
		w(strconv.Itoa(s.DurationMinutes))
		w(surgeon)
		for _, e := range equipment {
			w(string(e))
		}
		w(strconv.Itoa(int(s.Urgency)))
		w(formatTimePtr(s.EarliestStart))
		w(formatTimePtr(s.LatestFinish))
		w(formatTimePtr(s.UrgencyDeadline))
	}

	roomIDs := make([]RoomID, 0, len(in.Rooms))
	for id := range in.Rooms {
		roomIDs = append(roomIDs, id)
	}
	sort.Slice(roomIDs, func(i, j int) bool { return roomIDs[i] < roomIDs[j] })
	for _, id := range roomIDs {
		r := in.Rooms[id]
		w(string(r.ID))
		w(r.OpeningTime.UTC().Format("15:04"))
		if r.ClosingTime != nil {
			w(r.ClosingTime.UTC().Format("15:04"))
		} else {
			w("")
		}
		caps := make([]string, 0, len(r.Capabilities))
		for tag, on := range r.Capabilities {
			if on {
				caps = append(caps, tag)
			}
		}
		sort.Strings(caps)
		for _, c := range caps {
			w(c)
		}
	}

	if in.SDST != nil {
		for _, e := range in.SDST.sortedEntries() {
			w(string(e.From))
			w(string(e.To))
			w(strconv.Itoa(e.Minutes))
		}
	}

	prefIDs := make([]SurgeryID, 0, len(in.Preferences))
	for id := range in.Preferences {
		prefIDs = append(prefIDs, id)
	}
	sort.Slice(prefIDs, func(i, j int) bool { return prefIDs[i] < prefIDs[j] })
	for _, id := range prefIDs {
		w(string(id))
		w(string(in.Preferences[id]))
	}

	w(string(p.Variant))
	w(fmt.Sprintf("%d", p.MaxIterations))
	w(fmt.Sprintf("%d", p.TabuTenure))
	w(fmt.Sprintf("%d", p.MinTabuTenure))
	w(fmt.Sprintf("%d", p.MaxTabuTenure))
	w(fmt.Sprintf("%g", p.TenureAdaptationFactor))
	w(fmt.Sprintf("%d", p.MaxNoImprovement))
	w(p.TimeLimit.String())
	w(fmt.Sprintf("%d", p.MaxNeighbors))
	w(fmt.Sprintf("%d", p.MaxShiftMinutes))
	w(fmt.Sprintf("%d,%d,%d,%d,%d,%d", p.Weights.Makespan, p.Weights.TotalSDST, p.Weights.IdleTime, p.Weights.Overtime, p.Weights.UrgencyViolation, p.Weights.SurgeonPreference))
	w(fmt.Sprintf("%d", p.DiversificationThreshold))
	w(fmt.Sprintf("%g", p.DiversificationStrength))
	w(fmt.Sprintf("%d", p.ReactiveWindow))
	w(fmt.Sprintf("%d", p.DeadendLimit))
	if p.Seed != nil {
		w(strconv.FormatInt(*p.Seed, 10))
	} else {
		w("none")
	}

	return hex.EncodeToString(h.Sum(nil))
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// fnvHasher is a short-term, non-cryptographic hash used only for the
// reactive variant's solution-fingerprint memory (spec.md §4.8); it is not
// the cache key, which uses Fingerprint's SHA-256 instead.
type fnvHasher struct {
	h fnv.Hash64
}

func newFNV() *fnvHasher {
	return &fnvHasher{h: fnv.New64a()}
}

func (f *fnvHasher) writeString(s string) {
	f.h.Write([]byte(s))
}

func (f *fnvHasher) writeByte(b byte) {
	f.h.Write([]byte{b})
}

func (f *fnvHasher) sum() string {
	return strconv.FormatUint(f.h.Sum64(), 16)
}
