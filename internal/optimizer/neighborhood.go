package optimizer

import (
	"fmt"
	"math/rand"
	"sort"
)

// MoveKind tags the four move families of spec.md §4.5.
type MoveKind string

const (
	MoveSwapWithinRoom  MoveKind = "swap"
	MoveSwapAcrossRooms MoveKind = "swap-x"
	MoveRelocate        MoveKind = "relocate"
	MoveShift           MoveKind = "shift"
)

// TabuKey is the compact move-attribute tuple used as the tabu-list
// membership key (spec.md §4.6). It is a plain comparable struct so it can
// be used directly as a map key.
type TabuKey struct {
	Kind MoveKind
	A    string
	B    string
	C    string
	D    string
}

// Candidate is a fully-formed neighbor: the solution it produces and the
// tabu key the move would record if accepted.
type Candidate struct {
	Solution *Solution
	Key      TabuKey
}

// shiftStepMinutes is the granularity at which Shift moves probe idle
// insertion; spec.md §9 leaves the step unspecified beyond "MUST remain a
// no-op under the default" (max_shift_minutes=0).
const shiftStepMinutes = 15

// GenerateNeighbors enumerates candidate moves deterministically in the
// order mandated by spec.md §4.5: move types in the listed order, surgeries
// by identifier within each type, insertion positions left-to-right within
// relocate. At most maxNeighbors candidates are returned; if a seed is
// supplied and more candidates were generated than the cap, a seeded
// selection (not a prefix) is taken instead.
func GenerateNeighbors(sol *Solution, surgeries map[SurgeryID]Surgery, sdst *SDSTMatrix, maxShiftMinutes, maxNeighbors int, seed *int64, iteration int) []Candidate {
	ids := sortedSurgeryIDs(sol)

	var all []Candidate
	all = append(all, generateSwapWithinRoom(sol, ids)...)
	all = append(all, generateSwapAcrossRooms(sol, surgeries, sdst, ids)...)
	all = append(all, generateRelocate(sol, ids)...)
	if maxShiftMinutes > 0 {
		all = append(all, generateShift(sol, ids, maxShiftMinutes)...)
	}

	if len(all) <= maxNeighbors {
		return all
	}
	if seed == nil {
		return all[:maxNeighbors]
	}
	return seededSample(all, maxNeighbors, *seed, iteration)
}

func seededSample(all []Candidate, k int, seed int64, iteration int) []Candidate {
	r := rand.New(rand.NewSource(seed*1000003 + int64(iteration)))
	idx := r.Perm(len(all))[:k]
	sort.Ints(idx)
	out := make([]Candidate, k)
	for i, j := range idx {
		out[i] = all[j]
	}
	return out
}

func sortedSurgeryIDs(sol *Solution) []SurgeryID {
	ids := make([]SurgeryID, 0, len(sol.Assignments))
	for id := range sol.Assignments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// generateSwapWithinRoom swaps the positions of two surgeries sharing a
// room. Each unordered pair is emitted once (A has the lexicographically
// smaller ID).
func generateSwapWithinRoom(sol *Solution, ids []SurgeryID) []Candidate {
	var out []Candidate
	for _, a := range ids {
		roomA, ok := sol.RoomOf(a)
		if !ok {
			continue
		}
		seq := sol.RoomOrder[roomA]
		for _, b := range ids {
			if b <= a {
				continue
			}
			roomB, _ := sol.RoomOf(b)
			if roomB != roomA {
				continue
			}
			posA := PositionOf(seq, a)
			posB := PositionOf(seq, b)
			next := sol.Clone()
			newSeq := append([]SurgeryID(nil), seq...)
			newSeq[posA], newSeq[posB] = newSeq[posB], newSeq[posA]
			next.RoomOrder[roomA] = newSeq
			out = append(out, Candidate{
				Solution: next,
				Key:      swapKey(roomA, a, b),
			})
		}
	}
	return out
}

func swapKey(room RoomID, a, b SurgeryID) TabuKey {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return TabuKey{Kind: MoveSwapWithinRoom, A: string(room), B: string(lo), C: string(hi)}
}

// generateSwapAcrossRooms exchanges the rooms of two surgeries currently in
// different rooms, inserting each at the position in its new room that
// minimizes local SDST.
func generateSwapAcrossRooms(sol *Solution, surgeries map[SurgeryID]Surgery, sdst *SDSTMatrix, ids []SurgeryID) []Candidate {
	var out []Candidate
	for _, a := range ids {
		roomA, ok := sol.RoomOf(a)
		if !ok {
			continue
		}
		for _, b := range ids {
			if b <= a {
				continue
			}
			roomB, ok := sol.RoomOf(b)
			if !ok || roomB == roomA {
				continue
			}

			next := sol.Clone()
			seqA := removeID(sol.RoomOrder[roomA], a)
			seqB := removeID(sol.RoomOrder[roomB], b)

			seqA = insertBest(seqA, b, surgeries, sdst)
			seqB = insertBest(seqB, a, surgeries, sdst)

			next.RoomOrder[roomA] = seqA
			next.RoomOrder[roomB] = seqB

			out = append(out, Candidate{
				Solution: next,
				Key:      swapAcrossKey(roomA, a, roomB, b),
			})
		}
	}
	return out
}

func swapAcrossKey(roomA RoomID, a SurgeryID, roomB RoomID, b SurgeryID) TabuKey {
	left := [2]string{string(roomA), string(a)}
	right := [2]string{string(roomB), string(b)}
	if left[0] > right[0] || (left[0] == right[0] && left[1] > right[1]) {
		left, right = right, left
	}
	return TabuKey{Kind: MoveSwapAcrossRooms, A: left[0], B: left[1], C: right[0], D: right[1]}
}

// generateRelocate removes a surgery from its room and reinserts it at
// every position in every room (including its own, excluding the no-op),
// choosing nothing itself — each position is its own candidate, per
// spec.md §4.5 ("try insertion positions left-to-right in the target
// room").
func generateRelocate(sol *Solution, ids []SurgeryID) []Candidate {
	var out []Candidate
	roomIDs := sortedRoomIDs(sol.RoomOrder)

	for _, surgeryID := range ids {
		fromRoom, ok := sol.RoomOf(surgeryID)
		if !ok {
			continue
		}
		for _, toRoom := range roomIDs {
			base := removeID(sol.RoomOrder[toRoom], surgeryID)
			limit := len(base)
			for pos := 0; pos <= limit; pos++ {
				if toRoom == fromRoom {
					origSeq := sol.RoomOrder[fromRoom]
					if pos == PositionOf(origSeq, surgeryID) {
						continue
					}
				}
				next := sol.Clone()
				newSeq := append([]SurgeryID(nil), base[:pos]...)
				newSeq = append(newSeq, surgeryID)
				newSeq = append(newSeq, base[pos:]...)

				if toRoom == fromRoom {
					next.RoomOrder[toRoom] = newSeq
				} else {
					next.RoomOrder[fromRoom] = removeID(sol.RoomOrder[fromRoom], surgeryID)
					next.RoomOrder[toRoom] = newSeq
				}

				out = append(out, Candidate{
					Solution: next,
					Key:      TabuKey{Kind: MoveRelocate, A: string(surgeryID), B: string(fromRoom), C: string(toRoom)},
				})
			}
		}
	}
	return out
}

// generateShift advances or delays a surgery by inserting idle time before
// it, bounded by maxShiftMinutes. Deltas are probed in shiftStepMinutes
// increments; a negative delta is only offered when the surgery already
// carries positive ExtraIdle to remove (shifting earlier than the SDST
// timing kernel's tight packing is otherwise meaningless, since the kernel
// always starts a surgery as early as its predecessor's setup allows).
func generateShift(sol *Solution, ids []SurgeryID, maxShiftMinutes int) []Candidate {
	var out []Candidate
	for _, surgeryID := range ids {
		if _, ok := sol.RoomOf(surgeryID); !ok {
			continue
		}
		current := sol.ExtraIdle[surgeryID]
		for delta := shiftStepMinutes; delta <= maxShiftMinutes; delta += shiftStepMinutes {
			next := sol.Clone()
			next.ExtraIdle[surgeryID] = current + delta
			out = append(out, Candidate{
				Solution: next,
				Key:      TabuKey{Kind: MoveShift, A: string(surgeryID), B: signedMinutes(delta)},
			})
		}
		if current > 0 {
			reduceBy := shiftStepMinutes
			if reduceBy > current {
				reduceBy = current
			}
			next := sol.Clone()
			next.ExtraIdle[surgeryID] = current - reduceBy
			out = append(out, Candidate{
				Solution: next,
				Key:      TabuKey{Kind: MoveShift, A: string(surgeryID), B: signedMinutes(-reduceBy)},
			})
		}
	}
	return out
}

func signedMinutes(m int) string {
	return fmt.Sprintf("%+d", m)
}

func removeID(seq []SurgeryID, id SurgeryID) []SurgeryID {
	out := make([]SurgeryID, 0, len(seq))
	for _, s := range seq {
		if s != id {
			out = append(out, s)
		}
	}
	return out
}

// insertBest inserts surgeryID into seq at the position minimizing
// sdst(prev,moved)+sdst(moved,next), ties toward the earlier position
// (spec.md §4.5).
func insertBest(seq []SurgeryID, surgeryID SurgeryID, surgeries map[SurgeryID]Surgery, sdst *SDSTMatrix) []SurgeryID {
	movedType := TypeOf(surgeries, surgeryID)
	bestPos := 0
	bestCost := -1
	for pos := 0; pos <= len(seq); pos++ {
		var prevType, nextType *SurgeryTypeID
		if pos > 0 {
			t := TypeOf(surgeries, seq[pos-1])
			prevType = &t
		}
		if pos < len(seq) {
			t := TypeOf(surgeries, seq[pos])
			nextType = &t
		}
		cost := LocalSDSTCost(sdst, prevType, &movedType, nextType)
		if bestCost == -1 || cost < bestCost {
			bestCost = cost
			bestPos = pos
		}
	}
	out := make([]SurgeryID, 0, len(seq)+1)
	out = append(out, seq[:bestPos]...)
	out = append(out, surgeryID)
	out = append(out, seq[bestPos:]...)
	return out
}
