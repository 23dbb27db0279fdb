package optimizer

import "time"

// PriceSolution walks every room's surgery sequence in order and computes
// start/end/sds_applied for each assignment per spec.md §4.2. It does not
// enforce cross-room constraints (that is the feasibility checker's job).
// It returns a timingInfeasibleError, wrapped so the driver can discard the
// candidate, if any assignment would finish after its room's closing time
// or violate a surgery's earliest_start/latest_finish window.
func PriceSolution(sol *Solution, rooms map[RoomID]Room, surgeries map[SurgeryID]Surgery, sdst *SDSTMatrix) (map[SurgeryID]Assignment, error) {
	priced := make(map[SurgeryID]Assignment, len(sol.Assignments))

	for roomID, seq := range sol.RoomOrder {
		room, ok := rooms[roomID]
		if !ok {
			return nil, &timingInfeasibleError{RoomID: roomID, Reason: "unknown room"}
		}
		cursor := room.OpeningTime
		prevType := InitialTypeID

		for _, surgeryID := range seq {
			surgery, ok := surgeries[surgeryID]
			if !ok {
				return nil, &timingInfeasibleError{SurgeryID: surgeryID, RoomID: roomID, Reason: "unknown surgery"}
			}

			setup := sdst.Lookup(prevType, surgery.TypeID)
			extra := sol.ExtraIdle[surgeryID]
			start := cursor.Add(time.Duration(setup+extra) * time.Minute)
			end := start.Add(time.Duration(surgery.DurationMinutes) * time.Minute)

			if room.ClosingTime != nil && end.After(*room.ClosingTime) {
				return nil, &timingInfeasibleError{
					SurgeryID: surgeryID, RoomID: roomID,
					Reason: "assignment ends after room closing time",
				}
			}
			if surgery.EarliestStart != nil && start.Before(*surgery.EarliestStart) {
				return nil, &timingInfeasibleError{
					SurgeryID: surgeryID, RoomID: roomID,
					Reason: "start precedes surgery's earliest_start window",
				}
			}
			if surgery.LatestFinish != nil && end.After(*surgery.LatestFinish) {
				return nil, &timingInfeasibleError{
					SurgeryID: surgeryID, RoomID: roomID,
					Reason: "end exceeds surgery's latest_finish window",
				}
			}

			priced[surgeryID] = Assignment{
				SurgeryID:   surgeryID,
				RoomID:      roomID,
				Start:       start,
				End:         end,
				SDSTApplied: setup,
			}

			cursor = end
			prevType = surgery.TypeID
		}
	}

	return priced, nil
}

// LocalSDSTCost computes sdst(prev, moved) + sdst(moved, next), treating an
// absent predecessor as INITIAL and an absent successor as contributing
// zero (there is no "closing setup" in this model; absent successors are
// ranked purely on the leading term). Used by relocate/swap-across-rooms to
// pick the cheapest insertion position per spec.md §4.5.
func LocalSDSTCost(sdst *SDSTMatrix, prevType, movedType, nextType *SurgeryTypeID) int {
	from := InitialTypeID
	if prevType != nil {
		from = *prevType
	}
	cost := sdst.Lookup(from, *movedType)
	if nextType != nil {
		cost += sdst.Lookup(*movedType, *nextType)
	}
	return cost
}
