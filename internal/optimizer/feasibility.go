package optimizer

import "sort"

// CheckFeasibility validates the Solution invariants of spec.md §3 that the
// timing kernel does not: within each room, every sequenced surgery has an
// assignment and starts no earlier than its predecessor ends; across rooms,
// surgeon non-overlap and equipment non-overlap. It reports the first
// violation found in deterministic order (rooms by id, then surgeons, then
// equipment), matching spec.md §4.3.
//
// The opening-time and SDST gap invariants are guaranteed structurally by
// PriceSolution and are not re-checked here.
func CheckFeasibility(sol *Solution, surgeries map[SurgeryID]Surgery) error {
	if err := checkRoomOrdering(sol); err != nil {
		return err
	}
	if err := checkSurgeonOverlap(sol, surgeries); err != nil {
		return err
	}
	if err := checkEquipmentOverlap(sol, surgeries); err != nil {
		return err
	}
	return nil
}

func checkRoomOrdering(sol *Solution) error {
	roomIDs := sortedRoomIDs(sol.RoomOrder)
	for _, roomID := range roomIDs {
		seq := sol.RoomOrder[roomID]
		var prev *Assignment
		for _, surgeryID := range seq {
			a, ok := sol.Assignments[surgeryID]
			if !ok {
				return &feasibilityViolationError{Kind: "room-ordering", AssignmentA: surgeryID, Detail: "surgery has no priced assignment"}
			}
			if prev != nil && a.Start.Before(prev.End) {
				return &feasibilityViolationError{
					Kind: "room-ordering", AssignmentA: prev.SurgeryID, AssignmentB: a.SurgeryID,
					Detail: "assignment starts before predecessor ends in the same room",
				}
			}
			cp := a
			prev = &cp
		}
	}
	return nil
}

func checkSurgeonOverlap(sol *Solution, surgeries map[SurgeryID]Surgery) error {
	bySurgeon := make(map[SurgeonID][]Assignment)
	for id, a := range sol.Assignments {
		s, ok := surgeries[id]
		if !ok || s.SurgeonID == nil {
			continue
		}
		bySurgeon[*s.SurgeonID] = append(bySurgeon[*s.SurgeonID], a)
	}
	surgeonIDs := make([]SurgeonID, 0, len(bySurgeon))
	for id := range bySurgeon {
		surgeonIDs = append(surgeonIDs, id)
	}
	sort.Slice(surgeonIDs, func(i, j int) bool { return surgeonIDs[i] < surgeonIDs[j] })

	for _, surgeon := range surgeonIDs {
		assignments := bySurgeon[surgeon]
		sort.Slice(assignments, func(i, j int) bool { return assignments[i].Start.Before(assignments[j].Start) })
		for i := 1; i < len(assignments); i++ {
			if assignments[i].Start.Before(assignments[i-1].End) {
				return &feasibilityViolationError{
					Kind: "surgeon-overlap", AssignmentA: assignments[i-1].SurgeryID, AssignmentB: assignments[i].SurgeryID,
					Detail: "surgeon " + string(surgeon) + " double-booked",
				}
			}
		}
	}
	return nil
}

func checkEquipmentOverlap(sol *Solution, surgeries map[SurgeryID]Surgery) error {
	byEquipment := make(map[EquipmentID][]Assignment)
	for id, a := range sol.Assignments {
		s, ok := surgeries[id]
		if !ok {
			continue
		}
		for _, eq := range s.RequiredEquipment {
			byEquipment[eq] = append(byEquipment[eq], a)
		}
	}
	equipmentIDs := make([]EquipmentID, 0, len(byEquipment))
	for id := range byEquipment {
		equipmentIDs = append(equipmentIDs, id)
	}
	sort.Slice(equipmentIDs, func(i, j int) bool { return equipmentIDs[i] < equipmentIDs[j] })

	for _, equipment := range equipmentIDs {
		assignments := byEquipment[equipment]
		sort.Slice(assignments, func(i, j int) bool { return assignments[i].Start.Before(assignments[j].Start) })
		for i := 1; i < len(assignments); i++ {
			if assignments[i].Start.Before(assignments[i-1].End) {
				return &feasibilityViolationError{
					Kind: "equipment-overlap", AssignmentA: assignments[i-1].SurgeryID, AssignmentB: assignments[i].SurgeryID,
					Detail: "equipment " + string(equipment) + " held concurrently",
				}
			}
		}
	}
	return nil
}

func sortedRoomIDs(order map[RoomID][]SurgeryID) []RoomID {
	ids := make([]RoomID, 0, len(order))
	for id := range order {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
