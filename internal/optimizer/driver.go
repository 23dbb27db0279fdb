package optimizer

import (
	"context"
	"math/rand"
	"sort"
	"time"
)

// OptimizationResult is what a completed (or terminated) run reports back
// to its host (spec.md §4.7 "Result").
type OptimizationResult struct {
	RunID       string
	Status      RunStatus
	Best        *Solution
	Breakdown   ComponentBreakdown
	Cost        float64
	Iterations  int
	Elapsed     time.Duration
	Convergence []float64
	Variant     Variant
	Seed        *int64
}

// Run executes one Tabu Search optimization to completion, synchronously.
// Hosts wanting asynchronous execution (the job-queue path of
// internal/service) run Run on a goroutine and observe progress through the
// supplied tracker.
//
// ctx carries cancellation: the driver checks ctx.Err() at each iteration
// boundary, never inside one, matching spec.md §5's "no cooperative
// suspension within an iteration".
func Run(ctx context.Context, runID string, input Input, params Parameters, progress *Progress) (*OptimizationResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if progress == nil {
		progress = NewProgress(runID, params.MaxIterations, params.ProgressInterval)
	}

	current, err := buildInitialSolution(input)
	if err != nil {
		return nil, err
	}

	eval := Evaluate(current, input.Rooms, input.Surgeries, input.SDST, params.Weights, input.Preferences)
	best := current
	bestEval := eval

	tabu := NewTabuList(params.TabuTenure)
	variant := newVariantState(params.Variant, params)
	rng := newDriverRNG(params.Seed)

	started := time.Now()
	progress.Start(started)

	convergence := make([]float64, 0, params.MaxIterations)
	iterationsWithoutImprovement := 0
	deadendCount := 0

	status := StatusRunning
	var lastErr string

	iteration := 0
	for {
		if iteration >= params.MaxIterations {
			status = StatusCompleted
			break
		}
		if iterationsWithoutImprovement >= params.MaxNoImprovement {
			status = StatusCompleted
			break
		}
		if time.Since(started) >= params.TimeLimit {
			status = StatusTimedOut
			break
		}
		select {
		case <-ctx.Done():
			status = StatusCancelled
			goto finished
		default:
		}

		iteration++

		candidates := GenerateNeighbors(current, input.Surgeries, input.SDST, params.MaxShiftMinutes, params.MaxNeighbors, params.Seed, iteration)
		priced := priceAndFilter(candidates, input)

		if len(priced) == 0 {
			deadendCount++
			if deadendCount >= params.DeadendLimit {
				diversified := diversify(current, input, params, rng)
				if diversified == nil {
					return nil, &InternalInvariantViolationError{Detail: "deadend limit exceeded and diversification produced nothing"}
				}
				current = diversified
				deadendCount = 0
			}
			convergence = append(convergence, bestEval.Cost)
			progress.Update(time.Now(), iteration, bestEval.Cost, eval.Cost, false)
			continue
		}

		chosen, chosenEval, chosenKey, ok := selectMove(priced, input, params, tabu, bestEval.Cost)
		if !ok {
			deadendCount++
			if deadendCount >= params.DeadendLimit {
				diversified := diversify(current, input, params, rng)
				if diversified == nil {
					return nil, &InternalInvariantViolationError{Detail: "deadend limit exceeded and diversification produced nothing"}
				}
				current = diversified
				deadendCount = 0
			}
			convergence = append(convergence, bestEval.Cost)
			progress.Update(time.Now(), iteration, bestEval.Cost, eval.Cost, false)
			continue
		}
		deadendCount = 0

		current = chosen
		eval = chosenEval
		tabu.Push(chosenKey)

		improved := eval.Cost < bestEval.Cost
		if improved {
			best = current
			bestEval = eval
			iterationsWithoutImprovement = 0
		} else {
			iterationsWithoutImprovement++
		}

		variant.onIterationEnd(tabu, improved)

		if variant.usesReactiveDiversification() {
			if variant.shouldDiversify(solutionFingerprint(current)) {
				diversified := diversify(current, input, params, rng)
				if diversified != nil {
					current = diversified
					eval = Evaluate(current, input.Rooms, input.Surgeries, input.SDST, params.Weights, input.Preferences)
				}
			}
		}

		convergence = append(convergence, bestEval.Cost)
		progress.Update(time.Now(), iteration, bestEval.Cost, eval.Cost, false)
	}

finished:
	elapsed := time.Since(started)
	progress.Finish(time.Now(), status, bestEval.Cost, lastErr)

	return &OptimizationResult{
		RunID:       runID,
		Status:      status,
		Best:        best,
		Breakdown:   bestEval.Breakdown,
		Cost:        bestEval.Cost,
		Iterations:  iteration,
		Elapsed:     elapsed,
		Convergence: convergence,
		Variant:     params.Variant,
		Seed:        params.Seed,
	}, nil
}

type pricedCandidate struct {
	sol  *Solution
	key  TabuKey
	eval EvaluationResult
}

// priceAndFilter reprices every candidate (§4.2) and drops timing-infeasible
// and cross-room-infeasible ones (§4.3); selectMove evaluates the survivors
// (§4.4).
// A candidate that fails pricing or feasibility is simply excluded; these
// failures never propagate to the host per spec.md §7.
func priceAndFilter(candidates []Candidate, input Input) []pricedCandidate {
	out := make([]pricedCandidate, 0, len(candidates))
	for _, c := range candidates {
		assignments, err := PriceSolution(c.Solution, input.Rooms, input.Surgeries, input.SDST)
		if err != nil {
			continue
		}
		c.Solution.Assignments = assignments
		if err := CheckFeasibility(c.Solution, input.Surgeries); err != nil {
			continue
		}
		out = append(out, pricedCandidate{sol: c.Solution, key: c.Key})
	}
	return out
}

// selectMove implements spec.md §4.7 step 4: partition into tabu/non-tabu,
// pick the best of each, prefer non-tabu on ties, admit a tabu move only
// under aspiration.
func selectMove(priced []pricedCandidate, input Input, params Parameters, tabu *TabuList, bestCostSoFar float64) (*Solution, EvaluationResult, TabuKey, bool) {
	var bestNonTabu *pricedCandidate
	var bestTabu *pricedCandidate

	for i := range priced {
		c := &priced[i]
		c.eval = Evaluate(c.sol, input.Rooms, input.Surgeries, input.SDST, params.Weights, input.Preferences)
		if tabu.IsTabu(c.key) {
			if bestTabu == nil || c.eval.Cost < bestTabu.eval.Cost {
				bestTabu = c
			}
		} else {
			if bestNonTabu == nil || c.eval.Cost < bestNonTabu.eval.Cost {
				bestNonTabu = c
			}
		}
	}

	aspirated := bestTabu != nil && bestTabu.eval.Cost < bestCostSoFar

	switch {
	case bestNonTabu != nil && aspirated:
		if bestNonTabu.eval.Cost <= bestTabu.eval.Cost {
			return bestNonTabu.sol, bestNonTabu.eval, bestNonTabu.key, true
		}
		return bestTabu.sol, bestTabu.eval, bestTabu.key, true
	case bestNonTabu != nil:
		return bestNonTabu.sol, bestNonTabu.eval, bestNonTabu.key, true
	case aspirated:
		return bestTabu.sol, bestTabu.eval, bestTabu.key, true
	default:
		return nil, EvaluationResult{}, TabuKey{}, false
	}
}

// buildInitialSolution implements spec.md §4.7's construction heuristic:
// sort pending surgeries by (urgency desc, duration desc, id asc), greedily
// place each into the feasible room yielding the earliest end time, ties
// broken by lowest resulting total SDST then room id.
func buildInitialSolution(input Input) (*Solution, error) {
	roomIDs := make([]RoomID, 0, len(input.Rooms))
	for id := range input.Rooms {
		roomIDs = append(roomIDs, id)
	}
	sort.Slice(roomIDs, func(i, j int) bool { return roomIDs[i] < roomIDs[j] })

	sol := NewSolution(roomIDs)

	ids := make([]SurgeryID, 0, len(input.Surgeries))
	for id := range input.Surgeries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := input.Surgeries[ids[i]], input.Surgeries[ids[j]]
		if a.Urgency != b.Urgency {
			return a.Urgency > b.Urgency
		}
		if a.DurationMinutes != b.DurationMinutes {
			return a.DurationMinutes > b.DurationMinutes
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		surgery := input.Surgeries[id]

		type placement struct {
			room      RoomID
			end       time.Time
			totalSDST int
		}
		var best *placement

		for _, roomID := range roomIDs {
			room := input.Rooms[roomID]
			if !room.CanHost(surgery) {
				continue
			}
			trial := sol.Clone()
			trial.RoomOrder[roomID] = append(append([]SurgeryID(nil), trial.RoomOrder[roomID]...), id)
			assignments, err := PriceSolution(trial, input.Rooms, input.Surgeries, input.SDST)
			if err != nil {
				continue
			}
			trial.Assignments = assignments
			if err := CheckFeasibility(trial, input.Surgeries); err != nil {
				continue
			}
			end := assignments[id].End
			totalSDST := 0
			for _, a := range assignments {
				totalSDST += a.SDSTApplied
			}
			cand := placement{room: roomID, end: end, totalSDST: totalSDST}
			if best == nil || cand.end.Before(best.end) ||
				(cand.end.Equal(best.end) && (cand.totalSDST < best.totalSDST ||
					(cand.totalSDST == best.totalSDST && cand.room < best.room))) {
				best = &cand
			}
		}

		if best == nil {
			reasons := make(map[RoomID]string, len(roomIDs))
			for _, roomID := range roomIDs {
				if !input.Rooms[roomID].CanHost(surgery) {
					reasons[roomID] = "missing required equipment capability"
				} else {
					reasons[roomID] = "no feasible timing slot"
				}
			}
			return nil, &UnschedulableSurgeryError{SurgeryID: id, RoomReasons: reasons}
		}

		sol.RoomOrder[best.room] = append(sol.RoomOrder[best.room], id)
		assignments, err := PriceSolution(sol, input.Rooms, input.Surgeries, input.SDST)
		if err != nil {
			return nil, &InternalInvariantViolationError{Detail: "initial placement repriced infeasible after selection: " + err.Error()}
		}
		sol.Assignments = assignments
	}

	return sol, nil
}

// diversify performs k random relocate moves ignoring tabu status, per
// spec.md §4.8. It is used both by the reactive/hybrid variants and as the
// driver's deadend response (§4.7 step 4).
func diversify(sol *Solution, input Input, params Parameters, rng *rand.Rand) *Solution {
	ids := sortedSurgeryIDs(sol)
	if len(ids) == 0 {
		return nil
	}
	k := int(float64(len(ids))*params.DiversificationStrength + 0.5)
	if k < 1 {
		k = 1
	}
	roomIDs := sortedRoomIDs(sol.RoomOrder)
	if len(roomIDs) == 0 {
		return nil
	}

	next := sol.Clone()
	for i := 0; i < k; i++ {
		id := ids[rng.Intn(len(ids))]
		fromRoom, ok := next.RoomOf(id)
		if !ok {
			continue
		}
		toRoom := roomIDs[rng.Intn(len(roomIDs))]
		base := removeID(next.RoomOrder[toRoom], id)
		pos := 0
		if len(base) > 0 {
			pos = rng.Intn(len(base) + 1)
		}
		newSeq := append(append([]SurgeryID(nil), base[:pos]...), id)
		newSeq = append(newSeq, base[pos:]...)
		if toRoom == fromRoom {
			next.RoomOrder[toRoom] = newSeq
		} else {
			next.RoomOrder[fromRoom] = removeID(next.RoomOrder[fromRoom], id)
			next.RoomOrder[toRoom] = newSeq
		}
	}

	assignments, err := PriceSolution(next, input.Rooms, input.Surgeries, input.SDST)
	if err != nil {
		return nil
	}
	next.Assignments = assignments
	if err := CheckFeasibility(next, input.Surgeries); err != nil {
		return nil
	}
	return next
}

// newDriverRNG returns a seeded generator when params.Seed is set, or one
// seeded from the current time otherwise. Only the seeded path is covered
// by spec.md §8 property 6 (full determinism); the unseeded path exists so
// diversification has a source of randomness even when the host asked for
// none.
func newDriverRNG(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
