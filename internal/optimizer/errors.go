package optimizer

import (
	"errors"
	"fmt"
)

// Terminal error sentinels per spec.md §7. Use errors.Is against these to
// classify a failed run; wrapped errors carry offending identifiers.
var (
	ErrInvalidInput               = errors.New("optimizer: invalid input")
	ErrUnschedulableSurgery       = errors.New("optimizer: unschedulable surgery")
	ErrCancelled                  = errors.New("optimizer: run cancelled")
	ErrTimedOut                   = errors.New("optimizer: run timed out")
	ErrInternalInvariantViolation = errors.New("optimizer: internal invariant violation")

	// errTimingInfeasible and errFeasibilityViolation are non-terminal:
	// they discard a single candidate inside the hot loop and never escape
	// the package except wrapped into one of the sentinels above.
	errTimingInfeasible      = errors.New("optimizer: timing infeasible")
	errFeasibilityViolation  = errors.New("optimizer: feasibility violation")
)

// InvalidInputError describes a malformed snapshot.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return fmt.Sprintf("invalid input: %s", e.Reason) }
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// UnschedulableSurgeryError reports that initial-solution construction
// could not place a surgery in any room, with a per-room reason.
type UnschedulableSurgeryError struct {
	SurgeryID   SurgeryID
	RoomReasons map[RoomID]string
}

func (e *UnschedulableSurgeryError) Error() string {
	return fmt.Sprintf("surgery %s cannot be scheduled in any of %d candidate rooms", e.SurgeryID, len(e.RoomReasons))
}
func (e *UnschedulableSurgeryError) Unwrap() error { return ErrUnschedulableSurgery }

// InternalInvariantViolationError aborts a run when a post-condition check
// fails after a move was applied.
type InternalInvariantViolationError struct {
	Detail string
}

func (e *InternalInvariantViolationError) Error() string {
	return fmt.Sprintf("internal invariant violation: %s", e.Detail)
}
func (e *InternalInvariantViolationError) Unwrap() error { return ErrInternalInvariantViolation }

// timingInfeasibleError and feasibilityViolationError are candidate-local;
// the driver loop drops a candidate on any pricing or feasibility error
// rather than propagating it to the host.
type timingInfeasibleError struct {
	SurgeryID SurgeryID
	RoomID    RoomID
	Reason    string
}

func (e *timingInfeasibleError) Error() string {
	return fmt.Sprintf("timing infeasible for surgery %s in room %s: %s", e.SurgeryID, e.RoomID, e.Reason)
}
func (e *timingInfeasibleError) Unwrap() error { return errTimingInfeasible }

type feasibilityViolationError struct {
	Kind        string
	AssignmentA SurgeryID
	AssignmentB SurgeryID
	Detail      string
}

func (e *feasibilityViolationError) Error() string {
	return fmt.Sprintf("feasibility violation (%s) between %s and %s: %s", e.Kind, e.AssignmentA, e.AssignmentB, e.Detail)
}
func (e *feasibilityViolationError) Unwrap() error { return errFeasibilityViolation }
