package optimizer

import (
	"sync/atomic"
	"time"
)

// RunStatus is the lifecycle state of a run's progress record (spec.md §4.9).
type RunStatus string

const (
	StatusPending   RunStatus = "Pending"
	StatusRunning   RunStatus = "Running"
	StatusCompleted RunStatus = "Completed"
	StatusFailed    RunStatus = "Failed"
	StatusCancelled RunStatus = "Cancelled"
	StatusTimedOut  RunStatus = "TimedOut"
)

func (s RunStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusTimedOut:
		return true
	default:
		return false
	}
}

// ProgressSnapshot is an immutable view of a run's progress at one instant.
// Readers receive one of these by value (via Progress.Load), never a
// partially-updated one, satisfying the no-torn-reads requirement of
// spec.md §5.
type ProgressSnapshot struct {
	RunID                    string
	Status                   RunStatus
	Iteration                int
	TotalIterationsPlanned   int
	BestCost                 float64
	CurrentCost              float64
	ElapsedMillis            int64
	EstimatedRemainingMillis int64
	LastError                string
}

// Progress is the single-writer/many-reader tracker of spec.md §4.9,
// modeled on the atomic-status pattern of the teacher's orchestrator
// (status atomic.Value) but generalized to a full snapshot struct and an
// atomic.Pointer so readers always see a complete, consistent value rather
// than one field of several.
type Progress struct {
	ptr              atomic.Pointer[ProgressSnapshot]
	interval         time.Duration
	lastPublish      time.Time
	startedAt        time.Time
}

// NewProgress creates a tracker for a run, publishing an initial Pending
// snapshot immediately.
func NewProgress(runID string, totalIterationsPlanned int, interval time.Duration) *Progress {
	p := &Progress{interval: interval, startedAt: zeroTime}
	p.ptr.Store(&ProgressSnapshot{
		RunID:                  runID,
		Status:                 StatusPending,
		TotalIterationsPlanned: totalIterationsPlanned,
	})
	return p
}

var zeroTime time.Time

// Load returns the most recently published snapshot. Safe for concurrent
// use by any number of readers.
func (p *Progress) Load() ProgressSnapshot {
	return *p.ptr.Load()
}

// Start marks the run Running and records the start time used for elapsed
// and ETA computation. Called once by the driver before the first iteration.
func (p *Progress) Start(now time.Time) {
	p.startedAt = now
	cur := p.Load()
	cur.Status = StatusRunning
	cur.ElapsedMillis = 0
	p.publish(cur, true)
}

// Update recomputes elapsed/ETA and publishes, subject to the
// progress_interval_ms rate limit, unless force is true (used for the
// terminal publish, which must never be dropped).
func (p *Progress) Update(now time.Time, iteration int, bestCost, currentCost float64, force bool) {
	cur := p.Load()
	cur.Iteration = iteration
	cur.BestCost = bestCost
	cur.CurrentCost = currentCost
	cur.ElapsedMillis = now.Sub(p.startedAt).Milliseconds()
	if iteration > 0 {
		perIteration := float64(cur.ElapsedMillis) / float64(iteration)
		remaining := cur.TotalIterationsPlanned - iteration
		if remaining < 0 {
			remaining = 0
		}
		cur.EstimatedRemainingMillis = int64(perIteration * float64(remaining))
	}
	p.publish(cur, force)
}

// Finish publishes the terminal snapshot unconditionally, bypassing the
// rate limit (the final state must always be observable).
func (p *Progress) Finish(now time.Time, status RunStatus, bestCost float64, lastError string) {
	cur := p.Load()
	cur.Status = status
	cur.BestCost = bestCost
	cur.ElapsedMillis = now.Sub(p.startedAt).Milliseconds()
	cur.EstimatedRemainingMillis = 0
	cur.LastError = lastError
	p.publish(cur, true)
}

func (p *Progress) publish(snap ProgressSnapshot, force bool) {
	now := time.Now()
	if !force && now.Sub(p.lastPublish) < p.interval {
		return
	}
	p.lastPublish = now
	p.ptr.Store(&snap)
}
