package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/optimizer"
	"github.com/schedcu/orsched/internal/validation"
)

// OptimizationService coordinates the host-side lifecycle of a Tabu Search
// run: persisting the request, driving internal/optimizer, memoizing
// results, and recording what happened for audit and later listing.
type OptimizationService interface {
	// SubmitRun validates a hospital's pending surgeries/rooms exist for
	// schedulingDate, persists a Pending entity.OptimizationRun, and
	// returns it. It does not run the optimizer itself; callers enqueue
	// ExecuteRun on the job queue so a run never blocks the HTTP request
	// path.
	SubmitRun(ctx context.Context, hospitalID uuid.UUID, schedulingDate time.Time, variant optimizer.Variant, params optimizer.Parameters, userID uuid.UUID) (*entity.OptimizationRun, error)

	// ExecuteRun loads the persisted run and its input, drives the
	// optimizer core (through the result cache), and persists the
	// terminal outcome. Called from the asynq handler, never from an
	// HTTP handler.
	ExecuteRun(ctx context.Context, runID uuid.UUID) error

	// GetRun returns the persisted run, blocking until it reaches a
	// terminal status or ctx is done, whichever comes first. Returns
	// immediately if the run is already terminal or unknown to the
	// in-memory completion registry (e.g. after a process restart).
	GetRun(ctx context.Context, runID uuid.UUID) (*entity.OptimizationRun, error)

	// GetProgress reports the live progress of a run that is currently
	// executing in this process. The second return is false if no
	// in-memory tracker exists for runID (not yet started, already
	// forgotten, or running in a different process).
	GetProgress(runID uuid.UUID) (optimizer.ProgressSnapshot, bool)

	// CancelRun requests cooperative cancellation of a running run.
	CancelRun(ctx context.Context, runID uuid.UUID, userID uuid.UUID) error

	// CacheStats reports the result cache's current hit/miss/eviction
	// counters and size (spec.md §4.10).
	CacheStats() optimizer.CacheStats

	// ClearCache evicts every cached result.
	ClearCache(ctx context.Context, userID uuid.UUID) error

	// CleanupCache removes expired entries and returns how many were
	// removed.
	CleanupCache() int
}

// CaseListImportService imports a hospital's case-list spreadsheet export
// into pending surgeries ready for optimization.
type CaseListImportService interface {
	ImportCaseList(ctx context.Context, hospitalID uuid.UUID, schedulingDate time.Time, path string, userID uuid.UUID) ([]*entity.Surgery, *validation.Result, error)
}
