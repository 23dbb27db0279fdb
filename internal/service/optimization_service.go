package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/logger"
	"github.com/schedcu/orsched/internal/metrics"
	"github.com/schedcu/orsched/internal/optimizer"
	"github.com/schedcu/orsched/internal/repository"
)

// Sentinel errors surfaced to callers across the HTTP/job boundary.
var (
	ErrNoPendingWork = errors.New("service: hospital has no pending surgeries or rooms for that date")
	ErrRunNotTracked = errors.New("service: run is not executing in this process")
)

// runHandle is the in-memory, single-process bookkeeping for one executing
// run: its progress tracker, its cancel func, and a channel closed when
// ExecuteRun returns, so GetRun can block on it instead of polling Postgres.
type runHandle struct {
	progress *optimizer.Progress
	cancel   context.CancelFunc
	done     chan struct{}
}

// optimizationService is the concrete OptimizationService, grounded on the
// same "interface + struct + constructor, dependencies injected by
// cmd/server" shape the teacher uses throughout internal/service.
type optimizationService struct {
	db      repository.Database
	cache   *optimizer.ResultCache
	metrics *metrics.MetricsRegistry
	log     *zap.SugaredLogger

	mu       sync.Mutex
	handles  map[uuid.UUID]*runHandle
}

// NewOptimizationService wires a Database, a shared ResultCache (spec.md
// §4.10, one cache per process, not per run), the Prometheus registry, and
// the structured logger into an OptimizationService.
func NewOptimizationService(db repository.Database, cache *optimizer.ResultCache, metricsRegistry *metrics.MetricsRegistry, log *zap.SugaredLogger) OptimizationService {
	return &optimizationService{
		db:      db,
		cache:   cache,
		metrics: metricsRegistry,
		log:     log,
		handles: make(map[uuid.UUID]*runHandle),
	}
}

func (s *optimizationService) SubmitRun(ctx context.Context, hospitalID uuid.UUID, schedulingDate time.Time, variant optimizer.Variant, params optimizer.Parameters, userID uuid.UUID) (*entity.OptimizationRun, error) {
	surgeries, err := s.db.SurgeryRepository().GetByHospitalAndDate(ctx, hospitalID, schedulingDate)
	if err != nil {
		return nil, fmt.Errorf("loading pending surgeries: %w", err)
	}
	rooms, err := s.db.RoomRepository().GetByHospitalAndDate(ctx, hospitalID, schedulingDate)
	if err != nil {
		return nil, fmt.Errorf("loading rooms: %w", err)
	}
	if len(surgeries) == 0 || len(rooms) == 0 {
		return nil, ErrNoPendingWork
	}

	params.Variant = variant
	if err := params.Validate(); err != nil {
		return nil, err
	}

	paramsJSON, err := MarshalParameters(params)
	if err != nil {
		return nil, fmt.Errorf("marshaling parameters: %w", err)
	}

	run := entity.NewOptimizationRun(hospitalID, userID, schedulingDate, string(variant), paramsJSON)
	if err := s.db.OptimizationRunRepository().Create(ctx, run); err != nil {
		return nil, fmt.Errorf("persisting run: %w", err)
	}

	s.audit(ctx, userID, "SUBMIT_OPTIMIZATION_RUN", "OptimizationRun#"+run.ID.String(), "", paramsJSON)

	return run, nil
}

func (s *optimizationService) ExecuteRun(ctx context.Context, runID uuid.UUID) error {
	run, err := s.db.OptimizationRunRepository().GetByID(ctx, runID)
	if err != nil {
		return fmt.Errorf("loading run: %w", err)
	}

	input, params, err := s.buildInput(ctx, run)
	if err != nil {
		s.failRun(ctx, run, err)
		return err
	}

	runCtx, cancel := context.WithTimeout(context.Background(), params.TimeLimit+30*time.Second)
	defer cancel()

	progress := optimizer.NewProgress(run.ID.String(), params.MaxIterations, params.ProgressInterval)
	handle := &runHandle{progress: progress, cancel: cancel, done: make(chan struct{})}
	s.mu.Lock()
	s.handles[run.ID] = handle
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.handles, run.ID)
		s.mu.Unlock()
		close(handle.done)
	}()

	if err := run.MarkStarted(); err != nil {
		return err
	}
	if err := s.db.OptimizationRunRepository().Update(ctx, run); err != nil {
		s.log.Errorw("failed to persist run start", "run_id", run.ID, "error", err)
	}

	start := time.Now()
	fingerprint := optimizer.Fingerprint(input, params)

	var result *optimizer.OptimizationResult
	var runErr error
	if params.CacheResults {
		var hit bool
		result, runErr, hit = s.cache.ComputeOrGet(fingerprint, func() (*optimizer.OptimizationResult, error) {
			return optimizer.Run(runCtx, run.ID.String(), input, params, progress)
		})
		if hit {
			s.metrics.RecordOptimizerCacheHit()
			run.CacheHit = true
		} else {
			s.metrics.RecordOptimizerCacheMiss()
		}
	} else {
		result, runErr = optimizer.Run(runCtx, run.ID.String(), input, params, progress)
	}

	elapsed := time.Since(start)
	s.metrics.SetOptimizerCacheSize(s.cache.Stats().Size)

	if runErr != nil {
		s.failRun(ctx, run, runErr)
		s.metrics.RecordOptimizerRun(string(params.Variant), string(entity.RunStatusFailed), elapsed.Seconds(), 0)
		logger.LogServiceCall(s.log, "optimization", "run", elapsed.Milliseconds(), runErr)
		return runErr
	}

	resultJSON, err := json.Marshal(runResultDTO{
		Cost:        result.Cost,
		Iterations:  result.Iterations,
		ElapsedMS:   result.Elapsed.Milliseconds(),
		Breakdown:   result.Breakdown,
		Convergence: result.Convergence,
		Assignments: assignmentsDTO(result.Best),
	})
	if err != nil {
		resultJSON = []byte("{}")
	}
	status := entity.RunStatus(result.Status)
	run.Complete(status, result.Cost, string(resultJSON), result.Iterations)
	if err := s.db.OptimizationRunRepository().Update(ctx, run); err != nil {
		s.log.Errorw("failed to persist run completion", "run_id", run.ID, "error", err)
	}

	s.metrics.RecordOptimizerRun(string(params.Variant), string(status), elapsed.Seconds(), result.Iterations)
	logger.LogServiceCall(s.log, "optimization", "run", elapsed.Milliseconds(), nil)
	s.audit(ctx, run.CreatedBy, "COMPLETE_OPTIMIZATION_RUN", "OptimizationRun#"+run.ID.String(), "", string(resultJSON))

	return nil
}

func (s *optimizationService) failRun(ctx context.Context, run *entity.OptimizationRun, err error) {
	run.Fail(err.Error())
	if uerr := s.db.OptimizationRunRepository().Update(ctx, run); uerr != nil {
		s.log.Errorw("failed to persist run failure", "run_id", run.ID, "error", uerr)
	}
	s.audit(ctx, run.CreatedBy, "FAIL_OPTIMIZATION_RUN", "OptimizationRun#"+run.ID.String(), "", err.Error())
}

// buildInput assembles the optimizer.Input and optimizer.Parameters for a
// persisted run from its hospital's current surgeries/rooms/SDST matrix.
func (s *optimizationService) buildInput(ctx context.Context, run *entity.OptimizationRun) (optimizer.Input, optimizer.Parameters, error) {
	params, err := UnmarshalParameters(run.ParametersJSON)
	if err != nil {
		return optimizer.Input{}, optimizer.Parameters{}, fmt.Errorf("unmarshaling stored parameters: %w", err)
	}

	surgeries, err := s.db.SurgeryRepository().GetByHospitalAndDate(ctx, run.HospitalID, run.SchedulingDate)
	if err != nil {
		return optimizer.Input{}, params, fmt.Errorf("loading surgeries: %w", err)
	}
	rooms, err := s.db.RoomRepository().GetByHospitalAndDate(ctx, run.HospitalID, run.SchedulingDate)
	if err != nil {
		return optimizer.Input{}, params, fmt.Errorf("loading rooms: %w", err)
	}
	sdstEntries, err := s.db.SDSTRepository().GetByHospital(ctx, run.HospitalID)
	if err != nil {
		return optimizer.Input{}, params, fmt.Errorf("loading SDST matrix: %w", err)
	}

	surgeryMap := make(map[optimizer.SurgeryID]optimizer.Surgery, len(surgeries))
	for _, surgery := range surgeries {
		opt := surgery.ToOptimizerSurgery()
		surgeryMap[opt.ID] = opt
	}
	roomMap := make(map[optimizer.RoomID]optimizer.Room, len(rooms))
	for _, room := range rooms {
		opt := room.ToOptimizerRoom()
		roomMap[opt.ID] = opt
	}

	input := optimizer.Input{
		SchedulingDate: run.SchedulingDate,
		Surgeries:      surgeryMap,
		Rooms:          roomMap,
		SDST:           entity.BuildSDSTMatrix(sdstEntries),
	}
	return input, params, nil
}

func (s *optimizationService) GetRun(ctx context.Context, runID uuid.UUID) (*entity.OptimizationRun, error) {
	s.mu.Lock()
	handle, tracked := s.handles[runID]
	s.mu.Unlock()

	if tracked {
		select {
		case <-handle.done:
		case <-ctx.Done():
		}
	}

	return s.db.OptimizationRunRepository().GetByID(ctx, runID)
}

func (s *optimizationService) GetProgress(runID uuid.UUID) (optimizer.ProgressSnapshot, bool) {
	s.mu.Lock()
	handle, ok := s.handles[runID]
	s.mu.Unlock()
	if !ok {
		return optimizer.ProgressSnapshot{}, false
	}
	return handle.progress.Load(), true
}

func (s *optimizationService) CancelRun(ctx context.Context, runID uuid.UUID, userID uuid.UUID) error {
	s.mu.Lock()
	handle, ok := s.handles[runID]
	s.mu.Unlock()
	if !ok {
		return ErrRunNotTracked
	}
	handle.cancel()
	s.audit(ctx, userID, "CANCEL_OPTIMIZATION_RUN", "OptimizationRun#"+runID.String(), "", "")
	return nil
}

func (s *optimizationService) CacheStats() optimizer.CacheStats {
	return s.cache.Stats()
}

func (s *optimizationService) ClearCache(ctx context.Context, userID uuid.UUID) error {
	s.cache.Clear()
	s.metrics.SetOptimizerCacheSize(0)
	s.audit(ctx, userID, "CLEAR_OPTIMIZATION_CACHE", "ResultCache", "", "")
	return nil
}

func (s *optimizationService) CleanupCache() int {
	removed := s.cache.Cleanup()
	s.metrics.SetOptimizerCacheSize(s.cache.Stats().Size)
	return removed
}

// runResultDTO is the shape an entity.OptimizationRun's ResultJSON column
// stores: enough to render a finished run's schedule without re-running the
// optimizer.
type runResultDTO struct {
	Cost        float64                        `json:"cost"`
	Iterations  int                            `json:"iterations"`
	ElapsedMS   int64                          `json:"elapsed_ms"`
	Breakdown   optimizer.ComponentBreakdown   `json:"breakdown"`
	Convergence []float64                      `json:"convergence"`
	Assignments map[string]assignmentDTO       `json:"assignments"`
}

type assignmentDTO struct {
	RoomID      string    `json:"room_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	SDSTApplied int       `json:"sdst_applied_minutes"`
}

func assignmentsDTO(sol *optimizer.Solution) map[string]assignmentDTO {
	if sol == nil {
		return nil
	}
	out := make(map[string]assignmentDTO, len(sol.Assignments))
	for surgeryID, a := range sol.Assignments {
		out[string(surgeryID)] = assignmentDTO{
			RoomID:      string(a.RoomID),
			Start:       a.Start,
			End:         a.End,
			SDSTApplied: a.SDSTApplied,
		}
	}
	return out
}

func (s *optimizationService) audit(ctx context.Context, userID uuid.UUID, action, resource, oldValues, newValues string) {
	log := &entity.AuditLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		OldValues: oldValues,
		NewValues: newValues,
		Timestamp: time.Now().UTC(),
	}
	if err := s.db.AuditLogRepository().Create(ctx, log); err != nil {
		s.log.Errorw("failed to write audit log", "action", action, "resource", resource, "error", err)
	}
}
