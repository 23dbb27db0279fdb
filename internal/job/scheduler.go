package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/schedcu/orsched/internal/entity"
)

// JobScheduler manages job enqueueing to Asynq
type JobScheduler struct {
	client *asynq.Client
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(redisAddr string) (*JobScheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})

	// Test connection
	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &JobScheduler{client: client}, nil
}

// Job types
const (
	TypeOptimizeRun  = "optimize:run"
	TypeCaseListImport = "case_list:import"
)

// OptimizeRunPayload is the payload for an optimization run job. RunID
// names an already-persisted, Pending entity.OptimizationRun; the handler
// loads its hospital/surgeries/rooms/parameters from Postgres rather than
// carrying them on the queue.
type OptimizeRunPayload struct {
	RunID entity.RunID `json:"run_id"`
}

// EnqueueOptimizeRun enqueues execution of a previously submitted
// optimization run. The task timeout is the run's own time_limit_ms plus
// headroom for solution construction and persistence, so asynq's own
// deadline never fires before the optimizer's internal one.
func (s *JobScheduler) EnqueueOptimizeRun(ctx context.Context, runID uuid.UUID, timeLimit time.Duration) (*asynq.TaskInfo, error) {
	payload := OptimizeRunPayload{RunID: runID}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeOptimizeRun, payloadBytes)

	info, err := s.client.EnqueueContext(
		ctx,
		task,
		asynq.MaxRetry(0), // a failed run is terminal; retrying re-runs a deterministic search with the same fingerprint
		asynq.Timeout(timeLimit+time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue optimization run job: %w", err)
	}

	return info, nil
}

// CaseListImportPayload is the payload for a case-list spreadsheet import
// job.
type CaseListImportPayload struct {
	HospitalID     entity.HospitalID `json:"hospital_id"`
	SchedulingDate entity.Date       `json:"scheduling_date"`
	FilePath       string            `json:"file_path"`
	CreatorID      entity.UserID     `json:"creator_id"`
}

// EnqueueCaseListImport enqueues a case-list spreadsheet import job.
func (s *JobScheduler) EnqueueCaseListImport(ctx context.Context, hospitalID entity.HospitalID, schedulingDate entity.Date, filePath string, creatorID entity.UserID) (*asynq.TaskInfo, error) {
	payload := CaseListImportPayload{
		HospitalID:     hospitalID,
		SchedulingDate: schedulingDate,
		FilePath:       filePath,
		CreatorID:      creatorID,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeCaseListImport, payloadBytes)

	info, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(2), asynq.Timeout(2*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue case list import job: %w", err)
	}

	return info, nil
}

// Close closes the job scheduler and releases resources
func (s *JobScheduler) Close() error {
	return s.client.Close()
}

// GetTaskInfo retrieves information about a task
func (s *JobScheduler) GetTaskInfo(ctx context.Context, taskID string) (*asynq.TaskInfo, error) {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: s.client.String()})
	defer inspector.Close()

	return inspector.GetTaskInfo(ctx, "default", taskID)
}
