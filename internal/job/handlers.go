package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/schedcu/orsched/internal/service"
)

// JobHandlers manages job execution handlers
type JobHandlers struct {
	optimizer  service.OptimizationService
	caseLists  service.CaseListImportService
}

// NewJobHandlers creates a new job handlers instance
func NewJobHandlers(optimizer service.OptimizationService, caseLists service.CaseListImportService) *JobHandlers {
	return &JobHandlers{optimizer: optimizer, caseLists: caseLists}
}

// RegisterHandlers registers all job handlers with the Asynq mux
func (h *JobHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeOptimizeRun, h.HandleOptimizeRun)
	mux.HandleFunc(TypeCaseListImport, h.HandleCaseListImport)
}

// HandleOptimizeRun executes a previously submitted optimization run.
func (h *JobHandlers) HandleOptimizeRun(ctx context.Context, t *asynq.Task) error {
	var payload OptimizeRunPayload

	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	log.Printf("Executing optimization run: run=%s", payload.RunID)

	if err := h.optimizer.ExecuteRun(ctx, payload.RunID); err != nil {
		log.Printf("Optimization run failed: run=%s error=%v", payload.RunID, err)
		return fmt.Errorf("optimization run error: %w", err)
	}

	log.Printf("Optimization run completed: run=%s", payload.RunID)

	return nil
}

// HandleCaseListImport imports a hospital's case-list spreadsheet export.
func (h *JobHandlers) HandleCaseListImport(ctx context.Context, t *asynq.Task) error {
	var payload CaseListImportPayload

	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	log.Printf("Executing case list import: hospital=%s file=%s", payload.HospitalID, payload.FilePath)

	surgeries, result, err := h.caseLists.ImportCaseList(ctx, payload.HospitalID, payload.SchedulingDate, payload.FilePath, payload.CreatorID)
	if err != nil {
		log.Printf("Case list import failed: %v", err)
		return fmt.Errorf("case list import error: %w", err)
	}

	log.Printf("Case list import completed: hospital=%s imported=%d messages=%d",
		payload.HospitalID, len(surgeries), len(result.Messages))

	return nil
}
