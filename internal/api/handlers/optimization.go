package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/schedcu/orsched/internal/api/response"
	"github.com/schedcu/orsched/internal/job"
	"github.com/schedcu/orsched/internal/optimizer"
	"github.com/schedcu/orsched/internal/repository"
	"github.com/schedcu/orsched/internal/service"
)

// OptimizationHandler handles HTTP requests for submitting and observing
// Tabu Search optimization runs.
type OptimizationHandler struct {
	svc       service.OptimizationService
	scheduler *job.JobScheduler
}

// NewOptimizationHandler creates a new optimization handler.
func NewOptimizationHandler(svc service.OptimizationService, scheduler *job.JobScheduler) *OptimizationHandler {
	return &OptimizationHandler{svc: svc, scheduler: scheduler}
}

// SubmitRunRequest is the request body for POST /api/hospitals/:hospitalID/optimize.
type SubmitRunRequest struct {
	SchedulingDate string                        `json:"scheduling_date" validate:"required"`
	Variant        string                        `json:"variant" validate:"required,oneof=basic adaptive reactive hybrid"`
	Parameters     *service.OptimizationParamsDTO `json:"parameters,omitempty"`
}

// SubmitRunResponse is the response for a newly submitted run.
type SubmitRunResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// SubmitRun handles POST /api/hospitals/:hospitalID/optimize. It persists a
// Pending run and enqueues its execution; it never runs the optimizer on
// the request goroutine (spec.md §6's time_limit_ms can be up to 5 minutes).
func (h *OptimizationHandler) SubmitRun(c echo.Context) error {
	hospitalID, err := uuid.Parse(c.Param("hospitalID"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorWithCode("INVALID_HOSPITAL_ID", "hospitalID must be a UUID"))
	}

	var req SubmitRunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorWithCode("INVALID_REQUEST", "invalid request body: "+err.Error()))
	}

	schedulingDate, err := time.Parse("2006-01-02", req.SchedulingDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorWithCode("INVALID_DATE", "scheduling_date must be YYYY-MM-DD"))
	}

	paramsDTO := service.DefaultOptimizationParamsDTO()
	if req.Parameters != nil {
		paramsDTO = *req.Parameters
	}
	params := paramsDTO.ToParameters()

	// TODO: read the submitting user from auth middleware once it exists.
	userID := uuid.New()

	run, err := h.svc.SubmitRun(c.Request().Context(), hospitalID, schedulingDate, optimizer.Variant(req.Variant), params, userID)
	if err != nil {
		if errors.Is(err, service.ErrNoPendingWork) {
			return c.JSON(http.StatusUnprocessableEntity, response.ErrorWithCode("NO_PENDING_WORK", err.Error()))
		}
		var invalid *optimizer.InvalidInputError
		if errors.As(err, &invalid) {
			return c.JSON(http.StatusUnprocessableEntity, response.ErrorWithCode("INVALID_PARAMETERS", err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, response.ErrorWithCode("SUBMIT_FAILED", err.Error()))
	}

	if _, err := h.scheduler.EnqueueOptimizeRun(c.Request().Context(), run.ID, params.TimeLimit); err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrorWithCode("ENQUEUE_FAILED", err.Error()))
	}

	return c.JSON(http.StatusAccepted, response.Success(SubmitRunResponse{
		RunID:  run.ID.String(),
		Status: run.Status,
	}))
}

// GetRun handles GET /api/runs/:id. It blocks (bounded by the request
// context, which Echo cancels on client disconnect) until the run reaches
// a terminal status, then returns the persisted record.
func (h *OptimizationHandler) GetRun(c echo.Context) error {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorWithCode("INVALID_RUN_ID", "id must be a UUID"))
	}

	run, err := h.svc.GetRun(c.Request().Context(), runID)
	if err != nil {
		if repository.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, response.ErrorWithCode("RUN_NOT_FOUND", err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, response.ErrorWithCode("GET_RUN_FAILED", err.Error()))
	}

	return c.JSON(http.StatusOK, response.Success(run))
}

// GetProgress handles GET /api/runs/:id/progress, reading the live tracker
// for a run currently executing in this process (spec.md §4.9).
func (h *OptimizationHandler) GetProgress(c echo.Context) error {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorWithCode("INVALID_RUN_ID", "id must be a UUID"))
	}

	snapshot, ok := h.svc.GetProgress(runID)
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrorWithCode("RUN_NOT_EXECUTING", "run is not currently executing in this process"))
	}

	return c.JSON(http.StatusOK, response.Success(snapshot))
}

// CancelRun handles POST /api/runs/:id/cancel.
func (h *OptimizationHandler) CancelRun(c echo.Context) error {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorWithCode("INVALID_RUN_ID", "id must be a UUID"))
	}

	// TODO: read the cancelling user from auth middleware once it exists.
	userID := uuid.New()

	if err := h.svc.CancelRun(c.Request().Context(), runID, userID); err != nil {
		if errors.Is(err, service.ErrRunNotTracked) {
			return c.JSON(http.StatusNotFound, response.ErrorWithCode("RUN_NOT_EXECUTING", err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, response.ErrorWithCode("CANCEL_FAILED", err.Error()))
	}

	return c.JSON(http.StatusAccepted, response.Success(map[string]interface{}{"run_id": runID.String(), "status": "cancelling"}))
}

// CacheStats handles GET /api/cache/stats (spec.md §4.10).
func (h *OptimizationHandler) CacheStats(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Success(h.svc.CacheStats()))
}

// ClearCache handles POST /api/cache/clear.
func (h *OptimizationHandler) ClearCache(c echo.Context) error {
	// TODO: read the requesting user from auth middleware once it exists.
	userID := uuid.New()
	if err := h.svc.ClearCache(c.Request().Context(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrorWithCode("CLEAR_CACHE_FAILED", err.Error()))
	}
	return c.JSON(http.StatusOK, response.Success(map[string]interface{}{"cleared": true}))
}

// CleanupCache handles POST /api/cache/cleanup, evicting expired entries
// without clearing live ones.
func (h *OptimizationHandler) CleanupCache(c echo.Context) error {
	removed := h.svc.CleanupCache()
	return c.JSON(http.StatusOK, response.Success(map[string]interface{}{"removed": removed}))
}
