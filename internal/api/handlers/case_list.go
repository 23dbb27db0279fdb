package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/schedcu/orsched/internal/api/response"
	"github.com/schedcu/orsched/internal/job"
	"github.com/schedcu/orsched/internal/service"
)

// CaseListHandler handles case-list spreadsheet import requests.
type CaseListHandler struct {
	svc       service.CaseListImportService
	scheduler *job.JobScheduler
	uploadDir string
}

// NewCaseListHandler creates a new case-list import handler. Uploaded
// files are staged under os.TempDir so the async job handler, which may
// run on a different goroutine (or process, once the queue is backed by
// Redis workers in a separate deployment), can read them by path.
func NewCaseListHandler(svc service.CaseListImportService, scheduler *job.JobScheduler) *CaseListHandler {
	return &CaseListHandler{svc: svc, scheduler: scheduler, uploadDir: filepath.Join(os.TempDir(), "orsched-case-lists")}
}

// CaseListImportResponse acknowledges an accepted import request.
type CaseListImportResponse struct {
	HospitalID     string `json:"hospital_id"`
	SchedulingDate string `json:"scheduling_date"`
	FilePath       string `json:"file_path"`
}

// Import handles POST /api/hospitals/:hospitalID/case-list. It expects a
// multipart form with a "file" field (the .xlsx case list export) and a
// "scheduling_date" field (YYYY-MM-DD), stages the upload to disk, and
// enqueues the parse as a background job rather than blocking the request
// on excelize parsing a potentially large workbook.
func (h *CaseListHandler) Import(c echo.Context) error {
	hospitalID, err := uuid.Parse(c.Param("hospitalID"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorWithCode("INVALID_HOSPITAL_ID", "hospitalID must be a UUID"))
	}

	schedulingDate, err := time.Parse("2006-01-02", c.FormValue("scheduling_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorWithCode("INVALID_DATE", "scheduling_date must be YYYY-MM-DD"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorWithCode("MISSING_FILE", "file field is required"))
	}

	storedPath, err := h.stageUpload(hospitalID, fileHeader)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrorWithCode("UPLOAD_FAILED", err.Error()))
	}

	// TODO: read the submitting user from auth middleware once it exists.
	userID := uuid.New()

	if _, err := h.scheduler.EnqueueCaseListImport(c.Request().Context(), hospitalID, schedulingDate, storedPath, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrorWithCode("ENQUEUE_FAILED", err.Error()))
	}

	return c.JSON(http.StatusAccepted, response.Success(CaseListImportResponse{
		HospitalID:     hospitalID.String(),
		SchedulingDate: schedulingDate.Format("2006-01-02"),
		FilePath:       storedPath,
	}))
}

func (h *CaseListHandler) stageUpload(hospitalID uuid.UUID, fileHeader *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	destPath := filepath.Join(h.uploadDir, fmt.Sprintf("%s-%d%s", hospitalID, time.Now().UnixNano(), filepath.Ext(fileHeader.Filename)))

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create staged file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return "", fmt.Errorf("failed to stage uploaded file: %w", err)
	}

	return destPath, nil
}
