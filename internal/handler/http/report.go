package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/qssun/attendance-backend-go/internal/domain/report"
	"github.com/qssun/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	ListArchived(w http.ResponseWriter, r *http.Request)
	GetArchived(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService  report.ReportService
	archiveService report.ArchiveService
}

func NewReportHandler(reportService report.ReportService, archiveService report.ArchiveService) ReportHandler {
	return &reportHandlerImpl{
		reportService:  reportService,
		archiveService: archiveService,
	}
}

// Generate implements ReportHandler.
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req report.GenerateReportRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Generate report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reportService.Generate(r.Context(), req)
	if err != nil {
		slog.Error("Generate report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Monthly implements ReportHandler.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GenerateMonthly(r.Context())
	if err != nil {
		slog.Error("Monthly report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListArchived implements ReportHandler.
func (h *reportHandlerImpl) ListArchived(w http.ResponseWriter, r *http.Request) {
	periods, err := h.archiveService.List(r.Context())
	if err != nil {
		slog.Error("List archived reports error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string][]string{"periods": periods})
}

// GetArchived implements ReportHandler.
func (h *reportHandlerImpl) GetArchived(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")

	result, err := h.archiveService.Get(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
