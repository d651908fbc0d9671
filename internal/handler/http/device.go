package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/qssun/attendance-backend-go/internal/domain/attendance"
	"github.com/qssun/attendance-backend-go/internal/handler/http/response"
	"github.com/qssun/attendance-backend-go/internal/pkg/fingerprint"
)

type DeviceHandler interface {
	IngestEvents(w http.ResponseWriter, r *http.Request)
	Employees(w http.ResponseWriter, r *http.Request)
	Departments(w http.ResponseWriter, r *http.Request)
	Areas(w http.ResponseWriter, r *http.Request)
	Positions(w http.ResponseWriter, r *http.Request)
}

type DevicePunch struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	LogKey    string    `json:"log_key"`
}

type IngestEventsRequest struct {
	Events []DevicePunch `json:"events"`
}

type IngestEventsResponse struct {
	Accepted int `json:"accepted"`
	Failed   int `json:"failed"`
}

type deviceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	// nil when the personnel-API integration is disabled.
	fingerprintClient *fingerprint.Client
}

func NewDeviceHandler(attendanceService attendance.AttendanceService, fingerprintClient *fingerprint.Client) DeviceHandler {
	return &deviceHandlerImpl{
		attendanceService: attendanceService,
		fingerprintClient: fingerprintClient,
	}
}

// IngestEvents accepts a batch of punches pushed by the terminal
// bridge. Replayed log keys are absorbed by the service, so the
// endpoint is safe to retry.
func (h *deviceHandlerImpl) IngestEvents(w http.ResponseWriter, r *http.Request) {
	var req IngestEventsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Ingest device events decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if len(req.Events) == 0 {
		response.BadRequest(w, "No events supplied", nil)
		return
	}

	result := IngestEventsResponse{}
	for _, punch := range req.Events {
		event := attendance.DeviceEvent{
			UserID:    punch.UserID,
			Timestamp: punch.Timestamp,
			LogKey:    punch.LogKey,
		}
		if err := h.attendanceService.ApplyDeviceEvent(r.Context(), event); err != nil {
			slog.Error("Apply device event error", "log_key", punch.LogKey, "error", err)
			result.Failed++
			continue
		}
		result.Accepted++
	}

	response.Success(w, result)
}

// Employees implements DeviceHandler.
func (h *deviceHandlerImpl) Employees(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, func() (json.RawMessage, error) {
		return h.fingerprintClient.Employees(r.Context())
	})
}

// Departments implements DeviceHandler.
func (h *deviceHandlerImpl) Departments(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, func() (json.RawMessage, error) {
		return h.fingerprintClient.Departments(r.Context())
	})
}

// Areas implements DeviceHandler.
func (h *deviceHandlerImpl) Areas(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, func() (json.RawMessage, error) {
		return h.fingerprintClient.Areas(r.Context())
	})
}

// Positions implements DeviceHandler.
func (h *deviceHandlerImpl) Positions(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, func() (json.RawMessage, error) {
		return h.fingerprintClient.Positions(r.Context())
	})
}

func (h *deviceHandlerImpl) proxy(w http.ResponseWriter, r *http.Request, fetch func() (json.RawMessage, error)) {
	if h.fingerprintClient == nil {
		response.BadRequest(w, "Fingerprint integration is not enabled", nil)
		return
	}

	raw, err := fetch()
	if err != nil {
		slog.Error("Personnel API proxy error", "path", r.URL.Path, "error", err)
		response.InternalServerError(w, "Personnel API request failed")
		return
	}

	response.Success(w, raw)
}
