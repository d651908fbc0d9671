package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/qssun/attendance-backend-go/internal/domain/settings"
	"github.com/qssun/attendance-backend-go/internal/handler/http/response"
	"github.com/qssun/attendance-backend-go/internal/pkg/fingerprint"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	TestFingerprint(w http.ResponseWriter, r *http.Request)
}

type TestFingerprintRequest struct {
	BaseURL  string `json:"base_url"`
	AuthMode string `json:"auth_mode"`
	Username string `json:"username"`
	Password string `json:"password"`
	JWTToken string `json:"jwt_token"`
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{
		settingsService: settingsService,
	}
}

// Get implements SettingsHandler.
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	current, err := h.settingsService.Get(r.Context())
	if err != nil {
		slog.Error("Get settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, current)
}

// Update implements SettingsHandler.
func (h *settingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSettingsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update settings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.settingsService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", updated)
}

// TestFingerprint probes the personnel API with credentials from the
// request body. Nothing is persisted; the caller decides whether to
// save the configuration afterwards.
func (h *settingsHandlerImpl) TestFingerprint(w http.ResponseWriter, r *http.Request) {
	var req TestFingerprintRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.BaseURL == "" {
		response.BadRequest(w, "base_url is required", nil)
		return
	}

	mode := fingerprint.AuthMode(req.AuthMode)
	if mode != fingerprint.AuthBasic && mode != fingerprint.AuthJWT {
		mode = fingerprint.AuthBasic
	}

	result := fingerprint.TestConnection(r.Context(), req.BaseURL, mode, req.Username, req.Password, req.JWTToken)

	response.Success(w, result)
}
