package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/qssun/attendance-backend-go/internal/domain/location"
	"github.com/qssun/attendance-backend-go/internal/handler/http/response"
)

type LocationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type LocationHandlerImpl struct {
	locationService location.LocationService
}

func NewLocationHandler(locationService location.LocationService) LocationHandler {
	return &LocationHandlerImpl{locationService: locationService}
}

// Create implements LocationHandler.
func (h *LocationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req location.CreateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create location decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.locationService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create location service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Location created successfully", created)
}

// Update implements LocationHandler.
func (h *LocationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req location.UpdateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update location decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.locationService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("Update location service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete implements LocationHandler.
func (h *LocationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.locationService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete location service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location deleted successfully", nil)
}

// List implements LocationHandler.
func (h *LocationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationService.List(r.Context())
	if err != nil {
		slog.Error("List locations service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, locations)
}
