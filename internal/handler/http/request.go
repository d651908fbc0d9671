package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/qssun/attendance-backend-go/internal/domain/request"
	"github.com/qssun/attendance-backend-go/internal/handler/http/response"
)

type RequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	requestService request.RequestService
}

func NewRequestHandler(requestService request.RequestService) RequestHandler {
	return &RequestHandlerImpl{requestService: requestService}
}

// Submit implements RequestHandler.
func (h *RequestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.requestService.Submit(r.Context(), currentUserID(r), req)
	if err != nil {
		slog.Error("Submit request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted successfully", created)
}

// Decide implements RequestHandler.
func (h *RequestHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req request.DecideRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	decided, err := h.requestService.Decide(r.Context(), currentUserID(r), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("Decide request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, decided)
}

// ListMine implements RequestHandler.
func (h *RequestHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListMine(r.Context(), currentUserID(r))
	if err != nil {
		slog.Error("ListMine requests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// List implements RequestHandler.
func (h *RequestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := request.ListFilter{
		UserID: q.Get("user_id"),
		Type:   request.RequestType(q.Get("type")),
		Status: request.RequestStatus(q.Get("status")),
	}

	requests, err := h.requestService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List requests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}
