package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/qssun/attendance-backend-go/internal/domain/chat"
	"github.com/qssun/attendance-backend-go/internal/handler/http/response"
)

type ChatHandler interface {
	Send(w http.ResponseWriter, r *http.Request)
	Conversation(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
}

type chatHandlerImpl struct {
	chatService chat.ChatService
}

func NewChatHandler(chatService chat.ChatService) ChatHandler {
	return &chatHandlerImpl{
		chatService: chatService,
	}
}

// Send implements ChatHandler.
func (h *chatHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	var req chat.SendMessageRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Send message decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	msg, err := h.chatService.Send(r.Context(), currentUserID(r), req)
	if err != nil {
		slog.Error("Send message service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Message sent", msg)
}

// Conversation implements ChatHandler.
func (h *chatHandlerImpl) Conversation(w http.ResponseWriter, r *http.Request) {
	otherUserID := chi.URLParam(r, "userId")

	messages, err := h.chatService.Conversation(r.Context(), currentUserID(r), otherUserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, messages)
}

// MarkRead implements ChatHandler.
func (h *chatHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	fromUserID := chi.URLParam(r, "userId")

	if err := h.chatService.MarkRead(r.Context(), currentUserID(r), fromUserID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Conversation marked as read", nil)
}

// UnreadCount implements ChatHandler.
func (h *chatHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.chatService.UnreadCount(r.Context(), currentUserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"unread_count": count})
}
