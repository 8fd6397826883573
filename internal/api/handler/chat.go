package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/api/middleware"
	"github.com/nmehta6/shopassist/internal/api/response"
	"github.com/nmehta6/shopassist/internal/assistant"
	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/nmehta6/shopassist/internal/service"
)

// ChatHandler handles chat and conversation endpoints
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage handles an inbound chat message
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input struct {
		ConversationID string `json:"conversation_id"`
		Message        string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	conversationID := uuid.Nil
	if input.ConversationID != "" {
		parsed, err := uuid.Parse(input.ConversationID)
		if err != nil {
			response.BadRequest(w, "invalid conversation ID")
			return
		}
		conversationID = parsed
	}

	reply, err := h.chatService.SendMessage(r.Context(), userID, conversationID, input.Message)
	if err != nil {
		var rateErr *assistant.RateLimitError
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			response.BadRequest(w, "message is required")
		case errors.As(err, &rateErr):
			response.TooManyRequests(w, map[string]any{
				"message":     rateErr.Error(),
				"retry_after": int(math.Ceil(rateErr.Wait.Seconds())),
			})
		case errors.Is(err, domain.ErrNotFound):
			response.NotFound(w, "conversation not found")
		default:
			response.InternalError(w, "failed to process message")
		}
		return
	}

	response.OK(w, reply)
}

// ListConversations lists the caller's conversations
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	conversations, err := h.chatService.ListConversations(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "failed to list conversations")
		return
	}

	response.OK(w, conversations)
}

// GetConversation returns one conversation with its full transcript
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, conversationID, ok := h.conversationScope(w, r)
	if !ok {
		return
	}

	conv, err := h.chatService.GetConversation(r.Context(), userID, conversationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "conversation not found")
			return
		}
		response.InternalError(w, "failed to get conversation")
		return
	}

	response.OK(w, conv)
}

// DeleteConversation removes a conversation
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, conversationID, ok := h.conversationScope(w, r)
	if !ok {
		return
	}

	if err := h.chatService.DeleteConversation(r.Context(), userID, conversationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "conversation not found")
			return
		}
		response.InternalError(w, "failed to delete conversation")
		return
	}

	response.NoContent(w)
}

// EndConversation marks a conversation inactive
func (h *ChatHandler) EndConversation(w http.ResponseWriter, r *http.Request) {
	userID, conversationID, ok := h.conversationScope(w, r)
	if !ok {
		return
	}

	if err := h.chatService.EndConversation(r.Context(), userID, conversationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "conversation not found")
			return
		}
		response.InternalError(w, "failed to end conversation")
		return
	}

	response.OK(w, map[string]string{"message": "conversation ended"})
}

// LeaveFeedback records a rating on a conversation
func (h *ChatHandler) LeaveFeedback(w http.ResponseWriter, r *http.Request) {
	userID, conversationID, ok := h.conversationScope(w, r)
	if !ok {
		return
	}

	var fb domain.Feedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(fb); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	if err := h.chatService.LeaveFeedback(r.Context(), userID, conversationID, fb); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "conversation not found")
			return
		}
		response.InternalError(w, "failed to save feedback")
		return
	}

	response.OK(w, map[string]string{"message": "feedback saved"})
}

func (h *ChatHandler) conversationScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	conversationID, err := uuid.Parse(chi.URLParam(r, "conversationID"))
	if err != nil {
		response.BadRequest(w, "invalid conversation ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, conversationID, true
}
