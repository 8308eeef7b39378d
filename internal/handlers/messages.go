package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mural/backend/internal/models"
)

// MessageHandler exposes direct messaging between confirmed friends.
type MessageHandler struct {
	Messages MessageService
}

// Send handles POST /api/v1/messages.
func (h MessageHandler) Send(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.RecipientID = strings.TrimSpace(req.RecipientID)
	if req.RecipientID == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "recipientId is required"})
		return
	}

	message, err := h.Messages.Send(ctx, userID, req.RecipientID, req.Body)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, messageResponse{Message: message})
}

// Conversation handles GET /api/v1/messages/conversation?with=userId.
func (h MessageHandler) Conversation(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	otherID := strings.TrimSpace(r.URL.Query().Get("with"))
	if otherID == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "query parameter with is required"})
		return
	}

	messages, err := h.Messages.Conversation(ctx, userID, otherID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, messageListResponse{Messages: messages})
}

type sendMessageRequest struct {
	RecipientID string `json:"recipientId"`
	Body        string `json:"body"`
}

type messageResponse struct {
	Message models.Message `json:"message"`
}

type messageListResponse struct {
	Messages []models.Message `json:"messages"`
}
