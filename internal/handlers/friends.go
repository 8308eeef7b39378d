package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mural/backend/internal/models"
)

// FriendHandler exposes the friend-request workflow and friend listing.
type FriendHandler struct {
	Requests FriendService
	Graph    GraphService
	Users    UserStore
}

// List handles GET /api/v1/friends.
func (h FriendHandler) List(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	friends, err := h.Graph.FriendsOf(ctx, userID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	views := make([]*userView, 0, len(friends))
	for _, friend := range friends {
		views = append(views, newUserView(friend))
	}

	respondJSON(ctx, w, http.StatusOK, map[string][]*userView{"friends": views})
}

// Pending handles GET /api/v1/friends/requests.
func (h FriendHandler) Pending(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	requests, err := h.Requests.PendingFor(ctx, userID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, friendRequestListResponse{Requests: requests})
}

// Invite handles POST /api/v1/friends/invite. The recipient may be named by
// id or by username.
func (h FriendHandler) Invite(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var req inviteFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	recipientID := strings.TrimSpace(req.RecipientID)
	if recipientID == "" && strings.TrimSpace(req.RecipientUsername) != "" {
		recipient, err := h.Users.FindByUsername(ctx, strings.TrimSpace(req.RecipientUsername))
		if err != nil {
			respondError(ctx, w, err)
			return
		}
		recipientID = recipient.ID
	}

	if recipientID == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "recipient is required"})
		return
	}

	request, err := h.Requests.Send(ctx, userID, recipientID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, friendRequestResponse{Request: request})
}

// Respond handles POST /api/v1/friends/respond with action accept or reject.
func (h FriendHandler) Respond(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var req respondFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.RequestID = strings.TrimSpace(req.RequestID)
	if req.RequestID == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "requestId is required"})
		return
	}

	var (
		request models.FriendRequest
		err     error
	)

	switch req.Action {
	case "accept":
		request, err = h.Requests.Accept(ctx, req.RequestID, userID)
	case "reject":
		request, err = h.Requests.Reject(ctx, req.RequestID, userID)
	default:
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "action must be accept or reject"})
		return
	}

	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, friendRequestResponse{Request: request})
}

type inviteFriendRequest struct {
	RecipientID       string `json:"recipientId"`
	RecipientUsername string `json:"recipientUsername"`
}

type respondFriendRequest struct {
	RequestID string `json:"requestId"`
	Action    string `json:"action"`
}

type friendRequestResponse struct {
	Request models.FriendRequest `json:"request"`
}

type friendRequestListResponse struct {
	Requests []models.FriendRequest `json:"requests"`
}
