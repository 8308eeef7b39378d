package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mural/backend/internal/logging"
	"github.com/mural/backend/internal/models"
)

// UserHandler exposes profile and user discovery endpoints.
type UserHandler struct {
	Users   UserStore
	NowFunc func() time.Time
}

// Me handles GET /api/v1/users/me.
func (h UserHandler) Me(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]*userView{"user": newUserView(user)})
}

// UpdateProfile handles POST /api/v1/users/profile.
func (h UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	user.AboutMe = strings.TrimSpace(req.AboutMe)
	user.UpdatedAt = h.now()

	if err := h.Users.Update(ctx, user); err != nil {
		logging.FromContext(ctx).Error("update profile failed", "userId", userID, "error", err)
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]*userView{"user": newUserView(user)})
}

// Search handles GET /api/v1/users/search?q=prefix.
func (h UserHandler) Search(w http.ResponseWriter, r *http.Request, _ string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	prefix := strings.TrimSpace(r.URL.Query().Get("q"))
	if prefix == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "query parameter q is required"})
		return
	}

	users, err := h.Users.SearchByUsername(ctx, prefix, 20)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	views := make([]*userView, 0, len(users))
	for _, user := range users {
		views = append(views, newUserView(user))
	}

	respondJSON(ctx, w, http.StatusOK, map[string][]*userView{"users": views})
}

type updateProfileRequest struct {
	AboutMe string `json:"aboutMe"`
}

// userView is the public shape of a user record; the password hash never
// leaves the persistence boundary.
type userView struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	AboutMe  string    `json:"aboutMe,omitempty"`
	LastSeen time.Time `json:"lastSeen"`
}

func newUserView(user models.User) *userView {
	return &userView{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		AboutMe:  user.AboutMe,
		LastSeen: user.LastSeen,
	}
}

func (h UserHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
