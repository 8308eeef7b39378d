package handlers

import (
	"net/http"

	"github.com/mural/backend/internal/models"
)

// NotificationHandler exposes the read-only per-user notification feed.
type NotificationHandler struct {
	Notifications NotificationStore
}

// List handles GET /api/v1/notifications.
func (h NotificationHandler) List(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	notifications, err := h.Notifications.ListFor(ctx, userID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	count, err := h.Notifications.CountFor(ctx, userID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, notificationListResponse{Notifications: notifications, Count: count})
}

type notificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Count         int                   `json:"count"`
}
