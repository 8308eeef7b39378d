package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mural/backend/internal/auth"
	"github.com/mural/backend/internal/logging"
	"github.com/mural/backend/internal/repositories"
	"github.com/mural/backend/internal/social"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

// respondError translates domain failures into transport statuses. All of
// them are locally recoverable; only unknown errors are treated as 500s.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *social.ValidationError

	switch {
	case errors.Is(err, social.ErrSelfRequest):
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &verr):
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": verr.Msg})
	case errors.Is(err, social.ErrForbidden):
		respondJSON(ctx, w, http.StatusForbidden, map[string]string{"error": "operation not permitted"})
	case errors.Is(err, social.ErrNotFound), errors.Is(err, repositories.ErrNotFound):
		respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, social.ErrDuplicateRequest), errors.Is(err, repositories.ErrConflict):
		respondJSON(ctx, w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, auth.ErrSessionNotFound), errors.Is(err, auth.ErrAccessTokenExpired), errors.Is(err, auth.ErrRefreshTokenExpired):
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
	default:
		logging.FromContext(ctx).Error("unhandled error", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
