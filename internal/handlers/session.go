package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/mural/backend/internal/logging"
)

// authedFunc is an HTTP handler that additionally receives the id of the
// authenticated user.
type authedFunc func(w http.ResponseWriter, r *http.Request, userID string)

// requireUser wraps a handler with bearer-token authentication. On success
// the user's last-seen timestamp is touched best-effort.
func requireUser(sessions SessionManager, users UserStore, next authedFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := bearerToken(r)
		if token == "" {
			respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			return
		}

		userID, err := sessions.Authenticate(ctx, token)
		if err != nil {
			logging.FromContext(ctx).Warn("authentication failed", "error", err)
			respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired session"})
			return
		}

		if users != nil {
			if err := users.TouchLastSeen(ctx, userID, time.Now().UTC()); err != nil {
				logging.FromContext(ctx).Warn("touch last seen failed", "userId", userID, "error", err)
			}
		}

		next(w, r, userID)
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
