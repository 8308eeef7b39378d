package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mural/backend/internal/auth"
	"github.com/mural/backend/internal/models"
)

func TestRequireUserPassesUserID(t *testing.T) {
	users := newStubUserStore(models.User{ID: "u1", Username: "alice"})
	sessions := &stubSessionManager{authUserID: "u1"}

	var gotUserID string
	handler := requireUser(sessions, users, func(w http.ResponseWriter, _ *http.Request, userID string) {
		gotUserID = userID
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotUserID != "u1" {
		t.Fatalf("expected u1, got %q", gotUserID)
	}
	if len(users.touched) != 1 || users.touched[0] != "u1" {
		t.Fatalf("expected last seen touch for u1, got %v", users.touched)
	}
}

func TestRequireUserMissingToken(t *testing.T) {
	handler := requireUser(&stubSessionManager{authUserID: "u1"}, newStubUserStore(), func(http.ResponseWriter, *http.Request, string) {
		t.Fatal("handler must not run without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireUserInvalidSession(t *testing.T) {
	sessions := &stubSessionManager{authErr: auth.ErrAccessTokenExpired}
	handler := requireUser(sessions, newStubUserStore(), func(http.ResponseWriter, *http.Request, string) {
		t.Fatal("handler must not run with an expired token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"Bearer   abc123  ", "abc123"},
		{"", ""},
		{"Basic abc123", ""},
		{"abc123", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		if got := bearerToken(req); got != tc.want {
			t.Fatalf("header %q: got %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	HealthHandler{}.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected health payload %v", body)
	}
}

func TestRegisterRoutesProtectsAuthedEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	RegisterRoutes(mux, Dependencies{
		Users:         newStubUserStore(),
		Sessions:      &stubSessionManager{authErr: auth.ErrSessionNotFound},
		Requests:      &stubFriendService{},
		Graph:         &stubGraphService{},
		Content:       &stubContentService{},
		Messages:      &stubMessageService{},
		Notifications: &stubNotificationStore{},
		Attachments:   &stubAttachmentStorage{},
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	for _, path := range []string{
		"/api/v1/users/me",
		"/api/v1/friends",
		"/api/v1/feed",
		"/api/v1/notifications",
	} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("GET %s: expected 401, got %d", path, resp.StatusCode)
		}
	}

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health endpoint should be public, got %d", resp.StatusCode)
	}
}
