package handlers

import (
	"net/http"
	"testing"

	"github.com/mural/backend/internal/models"
	"github.com/mural/backend/internal/social"
)

func TestMessageSend(t *testing.T) {
	svc := &stubMessageService{}
	handler := MessageHandler{Messages: svc}

	rec := postAuthedJSON(t, handler.Send, "/api/v1/messages", "alice-id", sendMessageRequest{RecipientID: "bob-id", Body: "hey bob"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.sent) != 1 {
		t.Fatalf("expected 1 sent message, got %d", len(svc.sent))
	}
	sent := svc.sent[0]
	if sent.SenderID != "alice-id" || sent.RecipientID != "bob-id" || sent.Body != "hey bob" {
		t.Fatalf("unexpected message %+v", sent)
	}
}

func TestMessageSendRequiresRecipient(t *testing.T) {
	handler := MessageHandler{Messages: &stubMessageService{}}

	rec := postAuthedJSON(t, handler.Send, "/api/v1/messages", "alice-id", sendMessageRequest{Body: "hey"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMessageSendNonFriend(t *testing.T) {
	handler := MessageHandler{Messages: &stubMessageService{sendErr: social.ErrForbidden}}

	rec := postAuthedJSON(t, handler.Send, "/api/v1/messages", "alice-id", sendMessageRequest{RecipientID: "carol-id", Body: "hey"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestMessageSendOversizedBody(t *testing.T) {
	handler := MessageHandler{Messages: &stubMessageService{sendErr: &social.ValidationError{Msg: "message body exceeds 500 characters"}}}

	rec := postAuthedJSON(t, handler.Send, "/api/v1/messages", "alice-id", sendMessageRequest{RecipientID: "bob-id", Body: "x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMessageConversation(t *testing.T) {
	svc := &stubMessageService{thread: []models.Message{
		{ID: "m1", SenderID: "alice-id", RecipientID: "bob-id", Body: "first"},
		{ID: "m2", SenderID: "bob-id", RecipientID: "alice-id", Body: "second"},
	}}
	handler := MessageHandler{Messages: svc}

	rec := getAuthed(t, handler.Conversation, "/api/v1/messages/conversation?with=bob-id", "alice-id")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp messageListResponse
	decodeBody(t, rec, &resp)
	if len(resp.Messages) != 2 || resp.Messages[0].Body != "first" {
		t.Fatalf("unexpected conversation payload %+v", resp.Messages)
	}
}

func TestMessageConversationRequiresPeer(t *testing.T) {
	handler := MessageHandler{Messages: &stubMessageService{}}

	rec := getAuthed(t, handler.Conversation, "/api/v1/messages/conversation", "alice-id")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestNotificationList(t *testing.T) {
	store := &stubNotificationStore{notifications: []models.Notification{
		{ID: "n1", UserID: "bob-id", Message: "alice sent you a friend request"},
		{ID: "n2", UserID: "bob-id", Message: "New message from alice"},
	}}
	handler := NotificationHandler{Notifications: store}

	rec := getAuthed(t, handler.List, "/api/v1/notifications", "bob-id")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp notificationListResponse
	decodeBody(t, rec, &resp)
	if len(resp.Notifications) != 2 || resp.Count != 2 {
		t.Fatalf("unexpected notification payload %+v", resp)
	}
}
