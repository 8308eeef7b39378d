package social

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mural/backend/internal/logging"
	"github.com/mural/backend/internal/models"
	"github.com/mural/backend/internal/repositories"
)

// MaxMessageLength bounds direct message bodies, in runes.
const MaxMessageLength = 500

// Messenger sends direct messages between confirmed friends. Every delivered
// message appends a notification to the recipient's feed; a notification
// write failure is logged but never fails the send.
type Messenger struct {
	Messages      repositories.MessageRepository
	Friends       repositories.FriendRepository
	Users         repositories.UserRepository
	Notifications repositories.NotificationRepository

	// NowFunc supplies the clock; defaults to time.Now in UTC.
	NowFunc func() time.Time
}

// Send persists a message from sender to recipient. Non-friends are refused
// with ErrForbidden; an empty or oversized body fails validation.
func (m *Messenger) Send(ctx context.Context, senderID, recipientID, body string) (models.Message, error) {
	if body == "" {
		return models.Message{}, validationErrorf("message body must not be empty")
	}
	if utf8.RuneCountInString(body) > MaxMessageLength {
		return models.Message{}, validationErrorf("message body exceeds %d characters", MaxMessageLength)
	}

	friends, err := m.Friends.AreFriends(ctx, senderID, recipientID)
	if err != nil {
		return models.Message{}, mapRepositoryError(err, "check friendship")
	}
	if !friends {
		return models.Message{}, ErrForbidden
	}

	message := models.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   m.now(),
	}

	if err := m.Messages.Create(ctx, message); err != nil {
		return models.Message{}, mapRepositoryError(err, "create message")
	}

	if sender, err := m.Users.FindByID(ctx, senderID); err == nil {
		m.notifyRecipient(ctx, recipientID, sender.Username)
	}

	return message, nil
}

// Conversation returns all messages between the two users in chronological order.
func (m *Messenger) Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	messages, err := m.Messages.Conversation(ctx, userID, otherID)
	if err != nil {
		return nil, mapRepositoryError(err, "list conversation")
	}
	return messages, nil
}

func (m *Messenger) notifyRecipient(ctx context.Context, recipientID, senderName string) {
	if m.Notifications == nil {
		return
	}

	err := m.Notifications.Append(ctx, models.Notification{
		ID:        uuid.NewString(),
		UserID:    recipientID,
		Message:   fmt.Sprintf("New message from %s", senderName),
		CreatedAt: m.now(),
	})
	if err != nil {
		logging.FromContext(ctx).Warn("append message notification failed", "userId", recipientID, "error", err)
	}
}

func (m *Messenger) now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return time.Now().UTC()
}
