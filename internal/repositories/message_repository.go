package repositories

import (
	"context"

	"github.com/mural/backend/internal/models"
)

// MessageRepository defines data access for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message models.Message) error
	Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
}

// NotificationRepository defines data access for the append-only notification feed.
type NotificationRepository interface {
	Append(ctx context.Context, notification models.Notification) error
	ListFor(ctx context.Context, userID string) ([]models.Notification, error)
	CountFor(ctx context.Context, userID string) (int, error)
}
