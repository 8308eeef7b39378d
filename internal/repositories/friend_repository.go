package repositories

import (
	"context"
	"time"

	"github.com/mural/backend/internal/models"
)

// FriendRepository defines data access for friend requests and friendship edges.
type FriendRepository interface {
	CreateRequest(ctx context.Context, request models.FriendRequest) error
	FindRequest(ctx context.Context, requestID string) (models.FriendRequest, error)
	PendingFor(ctx context.Context, recipientID string) ([]models.FriendRequest, error)

	// Accept transitions a pending request to accepted and inserts both
	// friendship edges in a single transaction. ErrNotFound is returned
	// when no pending request with the given id exists.
	Accept(ctx context.Context, requestID string, respondedAt time.Time) (models.FriendRequest, error)
	Reject(ctx context.Context, requestID string, respondedAt time.Time) (models.FriendRequest, error)

	AreFriends(ctx context.Context, userID, friendID string) (bool, error)
	FriendsOf(ctx context.Context, userID string) ([]models.User, error)
}
