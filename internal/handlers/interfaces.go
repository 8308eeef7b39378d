package handlers

import (
	"context"
	"io"
	"time"

	"github.com/mural/backend/internal/models"
	"github.com/mural/backend/internal/social"
)

// UserStore captures the persistence operations required by the HTTP handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	SearchByUsername(ctx context.Context, prefix string, limit int) ([]models.User, error)
	Update(ctx context.Context, user models.User) error
	TouchLastSeen(ctx context.Context, id string, seenAt time.Time) error
}

// SessionManager issues, validates, and revokes authentication tokens.
type SessionManager interface {
	Issue(ctx context.Context, userID string) (models.SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error)
	Authenticate(ctx context.Context, accessToken string) (string, error)
	Revoke(ctx context.Context, refreshToken string)
}

// FriendService drives the friend-request workflow.
type FriendService interface {
	Send(ctx context.Context, senderID, recipientID string) (models.FriendRequest, error)
	Accept(ctx context.Context, requestID, actorID string) (models.FriendRequest, error)
	Reject(ctx context.Context, requestID, actorID string) (models.FriendRequest, error)
	PendingFor(ctx context.Context, userID string) ([]models.FriendRequest, error)
}

// GraphService answers friendship and feed queries.
type GraphService interface {
	FriendsOf(ctx context.Context, userID string) ([]models.User, error)
	Feed(ctx context.Context, userID string) ([]models.Post, error)
}

// ContentService drives posts, likes, and comments.
type ContentService interface {
	CreatePost(ctx context.Context, authorID, title, body string, attachments social.Attachments) (models.Post, error)
	GetPost(ctx context.Context, postID string) (models.Post, error)
	PostsBy(ctx context.Context, authorID string) ([]models.Post, error)
	DeletePost(ctx context.Context, actorID, postID string) error
	ToggleLike(ctx context.Context, userID, postID string) (bool, error)
	LikesCount(ctx context.Context, postID string) (int, error)
	AddComment(ctx context.Context, userID, postID, body string) (models.Comment, error)
	CommentsFor(ctx context.Context, postID string) ([]models.Comment, error)
}

// MessageService sends and lists direct messages.
type MessageService interface {
	Send(ctx context.Context, senderID, recipientID, body string) (models.Message, error)
	Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
}

// NotificationStore reads the per-user notification feed.
type NotificationStore interface {
	ListFor(ctx context.Context, userID string) ([]models.Notification, error)
	CountFor(ctx context.Context, userID string) (int, error)
}

// AttachmentStorage persists uploaded media under a generated name.
type AttachmentStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
