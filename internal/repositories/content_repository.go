package repositories

import (
	"context"

	"github.com/mural/backend/internal/models"
)

// PostRepository defines data access for posts and the home feed.
type PostRepository interface {
	Create(ctx context.Context, post models.Post) error
	FindByID(ctx context.Context, postID string) (models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)

	// ListFeed returns the user's own posts plus posts by confirmed friends,
	// newest first with ties broken by insertion order.
	ListFeed(ctx context.Context, userID string) ([]models.Post, error)

	// Delete removes the post together with its likes and comments in a
	// single transaction.
	Delete(ctx context.Context, postID string) error
}

// LikeRepository defines data access for like toggles.
type LikeRepository interface {
	// Toggle atomically flips the (userID, postID) like and reports whether
	// the post ends up liked by the user.
	Toggle(ctx context.Context, userID, postID string) (bool, error)
	Count(ctx context.Context, postID string) (int, error)
}

// CommentRepository defines data access for post comments.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) error
	ListForPost(ctx context.Context, postID string) ([]models.Comment, error)
}
