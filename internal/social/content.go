package social

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mural/backend/internal/models"
	"github.com/mural/backend/internal/repositories"
)

// Attachments holds the stored locations of a post's optional media files.
type Attachments struct {
	Image string
	Audio string
	Video string
}

// Content drives post authoring, deletion, likes, and comments.
type Content struct {
	Posts    repositories.PostRepository
	Likes    repositories.LikeRepository
	Comments repositories.CommentRepository

	// NowFunc supplies the clock; defaults to time.Now in UTC.
	NowFunc func() time.Time
}

// CreatePost records a new post. Title and body are required; attachment
// locations are stored as-is.
func (c *Content) CreatePost(ctx context.Context, authorID, title, body string, attachments Attachments) (models.Post, error) {
	if strings.TrimSpace(title) == "" {
		return models.Post{}, validationErrorf("post title must not be empty")
	}
	if strings.TrimSpace(body) == "" {
		return models.Post{}, validationErrorf("post body must not be empty")
	}

	post := models.Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Title:     title,
		Body:      body,
		ImageFile: attachments.Image,
		AudioFile: attachments.Audio,
		VideoFile: attachments.Video,
		CreatedAt: c.now(),
	}

	if err := c.Posts.Create(ctx, post); err != nil {
		return models.Post{}, mapRepositoryError(err, "create post")
	}

	return post, nil
}

// GetPost fetches a single post.
func (c *Content) GetPost(ctx context.Context, postID string) (models.Post, error) {
	post, err := c.Posts.FindByID(ctx, postID)
	if err != nil {
		return models.Post{}, mapRepositoryError(err, "find post")
	}
	return post, nil
}

// PostsBy returns the author's posts, newest first.
func (c *Content) PostsBy(ctx context.Context, authorID string) ([]models.Post, error) {
	posts, err := c.Posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, mapRepositoryError(err, "list posts by author")
	}
	return posts, nil
}

// DeletePost removes the post along with its likes and comments. Only the
// author may delete.
func (c *Content) DeletePost(ctx context.Context, actorID, postID string) error {
	post, err := c.Posts.FindByID(ctx, postID)
	if err != nil {
		return mapRepositoryError(err, "find post")
	}

	if post.AuthorID != actorID {
		return ErrForbidden
	}

	if err := c.Posts.Delete(ctx, postID); err != nil {
		return mapRepositoryError(err, "delete post")
	}

	return nil
}

// ToggleLike flips the user's like on the post and reports the resulting
// state. Calling it twice in succession restores the original state.
func (c *Content) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	if _, err := c.Posts.FindByID(ctx, postID); err != nil {
		return false, mapRepositoryError(err, "find post")
	}

	liked, err := c.Likes.Toggle(ctx, userID, postID)
	if err != nil {
		return false, mapRepositoryError(err, "toggle like")
	}

	return liked, nil
}

// LikesCount returns the number of likes recorded for the post.
func (c *Content) LikesCount(ctx context.Context, postID string) (int, error) {
	count, err := c.Likes.Count(ctx, postID)
	if err != nil {
		return 0, mapRepositoryError(err, "count likes")
	}
	return count, nil
}

// AddComment attaches free text to a post. Any authenticated user may
// comment on any post; only an empty body is refused.
func (c *Content) AddComment(ctx context.Context, userID, postID, body string) (models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return models.Comment{}, validationErrorf("comment body must not be empty")
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		Body:      body,
		CreatedAt: c.now(),
	}

	if err := c.Comments.Create(ctx, comment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Comment{}, ErrNotFound
		}
		return models.Comment{}, mapRepositoryError(err, "create comment")
	}

	return comment, nil
}

// CommentsFor returns the post's comments in chronological order.
func (c *Content) CommentsFor(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := c.Comments.ListForPost(ctx, postID)
	if err != nil {
		return nil, mapRepositoryError(err, "list comments")
	}
	return comments, nil
}

func (c *Content) now() time.Time {
	if c.NowFunc != nil {
		return c.NowFunc()
	}
	return time.Now().UTC()
}
