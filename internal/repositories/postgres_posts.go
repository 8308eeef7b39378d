package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mural/backend/internal/db"
	"github.com/mural/backend/internal/models"
)

const postColumns = `id, author_id, title, body, image_file, audio_file, video_file, created_at`

// PostgresPostRepository provides PostgreSQL-backed persistence for posts.
type PostgresPostRepository struct {
	pool db.Pool
}

// NewPostgresPostRepository constructs a post repository backed by PostgreSQL.
func NewPostgresPostRepository(pool db.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

// Create stores a new post record.
func (r *PostgresPostRepository) Create(ctx context.Context, post models.Post) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO posts (id, author_id, title, body, image_file, audio_file, video_file, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, post.ID, post.AuthorID, post.Title, post.Body, post.ImageFile, post.AudioFile, post.VideoFile, post.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrConflict
			case "23503":
				return ErrNotFound
			}
		}
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

// FindByID fetches a post by primary key.
func (r *PostgresPostRepository) FindByID(ctx context.Context, postID string) (models.Post, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Post{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT `+postColumns+`
        FROM posts
        WHERE id = $1
    `, postID)

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, fmt.Errorf("select post: %w", err)
	}

	return post, nil
}

// ListByAuthor returns the author's posts, newest first.
func (r *PostgresPostRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT `+postColumns+`
        FROM posts
        WHERE author_id = $1
        ORDER BY created_at DESC, seq ASC
    `, authorID)
	if err != nil {
		return nil, fmt.Errorf("query posts by author: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListFeed returns the union of the user's own posts and posts authored by
// any confirmed friend, newest first. Two posts sharing a timestamp keep
// their insertion order via the seq tie-breaker.
func (r *PostgresPostRepository) ListFeed(ctx context.Context, userID string) ([]models.Post, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT `+postColumns+`
        FROM posts
        WHERE author_id = $1
           OR author_id IN (SELECT friend_id FROM friendships WHERE user_id = $1)
        ORDER BY created_at DESC, seq ASC
        LIMIT 100
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query home feed: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// Delete removes the post's likes and comments before the post itself, all
// in one transaction, so no dangling rows survive a partial failure.
func (r *PostgresPostRepository) Delete(ctx context.Context, postID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("delete post likes: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("delete post comments: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	return nil
}

func scanPost(row pgx.Row) (models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Body,
		&post.ImageFile, &post.AudioFile, &post.VideoFile, &post.CreatedAt)
	return post, err
}

func collectPosts(rows pgx.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

// PostgresLikeRepository provides PostgreSQL-backed persistence for likes.
type PostgresLikeRepository struct {
	pool db.Pool

	// NowFunc supplies like timestamps; defaults to time.Now.
	NowFunc func() time.Time
}

// NewPostgresLikeRepository constructs a like repository backed by PostgreSQL.
func NewPostgresLikeRepository(pool db.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

// Toggle flips the like inside one transaction. The delete-first ordering
// plus the (user_id, post_id) unique constraint keeps concurrent toggles
// from double-inserting: a racing insert lands on the constraint and the
// post simply stays liked.
func (r *PostgresLikeRepository) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin toggle transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        DELETE FROM likes
        WHERE user_id = $1 AND post_id = $2
    `, userID, postID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}

	liked := false
	if tag.RowsAffected() == 0 {
		now := time.Now().UTC()
		if r.NowFunc != nil {
			now = r.NowFunc()
		}

		_, err = tx.Exec(ctx, `
            INSERT INTO likes (user_id, post_id, created_at)
            VALUES ($1, $2, $3)
            ON CONFLICT (user_id, post_id) DO NOTHING
        `, userID, postID, now)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return false, ErrNotFound
			}
			return false, fmt.Errorf("insert like: %w", err)
		}
		liked = true
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit toggle transaction: %w", err)
	}

	return liked, nil
}

// Count returns the number of likes recorded for the post.
func (r *PostgresLikeRepository) Count(ctx context.Context, postID string) (int, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var count int
	err = conn.QueryRow(ctx, `
        SELECT COUNT(*) FROM likes WHERE post_id = $1
    `, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}

	return count, nil
}

// PostgresCommentRepository provides PostgreSQL-backed persistence for comments.
type PostgresCommentRepository struct {
	pool db.Pool
}

// NewPostgresCommentRepository constructs a comment repository backed by PostgreSQL.
func NewPostgresCommentRepository(pool db.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// Create stores a new comment record.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment models.Comment) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO comments (id, post_id, user_id, body, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, comment.ID, comment.PostID, comment.UserID, comment.Body, comment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// ListForPost returns the post's comments in chronological order.
func (r *PostgresCommentRepository) ListForPost(ctx context.Context, postID string) ([]models.Comment, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, post_id, user_id, body, created_at
        FROM comments
        WHERE post_id = $1
        ORDER BY created_at ASC
    `, postID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Body, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

var _ PostRepository = (*PostgresPostRepository)(nil)
var _ LikeRepository = (*PostgresLikeRepository)(nil)
var _ CommentRepository = (*PostgresCommentRepository)(nil)
