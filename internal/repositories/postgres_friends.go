package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mural/backend/internal/db"
	"github.com/mural/backend/internal/models"
)

// PostgresFriendRepository provides PostgreSQL-backed persistence for friend
// requests and friendship edges.
type PostgresFriendRepository struct {
	pool db.Pool
}

// NewPostgresFriendRepository constructs a friend repository backed by PostgreSQL.
func NewPostgresFriendRepository(pool db.Pool) *PostgresFriendRepository {
	return &PostgresFriendRepository{pool: pool}
}

// CreateRequest persists a new pending friend request. A pending request for
// the same (sender, recipient) pair violates a partial unique index and maps
// to ErrConflict.
func (r *PostgresFriendRepository) CreateRequest(ctx context.Context, request models.FriendRequest) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO friend_requests (id, sender_id, recipient_id, status, created_at, responded_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, request.ID, request.SenderID, request.RecipientID, request.Status, request.CreatedAt, request.RespondedAt)
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
		return fmt.Errorf("insert friend request: %w", err)
	}

	return nil
}

// FindRequest loads a single friend request by id.
func (r *PostgresFriendRepository) FindRequest(ctx context.Context, requestID string) (models.FriendRequest, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.FriendRequest{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, sender_id, recipient_id, status, created_at, responded_at
        FROM friend_requests
        WHERE id = $1
    `, requestID)

	request, err := scanFriendRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FriendRequest{}, ErrNotFound
		}
		return models.FriendRequest{}, fmt.Errorf("select friend request: %w", err)
	}

	return request, nil
}

// PendingFor returns pending requests addressed to the given recipient.
func (r *PostgresFriendRepository) PendingFor(ctx context.Context, recipientID string) ([]models.FriendRequest, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, sender_id, recipient_id, status, created_at, responded_at
        FROM friend_requests
        WHERE recipient_id = $1 AND status = $2
        ORDER BY created_at DESC
    `, recipientID, models.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("query pending friend requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FriendRequest
	for rows.Next() {
		request, err := scanFriendRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan friend request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate friend requests: %w", err)
	}

	return requests, nil
}

// Accept flips a pending request to accepted and inserts both friendship
// edges. All three writes commit together or not at all, so no reader can
// observe an accepted request without its edges or vice versa.
func (r *PostgresFriendRepository) Accept(ctx context.Context, requestID string, respondedAt time.Time) (models.FriendRequest, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.FriendRequest{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return models.FriendRequest{}, fmt.Errorf("begin accept transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
        UPDATE friend_requests
        SET status = $2, responded_at = $3
        WHERE id = $1 AND status = $4
        RETURNING id, sender_id, recipient_id, status, created_at, responded_at
    `, requestID, models.RequestStatusAccepted, respondedAt.UTC(), models.RequestStatusPending)

	request, err := scanFriendRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FriendRequest{}, ErrNotFound
		}
		return models.FriendRequest{}, fmt.Errorf("accept friend request: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO friendships (user_id, friend_id, created_at)
        VALUES ($1, $2, $3), ($2, $1, $3)
        ON CONFLICT (user_id, friend_id) DO NOTHING
    `, request.SenderID, request.RecipientID, respondedAt.UTC())
	if err != nil {
		return models.FriendRequest{}, fmt.Errorf("insert friendship edges: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.FriendRequest{}, fmt.Errorf("commit accept transaction: %w", err)
	}

	return request, nil
}

// Reject flips a pending request to rejected. No friendship edge is created.
func (r *PostgresFriendRepository) Reject(ctx context.Context, requestID string, respondedAt time.Time) (models.FriendRequest, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.FriendRequest{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        UPDATE friend_requests
        SET status = $2, responded_at = $3
        WHERE id = $1 AND status = $4
        RETURNING id, sender_id, recipient_id, status, created_at, responded_at
    `, requestID, models.RequestStatusRejected, respondedAt.UTC(), models.RequestStatusPending)

	request, err := scanFriendRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FriendRequest{}, ErrNotFound
		}
		return models.FriendRequest{}, fmt.Errorf("reject friend request: %w", err)
	}

	return request, nil
}

// AreFriends reports whether a directed friendship edge (userID -> friendID) exists.
func (r *PostgresFriendRepository) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var exists bool
	err = conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM friendships
            WHERE user_id = $1 AND friend_id = $2
        )
    `, userID, friendID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("select friendship edge: %w", err)
	}

	return exists, nil
}

// FriendsOf returns all users reachable via a friendship edge from userID.
func (r *PostgresFriendRepository) FriendsOf(ctx context.Context, userID string) ([]models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT u.id, u.username, u.email, u.password_hash, u.about_me, u.last_seen, u.created_at, u.updated_at
        FROM friendships f
        JOIN users u ON u.id = f.friend_id
        WHERE f.user_id = $1
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query friends: %w", err)
	}
	defer rows.Close()

	var friends []models.User
	for rows.Next() {
		friend, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		friends = append(friends, friend)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate friends: %w", err)
	}

	return friends, nil
}

func scanFriendRequest(row pgx.Row) (models.FriendRequest, error) {
	var (
		request     models.FriendRequest
		respondedAt sql.NullTime
	)

	err := row.Scan(&request.ID, &request.SenderID, &request.RecipientID,
		&request.Status, &request.CreatedAt, &respondedAt)
	if err != nil {
		return models.FriendRequest{}, err
	}

	if respondedAt.Valid {
		t := respondedAt.Time.UTC()
		request.RespondedAt = &t
	}

	return request, nil
}

var _ FriendRepository = (*PostgresFriendRepository)(nil)
