package models

import "time"

// User represents an account within the Mural platform.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	AboutMe   string
	LastSeen  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Friend request statuses. Accepted and rejected are terminal.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

// FriendRequest is a proposal for a friendship, pending until resolved.
type FriendRequest struct {
	ID          string
	SenderID    string
	RecipientID string
	Status      string
	CreatedAt   time.Time
	RespondedAt *time.Time
}

// Friendship is one directed edge meaning "UserID considers FriendID a friend".
// A confirmed friendship is always materialized as both directions.
type Friendship struct {
	UserID    string
	FriendID  string
	CreatedAt time.Time
}

// Post is user-authored content with optional media attachments. The
// attachment fields hold storage locations, not raw bytes.
type Post struct {
	ID        string
	AuthorID  string
	Title     string
	Body      string
	ImageFile string
	AudioFile string
	VideoFile string
	CreatedAt time.Time
}

// Comment is free text attached to a post.
type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Body      string
	CreatedAt time.Time
}

// Message is a direct message between two confirmed friends.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Body        string
	CreatedAt   time.Time
}

// Notification is an append-only per-user event. There is no read/unread state.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	CreatedAt time.Time
}

// SessionTokens groups the bearer credentials issued to authenticated users.
type SessionTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}
