package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mural/backend/internal/models"
	"github.com/mural/backend/internal/repositories"
	"github.com/mural/backend/internal/social"
)

type stubUserStore struct {
	users     map[string]models.User
	createErr error
	created   []models.User
	touched   []string
}

func newStubUserStore(users ...models.User) *stubUserStore {
	s := &stubUserStore{users: make(map[string]models.User)}
	for _, user := range users {
		s.users[user.ID] = user
	}
	return s
}

func (s *stubUserStore) Create(_ context.Context, user models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.users[user.ID] = user
	s.created = append(s.created, user)
	return nil
}

func (s *stubUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *stubUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *stubUserStore) SearchByUsername(_ context.Context, prefix string, limit int) ([]models.User, error) {
	var out []models.User
	for _, user := range s.users {
		if len(out) == limit {
			break
		}
		if len(user.Username) >= len(prefix) && user.Username[:len(prefix)] == prefix {
			out = append(out, user)
		}
	}
	return out, nil
}

func (s *stubUserStore) Update(_ context.Context, user models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *stubUserStore) TouchLastSeen(_ context.Context, id string, seenAt time.Time) error {
	user, ok := s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.LastSeen = seenAt
	s.users[id] = user
	s.touched = append(s.touched, id)
	return nil
}

type stubSessionManager struct {
	issued      []string
	issueErr    error
	refreshErr  error
	authUserID  string
	authErr     error
	revoked     []string
	tokenSuffix int
}

func (s *stubSessionManager) Issue(_ context.Context, userID string) (models.SessionTokens, error) {
	if s.issueErr != nil {
		return models.SessionTokens{}, s.issueErr
	}
	s.issued = append(s.issued, userID)
	s.tokenSuffix++
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	return models.SessionTokens{
		AccessToken:      fmt.Sprintf("access-%d", s.tokenSuffix),
		AccessExpiresAt:  now.Add(15 * time.Minute),
		RefreshToken:     fmt.Sprintf("refresh-%d", s.tokenSuffix),
		RefreshExpiresAt: now.Add(24 * time.Hour),
	}, nil
}

func (s *stubSessionManager) Refresh(ctx context.Context, _ string) (models.SessionTokens, error) {
	if s.refreshErr != nil {
		return models.SessionTokens{}, s.refreshErr
	}
	return s.Issue(ctx, "refreshed")
}

func (s *stubSessionManager) Authenticate(_ context.Context, _ string) (string, error) {
	if s.authErr != nil {
		return "", s.authErr
	}
	return s.authUserID, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, refreshToken string) {
	s.revoked = append(s.revoked, refreshToken)
}

type stubFriendService struct {
	sendResult models.FriendRequest
	sendErr    error
	sentPairs  [][2]string

	acceptResult models.FriendRequest
	acceptErr    error
	rejectResult models.FriendRequest
	rejectErr    error
	resolved     [][2]string

	pending    []models.FriendRequest
	pendingErr error
}

func (s *stubFriendService) Send(_ context.Context, senderID, recipientID string) (models.FriendRequest, error) {
	if s.sendErr != nil {
		return models.FriendRequest{}, s.sendErr
	}
	s.sentPairs = append(s.sentPairs, [2]string{senderID, recipientID})
	return s.sendResult, nil
}

func (s *stubFriendService) Accept(_ context.Context, requestID, actorID string) (models.FriendRequest, error) {
	if s.acceptErr != nil {
		return models.FriendRequest{}, s.acceptErr
	}
	s.resolved = append(s.resolved, [2]string{requestID, actorID})
	return s.acceptResult, nil
}

func (s *stubFriendService) Reject(_ context.Context, requestID, actorID string) (models.FriendRequest, error) {
	if s.rejectErr != nil {
		return models.FriendRequest{}, s.rejectErr
	}
	s.resolved = append(s.resolved, [2]string{requestID, actorID})
	return s.rejectResult, nil
}

func (s *stubFriendService) PendingFor(_ context.Context, _ string) ([]models.FriendRequest, error) {
	if s.pendingErr != nil {
		return nil, s.pendingErr
	}
	return s.pending, nil
}

type stubGraphService struct {
	friends    []models.User
	friendsErr error
	feed       []models.Post
	feedErr    error
}

func (s *stubGraphService) FriendsOf(_ context.Context, _ string) ([]models.User, error) {
	return s.friends, s.friendsErr
}

func (s *stubGraphService) Feed(_ context.Context, _ string) ([]models.Post, error) {
	return s.feed, s.feedErr
}

type stubContentService struct {
	created   []models.Post
	createErr error

	post    models.Post
	postErr error

	posts []models.Post

	deleteErr error
	deleted   []string

	likeState bool
	likeErr   error

	likes    int
	likesErr error

	comment    models.Comment
	commentErr error
	comments   []models.Comment
}

func (s *stubContentService) CreatePost(_ context.Context, authorID, title, body string, attachments social.Attachments) (models.Post, error) {
	if s.createErr != nil {
		return models.Post{}, s.createErr
	}
	post := models.Post{
		ID:        fmt.Sprintf("post-%d", len(s.created)+1),
		AuthorID:  authorID,
		Title:     title,
		Body:      body,
		ImageFile: attachments.Image,
		AudioFile: attachments.Audio,
		VideoFile: attachments.Video,
	}
	s.created = append(s.created, post)
	return post, nil
}

func (s *stubContentService) GetPost(_ context.Context, _ string) (models.Post, error) {
	return s.post, s.postErr
}

func (s *stubContentService) PostsBy(_ context.Context, _ string) ([]models.Post, error) {
	return s.posts, nil
}

func (s *stubContentService) DeletePost(_ context.Context, _, postID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, postID)
	return nil
}

func (s *stubContentService) ToggleLike(_ context.Context, _, _ string) (bool, error) {
	if s.likeErr != nil {
		return false, s.likeErr
	}
	s.likeState = !s.likeState
	return s.likeState, nil
}

func (s *stubContentService) LikesCount(_ context.Context, _ string) (int, error) {
	return s.likes, s.likesErr
}

func (s *stubContentService) AddComment(_ context.Context, userID, postID, body string) (models.Comment, error) {
	if s.commentErr != nil {
		return models.Comment{}, s.commentErr
	}
	comment := models.Comment{ID: "comment-1", PostID: postID, UserID: userID, Body: body}
	s.comments = append(s.comments, comment)
	return comment, nil
}

func (s *stubContentService) CommentsFor(_ context.Context, _ string) ([]models.Comment, error) {
	return s.comments, nil
}

type stubMessageService struct {
	sent    []models.Message
	sendErr error
	thread  []models.Message
}

func (s *stubMessageService) Send(_ context.Context, senderID, recipientID, body string) (models.Message, error) {
	if s.sendErr != nil {
		return models.Message{}, s.sendErr
	}
	message := models.Message{ID: "message-1", SenderID: senderID, RecipientID: recipientID, Body: body}
	s.sent = append(s.sent, message)
	return message, nil
}

func (s *stubMessageService) Conversation(_ context.Context, _, _ string) ([]models.Message, error) {
	return s.thread, nil
}

type stubNotificationStore struct {
	notifications []models.Notification
	listErr       error
}

func (s *stubNotificationStore) ListFor(_ context.Context, _ string) ([]models.Notification, error) {
	return s.notifications, s.listErr
}

func (s *stubNotificationStore) CountFor(_ context.Context, _ string) (int, error) {
	return len(s.notifications), nil
}

type stubAttachmentStorage struct {
	saved   []string
	saveErr error
}

func (s *stubAttachmentStorage) Save(_ context.Context, name string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.saved = append(s.saved, name)
	return name, nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(string) bool { return true }

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string) bool { return false }

var (
	_ UserStore         = (*stubUserStore)(nil)
	_ SessionManager    = (*stubSessionManager)(nil)
	_ FriendService     = (*stubFriendService)(nil)
	_ GraphService      = (*stubGraphService)(nil)
	_ ContentService    = (*stubContentService)(nil)
	_ MessageService    = (*stubMessageService)(nil)
	_ NotificationStore = (*stubNotificationStore)(nil)
	_ AttachmentStorage = (*stubAttachmentStorage)(nil)
)
