package social

import (
	"context"
	"sort"
	"time"

	"github.com/mural/backend/internal/models"
	"github.com/mural/backend/internal/repositories"
)

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]models.User)}
	for _, user := range users {
		s.users[user.ID] = user
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *fakeUserStore) SearchByUsername(_ context.Context, prefix string, _ int) ([]models.User, error) {
	var out []models.User
	for _, user := range s.users {
		if len(user.Username) >= len(prefix) && user.Username[:len(prefix)] == prefix {
			out = append(out, user)
		}
	}
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, user models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) TouchLastSeen(_ context.Context, id string, seenAt time.Time) error {
	user, ok := s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.LastSeen = seenAt
	s.users[id] = user
	return nil
}

type edge struct{ from, to string }

type fakeFriendStore struct {
	users    *fakeUserStore
	requests map[string]models.FriendRequest
	edges    map[edge]bool
}

func newFakeFriendStore(users *fakeUserStore) *fakeFriendStore {
	return &fakeFriendStore{
		users:    users,
		requests: make(map[string]models.FriendRequest),
		edges:    make(map[edge]bool),
	}
}

func (s *fakeFriendStore) CreateRequest(_ context.Context, request models.FriendRequest) error {
	for _, existing := range s.requests {
		if existing.SenderID == request.SenderID &&
			existing.RecipientID == request.RecipientID &&
			existing.Status == models.RequestStatusPending {
			return repositories.ErrConflict
		}
	}
	s.requests[request.ID] = request
	return nil
}

func (s *fakeFriendStore) FindRequest(_ context.Context, requestID string) (models.FriendRequest, error) {
	request, ok := s.requests[requestID]
	if !ok {
		return models.FriendRequest{}, repositories.ErrNotFound
	}
	return request, nil
}

func (s *fakeFriendStore) PendingFor(_ context.Context, recipientID string) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, request := range s.requests {
		if request.RecipientID == recipientID && request.Status == models.RequestStatusPending {
			out = append(out, request)
		}
	}
	return out, nil
}

func (s *fakeFriendStore) Accept(_ context.Context, requestID string, respondedAt time.Time) (models.FriendRequest, error) {
	request, ok := s.requests[requestID]
	if !ok || request.Status != models.RequestStatusPending {
		return models.FriendRequest{}, repositories.ErrNotFound
	}
	request.Status = models.RequestStatusAccepted
	request.RespondedAt = &respondedAt
	s.requests[requestID] = request
	s.edges[edge{request.SenderID, request.RecipientID}] = true
	s.edges[edge{request.RecipientID, request.SenderID}] = true
	return request, nil
}

func (s *fakeFriendStore) Reject(_ context.Context, requestID string, respondedAt time.Time) (models.FriendRequest, error) {
	request, ok := s.requests[requestID]
	if !ok || request.Status != models.RequestStatusPending {
		return models.FriendRequest{}, repositories.ErrNotFound
	}
	request.Status = models.RequestStatusRejected
	request.RespondedAt = &respondedAt
	s.requests[requestID] = request
	return request, nil
}

func (s *fakeFriendStore) AreFriends(_ context.Context, userID, friendID string) (bool, error) {
	return s.edges[edge{userID, friendID}], nil
}

func (s *fakeFriendStore) FriendsOf(ctx context.Context, userID string) ([]models.User, error) {
	var out []models.User
	for e := range s.edges {
		if e.from != userID {
			continue
		}
		friend, err := s.users.FindByID(ctx, e.to)
		if err != nil {
			friend = models.User{ID: e.to}
		}
		out = append(out, friend)
	}
	return out, nil
}

func (s *fakeFriendStore) befriend(a, b string) {
	s.edges[edge{a, b}] = true
	s.edges[edge{b, a}] = true
}

type fakePostStore struct {
	friends *fakeFriendStore
	posts   []models.Post
	deleted []string
}

func newFakePostStore(friends *fakeFriendStore) *fakePostStore {
	return &fakePostStore{friends: friends}
}

func (s *fakePostStore) Create(_ context.Context, post models.Post) error {
	s.posts = append(s.posts, post)
	return nil
}

func (s *fakePostStore) FindByID(_ context.Context, postID string) (models.Post, error) {
	for _, post := range s.posts {
		if post.ID == postID {
			return post, nil
		}
	}
	return models.Post{}, repositories.ErrNotFound
}

func (s *fakePostStore) ListByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	var out []models.Post
	for _, post := range s.posts {
		if post.AuthorID == authorID {
			out = append(out, post)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *fakePostStore) ListFeed(ctx context.Context, userID string) ([]models.Post, error) {
	var out []models.Post
	for _, post := range s.posts {
		if post.AuthorID == userID {
			out = append(out, post)
			continue
		}
		if s.friends != nil {
			if ok, _ := s.friends.AreFriends(ctx, userID, post.AuthorID); ok {
				out = append(out, post)
			}
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *fakePostStore) Delete(_ context.Context, postID string) error {
	for i, post := range s.posts {
		if post.ID == postID {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			s.deleted = append(s.deleted, postID)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// sortNewestFirst mirrors the repository ordering: creation time descending
// with insertion order preserved for ties.
func sortNewestFirst(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

type likeKey struct{ userID, postID string }

type fakeLikeStore struct {
	likes map[likeKey]bool
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{likes: make(map[likeKey]bool)}
}

func (s *fakeLikeStore) Toggle(_ context.Context, userID, postID string) (bool, error) {
	key := likeKey{userID, postID}
	if s.likes[key] {
		delete(s.likes, key)
		return false, nil
	}
	s.likes[key] = true
	return true, nil
}

func (s *fakeLikeStore) Count(_ context.Context, postID string) (int, error) {
	count := 0
	for key := range s.likes {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

type fakeCommentStore struct {
	comments []models.Comment
}

func (s *fakeCommentStore) Create(_ context.Context, comment models.Comment) error {
	s.comments = append(s.comments, comment)
	return nil
}

func (s *fakeCommentStore) ListForPost(_ context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID {
			out = append(out, comment)
		}
	}
	return out, nil
}

type fakeMessageStore struct {
	messages  []models.Message
	createErr error
}

func (s *fakeMessageStore) Create(_ context.Context, message models.Message) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.messages = append(s.messages, message)
	return nil
}

func (s *fakeMessageStore) Conversation(_ context.Context, userID, otherID string) ([]models.Message, error) {
	var out []models.Message
	for _, message := range s.messages {
		if (message.SenderID == userID && message.RecipientID == otherID) ||
			(message.SenderID == otherID && message.RecipientID == userID) {
			out = append(out, message)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeNotificationStore struct {
	appended  []models.Notification
	appendErr error
}

func (s *fakeNotificationStore) Append(_ context.Context, notification models.Notification) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, notification)
	return nil
}

func (s *fakeNotificationStore) ListFor(_ context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, notification := range s.appended {
		if notification.UserID == userID {
			out = append(out, notification)
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) CountFor(ctx context.Context, userID string) (int, error) {
	list, _ := s.ListFor(ctx, userID)
	return len(list), nil
}

var _ repositories.UserRepository = (*fakeUserStore)(nil)
var _ repositories.FriendRepository = (*fakeFriendStore)(nil)
var _ repositories.PostRepository = (*fakePostStore)(nil)
var _ repositories.LikeRepository = (*fakeLikeStore)(nil)
var _ repositories.CommentRepository = (*fakeCommentStore)(nil)
var _ repositories.MessageRepository = (*fakeMessageStore)(nil)
var _ repositories.NotificationRepository = (*fakeNotificationStore)(nil)
