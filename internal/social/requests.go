package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mural/backend/internal/logging"
	"github.com/mural/backend/internal/models"
	"github.com/mural/backend/internal/repositories"
)

// Requests drives the friend-request lifecycle: pending requests either
// become accepted (creating both friendship edges) or rejected. Both
// outcomes are terminal.
type Requests struct {
	Friends       repositories.FriendRepository
	Users         repositories.UserRepository
	Notifications repositories.NotificationRepository

	// NowFunc supplies the clock; defaults to time.Now in UTC.
	NowFunc func() time.Time
}

// Send creates a pending request from sender to recipient. Self-requests
// fail with ErrSelfRequest, and a second pending request for the same
// directed pair fails with ErrDuplicateRequest.
func (s *Requests) Send(ctx context.Context, senderID, recipientID string) (models.FriendRequest, error) {
	if senderID == recipientID {
		return models.FriendRequest{}, ErrSelfRequest
	}

	sender, err := s.Users.FindByID(ctx, senderID)
	if err != nil {
		return models.FriendRequest{}, mapRepositoryError(err, "find sender")
	}
	if _, err := s.Users.FindByID(ctx, recipientID); err != nil {
		return models.FriendRequest{}, mapRepositoryError(err, "find recipient")
	}

	request := models.FriendRequest{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      models.RequestStatusPending,
		CreatedAt:   s.now(),
	}

	if err := s.Friends.CreateRequest(ctx, request); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return models.FriendRequest{}, ErrDuplicateRequest
		}
		return models.FriendRequest{}, mapRepositoryError(err, "create friend request")
	}

	s.notify(ctx, recipientID, fmt.Sprintf("%s sent you a friend request", sender.Username))

	return request, nil
}

// Accept resolves a pending request on behalf of the actor. Only the
// recipient may accept; the status flip and both friendship edges commit
// in a single transaction inside the repository.
func (s *Requests) Accept(ctx context.Context, requestID, actorID string) (models.FriendRequest, error) {
	request, err := s.resolveGuard(ctx, requestID, actorID)
	if err != nil {
		return models.FriendRequest{}, err
	}

	accepted, err := s.Friends.Accept(ctx, requestID, s.now())
	if err != nil {
		return models.FriendRequest{}, mapRepositoryError(err, "accept friend request")
	}

	if actor, err := s.Users.FindByID(ctx, actorID); err == nil {
		s.notify(ctx, request.SenderID, fmt.Sprintf("%s accepted your friend request", actor.Username))
	}

	return accepted, nil
}

// Reject resolves a pending request without creating any friendship edge.
func (s *Requests) Reject(ctx context.Context, requestID, actorID string) (models.FriendRequest, error) {
	if _, err := s.resolveGuard(ctx, requestID, actorID); err != nil {
		return models.FriendRequest{}, err
	}

	rejected, err := s.Friends.Reject(ctx, requestID, s.now())
	if err != nil {
		return models.FriendRequest{}, mapRepositoryError(err, "reject friend request")
	}

	return rejected, nil
}

// PendingFor returns the open requests addressed to the user.
func (s *Requests) PendingFor(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	requests, err := s.Friends.PendingFor(ctx, userID)
	if err != nil {
		return nil, mapRepositoryError(err, "list pending requests")
	}
	return requests, nil
}

// resolveGuard enforces the shared accept/reject preconditions: the request
// exists, the actor is its recipient, and it is still pending.
func (s *Requests) resolveGuard(ctx context.Context, requestID, actorID string) (models.FriendRequest, error) {
	request, err := s.Friends.FindRequest(ctx, requestID)
	if err != nil {
		return models.FriendRequest{}, mapRepositoryError(err, "find friend request")
	}

	if request.RecipientID != actorID {
		return models.FriendRequest{}, ErrForbidden
	}

	if request.Status != models.RequestStatusPending {
		return models.FriendRequest{}, validationErrorf("friend request already %s", request.Status)
	}

	return request, nil
}

// notify appends a feed event; a failure here never fails the triggering
// operation, it is only logged.
func (s *Requests) notify(ctx context.Context, userID, message string) {
	if s.Notifications == nil {
		return
	}

	err := s.Notifications.Append(ctx, models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		CreatedAt: s.now(),
	})
	if err != nil {
		logging.FromContext(ctx).Warn("append notification failed", "userId", userID, "error", err)
	}
}

func (s *Requests) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}
	return time.Now().UTC()
}

func mapRepositoryError(err error, op string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
