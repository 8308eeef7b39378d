package social

import (
	"context"

	"github.com/mural/backend/internal/models"
	"github.com/mural/backend/internal/repositories"
)

// Graph answers friendship queries and composes the home feed. Friendship is
// symmetric (both directed edges always exist together) but never transitive.
type Graph struct {
	Friends repositories.FriendRepository
	Posts   repositories.PostRepository
}

// FriendsOf returns every user reachable via a friendship edge from userID.
// The result carries no particular order.
func (g *Graph) FriendsOf(ctx context.Context, userID string) ([]models.User, error) {
	friends, err := g.Friends.FriendsOf(ctx, userID)
	if err != nil {
		return nil, mapRepositoryError(err, "list friends")
	}
	return friends, nil
}

// IsFriends reports whether the directed edge (a -> b) exists. This is the
// authorization predicate for direct messaging.
func (g *Graph) IsFriends(ctx context.Context, a, b string) (bool, error) {
	ok, err := g.Friends.AreFriends(ctx, a, b)
	if err != nil {
		return false, mapRepositoryError(err, "check friendship")
	}
	return ok, nil
}

// Feed returns the user's own posts together with posts authored by any
// friend, newest first. Posts sharing a creation timestamp keep their
// insertion order.
func (g *Graph) Feed(ctx context.Context, userID string) ([]models.Post, error) {
	posts, err := g.Posts.ListFeed(ctx, userID)
	if err != nil {
		return nil, mapRepositoryError(err, "list feed")
	}
	return posts, nil
}
