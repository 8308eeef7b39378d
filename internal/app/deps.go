package app

import (
	"context"
	"fmt"

	"github.com/mural/backend/internal/auth"
	"github.com/mural/backend/internal/config"
	"github.com/mural/backend/internal/db"
	"github.com/mural/backend/internal/handlers"
	"github.com/mural/backend/internal/middleware"
	"github.com/mural/backend/internal/repositories"
	"github.com/mural/backend/internal/social"
	"github.com/mural/backend/internal/storage"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config) (handlers.Dependencies, error) {
	users := repositories.NewPostgresUserRepository(pool)
	friends := repositories.NewPostgresFriendRepository(pool)
	posts := repositories.NewPostgresPostRepository(pool)
	likes := repositories.NewPostgresLikeRepository(pool)
	comments := repositories.NewPostgresCommentRepository(pool)
	messages := repositories.NewPostgresMessageRepository(pool)
	notifications := repositories.NewPostgresNotificationRepository(pool)
	sessionStore := repositories.NewPostgresSessionStore(pool)

	attachments, err := buildAttachmentStorage(ctx, cfg)
	if err != nil {
		return handlers.Dependencies{}, err
	}

	return handlers.Dependencies{
		Users:    users,
		Sessions: auth.NewManager(cfg.AccessTokenTTL, cfg.RefreshTokenTTL, sessionStore),
		Requests: &social.Requests{Friends: friends, Users: users, Notifications: notifications},
		Graph:    &social.Graph{Friends: friends, Posts: posts},
		Content:  &social.Content{Posts: posts, Likes: likes, Comments: comments},
		Messages: &social.Messenger{Messages: messages, Friends: friends, Users: users, Notifications: notifications},

		Notifications:  notifications,
		Attachments:    attachments,
		AuthLimiter:    middleware.NewIPRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow, cfg.LoginRateBurst, 0),
		MaxUploadBytes: cfg.MaxAttachmentBytes,
	}, nil
}

// buildAttachmentStorage prefers the object store and falls back to local
// disk when no bucket is configured.
func buildAttachmentStorage(ctx context.Context, cfg config.Config) (handlers.AttachmentStorage, error) {
	if cfg.ObjectStore.Bucket != "" {
		store, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
		if err != nil {
			return nil, fmt.Errorf("configure object store: %w", err)
		}
		return store, nil
	}

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("configure local upload storage: %w", err)
	}
	return store, nil
}
