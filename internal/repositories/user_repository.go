package repositories

import (
	"context"
	"time"

	"github.com/mural/backend/internal/models"
)

// UserRepository defines the data access contract for users.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	SearchByUsername(ctx context.Context, prefix string, limit int) ([]models.User, error)
	Update(ctx context.Context, user models.User) error
	TouchLastSeen(ctx context.Context, id string, seenAt time.Time) error
}
