package ports

import (
	"context"

	"github.com/nectarnook/catalog-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no row matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create inserts a new user and returns it with the assigned id.
	// Returns domain.ErrUserExists when the username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
