package ports

import (
	"context"

	"github.com/nectarnook/catalog-api/internal/core/domain"
)

// AuthService defines registration, login, and token verification.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login returns a signed bearer token on success.
	Login(ctx context.Context, username, password string) (string, error)
	// VerifyToken returns the authenticated subject (username) embedded in
	// a valid, unexpired token.
	VerifyToken(token string) (string, error)
}
