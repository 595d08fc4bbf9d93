package ports

import (
	"context"

	"github.com/manvaasam/platform/internal/core/domain"
)

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Role         domain.Role
	HubID        string
	RestaurantID string
	Language     string
}

// LoginResult is returned on successful authentication. Token is the signed
// session credential to be set as the session cookie.
type LoginResult struct {
	Token     string
	ExpiresIn int // seconds
	User      *domain.User
}

// AuthService implements registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout destroys the session behind the credential. Idempotent: a
	// second call for the same credential succeeds without effect.
	Logout(ctx context.Context, credential string) error
}

// AccountService resolves verified identities to user records and enforces
// role-scoped authorization.
type AccountService interface {
	// Resolve maps a verified user identifier to its record.
	// domain.ErrUserNotFound is a valid mid-registration state.
	Resolve(ctx context.Context, userID string) (*domain.User, error)
	// ResolveHub returns the hub record owning hubID only when requesterID
	// manages it; a mismatch yields domain.ErrAccessDenied, distinct from
	// not-found.
	ResolveHub(ctx context.Context, hubID, requesterID string) (*domain.User, error)
	UpdateLanguage(ctx context.Context, userID, language string) error
}
