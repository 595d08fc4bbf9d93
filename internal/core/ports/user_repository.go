package ports

import (
	"context"

	"github.com/manvaasam/platform/internal/core/domain"
)

// UserRepository defines persistence for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID retrieves a user record by its stable identifier.
	// Absence is reported as domain.ErrUserNotFound, not an error state.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByHubID retrieves the hub record owning the given hub identifier.
	FindByHubID(ctx context.Context, hubID string) (*domain.User, error)
	UpdateLanguage(ctx context.Context, id, language string) error
}
