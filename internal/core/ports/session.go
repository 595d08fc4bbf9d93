package ports

import (
	"context"

	"github.com/manvaasam/platform/internal/core/domain"
)

// SessionStore persists server-side session records. Implementations must
// remain stateless between calls; Redis is the canonical backend.
type SessionStore interface {
	Create(ctx context.Context, s domain.Session) error
	// Get returns (nil, nil) when no session exists for the given ID.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionVerifier validates a session credential and yields verified claims.
// Implementations fail closed: any failure is domain.ErrUnauthenticated or
// domain.ErrProviderDegraded, never a silently granted identity.
type SessionVerifier interface {
	Verify(ctx context.Context, credential string) (*domain.Claims, error)
}
