package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// AccountService maps verified identities to user records and enforces
// hub-manager authorization.
type AccountService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAccountService(users ports.UserRepository, log zerolog.Logger) *AccountService {
	return &AccountService{users: users, log: log}
}

// Resolve returns the user record behind a verified identifier.
// ErrUserNotFound is a valid state (mid-registration account) and is routed
// by callers to a generic landing view, never an error page.
func (s *AccountService) Resolve(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		s.log.Error().Err(err).Str("user_id", userID).Msg("user lookup failed")
		return nil, errors.Join(domain.ErrProviderDegraded, err)
	}
	return user, nil
}

// ResolveHub returns the hub record only when requesterID manages it.
// Not-found and access-denied stay distinct so callers can render 404 vs 403.
func (s *AccountService) ResolveHub(ctx context.Context, hubID, requesterID string) (*domain.User, error) {
	if hubID == "" {
		return nil, domain.ErrUserNotFound
	}
	hub, err := s.users.FindByHubID(ctx, hubID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		s.log.Error().Err(err).Str("hub_id", hubID).Msg("hub lookup failed")
		return nil, errors.Join(domain.ErrProviderDegraded, err)
	}
	if !hub.ManagesHub(requesterID) {
		return nil, domain.ErrAccessDenied
	}
	return hub, nil
}

func (s *AccountService) UpdateLanguage(ctx context.Context, userID, language string) error {
	if _, err := s.Resolve(ctx, userID); err != nil {
		return err
	}
	return s.users.UpdateLanguage(ctx, userID, language)
}
