package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/rs/zerolog"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// LiveVerifier validates a credential's signature and expiry, then confirms
// the server-side session still exists. A missing session means the
// credential was revoked: the requester is treated exactly like one with no
// cookie at all. A store failure is surfaced as ErrProviderDegraded, never
// as a granted identity.
type LiveVerifier struct {
	sessions   ports.SessionStore
	signingKey string
	log        zerolog.Logger
}

func NewLiveVerifier(sessions ports.SessionStore, signingKey string, log zerolog.Logger) *LiveVerifier {
	return &LiveVerifier{sessions: sessions, signingKey: signingKey, log: log}
}

func (v *LiveVerifier) Verify(ctx context.Context, credential string) (*domain.Claims, error) {
	if credential == "" {
		return nil, domain.ErrUnauthenticated
	}

	sid, uid, err := ParseCredential(credential, v.signingKey)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	sess, err := v.sessions.Get(ctx, sid)
	if err != nil {
		v.log.Error().Err(err).Msg("session store unreachable during verification")
		return nil, domain.ErrProviderDegraded
	}
	if sess == nil || sess.Expired(time.Now().UTC()) {
		return nil, domain.ErrUnauthenticated
	}
	if sess.UserID != uid {
		// Token and record disagree: treat as tampered.
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Claims{SessionID: sid, UserID: uid}, nil
}

// DemoVerifier is the degraded-mode strategy, selected explicitly at startup
// when no live identity backend is configured. It accepts exactly one
// preconfigured token and yields a fixed read-only identity; any other
// credential is unauthenticated. Loosely-validated fallback tokens are
// deliberately not supported.
type DemoVerifier struct {
	token  string
	userID string
}

func NewDemoVerifier(token, userID string) *DemoVerifier {
	if userID == "" {
		userID = "demo"
	}
	return &DemoVerifier{token: token, userID: userID}
}

func (v *DemoVerifier) Verify(_ context.Context, credential string) (*domain.Claims, error) {
	if v.token == "" || credential == "" {
		return nil, domain.ErrUnauthenticated
	}
	if subtle.ConstantTimeCompare([]byte(credential), []byte(v.token)) != 1 {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Claims{SessionID: "demo", UserID: v.userID, ReadOnly: true}, nil
}
