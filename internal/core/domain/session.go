package domain

import "time"

// DefaultSessionTTL is the lifetime of a session credential: 5 days.
const DefaultSessionTTL = 120 * time.Hour

// SessionCookieName is the cookie carrying the signed session credential.
const SessionCookieName = "session"

// Session is the server-side record behind a session credential. Only the
// signed token travels to the client; the record itself lives in Redis and
// disappears at logout or TTL expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Claims is the verified identity extracted from a session credential.
// It is request-scoped and only ever constructed after successful
// verification: no claims, no authenticated context.
type Claims struct {
	SessionID string
	UserID    string
	// ReadOnly marks demo-mode identities that must never perform writes.
	ReadOnly bool
}
