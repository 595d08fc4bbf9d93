package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manvaasam/platform/internal/core/domain"
)

const sessionPrefix = "session:"

// SessionStore persists session records in Redis with a TTL matching the
// session expiry, so expired sessions vanish without a reaper.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) key(sessionID string) string {
	return sessionPrefix + sessionID
}

func (s *SessionStore) Create(ctx context.Context, sess domain.Session) error {
	if sess.ID == "" || sess.UserID == "" {
		return fmt.Errorf("session: missing id or user_id")
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session: expires_at must be in the future")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	return s.client.Set(ctx, s.key(sess.ID), data, ttl).Err()
}

// Get returns (nil, nil) when no session exists: absence is a verification
// outcome, not a store failure.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
