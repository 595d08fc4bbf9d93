package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

const testSigningKey = "test-signing-key"

type stubUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	byHub   map[string]*domain.User
	err     error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    map[string]*domain.User{},
		byEmail: map[string]*domain.User{},
		byHub:   map[string]*domain.User{},
	}
}

func (r *stubUserRepo) add(u *domain.User) {
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	if u.HubID != "" {
		r.byHub[u.HubID] = u
	}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.add(user)
	return user, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByHubID(_ context.Context, hubID string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byHub[hubID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) UpdateLanguage(_ context.Context, id, language string) error {
	if r.err != nil {
		return r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Language = language
	return nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	err      error
	deletes  int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: map[string]domain.Session{}}
}

func (s *stubSessionStore) Create(_ context.Context, sess domain.Session) error {
	if s.err != nil {
		return s.err
	}
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, sessionID string) error {
	if s.err != nil {
		return s.err
	}
	s.deletes++
	delete(s.sessions, sessionID)
	return nil
}

func registeredUser(t *testing.T, svc *AuthService, role domain.Role) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Kumar",
		Email:    string(role) + "@example.com",
		Password: "secret123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestAuthService_Register(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, newStubSessionStore(), testSigningKey, time.Hour)

	user := registeredUser(t, svc, domain.RoleFarmer)
	if user.ID == "" {
		t.Fatalf("registered user must get an identifier")
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password must never be stored in clear")
	}

	// Same email again is a conflict.
	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Kumar", Email: "farmer@example.com", Password: "other", Role: domain.RoleFarmer,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_RegisterHubSetsManager(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionStore(), testSigningKey, time.Hour)

	user := registeredUser(t, svc, domain.RoleHub)
	if user.HubID == "" {
		t.Fatalf("hub registration must assign a hub identifier")
	}
	if user.ManagerID != user.ID {
		t.Fatalf("registering account must manage its own hub: manager=%q id=%q", user.ManagerID, user.ID)
	}
}

func TestAuthService_RegisterRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionStore(), testSigningKey, time.Hour)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "X", Email: "x@example.com", Password: "pw", Role: domain.Role("admin"),
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(users, sessions, testSigningKey, time.Hour)
	registeredUser(t, svc, domain.RoleCustomer)

	res, err := svc.Login(context.Background(), "customer@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("login must issue a credential")
	}
	if res.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", res.ExpiresIn)
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("login must store exactly one session, got %d", len(sessions.sessions))
	}

	sid, uid, err := ParseCredential(res.Token, testSigningKey)
	if err != nil {
		t.Fatalf("issued credential must parse: %v", err)
	}
	if uid != res.User.ID {
		t.Errorf("credential uid = %q, want %q", uid, res.User.ID)
	}
	if _, ok := sessions.sessions[sid]; !ok {
		t.Errorf("credential sid %q not found in the store", sid)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionStore(), testSigningKey, time.Hour)
	registeredUser(t, svc, domain.RoleCustomer)

	_, err := svc.Login(context.Background(), "customer@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginStoreDown(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(users, sessions, testSigningKey, time.Hour)
	registeredUser(t, svc, domain.RoleCustomer)

	sessions.err = errors.New("connection refused")
	_, err := svc.Login(context.Background(), "customer@example.com", "secret123")
	if !errors.Is(err, domain.ErrProviderDegraded) {
		t.Fatalf("expected ErrProviderDegraded, got %v", err)
	}
}

func TestAuthService_LogoutIdempotent(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(users, sessions, testSigningKey, time.Hour)
	registeredUser(t, svc, domain.RoleFarmer)

	res, err := svc.Login(context.Background(), "farmer@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), res.Token); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("logout must destroy the session")
	}

	// Repeating logout produces the same end state.
	if err := svc.Logout(context.Background(), res.Token); err != nil {
		t.Fatalf("second logout must succeed: %v", err)
	}
	if err := svc.Logout(context.Background(), "not-a-credential"); err != nil {
		t.Fatalf("logout with garbage credential must succeed: %v", err)
	}
}

func TestParseCredential_Tampered(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionStore(), testSigningKey, time.Hour)
	registeredUser(t, svc, domain.RoleFarmer)

	res, err := svc.Login(context.Background(), "farmer@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, _, err := ParseCredential(res.Token, "other-key"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("wrong key: expected ErrUnauthenticated, got %v", err)
	}
	if _, _, err := ParseCredential(res.Token+"x", testSigningKey); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("mangled token: expected ErrUnauthenticated, got %v", err)
	}
}

func TestParseCredential_Expired(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionStore(), testSigningKey, -time.Hour)
	// Negative TTL falls back to the default, so build one explicitly.
	sess := domain.Session{
		ID:        "S1",
		UserID:    "U1",
		IssuedAt:  time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	token, err := svc.signCredential(sess)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := ParseCredential(token, testSigningKey); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expired token: expected ErrUnauthenticated, got %v", err)
	}
}

func TestAccountService_Resolve(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "U1", Email: "u1@example.com", Role: domain.RoleCustomer})
	svc := NewAccountService(users, zerolog.Nop())

	user, err := svc.Resolve(context.Background(), "U1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.ID != "U1" {
		t.Fatalf("resolved wrong user: %q", user.ID)
	}

	if _, err := svc.Resolve(context.Background(), "U404"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("missing user: expected ErrUserNotFound, got %v", err)
	}

	users.err = errors.New("connection reset")
	if _, err := svc.Resolve(context.Background(), "U1"); !errors.Is(err, domain.ErrProviderDegraded) {
		t.Errorf("store failure: expected ErrProviderDegraded, got %v", err)
	}
}

func TestAccountService_ResolveHub(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "U1", Email: "hub@example.com", Role: domain.RoleHub, HubID: "H1", ManagerID: "U1"})
	svc := NewAccountService(users, zerolog.Nop())

	// Manager gets the record.
	hub, err := svc.ResolveHub(context.Background(), "H1", "U1")
	if err != nil {
		t.Fatalf("manager resolve: %v", err)
	}
	if hub.HubID != "H1" {
		t.Fatalf("resolved wrong hub: %q", hub.HubID)
	}

	// A different authenticated identity is denied, not told the hub is missing.
	if _, err := svc.ResolveHub(context.Background(), "H1", "U2"); !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("mismatched manager: expected ErrAccessDenied, got %v", err)
	}

	// An unknown hub stays a distinct not-found.
	if _, err := svc.ResolveHub(context.Background(), "H404", "U1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("missing hub: expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_UpdateLanguage(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "U1", Email: "u1@example.com", Role: domain.RoleFarmer, Language: "en"})
	svc := NewAccountService(users, zerolog.Nop())

	if err := svc.UpdateLanguage(context.Background(), "U1", "ta"); err != nil {
		t.Fatalf("update language: %v", err)
	}
	if users.byID["U1"].Language != "ta" {
		t.Fatalf("language not persisted: %q", users.byID["U1"].Language)
	}

	if err := svc.UpdateLanguage(context.Background(), "U404", "ta"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("missing user: expected ErrUserNotFound, got %v", err)
	}
}
