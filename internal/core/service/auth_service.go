package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// AuthService implements registration, login and logout. Login issues a
// signed session credential and stores the matching server-side record.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	signingKey string
	sessionTTL time.Duration
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, signingKey string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = domain.DefaultSessionTTL
	}
	return &AuthService{users: users, sessions: sessions, signingKey: signingKey, sessionTTL: sessionTTL}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		RestaurantID: in.RestaurantID,
		Language:     in.Language,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Role == domain.RoleHub {
		user.HubID = in.HubID
		if user.HubID == "" {
			user.HubID = uuid.NewString()
		}
		// The hub record is managed by the account that registered it.
		user.ManagerID = user.ID
	}

	return s.users.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	sess := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, errors.Join(domain.ErrProviderDegraded, err)
	}

	token, err := s.signCredential(sess)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{
		Token:     token,
		ExpiresIn: int(s.sessionTTL.Seconds()),
		User:      user,
	}, nil
}

// Logout destroys the session behind the credential. A credential that no
// longer maps to a session (second logout, expired record) is not an error:
// the end state is identical either way.
func (s *AuthService) Logout(ctx context.Context, credential string) error {
	sid, _, err := ParseCredential(credential, s.signingKey)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}

func (s *AuthService) signCredential(sess domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": sess.ID,
		"uid": sess.UserID,
		"iat": sess.IssuedAt.Unix(),
		"exp": sess.ExpiresAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.signingKey))
}

// ParseCredential validates the credential signature and expiry and returns
// the session and user identifiers it carries.
func ParseCredential(credential, signingKey string) (sessionID, userID string, err error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(signingKey), nil
	})
	if err != nil || !tkn.Valid {
		return "", "", domain.ErrUnauthenticated
	}

	sessionID, _ = claims["sid"].(string)
	userID, _ = claims["uid"].(string)
	if sessionID == "" || userID == "" {
		return "", "", domain.ErrUnauthenticated
	}
	return sessionID, userID, nil
}
