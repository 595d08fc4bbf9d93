package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, credential string) error
	logouts    int
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, credential string) error {
	s.logouts++
	if s.logoutFn != nil {
		return s.logoutFn(ctx, credential)
	}
	return nil
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == domain.SessionCookieName {
			return ck
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestAuthHandler_LoginSetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				Token:     "signed-credential",
				ExpiresIn: 432000,
				User:      &domain.User{ID: "U1", Name: "Priya", Email: email, Role: domain.RoleCustomer},
			}, nil
		},
	}
	h := NewAuthHandler(svc, false)

	c, rec := newTestContext(http.MethodPost, "/api/v1/auth/login", `{"email":"priya@example.com","password":"secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	ck := sessionCookieFrom(t, rec)
	if ck.Value != "signed-credential" {
		t.Errorf("cookie value = %q", ck.Value)
	}
	if !ck.HttpOnly {
		t.Errorf("session cookie must be http-only")
	}
	if ck.Path != "/" {
		t.Errorf("cookie path = %q, want /", ck.Path)
	}
	if ck.MaxAge != 432000 {
		t.Errorf("cookie max-age = %d, want 432000", ck.MaxAge)
	}
	if ck.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie same-site = %v, want lax", ck.SameSite)
	}
	if ck.Secure {
		t.Errorf("secure flag must follow the environment, not be forced on")
	}
}

func TestAuthHandler_LoginSecureCookieInProduction(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, _ string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "t", ExpiresIn: 60, User: &domain.User{ID: "U1", Email: email, Role: domain.RoleFarmer}}, nil
		},
	}
	h := NewAuthHandler(svc, true)

	c, rec := newTestContext(http.MethodPost, "/api/v1/auth/login", `{"email":"a@example.com","password":"secret123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if ck := sessionCookieFrom(t, rec); !ck.Secure {
		t.Errorf("production cookie must be secure")
	}
}

func TestAuthHandler_LoginUnknownAccountIndistinguishable(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(svc, false)

	c, _ := newTestContext(http.MethodPost, "/api/v1/auth/login", `{"email":"ghost@example.com","password":"whatever1"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("absent account must look like a wrong password, got %v", err)
	}
}

func TestAuthHandler_LoginRejectsInvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, _ := newTestContext(http.MethodPost, "/api/v1/auth/login", `{"email":"not-an-email","password":""}`)
	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, false)

	c, rec := newTestContext(http.MethodPost, "/api/v1/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: domain.SessionCookieName, Value: "signed-credential"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if svc.logouts != 1 {
		t.Fatalf("service logouts = %d, want 1", svc.logouts)
	}

	ck := sessionCookieFrom(t, rec)
	if ck.Value != "" || ck.MaxAge != -1 {
		t.Errorf("cookie not cleared: value=%q max-age=%d", ck.Value, ck.MaxAge)
	}
}

func TestAuthHandler_LogoutWithoutSession(t *testing.T) {
	// Logout with no cookie still succeeds and still clears client state.
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, false)

	c, rec := newTestContext(http.MethodPost, "/api/v1/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if svc.logouts != 0 {
		t.Fatalf("no credential means no service call, got %d", svc.logouts)
	}
	ck := sessionCookieFrom(t, rec)
	if ck.MaxAge != -1 {
		t.Errorf("cookie must still be cleared, max-age=%d", ck.MaxAge)
	}
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			return &domain.User{ID: "U1", Name: in.Name, Email: in.Email, Role: in.Role}, nil
		},
	}
	h := NewAuthHandler(svc, false)

	body := `{"name":"Murugan","email":"murugan@example.com","password":"secret123","role":"farmer"}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == domain.SessionCookieName {
			t.Fatalf("registration must not issue a session")
		}
	}
}

func TestAuthHandler_RegisterRejectsUnknownRole(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	body := `{"name":"X","email":"x@example.com","password":"secret123","role":"admin"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/auth/register", body)
	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}
