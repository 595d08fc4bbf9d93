package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/manvaasam/platform/internal/api/middleware"
	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

type stubAccountService struct {
	resolveHubFn func(ctx context.Context, hubID, requesterID string) (*domain.User, error)
}

func (s *stubAccountService) Resolve(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubAccountService) ResolveHub(ctx context.Context, hubID, requesterID string) (*domain.User, error) {
	return s.resolveHubFn(ctx, hubID, requesterID)
}

func (s *stubAccountService) UpdateLanguage(_ context.Context, _, _ string) error {
	return nil
}

type stubDashboardService struct {
	summary *ports.DashboardSummary
	err     error
}

func (s *stubDashboardService) Summarize(_ context.Context, user *domain.User) (*ports.DashboardSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.summary != nil {
		return s.summary, nil
	}
	return &ports.DashboardSummary{Role: user.Role, DisplayName: user.Name}, nil
}

func authedContext(method, path string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newTestContext(method, path, "")
	if user != nil {
		c.Set(apimiddleware.CtxUserID, user.ID)
		c.Set(apimiddleware.CtxRole, string(user.Role))
		c.Set(apimiddleware.CtxHubID, user.HubID)
		c.Set(apimiddleware.CtxUser, user)
	}
	return c, rec
}

func TestDashboardDispatch(t *testing.T) {
	h := NewDashboardHandler(&stubAccountService{}, &stubDashboardService{})

	cases := []struct {
		role domain.Role
		want string
	}{
		{domain.RoleFarmer, "/dashboard/farmer"},
		{domain.RoleHub, "/dashboard/hub"},
		{domain.RoleCustomer, "/dashboard/customer"},
		{domain.RoleRestaurant, "/dashboard/restaurant"},
		{domain.RoleTransport, "/dashboard/transport"},
	}
	for _, tc := range cases {
		c, rec := authedContext(http.MethodGet, "/dashboard", &domain.User{ID: "U1", Role: tc.role})
		if err := h.Dispatch(c); err != nil {
			t.Fatalf("%s: %v", tc.role, err)
		}
		if rec.Code != http.StatusFound {
			t.Errorf("%s: status = %d, want 302", tc.role, rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != tc.want {
			t.Errorf("%s: redirect to %q, want %q", tc.role, loc, tc.want)
		}
	}
}

func TestDashboardDispatch_UnresolvedIdentity(t *testing.T) {
	// Verified identity with no user record lands on the generic view,
	// not an error page and not a role dashboard.
	h := NewDashboardHandler(&stubAccountService{}, &stubDashboardService{})

	c, rec := authedContext(http.MethodGet, "/dashboard", nil)
	c.Set(apimiddleware.CtxUserID, "U9")

	if err := h.Dispatch(c); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"role":"unresolved"`) {
		t.Errorf("landing body = %s", body)
	}
}

func TestDashboardHubPage_ManagerScoping(t *testing.T) {
	// The hub record names U1 as manager; U2's verified identity is denied
	// even though the hub exists.
	accounts := &stubAccountService{
		resolveHubFn: func(_ context.Context, hubID, requesterID string) (*domain.User, error) {
			if hubID != "H1" {
				return nil, domain.ErrUserNotFound
			}
			if requesterID != "U1" {
				return nil, domain.ErrAccessDenied
			}
			return &domain.User{ID: "U1", Name: "Hub One", Role: domain.RoleHub, HubID: "H1", ManagerID: "U1"}, nil
		},
	}
	h := NewDashboardHandler(accounts, &stubDashboardService{})

	manager := &domain.User{ID: "U1", Role: domain.RoleHub, HubID: "H1"}
	c, rec := authedContext(http.MethodGet, "/dashboard/hub", manager)
	if err := h.HubPage(c); err != nil {
		t.Fatalf("manager: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("manager status = %d, want 200", rec.Code)
	}

	intruder := &domain.User{ID: "U2", Role: domain.RoleHub, HubID: "H2"}
	c, _ = authedContext(http.MethodGet, "/dashboard/hub?hub=H1", intruder)
	if err := h.HubPage(c); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("intruder: expected ErrAccessDenied, got %v", err)
	}

	c, _ = authedContext(http.MethodGet, "/dashboard/hub?hub=H404", manager)
	if err := h.HubPage(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("missing hub: expected ErrUserNotFound, got %v", err)
	}
}

func TestDashboardRolePage(t *testing.T) {
	h := NewDashboardHandler(&stubAccountService{}, &stubDashboardService{
		summary: &ports.DashboardSummary{Role: domain.RoleCustomer, DisplayName: "Priya"},
	})

	c, rec := authedContext(http.MethodGet, "/dashboard/customer", &domain.User{ID: "U1", Name: "Priya", Role: domain.RoleCustomer})
	if err := h.RolePage(c); err != nil {
		t.Fatalf("role page: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"display_name":"Priya"`) {
		t.Errorf("body = %s", body)
	}
}
