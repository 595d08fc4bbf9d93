package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/manvaasam/platform/internal/core/domain"
)

func TestHTTPErrorHandler_Taxonomy(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAccessDenied, http.StatusForbidden},
		{domain.ErrReadOnlySession, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrOrderNotFound, http.StatusNotFound},
		{domain.ErrProductNotFound, http.StatusNotFound},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrProviderDegraded, http.StatusServiceUnavailable},
		{errors.New("database exploded"), http.StatusInternalServerError},
		{echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tc.err, c)
		if rec.Code != tc.code {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.code)
		}
	}
}

func TestHTTPErrorHandler_WrappedErrorsStillMap(t *testing.T) {
	// Services join provider failures onto taxonomy errors; the outermost
	// mapping must still find the sentinel.
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	wrapped := errors.Join(domain.ErrProviderDegraded, errors.New("redis: connection refused"))
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	handler(wrapped, e.NewContext(req, rec))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if body := rec.Body.String(); body == "" || body[0] != '{' {
		t.Fatalf("expected JSON envelope, got %q", body)
	}
}

func TestHTTPErrorHandler_DoesNotLeakInternals(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	handler(errors.New("pq: password authentication failed for user admin"), e.NewContext(req, rec))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":\"internal server error\"}\n" {
		t.Fatalf("internal detail leaked: %q", body)
	}
}
