package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	CtxUserID    = "user_id"
	CtxSessionID = "session_id"
	CtxRole      = "role"
	CtxHubID     = "hub_id"
	CtxUser      = "user"
	CtxReadOnly  = "read_only"
)

// SessionAuth verifies the session credential and resolves the user record,
// injecting the authenticated context. Strictly ordered: verification first,
// role resolution second; claims are never constructed from an unverified
// credential.
//
// A verified identity without a user record (mid-registration) is allowed
// through with an empty role; RBAC middleware downstream decides whether
// that is sufficient.
func SessionAuth(verifier ports.SessionVerifier, accounts ports.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential := sessionCredential(c.Request())

			claims, err := verifier.Verify(c.Request().Context(), credential)
			if err != nil {
				return unauthenticated(c, err)
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxSessionID, claims.SessionID)
			c.Set(CtxReadOnly, claims.ReadOnly)

			user, err := accounts.Resolve(c.Request().Context(), claims.UserID)
			switch {
			case err == nil:
				c.Set(CtxRole, string(user.Role))
				c.Set(CtxHubID, user.HubID)
				c.Set(CtxUser, user)
			case errors.Is(err, domain.ErrUserNotFound):
				// Unresolved identity: verified but no record yet.
			default:
				return err
			}

			return next(c)
		}
	}
}

// unauthenticated converts a verification failure into the fail-closed
// response: page routes redirect to the public root, API routes get the
// error taxonomy. Degraded providers are never downgraded to a silent grant.
func unauthenticated(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrProviderDegraded) {
		return err
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return domain.ErrUnauthenticated
	}
	return c.Redirect(http.StatusFound, "/")
}

func sessionCredential(r *http.Request) string {
	cookie, err := r.Cookie(domain.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
