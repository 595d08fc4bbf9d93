package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/manvaasam/platform/internal/api/metrics"
	"github.com/manvaasam/platform/internal/core/domain"
)

// Path classes for the route guard. The guard checks cookie PRESENCE only:
// cryptographic validity and expiry are the verifier's job. Presence gating
// keeps the per-request cost of unauthenticated traffic to a header lookup.
var (
	// skipPrefixes bypass the guard entirely: API routes carry their own
	// auth middleware, the rest are assets and probes.
	skipPrefixes = []string{"/api/", "/static/", "/assets/", "/public/"}
	skipExact    = []string{"/favicon.ico", "/metrics", "/health", "/health/ready"}

	// protectedPrefixes require a session cookie before the page is served.
	protectedPrefixes = []string{"/dashboard/hub", "/dashboard/transport"}

	// authPrefixes are login pages: an already-authenticated browser is
	// bounced to the default landing page instead.
	authPrefixes = []string{"/login/farmer", "/login/retail", "/login/transport"}
)

const (
	publicRoot       = "/"
	defaultLanding   = "/dashboard"
	prefetchCacheTTL = "private, max-age=3600"
)

// RouteGuard is the cheap pre-router gate. It classifies the request path,
// short-circuits prefetch traffic, and enforces the cookie-presence redirect
// rules. It never consults the session store.
func RouteGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if guardSkips(path) {
				return next(c)
			}

			// Prefetch requests get a cacheable empty response and skip all
			// auth logic. A performance exception, not a security boundary:
			// the real page load still goes through the full pipeline.
			if isPrefetch(c.Request()) {
				metrics.GuardDecisionsTotal.WithLabelValues("prefetch_skip").Inc()
				c.Response().Header().Set(echo.HeaderCacheControl, prefetchCacheTTL)
				return c.NoContent(http.StatusNoContent)
			}

			hasCookie := hasSessionCookie(c.Request())

			if matchesPrefix(path, protectedPrefixes) && !hasCookie {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				return c.Redirect(http.StatusFound, publicRoot)
			}

			if matchesPrefix(path, authPrefixes) && hasCookie {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_dashboard").Inc()
				return c.Redirect(http.StatusFound, defaultLanding)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("pass").Inc()
			return next(c)
		}
	}
}

func guardSkips(path string) bool {
	for _, p := range skipExact {
		if path == p {
			return true
		}
	}
	return matchesPrefix(path, skipPrefixes)
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// isPrefetch detects speculative navigation requests by their purpose header.
func isPrefetch(r *http.Request) bool {
	for _, h := range []string{"Sec-Purpose", "Purpose", "X-Purpose"} {
		if strings.Contains(strings.ToLower(r.Header.Get(h)), "prefetch") {
			return true
		}
	}
	return false
}

func hasSessionCookie(r *http.Request) bool {
	cookie, err := r.Cookie(domain.SessionCookieName)
	return err == nil && cookie.Value != ""
}
