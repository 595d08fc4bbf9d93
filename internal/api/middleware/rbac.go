package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/manvaasam/platform/internal/core/domain"
)

// RBAC enforces role-based access control over the resolved role.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrAccessDenied
			}
			return next(c)
		}
	}
}

// RequireWritable rejects read-only (demo mode) sessions on mutating routes.
func RequireWritable() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if readOnly, _ := c.Get(CtxReadOnly).(bool); readOnly {
				return domain.ErrReadOnlySession
			}
			return next(c)
		}
	}
}
