package handler

import (
	"github.com/labstack/echo/v4"

	apimiddleware "github.com/manvaasam/platform/internal/api/middleware"
	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// ctxRequester extracts the authenticated requester injected by the
// SessionAuth middleware and fast-fails before any service call: a missing
// user id means the middleware did not run or verification was skipped.
func ctxRequester(c echo.Context) (ports.Requester, error) {
	userID, _ := c.Get(apimiddleware.CtxUserID).(string)
	if userID == "" {
		return ports.Requester{}, domain.ErrUnauthenticated
	}

	role, _ := c.Get(apimiddleware.CtxRole).(string)
	hubID, _ := c.Get(apimiddleware.CtxHubID).(string)

	return ports.Requester{
		UserID: userID,
		Role:   domain.Role(role),
		HubID:  hubID,
	}, nil
}

// ctxUser returns the resolved user record, or nil for an unresolved identity.
func ctxUser(c echo.Context) *domain.User {
	user, _ := c.Get(apimiddleware.CtxUser).(*domain.User)
	return user
}
