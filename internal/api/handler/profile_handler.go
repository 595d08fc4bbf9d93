package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/manvaasam/platform/internal/api/middleware"
	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// langCookieName caches the language preference client-side. The user record
// is the single source of truth; the cookie is derived state rewritten on
// every update.
const langCookieName = "lang"

// ProfileHandler exposes the authenticated user's own record.
type ProfileHandler struct {
	accounts ports.AccountService
}

func NewProfileHandler(accounts ports.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// Get handles GET /api/v1/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	user := ctxUser(c)
	if user == nil {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateLanguage handles PUT /api/v1/profile/language: persist the preference
// on the user record, then refresh the cookie cache.
func (h *ProfileHandler) UpdateLanguage(c echo.Context) error {
	var req updateLanguageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, _ := c.Get(apimiddleware.CtxUserID).(string)
	if err := h.accounts.UpdateLanguage(c.Request().Context(), userID, req.Language); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     langCookieName,
		Value:    req.Language,
		Path:     "/",
		MaxAge:   int(domain.DefaultSessionTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}
