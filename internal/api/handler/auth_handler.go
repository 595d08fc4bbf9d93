package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/manvaasam/platform/internal/api/metrics"
	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// AuthHandler implements registration, login and logout. Login is the only
// place a session cookie is issued; logout is the only place it is cleared.
type AuthHandler struct {
	authService   ports.AuthService
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// Register creates a new account. No session is issued: the client logs in
// afterwards, matching the original registration flow.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         domain.Role(req.Role),
		HubID:        req.HubID,
		RestaurantID: req.RestaurantID,
		Language:     req.Language,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: toUserResponse(user)})
}

// Login authenticates the account and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		role := "unknown"
		metrics.LoginsTotal.WithLabelValues(role, "failure").Inc()
		// User enumeration guard: absent accounts and wrong passwords are
		// indistinguishable to the caller.
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues(string(result.User.Role), "success").Inc()
	c.SetCookie(h.sessionCookie(result.Token, result.ExpiresIn))

	return c.JSON(http.StatusOK, authResponse{
		User:      toUserResponse(result.User),
		ExpiresIn: result.ExpiresIn,
	})
}

// Logout destroys the server-side session and clears the cookie. Calling it
// without a session (or twice) succeeds: the end state is the same.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Request().Cookie(domain.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	c.SetCookie(h.clearedCookie())
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  time.Now().Add(time.Duration(maxAge) * time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) clearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
