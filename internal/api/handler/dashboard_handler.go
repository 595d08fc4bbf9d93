package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/manvaasam/platform/internal/api/middleware"
	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// DashboardHandler is the server entry point behind the route guard.
// Dispatch sends each verified identity to exactly one terminal view; the
// role pages render the view itself. No role-to-role transition happens
// within a single request.
type DashboardHandler struct {
	accounts  ports.AccountService
	summaries ports.DashboardService
}

func NewDashboardHandler(accounts ports.AccountService, summaries ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{accounts: accounts, summaries: summaries}
}

// landingResponse is the generic view for verified identities that have no
// user record yet (mid-registration), which is a valid state, not an error.
type landingResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

// Dispatch handles GET /dashboard: redirect to the role-specific dashboard,
// or render the generic landing view when the record is unresolved.
func (h *DashboardHandler) Dispatch(c echo.Context) error {
	user := ctxUser(c)
	if user == nil {
		return c.JSON(http.StatusOK, landingResponse{
			Message: "welcome to Manvaasam",
			Role:    "unresolved",
		})
	}
	return c.Redirect(http.StatusFound, "/dashboard/"+string(user.Role))
}

// RolePage handles GET /dashboard/:role for farmer, customer and restaurant.
// RBAC middleware has already pinned the allowed role per route.
func (h *DashboardHandler) RolePage(c echo.Context) error {
	user := ctxUser(c)
	if user == nil {
		return domain.ErrAccessDenied
	}

	summary, err := h.summaries.Summarize(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// HubPage handles GET /dashboard/hub. Beyond the RBAC role check it enforces
// manager scoping: the hub record's manager must be the requesting identity.
// A ?hub= query selects another hub explicitly, which only its manager may view.
func (h *DashboardHandler) HubPage(c echo.Context) error {
	user := ctxUser(c)
	if user == nil {
		return domain.ErrAccessDenied
	}

	requesterID, _ := c.Get(apimiddleware.CtxUserID).(string)

	hubID := c.QueryParam("hub")
	if hubID == "" {
		hubID = user.HubID
	}

	// Not-found and access-denied propagate distinctly (404 vs 403).
	hub, err := h.accounts.ResolveHub(c.Request().Context(), hubID, requesterID)
	if err != nil {
		return err
	}

	summary, err := h.summaries.Summarize(c.Request().Context(), hub)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
