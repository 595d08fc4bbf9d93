package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/manvaasam/platform/internal/api/middleware"
	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// InventoryHandler exposes hub produce inventory: public search for buyers,
// manager-scoped stock updates for hubs.
type InventoryHandler struct {
	products ports.ProductRepository
	accounts ports.AccountService
}

func NewInventoryHandler(products ports.ProductRepository, accounts ports.AccountService) *InventoryHandler {
	return &InventoryHandler{products: products, accounts: accounts}
}

// maxProductPageSize caps the public inventory listing, same bound as orders.
const maxProductPageSize = 100

// List handles GET /api/v1/hubs/:hub_id/inventory with search/filter params.
func (h *InventoryHandler) List(c echo.Context) error {
	page := intParam(c, "page")
	if page < 1 {
		page = 1
	}
	limit := intParam(c, "limit")
	if limit < 1 {
		limit = 20
	}
	if limit > maxProductPageSize {
		limit = maxProductPageSize
	}

	filter := ports.ListProductsFilter{
		HubID:    c.Param("hub_id"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		InStock:  c.QueryParam("in_stock") == "true",
		Page:     page,
		Limit:    limit,
	}

	products, total, err := h.products.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	items := make([]productResponse, len(products))
	for i, p := range products {
		items[i] = toProductResponse(p)
	}
	return c.JSON(http.StatusOK, listProductsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

// Upsert handles PUT /api/v1/hubs/:hub_id/inventory. Only the hub's manager
// may write: the resolver's manager check turns a mismatched identity into
// an access-denied result, distinct from an unknown hub.
func (h *InventoryHandler) Upsert(c echo.Context) error {
	var req upsertProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	requesterID, _ := c.Get(apimiddleware.CtxUserID).(string)
	hub, err := h.accounts.ResolveHub(c.Request().Context(), c.Param("hub_id"), requesterID)
	if err != nil {
		return err
	}

	product, err := h.products.UpsertStock(c.Request().Context(), &domain.Product{
		HubID:     hub.HubID,
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		Price:     req.Price,
		Stock:     req.Stock,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}
