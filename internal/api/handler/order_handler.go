package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/manvaasam/platform/internal/api/metrics"
	"github.com/manvaasam/platform/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /api/v1/orders. The buyer is always the authenticated
// requester; an Idempotency-Key header makes retries safe.
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}
	idempotencyKey := c.Request().Header.Get("Idempotency-Key")

	result, err := h.service.CreateOrder(c.Request().Context(), toCreateOrderInput(req, requester, idempotencyKey))
	if err != nil {
		return err
	}

	if !result.AlreadyExisted {
		metrics.OrdersCreatedTotal.WithLabelValues(channelFor(requester)).Inc()
	}
	return c.JSON(http.StatusCreated, toCreateOrderResponse(result))
}

// Get handles GET /api/v1/orders/:order_number, scoped to the requester.
func (h *OrderHandler) Get(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(c.Request().Context(), c.Param("order_number"), requester)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGetOrderResponse(order))
}

// List handles GET /api/v1/orders with filter and pagination query params.
func (h *OrderHandler) List(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	in := ports.ListOrdersInput{
		Requester: requester,
		Status:    c.QueryParam("status"),
		Channel:   c.QueryParam("channel"),
		Search:    c.QueryParam("search"),
		Page:      intParam(c, "page"),
		Limit:     intParam(c, "limit"),
	}
	in.DateFrom = timeParam(c, "date_from")
	in.DateTo = timeParam(c, "date_to")

	result, err := h.service.ListOrders(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListOrdersResponse(result))
}

func channelFor(req ports.Requester) string {
	if req.Role == "restaurant" {
		return "restaurant"
	}
	return "customer"
}

func intParam(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

func timeParam(c echo.Context, name string) time.Time {
	v := c.QueryParam(name)
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
