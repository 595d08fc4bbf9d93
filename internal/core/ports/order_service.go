package ports

import (
	"context"
	"time"

	"github.com/manvaasam/platform/internal/core/domain"
)

// OrderItemInput is a single produce line on a new order.
type OrderItemInput struct {
	ProductID string
	Name      string
	Quantity  float64
	Unit      string
	UnitPrice float64
}

// CreateOrderInput carries all data needed to place an order.
type CreateOrderInput struct {
	BuyerID        string
	Channel        domain.OrderChannel
	HubID          string
	Items          []OrderItemInput
	IdempotencyKey string
}

// OrderResult is returned by the service after creating an order.
type OrderResult struct {
	OrderNumber      string
	Status           string
	Total            float64
	CreatedAt        time.Time
	ExpectedDelivery time.Time
	// AlreadyExisted is true when the Idempotency-Key matched an existing order.
	AlreadyExisted bool
}

// Requester identifies the caller for scoping decisions.
type Requester struct {
	UserID string
	Role   domain.Role
	// HubID is the hub the requester manages (hub role only).
	HubID string
}

// ListOrdersInput carries all parameters for the list endpoint.
type ListOrdersInput struct {
	Requester Requester
	Status    string
	Channel   string
	Search    string
	DateFrom  time.Time
	DateTo    time.Time
	Page      int
	Limit     int
}

// ListOrdersResult is returned by ListOrders.
type ListOrdersResult struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderResult, error)
	// GetOrder retrieves a single order, scoped by the requester's role.
	GetOrder(ctx context.Context, orderNumber string, req Requester) (*domain.Order, error)
	ListOrders(ctx context.Context, in ListOrdersInput) (*ListOrdersResult, error)
}
