package ports

import (
	"context"
	"time"

	"github.com/manvaasam/platform/internal/core/domain"
)

// ListOrdersFilter carries all query parameters for listing orders.
// Scoping fields are always enforced by the service layer, never by callers.
type ListOrdersFilter struct {
	BuyerID     string    // non-empty = scoped to buyer (customer/restaurant)
	HubID       string    // non-empty = scoped to hub
	TransportID string    // non-empty = scoped to transport operator
	Status      string    // optional: filter by order status
	Channel     string    // optional: customer or restaurant
	Search      string    // optional: partial match on order_number or item name
	DateFrom    time.Time // optional: created_at >= DateFrom
	DateTo      time.Time // optional: created_at <= DateTo
	Page        int       // 1-based
	Limit       int       // max rows per page (capped at 100 by service)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	// FindByOrderNumber retrieves an order. Non-empty scope fields in filter
	// narrow the query so out-of-scope orders surface as not-found.
	FindByOrderNumber(ctx context.Context, orderNumber string, scope ListOrdersFilter) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
	// UpdateStatus atomically sets the order status and appends a history entry.
	UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, ts time.Time, source string, location *domain.Coordinates) error
	// InsertEvent persists a delivery event to the audit trail.
	InsertEvent(ctx context.Context, event *domain.DeliveryEvent) error
	// CountByStatus aggregates order counts for dashboard summaries.
	CountByStatus(ctx context.Context, scope ListOrdersFilter) (map[domain.OrderStatus]int64, error)
}
