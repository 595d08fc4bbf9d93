package ports

import (
	"context"

	"github.com/manvaasam/platform/internal/core/domain"
)

// DashboardSummary is the role-specific payload behind each dashboard view.
// Exactly one summary is produced per request; Role mirrors the terminal
// state the request resolved to.
type DashboardSummary struct {
	Role            domain.Role                  `json:"role"`
	DisplayName     string                       `json:"display_name"`
	HubID           string                       `json:"hub_id,omitempty"`
	OrderCounts     map[domain.OrderStatus]int64 `json:"order_counts,omitempty"`
	ProductsInStock int64                        `json:"products_in_stock,omitempty"`
}

// DashboardService assembles role-specific dashboard summaries.
type DashboardService interface {
	Summarize(ctx context.Context, user *domain.User) (*DashboardSummary, error)
}
