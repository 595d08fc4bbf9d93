package service

import (
	"context"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

// DashboardService assembles role-specific dashboard summaries from the
// order and inventory stores.
type DashboardService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
}

func NewDashboardService(orders ports.OrderRepository, products ports.ProductRepository) *DashboardService {
	return &DashboardService{orders: orders, products: products}
}

// Summarize builds the dashboard payload for a resolved user record.
func (s *DashboardService) Summarize(ctx context.Context, user *domain.User) (*ports.DashboardSummary, error) {
	out := &ports.DashboardSummary{Role: user.Role, DisplayName: user.Name}

	var scope ports.ListOrdersFilter
	switch user.Role {
	case domain.RoleCustomer, domain.RoleRestaurant:
		scope = ports.ListOrdersFilter{BuyerID: user.ID}
	case domain.RoleHub:
		scope = ports.ListOrdersFilter{HubID: user.HubID}
		out.HubID = user.HubID
		_, inStock, err := s.products.List(ctx, ports.ListProductsFilter{HubID: user.HubID, InStock: true, Limit: 1})
		if err == nil {
			out.ProductsInStock = inStock
		}
	case domain.RoleTransport:
		scope = ports.ListOrdersFilter{TransportID: user.ID}
	case domain.RoleFarmer:
		// Farmers have no order queue yet; their dashboard is informational.
		return out, nil
	}

	counts, err := s.orders.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	out.OrderCounts = counts
	return out, nil
}
