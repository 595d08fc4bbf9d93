package service

import (
	"context"
	"testing"

	"github.com/manvaasam/platform/internal/core/domain"
	"github.com/manvaasam/platform/internal/core/ports"
)

type stubProductRepo struct {
	products []*domain.Product
	total    int64
	err      error
}

func (r *stubProductRepo) List(_ context.Context, _ ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	return r.products, r.total, r.err
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) UpsertStock(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.products = append(r.products, p)
	return p, nil
}

func TestDashboardService_SummarizeHub(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["MV-00000001"] = &domain.Order{OrderNumber: "MV-00000001", HubID: "H1", Status: domain.OrderPending}
	orders.orders["MV-00000002"] = &domain.Order{OrderNumber: "MV-00000002", HubID: "H1", Status: domain.OrderPending}
	orders.orders["MV-00000003"] = &domain.Order{OrderNumber: "MV-00000003", HubID: "H2", Status: domain.OrderPending}
	products := &stubProductRepo{total: 12}

	svc := NewDashboardService(orders, products)
	sum, err := svc.Summarize(context.Background(), &domain.User{ID: "U1", Name: "Hub One", Role: domain.RoleHub, HubID: "H1"})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.Role != domain.RoleHub || sum.HubID != "H1" {
		t.Errorf("summary header = %+v", sum)
	}
	if sum.OrderCounts[domain.OrderPending] != 2 {
		t.Errorf("pending count = %d, want 2 (hub-scoped)", sum.OrderCounts[domain.OrderPending])
	}
	if sum.ProductsInStock != 12 {
		t.Errorf("products in stock = %d, want 12", sum.ProductsInStock)
	}
}

func TestDashboardService_SummarizeCustomer(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["MV-00000001"] = &domain.Order{OrderNumber: "MV-00000001", BuyerID: "U1", Status: domain.OrderDelivered}
	orders.orders["MV-00000002"] = &domain.Order{OrderNumber: "MV-00000002", BuyerID: "U2", Status: domain.OrderDelivered}

	svc := NewDashboardService(orders, &stubProductRepo{})
	sum, err := svc.Summarize(context.Background(), &domain.User{ID: "U1", Name: "Priya", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.OrderCounts[domain.OrderDelivered] != 1 {
		t.Errorf("delivered count = %d, want 1 (buyer-scoped)", sum.OrderCounts[domain.OrderDelivered])
	}
}

func TestDashboardService_SummarizeFarmer(t *testing.T) {
	svc := NewDashboardService(newStubOrderRepo(), &stubProductRepo{})

	sum, err := svc.Summarize(context.Background(), &domain.User{ID: "U1", Name: "Murugan", Role: domain.RoleFarmer})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.OrderCounts != nil {
		t.Errorf("farmer summary must carry no order counts, got %v", sum.OrderCounts)
	}
	if sum.Role != domain.RoleFarmer || sum.DisplayName != "Murugan" {
		t.Errorf("summary = %+v", sum)
	}
}
