package ports

import (
	"context"

	"github.com/manvaasam/platform/internal/core/domain"
)

// ListProductsFilter carries query parameters for the inventory listing.
type ListProductsFilter struct {
	HubID    string // optional: scope to one hub
	Category string // optional
	Search   string // optional: partial match on name
	InStock  bool   // when true, only products with stock > 0
	Page     int    // 1-based
	Limit    int    // capped at 100 by service
}

// ProductRepository defines persistence for hub inventory.
type ProductRepository interface {
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// UpsertStock creates or updates a product owned by hubID.
	UpsertStock(ctx context.Context, p *domain.Product) (*domain.Product, error)
}
