package ports

import (
	"context"

	"github.com/nectarnook/catalog-api/internal/core/domain"
)

// CreateProductInput carries all data needed to create a catalog entry.
// ImageURL may be empty; the reference can be supplied later via update.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	InStock     bool
	ImageURL    string
}

// CatalogService defines use-case operations on the product catalog.
type CatalogService interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, cs ProductChangeSet) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
