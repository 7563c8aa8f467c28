package ports

import (
	"context"

	"github.com/nectarnook/catalog-api/internal/core/domain"
)

// ProductChangeSet carries a partial update: only non-nil fields are written.
type ProductChangeSet struct {
	Name        *string
	Description *string
	Price       *float64
	InStock     *bool
	ImageURL    *string
}

// IsEmpty reports whether the change set would write nothing.
func (cs ProductChangeSet) IsEmpty() bool {
	return cs.Name == nil && cs.Description == nil && cs.Price == nil &&
		cs.InStock == nil && cs.ImageURL == nil
}

// ProductRepository defines persistence operations for catalog entries.
// Each call is its own unit of work; there is no cross-call atomicity.
type ProductRepository interface {
	// FindByID returns domain.ErrProductNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// FindAll returns every product ordered by id (insertion order).
	FindAll(ctx context.Context) ([]domain.Product, error)
	// Insert stores a new product and returns it with the assigned id.
	Insert(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Update applies the change set and returns the updated row, or
	// domain.ErrProductNotFound when the id is absent.
	Update(ctx context.Context, id int64, cs ProductChangeSet) (*domain.Product, error)
	// Delete returns domain.ErrProductNotFound when the id is absent.
	Delete(ctx context.Context, id int64) error
}
