package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nectarnook/catalog-api/internal/core/domain"
	"github.com/nectarnook/catalog-api/internal/core/ports"
)

// CatalogService implements CRUD over the product store. Each operation is a
// single repository call committing immediately; failures surface unchanged.
type CatalogService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		InStock:     input.InStock,
		ImageURL:    input.ImageURL,
	}

	created, err := s.repo.Insert(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

// UpdateProduct merges only the supplied fields over the existing row. An
// empty change set is a no-op returning the current row.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, cs ports.ProductChangeSet) (*domain.Product, error) {
	if cs.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, cs)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
