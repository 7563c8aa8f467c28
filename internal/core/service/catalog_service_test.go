package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nectarnook/catalog-api/internal/core/domain"
	"github.com/nectarnook/catalog-api/internal/core/ports"
)

type stubProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[int64]*domain.Product), nextID: 1}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Insert(_ context.Context, p *domain.Product) (*domain.Product, error) {
	created := cloneProduct(p)
	created.ID = r.nextID
	r.nextID++
	r.products[created.ID] = cloneProduct(created)
	return created, nil
}

func (r *stubProductRepo) Update(_ context.Context, id int64, cs ports.ProductChangeSet) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if cs.Name != nil {
		p.Name = *cs.Name
	}
	if cs.Description != nil {
		p.Description = *cs.Description
	}
	if cs.Price != nil {
		p.Price = *cs.Price
	}
	if cs.InStock != nil {
		p.InStock = *cs.InStock
	}
	if cs.ImageURL != nil {
		p.ImageURL = *cs.ImageURL
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func newTestCatalogService() (*CatalogService, *stubProductRepo) {
	repo := newStubProductRepo()
	return NewCatalogService(repo, zerolog.Nop()), repo
}

func TestCatalogService_CreateThenGet_RoundTrip(t *testing.T) {
	svc, _ := newTestCatalogService()

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:        "Divine Nectar",
		Description: "A bottle of the finest nectar.",
		Price:       99.99,
		InStock:     true,
		ImageURL:    "url_to_image.png",
	})
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id, got 0")
	}

	got, err := svc.GetProduct(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetProduct returned error: %v", err)
	}
	if *got != *created {
		t.Fatalf("round-trip mismatch: created %+v, got %+v", created, got)
	}
}

func TestCatalogService_List_InsertionOrder(t *testing.T) {
	svc, _ := newTestCatalogService()

	names := []string{"Divine Nectar", "Ambrosial Amrit", "Celestial Cider"}
	for _, n := range names {
		if _, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
			Name: n, Description: "d", Price: 1, InStock: true,
		}); err != nil {
			t.Fatalf("create %q: %v", n, err)
		}
	}

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(products) != len(names) {
		t.Fatalf("expected %d products, got %d", len(names), len(products))
	}
	for i, n := range names {
		if products[i].Name != n {
			t.Fatalf("position %d: expected %q, got %q", i, n, products[i].Name)
		}
	}
}

func TestCatalogService_Update_PartialFieldsOnly(t *testing.T) {
	svc, _ := newTestCatalogService()

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:        "Celestial Cider",
		Description: "Brewed in the heavens.",
		Price:       79.99,
		InStock:     true,
		ImageURL:    "url_to_image_3.png",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPrice := 59.99
	outOfStock := false
	updated, err := svc.UpdateProduct(context.Background(), created.ID, ports.ProductChangeSet{
		Price:   &newPrice,
		InStock: &outOfStock,
	})
	if err != nil {
		t.Fatalf("UpdateProduct returned error: %v", err)
	}

	if updated.Price != newPrice || updated.InStock != outOfStock {
		t.Fatalf("supplied fields not applied: %+v", updated)
	}
	if updated.Name != created.Name || updated.Description != created.Description || updated.ImageURL != created.ImageURL {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestCatalogService_Update_EmptyChangeSetIsNoOp(t *testing.T) {
	svc, _ := newTestCatalogService()

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name: "Ambrosial Amrit", Description: "d", Price: 149.99, InStock: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateProduct(context.Background(), created.ID, ports.ProductChangeSet{})
	if err != nil {
		t.Fatalf("UpdateProduct returned error: %v", err)
	}
	if *updated != *created {
		t.Fatalf("empty change set modified the row: %+v vs %+v", updated, created)
	}
}

func TestCatalogService_Update_NotFound(t *testing.T) {
	svc, _ := newTestCatalogService()

	name := "x"
	if _, err := svc.UpdateProduct(context.Background(), 42, ports.ProductChangeSet{Name: &name}); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_DeleteThenGet_NotFound(t *testing.T) {
	svc, _ := newTestCatalogService()

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name: "Divine Nectar", Description: "d", Price: 99.99, InStock: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteProduct(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteProduct returned error: %v", err)
	}
	if _, err := svc.GetProduct(context.Background(), created.ID); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := svc.DeleteProduct(context.Background(), created.ID); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
}

func TestCatalogService_Get_NonExistent(t *testing.T) {
	svc, _ := newTestCatalogService()

	if _, err := svc.GetProduct(context.Background(), 9999); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
