package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/nectarnook/catalog-api/internal/core/domain"
	"github.com/nectarnook/catalog-api/internal/core/ports"
)

// psql builds statements with $-style placeholders for PostgreSQL.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const productsTable = "products"

var productColumns = []string{"id", "name", "description", "price", "in_stock", "image_url"}

// ProductRepository is the PostgreSQL implementation of
// ports.ProductRepository. Every method is a single autocommitted statement.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := psql.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": id}).
		RunWith(r.db).
		QueryRowContext(ctx)

	return scanProduct(row)
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := psql.Select(productColumns...).
		From(productsTable).
		OrderBy("id").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.InStock, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	var id int64
	err := psql.Insert(productsTable).
		SetMap(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"in_stock":    p.InStock,
			"image_url":   p.ImageURL,
		}).
		Suffix("RETURNING id").
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *p
	created.ID = id
	return &created, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, cs ports.ProductChangeSet) (*domain.Product, error) {
	row := psql.Update(productsTable).
		SetMap(changeSetMap(cs)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(productColumns, ", ")).
		RunWith(r.db).
		QueryRowContext(ctx)

	return scanProduct(row)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := psql.Delete(productsTable).
		Where(squirrel.Eq{"id": id}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// changeSetMap converts the non-nil fields of a change set into a column map.
func changeSetMap(cs ports.ProductChangeSet) map[string]interface{} {
	m := map[string]interface{}{}
	if cs.Name != nil {
		m["name"] = *cs.Name
	}
	if cs.Description != nil {
		m["description"] = *cs.Description
	}
	if cs.Price != nil {
		m["price"] = *cs.Price
	}
	if cs.InStock != nil {
		m["in_stock"] = *cs.InStock
	}
	if cs.ImageURL != nil {
		m["image_url"] = *cs.ImageURL
	}
	return m
}

func scanProduct(row squirrel.RowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.InStock, &p.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}
