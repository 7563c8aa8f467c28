package handler

import "github.com/nectarnook/catalog-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// createProductRequest requires name, description, price, and in_stock.
// Price and in_stock are pointers so that 0 and false count as supplied
// values rather than missing ones.
type createProductRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price"       validate:"required"`
	InStock     *bool    `json:"in_stock"    validate:"required"`
	ImageURL    string   `json:"image_url"`
}

// updateProductRequest is a partial update: every field is optional and only
// supplied keys are written. A non-empty name is enforced when present.
type updateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	InStock     *bool    `json:"in_stock"`
	ImageURL    *string  `json:"image_url"`
}

// --- Response types ---

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	InStock     bool    `json:"in_stock"`
	ImageURL    string  `json:"image_url"`
}

type deleteProductResponse struct {
	Message string `json:"message"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		InStock:     p.InStock,
		ImageURL:    p.ImageURL,
	}
}
