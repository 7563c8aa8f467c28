package domain

// Product is a single catalog entry. The ID is assigned by the store on
// insert and never reused.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	InStock     bool    `json:"in_stock"`
	ImageURL    string  `json:"image_url"`
}
