package model

// DefaultStock is the stock assigned to a product created without one.
const DefaultStock = 10

type Product struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  *int64  `json:"category_id"`

	// Category and Tags are loaded only by reads that eager-load associations.
	Category *Category `json:"category,omitempty"`
	Tags     []Tag     `json:"tags,omitempty"`
}
