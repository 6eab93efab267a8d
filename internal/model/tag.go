package model

type Tag struct {
	ID       int64     `json:"id"`
	TagName  *string   `json:"tag_name"`
	Products []Product `json:"products,omitempty"`
}

// ProductTag is one edge of the product/tag many-to-many relation.
// The same (ProductID, TagID) pair may appear more than once.
type ProductTag struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	TagID     int64 `json:"tag_id"`
}
