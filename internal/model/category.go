package model

type Category struct {
	ID           int64     `json:"id"`
	CategoryName string    `json:"category_name"`
	Products     []Product `json:"products"`
}
