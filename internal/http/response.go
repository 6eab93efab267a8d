package http

import "github.com/tuanvumaihuynh/ecommerce-catalog/internal/model"

type categoryResponse struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"category_name"`
}

type categoryWithProductsResponse struct {
	categoryResponse
	Products []productResponse `json:"products"`
}

type productResponse struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  *int64  `json:"category_id"`
}

type productWithAssociationsResponse struct {
	productResponse
	Category *categoryResponse `json:"category"`
	Tags     []tagResponse     `json:"tags"`
}

type tagResponse struct {
	ID      int64   `json:"id"`
	TagName *string `json:"tag_name"`
}

type tagWithProductsResponse struct {
	tagResponse
	Products []productResponse `json:"products"`
}

func toCategoryResponse(c model.Category) categoryResponse {
	return categoryResponse{
		ID:           c.ID,
		CategoryName: c.CategoryName,
	}
}

func toCategoryWithProductsResponse(c model.Category) categoryWithProductsResponse {
	products := make([]productResponse, 0, len(c.Products))
	for _, p := range c.Products {
		products = append(products, toProductResponse(p))
	}

	return categoryWithProductsResponse{
		categoryResponse: toCategoryResponse(c),
		Products:         products,
	}
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		ProductName: p.ProductName,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
	}
}

func toProductWithAssociationsResponse(p model.Product) productWithAssociationsResponse {
	res := productWithAssociationsResponse{
		productResponse: toProductResponse(p),
		Tags:            make([]tagResponse, 0, len(p.Tags)),
	}

	if p.Category != nil {
		c := toCategoryResponse(*p.Category)
		res.Category = &c
	}
	for _, t := range p.Tags {
		res.Tags = append(res.Tags, toTagResponse(t))
	}

	return res
}

func toTagResponse(t model.Tag) tagResponse {
	return tagResponse{
		ID:      t.ID,
		TagName: t.TagName,
	}
}

func toTagWithProductsResponse(t model.Tag) tagWithProductsResponse {
	products := make([]productResponse, 0, len(t.Products))
	for _, p := range t.Products {
		products = append(products, toProductResponse(p))
	}

	return tagWithProductsResponse{
		tagResponse: toTagResponse(t),
		Products:    products,
	}
}
