package http

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/nullable"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/service"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/validator"
)

type createProductRequest struct {
	ProductName string   `json:"product_name" validate:"required,max=255"`
	Price       *float64 `json:"price" validate:"required,decimal10_2"`
	Stock       *int     `json:"stock"`
	CategoryID  *int64   `json:"category_id"`
}

type updateProductRequest struct {
	ProductName nullable.Nullable[string]  `json:"product_name" validate:"omitempty,min=1,max=255"`
	Price       nullable.Nullable[float64] `json:"price" validate:"omitempty,decimal10_2"`
	Stock       nullable.Nullable[int]     `json:"stock"`
	CategoryID  nullable.Nullable[int64]   `json:"category_id"`
	TagIDs      []int64                    `json:"tagIds"`
}

type productHandler struct {
	productSvc service.ProductService
	validator  validator.Validator
}

func newProductHandler(productSvc service.ProductService, v validator.Validator) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		validator:  v,
	}
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := h.productSvc.ListProducts(r.Context())
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	items := make([]productWithAssociationsResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductWithAssociationsResponse(p))
	}

	return writeJSON(w, http.StatusOK, items)
}

func (h *productHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service get product: %w", err)
	}

	return writeJSON(w, http.StatusOK, toProductWithAssociationsResponse(product))
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var req createProductRequest
	if err := decodeBody(w, r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		ProductName: req.ProductName,
		Price:       *req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return fmt.Errorf("product service create product: %w", err)
	}

	return writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// UpdateProduct applies the supplied fields and, when tagIds is non-empty,
// replaces the product's tags. It answers "Product updated" even when no
// product row matched.
func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := decodeBody(w, r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	if err := h.productSvc.UpdateProduct(r.Context(), id, service.UpdateProductParams{
		ProductName: req.ProductName,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		TagIDs:      req.TagIDs,
	}); err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}

	return writeMessage(w, "Product updated")
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		return fmt.Errorf("product service delete product: %w", err)
	}

	return writeMessage(w, "Product deleted")
}
