package http

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/nullable"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/service"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/validator"
)

type createCategoryRequest struct {
	CategoryName string `json:"category_name" validate:"required,max=255"`
}

type updateCategoryRequest struct {
	CategoryName nullable.Nullable[string] `json:"category_name" validate:"omitempty,min=1,max=255"`
}

type categoryHandler struct {
	categorySvc service.CategoryService
	validator   validator.Validator
}

func newCategoryHandler(categorySvc service.CategoryService, v validator.Validator) *categoryHandler {
	return &categoryHandler{
		categorySvc: categorySvc,
		validator:   v,
	}
}

func (h *categoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.categorySvc.ListCategories(r.Context())
	if err != nil {
		return fmt.Errorf("category service list categories: %w", err)
	}

	items := make([]categoryWithProductsResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, toCategoryWithProductsResponse(c))
	}

	return writeJSON(w, http.StatusOK, items)
}

func (h *categoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	category, err := h.categorySvc.GetCategory(r.Context(), id)
	if err != nil {
		return fmt.Errorf("category service get category: %w", err)
	}

	return writeJSON(w, http.StatusOK, toCategoryWithProductsResponse(category))
}

func (h *categoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) error {
	var req createCategoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	category, err := h.categorySvc.CreateCategory(r.Context(), service.CreateCategoryParams{
		CategoryName: req.CategoryName,
	})
	if err != nil {
		return fmt.Errorf("category service create category: %w", err)
	}

	return writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (h *categoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var req updateCategoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	if err := h.categorySvc.UpdateCategory(r.Context(), id, service.UpdateCategoryParams{
		CategoryName: req.CategoryName,
	}); err != nil {
		return fmt.Errorf("category service update category: %w", err)
	}

	return writeMessage(w, "Category updated")
}

func (h *categoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.categorySvc.DeleteCategory(r.Context(), id); err != nil {
		return fmt.Errorf("category service delete category: %w", err)
	}

	return writeMessage(w, "Category deleted")
}
