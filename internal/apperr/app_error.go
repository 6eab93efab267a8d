package apperr

import "github.com/tuanvumaihuynh/ecommerce-catalog/pkg/zerror"

const (
	ValidationErrorCode = "validationError"

	CategoryNotFoundCode = "CATEGORY_NOT_FOUND"
	ProductNotFoundCode  = "PRODUCT_NOT_FOUND"
	TagNotFoundCode      = "TAG_NOT_FOUND"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	CategoryNotFoundErr = zerror.NewNotFound(CategoryNotFoundCode, "Category not found")
	ProductNotFoundErr  = zerror.NewNotFound(ProductNotFoundCode, "Product not found")
	TagNotFoundErr      = zerror.NewNotFound(TagNotFoundCode, "Tag not found")
)
