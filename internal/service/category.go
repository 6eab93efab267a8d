package service

import (
	"context"
	"fmt"

	"github.com/oapi-codegen/nullable"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/model"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/repository"
)

type CreateCategoryParams struct {
	CategoryName string
}

type UpdateCategoryParams struct {
	CategoryName nullable.Nullable[string]
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error)
	UpdateCategory(ctx context.Context, id int64, params UpdateCategoryParams) error
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository list categories: %w", err)
	}

	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		return model.Category{}, fmt.Errorf("category repository get category: %w",
			mapNotFound(err, apperr.CategoryNotFoundErr))
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error) {
	category, err := s.categoryRepo.CreateCategory(ctx, repository.CreateCategoryParams{
		CategoryName: params.CategoryName,
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("category repository create category: %w", err)
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, params UpdateCategoryParams) error {
	if err := s.categoryRepo.UpdateCategory(ctx, id, repository.UpdateCategoryParams{
		CategoryName: params.CategoryName,
	}); err != nil {
		return fmt.Errorf("category repository update category: %w",
			mapNotFound(err, apperr.CategoryNotFoundErr))
	}

	return nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("category repository delete category: %w",
			mapNotFound(err, apperr.CategoryNotFoundErr))
	}

	return nil
}
