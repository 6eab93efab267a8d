package service

import (
	"context"
	"fmt"

	"github.com/oapi-codegen/nullable"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/model"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/repository"
)

type CreateTagParams struct {
	TagName *string
}

type UpdateTagParams struct {
	TagName nullable.Nullable[string]
}

type TagService interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	GetTag(ctx context.Context, id int64) (model.Tag, error)
	CreateTag(ctx context.Context, params CreateTagParams) (model.Tag, error)
	UpdateTag(ctx context.Context, id int64, params UpdateTagParams) error
	DeleteTag(ctx context.Context, id int64) error
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.tagRepo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("tag repository list tags: %w", err)
	}

	return tags, nil
}

func (s *tagService) GetTag(ctx context.Context, id int64) (model.Tag, error) {
	tag, err := s.tagRepo.GetTag(ctx, id)
	if err != nil {
		return model.Tag{}, fmt.Errorf("tag repository get tag: %w",
			mapNotFound(err, apperr.TagNotFoundErr))
	}

	return tag, nil
}

func (s *tagService) CreateTag(ctx context.Context, params CreateTagParams) (model.Tag, error) {
	tag, err := s.tagRepo.CreateTag(ctx, repository.CreateTagParams{
		TagName: params.TagName,
	})
	if err != nil {
		return model.Tag{}, fmt.Errorf("tag repository create tag: %w", err)
	}

	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, id int64, params UpdateTagParams) error {
	if err := s.tagRepo.UpdateTag(ctx, id, repository.UpdateTagParams{
		TagName: params.TagName,
	}); err != nil {
		return fmt.Errorf("tag repository update tag: %w",
			mapNotFound(err, apperr.TagNotFoundErr))
	}

	return nil
}

func (s *tagService) DeleteTag(ctx context.Context, id int64) error {
	if err := s.tagRepo.DeleteTag(ctx, id); err != nil {
		return fmt.Errorf("tag repository delete tag: %w",
			mapNotFound(err, apperr.TagNotFoundErr))
	}

	return nil
}
