package http

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/nullable"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/service"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/validator"
)

type createTagRequest struct {
	TagName *string `json:"tag_name" validate:"omitempty,max=255"`
}

type updateTagRequest struct {
	TagName nullable.Nullable[string] `json:"tag_name" validate:"omitempty,max=255"`
}

type tagHandler struct {
	tagSvc    service.TagService
	validator validator.Validator
}

func newTagHandler(tagSvc service.TagService, v validator.Validator) *tagHandler {
	return &tagHandler{
		tagSvc:    tagSvc,
		validator: v,
	}
}

func (h *tagHandler) ListTags(w http.ResponseWriter, r *http.Request) error {
	tags, err := h.tagSvc.ListTags(r.Context())
	if err != nil {
		return fmt.Errorf("tag service list tags: %w", err)
	}

	items := make([]tagWithProductsResponse, 0, len(tags))
	for _, t := range tags {
		items = append(items, toTagWithProductsResponse(t))
	}

	return writeJSON(w, http.StatusOK, items)
}

func (h *tagHandler) GetTag(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	tag, err := h.tagSvc.GetTag(r.Context(), id)
	if err != nil {
		return fmt.Errorf("tag service get tag: %w", err)
	}

	return writeJSON(w, http.StatusOK, toTagWithProductsResponse(tag))
}

func (h *tagHandler) CreateTag(w http.ResponseWriter, r *http.Request) error {
	var req createTagRequest
	if err := decodeBody(w, r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	tag, err := h.tagSvc.CreateTag(r.Context(), service.CreateTagParams{
		TagName: req.TagName,
	})
	if err != nil {
		return fmt.Errorf("tag service create tag: %w", err)
	}

	return writeJSON(w, http.StatusCreated, toTagResponse(tag))
}

func (h *tagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var req updateTagRequest
	if err := decodeBody(w, r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	if err := h.tagSvc.UpdateTag(r.Context(), id, service.UpdateTagParams{
		TagName: req.TagName,
	}); err != nil {
		return fmt.Errorf("tag service update tag: %w", err)
	}

	return writeMessage(w, "Tag updated")
}

func (h *tagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.tagSvc.DeleteTag(r.Context(), id); err != nil {
		return fmt.Errorf("tag service delete tag: %w", err)
	}

	return writeMessage(w, "Tag deleted")
}
