package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/oapi-codegen/nullable"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/model"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/service"
)

var errStoreDown = errors.New("connection refused")

// fakeCatalog is an in-memory implementation of the three catalog services.
type fakeCatalog struct {
	mu sync.Mutex

	nextID     int64
	categories map[int64]model.Category
	products   map[int64]model.Product
	tags       map[int64]model.Tag
	productTag map[int64][]int64

	// fail makes every call return errStoreDown.
	fail bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		categories: map[int64]model.Category{},
		products:   map[int64]model.Product{},
		tags:       map[int64]model.Tag{},
		productTag: map[int64][]int64{},
	}
}

func (f *fakeCatalog) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeCatalog) enrich(p model.Product) model.Product {
	if p.CategoryID != nil {
		if c, ok := f.categories[*p.CategoryID]; ok {
			p.Category = &c
		}
	}
	for _, tagID := range f.productTag[p.ID] {
		if t, ok := f.tags[tagID]; ok {
			p.Tags = append(p.Tags, t)
		}
	}
	return p
}

func (f *fakeCatalog) ListCategories(context.Context) ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStoreDown
	}

	var out []model.Category
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.categories[id]; ok {
			out = append(out, f.categoryWithProducts(c))
		}
	}
	return out, nil
}

func (f *fakeCatalog) categoryWithProducts(c model.Category) model.Category {
	for id := int64(1); id <= f.nextID; id++ {
		if p, ok := f.products[id]; ok && p.CategoryID != nil && *p.CategoryID == c.ID {
			c.Products = append(c.Products, p)
		}
	}
	return c
}

func (f *fakeCatalog) GetCategory(_ context.Context, id int64) (model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return model.Category{}, errStoreDown
	}

	c, ok := f.categories[id]
	if !ok {
		return model.Category{}, apperr.CategoryNotFoundErr
	}
	return f.categoryWithProducts(c), nil
}

func (f *fakeCatalog) CreateCategory(_ context.Context, params service.CreateCategoryParams) (model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return model.Category{}, errStoreDown
	}

	c := model.Category{ID: f.id(), CategoryName: params.CategoryName}
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeCatalog) UpdateCategory(_ context.Context, id int64, params service.UpdateCategoryParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStoreDown
	}

	c, ok := f.categories[id]
	if !ok {
		return apperr.CategoryNotFoundErr
	}
	if v, err := params.CategoryName.Get(); err == nil {
		c.CategoryName = v
	}
	f.categories[id] = c
	return nil
}

func (f *fakeCatalog) DeleteCategory(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStoreDown
	}

	if _, ok := f.categories[id]; !ok {
		return apperr.CategoryNotFoundErr
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCatalog) ListProducts(context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStoreDown
	}

	var out []model.Product
	for id := int64(1); id <= f.nextID; id++ {
		if p, ok := f.products[id]; ok {
			out = append(out, f.enrich(p))
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return model.Product{}, errStoreDown
	}

	p, ok := f.products[id]
	if !ok {
		return model.Product{}, apperr.ProductNotFoundErr
	}
	return f.enrich(p), nil
}

func (f *fakeCatalog) CreateProduct(_ context.Context, params service.CreateProductParams) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return model.Product{}, errStoreDown
	}

	stock := model.DefaultStock
	if params.Stock != nil {
		stock = *params.Stock
	}
	p := model.Product{
		ID:          f.id(),
		ProductName: params.ProductName,
		Price:       params.Price,
		Stock:       stock,
		CategoryID:  params.CategoryID,
	}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeCatalog) UpdateProduct(_ context.Context, id int64, params service.UpdateProductParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStoreDown
	}

	if p, ok := f.products[id]; ok {
		if v, err := params.ProductName.Get(); err == nil {
			p.ProductName = v
		}
		if v, err := params.Price.Get(); err == nil {
			p.Price = v
		}
		if v, err := params.Stock.Get(); err == nil {
			p.Stock = v
		}
		if params.CategoryID.IsSpecified() {
			p.CategoryID = specifiedPtr(params.CategoryID)
		}
		f.products[id] = p
	}
	if len(params.TagIDs) > 0 {
		f.productTag[id] = append([]int64(nil), params.TagIDs...)
	}
	return nil
}

func (f *fakeCatalog) DeleteProduct(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStoreDown
	}

	if _, ok := f.products[id]; !ok {
		return apperr.ProductNotFoundErr
	}
	delete(f.products, id)
	delete(f.productTag, id)
	return nil
}

func (f *fakeCatalog) ListTags(context.Context) ([]model.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errStoreDown
	}

	var out []model.Tag
	for id := int64(1); id <= f.nextID; id++ {
		if t, ok := f.tags[id]; ok {
			out = append(out, f.tagWithProducts(t))
		}
	}
	return out, nil
}

func (f *fakeCatalog) tagWithProducts(t model.Tag) model.Tag {
	for id := int64(1); id <= f.nextID; id++ {
		for _, tagID := range f.productTag[id] {
			if tagID == t.ID {
				t.Products = append(t.Products, f.products[id])
			}
		}
	}
	return t
}

func (f *fakeCatalog) GetTag(_ context.Context, id int64) (model.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return model.Tag{}, errStoreDown
	}

	t, ok := f.tags[id]
	if !ok {
		return model.Tag{}, apperr.TagNotFoundErr
	}
	return f.tagWithProducts(t), nil
}

func (f *fakeCatalog) CreateTag(_ context.Context, params service.CreateTagParams) (model.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return model.Tag{}, errStoreDown
	}

	t := model.Tag{ID: f.id(), TagName: params.TagName}
	f.tags[t.ID] = t
	return t, nil
}

func (f *fakeCatalog) UpdateTag(_ context.Context, id int64, params service.UpdateTagParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStoreDown
	}

	t, ok := f.tags[id]
	if !ok {
		return apperr.TagNotFoundErr
	}
	if params.TagName.IsSpecified() {
		t.TagName = specifiedPtr(params.TagName)
	}
	f.tags[id] = t
	return nil
}

func (f *fakeCatalog) DeleteTag(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errStoreDown
	}

	if _, ok := f.tags[id]; !ok {
		return apperr.TagNotFoundErr
	}
	delete(f.tags, id)
	return nil
}

type fakeHealthChecker struct {
	healthy bool
	err     error
}

func (f fakeHealthChecker) IsHealthy(context.Context) (bool, error) {
	return f.healthy, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func specifiedPtr[T any](f nullable.Nullable[T]) *T {
	v, err := f.Get()
	if err != nil {
		return nil
	}
	return &v
}
