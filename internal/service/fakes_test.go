package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oapi-codegen/nullable"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/model"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/repository"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/storage/db"
)

var errNotImplemented = errors.New("not implemented")

// fakeDB runs WithTx bodies directly and records whether they failed.
type fakeDB struct {
	txCount     int
	rolledBack  int
	lastTxError error
}

var _ db.DB = (*fakeDB)(nil)

func (d *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errNotImplemented
}

func (d *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errNotImplemented
}

func (d *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (d *fakeDB) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errNotImplemented
}

func (d *fakeDB) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	return nil
}

func (d *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	d.txCount++
	err := txFunc(d)
	if err != nil {
		d.rolledBack++
	}
	d.lastTxError = err
	return err
}

// store is the shared in-memory state behind the fake repositories.
// Changes made in a failed transaction are not undone; tests inspect
// fakeDB.rolledBack instead.
type store struct {
	nextID      int64
	categories  map[int64]model.Category
	products    map[int64]model.Product
	tags        map[int64]model.Tag
	productTags []model.ProductTag
	outbox      []repository.CreateOutboxMsgParams

	failOn map[string]error
}

func newStore() *store {
	return &store{
		categories: map[int64]model.Category{},
		products:   map[int64]model.Product{},
		tags:       map[int64]model.Tag{},
		failOn:     map[string]error{},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) tagIDsOf(productID int64) []int64 {
	var ids []int64
	for _, pt := range s.productTags {
		if pt.ProductID == productID {
			ids = append(ids, pt.TagID)
		}
	}
	return ids
}

type fakeCategoryRepo struct{ s *store }

func (r fakeCategoryRepo) WithDB(db.DB) repository.CategoryRepository { return r }

func (r fakeCategoryRepo) ListCategories(context.Context) ([]model.Category, error) {
	if err := r.s.failOn["ListCategories"]; err != nil {
		return nil, err
	}
	out := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeCategoryRepo) GetCategory(_ context.Context, id int64) (model.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (r fakeCategoryRepo) CreateCategory(_ context.Context, params repository.CreateCategoryParams) (model.Category, error) {
	c := model.Category{ID: r.s.id(), CategoryName: params.CategoryName, Products: []model.Product{}}
	r.s.categories[c.ID] = c
	return c, nil
}

func (r fakeCategoryRepo) UpdateCategory(_ context.Context, id int64, params repository.UpdateCategoryParams) error {
	c, ok := r.s.categories[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, err := params.CategoryName.Get(); err == nil {
		c.CategoryName = v
	}
	r.s.categories[id] = c
	return nil
}

func (r fakeCategoryRepo) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := r.s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

type fakeTagRepo struct{ s *store }

func (r fakeTagRepo) WithDB(db.DB) repository.TagRepository { return r }

func (r fakeTagRepo) ListTags(context.Context) ([]model.Tag, error) {
	out := make([]model.Tag, 0, len(r.s.tags))
	for _, t := range r.s.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeTagRepo) GetTag(_ context.Context, id int64) (model.Tag, error) {
	t, ok := r.s.tags[id]
	if !ok {
		return model.Tag{}, repository.ErrNotFound
	}
	return t, nil
}

func (r fakeTagRepo) CreateTag(_ context.Context, params repository.CreateTagParams) (model.Tag, error) {
	t := model.Tag{ID: r.s.id(), TagName: params.TagName, Products: []model.Product{}}
	r.s.tags[t.ID] = t
	return t, nil
}

func (r fakeTagRepo) UpdateTag(_ context.Context, id int64, params repository.UpdateTagParams) error {
	t, ok := r.s.tags[id]
	if !ok {
		return repository.ErrNotFound
	}
	if params.TagName.IsSpecified() {
		t.TagName = specifiedPtr(params.TagName)
	}
	r.s.tags[id] = t
	return nil
}

func (r fakeTagRepo) DeleteTag(_ context.Context, id int64) error {
	if _, ok := r.s.tags[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tags, id)
	return nil
}

type fakeProductRepo struct{ s *store }

func (r fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r fakeProductRepo) ListProducts(context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeProductRepo) GetProduct(_ context.Context, id int64) (model.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	p.Tags = []model.Tag{}
	for _, tagID := range r.s.tagIDsOf(id) {
		p.Tags = append(p.Tags, model.Tag{ID: tagID})
	}
	return p, nil
}

func (r fakeProductRepo) CreateProduct(_ context.Context, params repository.CreateProductParams) (model.Product, error) {
	if err := r.s.failOn["CreateProduct"]; err != nil {
		return model.Product{}, err
	}
	stock := model.DefaultStock
	if params.Stock != nil {
		stock = *params.Stock
	}
	p := model.Product{
		ID:          r.s.id(),
		ProductName: params.ProductName,
		Price:       params.Price,
		Stock:       stock,
		CategoryID:  params.CategoryID,
	}
	r.s.products[p.ID] = p
	return p, nil
}

func (r fakeProductRepo) UpdateProduct(_ context.Context, id int64, params repository.UpdateProductParams) (bool, error) {
	p, ok := r.s.products[id]
	if !ok {
		return false, nil
	}
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
	r.s.products[id] = p
	return true, nil
}

func (r fakeProductRepo) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := r.s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

type fakeProductTagRepo struct{ s *store }

func (r fakeProductTagRepo) WithDB(db.DB) repository.ProductTagRepository { return r }

func (r fakeProductTagRepo) DeleteByProductID(_ context.Context, productID int64) (int64, error) {
	if err := r.s.failOn["DeleteByProductID"]; err != nil {
		return 0, err
	}
	kept := r.s.productTags[:0]
	var n int64
	for _, pt := range r.s.productTags {
		if pt.ProductID == productID {
			n++
			continue
		}
		kept = append(kept, pt)
	}
	r.s.productTags = kept
	return n, nil
}

func (r fakeProductTagRepo) BulkCreate(_ context.Context, productID int64, tagIDs []int64) error {
	if err := r.s.failOn["BulkCreate"]; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		r.s.productTags = append(r.s.productTags, model.ProductTag{ID: r.s.id(), ProductID: productID, TagID: tagID})
	}
	return nil
}

type fakeOutboxRepo struct{ s *store }

func (r fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r fakeOutboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	if err := r.s.failOn["CreateOutboxMsg"]; err != nil {
		return err
	}
	r.s.outbox = append(r.s.outbox, params)
	return nil
}

func (r fakeOutboxRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, errNotImplemented
}

func (r fakeOutboxRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return errNotImplemented
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

func specifiedPtr[T any](f nullable.Nullable[T]) *T {
	v, err := f.Get()
	if err != nil {
		return nil
	}
	return &v
}
