package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/oapi-codegen/nullable"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/model"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/storage/db"
)

type CreateCategoryParams struct {
	CategoryName string
}

type UpdateCategoryParams struct {
	CategoryName nullable.Nullable[string]
}

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error)
	UpdateCategory(ctx context.Context, id int64, params UpdateCategoryParams) error
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

type categoryRow struct {
	ID           int64  `db:"id"`
	CategoryName string `db:"category_name"`
}

func (c categoryRow) toModel() model.Category {
	return model.Category{
		ID:           c.ID,
		CategoryName: c.CategoryName,
		Products:     []model.Product{},
	}
}

func (r categoryRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, category_name FROM category ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	catRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[categoryRow])
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}

	categories := make([]model.Category, 0, len(catRows))
	for _, row := range catRows {
		categories = append(categories, row.toModel())
	}

	if err := r.attachProducts(ctx, categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r categoryRepository) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, category_name FROM category WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return model.Category{}, fmt.Errorf("query category: %w", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[categoryRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, ErrNotFound
		}
		return model.Category{}, fmt.Errorf("collect category: %w", err)
	}

	categories := []model.Category{row.toModel()}
	if err := r.attachProducts(ctx, categories); err != nil {
		return model.Category{}, err
	}

	return categories[0], nil
}

func (r categoryRepository) CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO category (category_name)
		VALUES (@category_name)
		RETURNING id, category_name
	`, pgx.NamedArgs{"category_name": params.CategoryName})
	if err != nil {
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[categoryRow])
	if err != nil {
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}

	return row.toModel(), nil
}

func (r categoryRepository) UpdateCategory(ctx context.Context, id int64, params UpdateCategoryParams) error {
	u := newUpdateSet(id)
	if params.CategoryName.IsSpecified() {
		u.set("category_name", nullableArg(params.CategoryName))
	}

	tag, err := r.db.Exec(ctx, u.sql("category"), u.args)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r categoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM category WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// attachProducts eager-loads the products of every category in one query.
func (r categoryRepository) attachProducts(ctx context.Context, categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}

	ids := collectIDs(categories, func(c model.Category) int64 { return c.ID })
	products, err := queryProducts(ctx, r.db,
		productColumns+` FROM product p WHERE p.category_id = ANY(@ids) ORDER BY p.id`,
		pgx.NamedArgs{"ids": ids},
	)
	if err != nil {
		return fmt.Errorf("query category products: %w", err)
	}

	index := make(map[int64]int, len(categories))
	for i, c := range categories {
		index[c.ID] = i
	}
	for _, p := range products {
		if p.CategoryID == nil {
			continue
		}
		if i, ok := index[*p.CategoryID]; ok {
			categories[i].Products = append(categories[i].Products, p)
		}
	}

	return nil
}
