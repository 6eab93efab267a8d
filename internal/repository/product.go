package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oapi-codegen/nullable"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/model"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/ptr"
)

type CreateProductParams struct {
	ProductName string
	Price       float64
	// Stock falls back to model.DefaultStock when nil.
	Stock      *int
	CategoryID *int64
}

type UpdateProductParams struct {
	ProductName nullable.Nullable[string]
	Price       nullable.Nullable[float64]
	Stock       nullable.Nullable[int]
	CategoryID  nullable.Nullable[int64]
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	// UpdateProduct reports whether a row matched id.
	UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (bool, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `SELECT p.id, p.product_name, p.price, p.stock, p.category_id`

type productRow struct {
	ID          int64          `db:"id"`
	ProductName string         `db:"product_name"`
	Price       pgtype.Numeric `db:"price"`
	Stock       int32          `db:"stock"`
	CategoryID  pgtype.Int8    `db:"category_id"`
}

func (p productRow) toModel() (model.Product, error) {
	price, err := fromNumeric(p.Price)
	if err != nil {
		return model.Product{}, err
	}

	return model.Product{
		ID:          p.ID,
		ProductName: p.ProductName,
		Price:       price,
		Stock:       int(p.Stock),
		CategoryID:  int8Ptr(p.CategoryID),
	}, nil
}

type productWithCategoryRow struct {
	productRow
	CatID   pgtype.Int8 `db:"cat_id"`
	CatName pgtype.Text `db:"cat_name"`
}

func (p productWithCategoryRow) toModel() (model.Product, error) {
	product, err := p.productRow.toModel()
	if err != nil {
		return model.Product{}, err
	}

	if p.CatID.Valid {
		product.Category = &model.Category{
			ID:           p.CatID.Int64,
			CategoryName: p.CatName.String,
		}
	}
	product.Tags = []model.Tag{}

	return product, nil
}

const productWithCategoryQuery = productColumns + `, c.id AS cat_id, c.category_name AS cat_name
	FROM product p
	LEFT JOIN category c ON c.id = p.category_id`

// queryProducts runs a query selecting productColumns and converts the rows.
func queryProducts(ctx context.Context, d db.DB, sql string, args pgx.NamedArgs) ([]model.Product, error) {
	rows, err := d.Query(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	pRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	products := make([]model.Product, 0, len(pRows))
	for _, row := range pRows {
		p, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("convert product %d: %w", row.ID, err)
		}
		products = append(products, p)
	}

	return products, nil
}

func (r productRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, productWithCategoryQuery+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	pRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productWithCategoryRow])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	products := make([]model.Product, 0, len(pRows))
	for _, row := range pRows {
		p, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("convert product %d: %w", row.ID, err)
		}
		products = append(products, p)
	}

	if err := r.attachTags(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r productRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	rows, err := r.db.Query(ctx, productWithCategoryQuery+` WHERE p.id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return model.Product{}, fmt.Errorf("query product: %w", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productWithCategoryRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrNotFound
		}
		return model.Product{}, fmt.Errorf("collect product: %w", err)
	}

	product, err := row.toModel()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert product %d: %w", row.ID, err)
	}

	products := []model.Product{product}
	if err := r.attachTags(ctx, products); err != nil {
		return model.Product{}, err
	}

	return products[0], nil
}

func (r productRepository) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	price, err := toNumeric(params.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price: %w", err)
	}

	stock := ptr.ValueOr(params.Stock, model.DefaultStock)

	products, err := queryProducts(ctx, r.db, `
		INSERT INTO product AS p (product_name, price, stock, category_id)
		VALUES (@product_name, @price, @stock, @category_id)
		RETURNING p.id, p.product_name, p.price, p.stock, p.category_id
	`, pgx.NamedArgs{
		"product_name": params.ProductName,
		"price":        price,
		"stock":        stock,
		"category_id":  params.CategoryID,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}
	if len(products) != 1 {
		return model.Product{}, fmt.Errorf("insert product: expected 1 row, got %d", len(products))
	}

	return products[0], nil
}

func (r productRepository) UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (bool, error) {
	u := newUpdateSet(id)
	if params.ProductName.IsSpecified() {
		u.set("product_name", nullableArg(params.ProductName))
	}
	if params.Price.IsSpecified() {
		var price *pgtype.Numeric
		if v, err := params.Price.Get(); err == nil {
			n, err := toNumeric(v)
			if err != nil {
				return false, fmt.Errorf("convert price: %w", err)
			}
			price = &n
		}
		u.set("price", price)
	}
	if params.Stock.IsSpecified() {
		u.set("stock", nullableArg(params.Stock))
	}
	if params.CategoryID.IsSpecified() {
		u.set("category_id", nullableArg(params.CategoryID))
	}

	tag, err := r.db.Exec(ctx, u.sql("product"), u.args)
	if err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

type productTagRow struct {
	ProductID int64       `db:"product_id"`
	TagID     int64       `db:"tag_id"`
	TagName   pgtype.Text `db:"tag_name"`
}

// attachTags eager-loads the tags of every product through product_tag.
// A duplicated join row yields the tag twice.
func (r productRepository) attachTags(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := collectIDs(products, func(p model.Product) int64 { return p.ID })
	rows, err := r.db.Query(ctx, `
		SELECT pt.product_id, t.id AS tag_id, t.tag_name
		FROM product_tag pt
		JOIN tag t ON t.id = pt.tag_id
		WHERE pt.product_id = ANY(@ids)
		ORDER BY pt.id
	`, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("query product tags: %w", err)
	}

	ptRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productTagRow])
	if err != nil {
		return fmt.Errorf("collect product tags: %w", err)
	}

	index := make(map[int64]int, len(products))
	for i, p := range products {
		index[p.ID] = i
		if products[i].Tags == nil {
			products[i].Tags = []model.Tag{}
		}
	}
	for _, row := range ptRows {
		if i, ok := index[row.ProductID]; ok {
			products[i].Tags = append(products[i].Tags, model.Tag{
				ID:      row.TagID,
				TagName: textPtr(row.TagName),
			})
		}
	}

	return nil
}
