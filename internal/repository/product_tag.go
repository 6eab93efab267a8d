package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/storage/db"
)

type ProductTagRepository interface {
	WithDB(db db.DB) ProductTagRepository
	// DeleteByProductID removes every join row of the product and returns
	// how many were removed.
	DeleteByProductID(ctx context.Context, productID int64) (int64, error)
	// BulkCreate inserts one join row per tag id, duplicates included.
	BulkCreate(ctx context.Context, productID int64, tagIDs []int64) error
}

type productTagRepository struct {
	db db.DB
}

func NewProductTagRepository(db db.DB) ProductTagRepository {
	return &productTagRepository{db: db}
}

func (r productTagRepository) WithDB(db db.DB) ProductTagRepository {
	return &productTagRepository{db: db}
}

func (r productTagRepository) DeleteByProductID(ctx context.Context, productID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_tag WHERE product_id = @product_id`, pgx.NamedArgs{
		"product_id": productID,
	})
	if err != nil {
		return 0, fmt.Errorf("delete product tags: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r productTagRepository) BulkCreate(ctx context.Context, productID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, []any{productID, tagID})
	}

	n, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"product_tag"},
		[]string{"product_id", "tag_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy product tags: %w", err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copy product tags: expected %d rows, copied %d", len(rows), n)
	}

	return nil
}
