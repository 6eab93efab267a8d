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
)

type CreateTagParams struct {
	TagName *string
}

type UpdateTagParams struct {
	TagName nullable.Nullable[string]
}

type TagRepository interface {
	WithDB(db db.DB) TagRepository
	ListTags(ctx context.Context) ([]model.Tag, error)
	GetTag(ctx context.Context, id int64) (model.Tag, error)
	CreateTag(ctx context.Context, params CreateTagParams) (model.Tag, error)
	UpdateTag(ctx context.Context, id int64, params UpdateTagParams) error
	DeleteTag(ctx context.Context, id int64) error
}

type tagRepository struct {
	db db.DB
}

func NewTagRepository(db db.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r tagRepository) WithDB(db db.DB) TagRepository {
	return &tagRepository{db: db}
}

type tagRow struct {
	ID      int64       `db:"id"`
	TagName pgtype.Text `db:"tag_name"`
}

func (t tagRow) toModel() model.Tag {
	return model.Tag{
		ID:       t.ID,
		TagName:  textPtr(t.TagName),
		Products: []model.Product{},
	}
}

func (r tagRepository) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, tag_name FROM tag ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}

	tRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[tagRow])
	if err != nil {
		return nil, fmt.Errorf("collect tags: %w", err)
	}

	tags := make([]model.Tag, 0, len(tRows))
	for _, row := range tRows {
		tags = append(tags, row.toModel())
	}

	if err := r.attachProducts(ctx, tags); err != nil {
		return nil, err
	}

	return tags, nil
}

func (r tagRepository) GetTag(ctx context.Context, id int64) (model.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, tag_name FROM tag WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return model.Tag{}, fmt.Errorf("query tag: %w", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[tagRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Tag{}, ErrNotFound
		}
		return model.Tag{}, fmt.Errorf("collect tag: %w", err)
	}

	tags := []model.Tag{row.toModel()}
	if err := r.attachProducts(ctx, tags); err != nil {
		return model.Tag{}, err
	}

	return tags[0], nil
}

func (r tagRepository) CreateTag(ctx context.Context, params CreateTagParams) (model.Tag, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO tag (tag_name)
		VALUES (@tag_name)
		RETURNING id, tag_name
	`, pgx.NamedArgs{"tag_name": params.TagName})
	if err != nil {
		return model.Tag{}, fmt.Errorf("insert tag: %w", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[tagRow])
	if err != nil {
		return model.Tag{}, fmt.Errorf("insert tag: %w", err)
	}

	return row.toModel(), nil
}

func (r tagRepository) UpdateTag(ctx context.Context, id int64, params UpdateTagParams) error {
	u := newUpdateSet(id)
	if params.TagName.IsSpecified() {
		u.set("tag_name", nullableArg(params.TagName))
	}

	tag, err := r.db.Exec(ctx, u.sql("tag"), u.args)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r tagRepository) DeleteTag(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tag WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

type tagProductRow struct {
	TagID int64 `db:"tag_id"`
	productRow
}

// attachProducts eager-loads the products of every tag through product_tag.
func (r tagRepository) attachProducts(ctx context.Context, tags []model.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	ids := collectIDs(tags, func(t model.Tag) int64 { return t.ID })
	rows, err := r.db.Query(ctx, `
		SELECT pt.tag_id, p.id, p.product_name, p.price, p.stock, p.category_id
		FROM product_tag pt
		JOIN product p ON p.id = pt.product_id
		WHERE pt.tag_id = ANY(@ids)
		ORDER BY pt.id
	`, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("query tag products: %w", err)
	}

	tpRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[tagProductRow])
	if err != nil {
		return fmt.Errorf("collect tag products: %w", err)
	}

	index := make(map[int64]int, len(tags))
	for i, t := range tags {
		index[t.ID] = i
	}
	for _, row := range tpRows {
		i, ok := index[row.TagID]
		if !ok {
			continue
		}
		p, err := row.productRow.toModel()
		if err != nil {
			return fmt.Errorf("convert product %d: %w", row.ID, err)
		}
		tags[i].Products = append(tags[i].Products, p)
	}

	return nil
}
