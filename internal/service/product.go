package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/oapi-codegen/nullable"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/event"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/model"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/repository"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/outbox"
)

type CreateProductParams struct {
	ProductName string
	Price       float64
	Stock       *int
	CategoryID  *int64
}

type UpdateProductParams struct {
	ProductName nullable.Nullable[string]
	Price       nullable.Nullable[float64]
	Stock       nullable.Nullable[int]
	CategoryID  nullable.Nullable[int64]

	// TagIDs replaces the product's tag associations when non-empty.
	// Repeated ids produce repeated associations.
	TagIDs []int64
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) error
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	db             db.DB
	productRepo    repository.ProductRepository
	productTagRepo repository.ProductTagRepository
	outboxMsgRepo  repository.OutboxMsgRepository
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	productTagRepo repository.ProductTagRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		db:             db,
		productRepo:    productRepo,
		productTagRepo: productTagRepo,
		outboxMsgRepo:  outboxMsgRepo,
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product: %w",
			mapNotFound(err, apperr.ProductNotFoundErr))
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	var product model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		product, err = s.productRepo.
			WithDB(db).
			CreateProduct(ctx, repository.CreateProductParams{
				ProductName: params.ProductName,
				Price:       params.Price,
				Stock:       params.Stock,
				CategoryID:  params.CategoryID,
			})
		if err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		return s.publish(ctx, db, event.TopicProductCreated, product.ID, event.ProductCreatedEvent{
			ProductID:   product.ID,
			ProductName: product.ProductName,
			Price:       product.Price,
			Stock:       product.Stock,
			CategoryID:  product.CategoryID,
		})
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

// UpdateProduct applies the field update and, when tag ids are supplied,
// replaces the tag associations. Both run in one transaction. A missing
// product is not an error.
func (s *productService) UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) error {
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		found, err := s.productRepo.
			WithDB(db).
			UpdateProduct(ctx, id, repository.UpdateProductParams{
				ProductName: params.ProductName,
				Price:       params.Price,
				Stock:       params.Stock,
				CategoryID:  params.CategoryID,
			})
		if err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		if len(params.TagIDs) > 0 {
			productTagRepo := s.productTagRepo.WithDB(db)
			if _, err := productTagRepo.DeleteByProductID(ctx, id); err != nil {
				return fmt.Errorf("product tag repository delete by product id: %w", err)
			}
			if err := productTagRepo.BulkCreate(ctx, id, params.TagIDs); err != nil {
				return fmt.Errorf("product tag repository bulk create: %w", err)
			}
		}

		if !found {
			return nil
		}

		return s.publish(ctx, db, event.TopicProductUpdated, id, event.ProductUpdatedEvent{
			ProductID: id,
			Fields:    params.setFields(),
			TagIDs:    params.TagIDs,
		})
	}); err != nil {
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.productRepo.WithDB(db).DeleteProduct(ctx, id); err != nil {
			return fmt.Errorf("product repository delete product: %w",
				mapNotFound(err, apperr.ProductNotFoundErr))
		}

		return s.publish(ctx, db, event.TopicProductDeleted, id, event.ProductDeletedEvent{
			ProductID: id,
		})
	}); err != nil {
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}

// publish stores ev in the outbox within the caller's transaction.
func (s *productService) publish(ctx context.Context, db db.DB, topic string, productID int64, ev any) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	key := strconv.FormatInt(productID, 10)
	if err := s.outboxMsgRepo.
		WithDB(db).
		CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
			Topic:        topic,
			Headers:      outbox.BuildHeaders(ctx),
			Payload:      payload,
			PartitionKey: &key,
		}); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return nil
}

func (p UpdateProductParams) setFields() []string {
	fields := make([]string, 0, 4)
	if p.ProductName.IsSpecified() {
		fields = append(fields, "product_name")
	}
	if p.Price.IsSpecified() {
		fields = append(fields, "price")
	}
	if p.Stock.IsSpecified() {
		fields = append(fields, "stock")
	}
	if p.CategoryID.IsSpecified() {
		fields = append(fields, "category_id")
	}
	return fields
}
