package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/config"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/event"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/http"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/http/metric"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/log"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/relay"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/repository"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/service"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/storage/mq"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/telemetry"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/cmdutil"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Relay    config.Relay
		Kafka    config.Kafka
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	categoryRepository := repository.NewCategoryRepository(dbClient)
	productRepository := repository.NewProductRepository(dbClient)
	tagRepository := repository.NewTagRepository(dbClient)
	productTagRepository := repository.NewProductTagRepository(dbClient)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	categoryService := service.NewCategoryService(categoryRepository)
	productService := service.NewProductService(dbClient, productRepository, productTagRepository, outboxMsgRepository)
	tagService := service.NewTagService(tagRepository)

	interruptChan := cmdutil.InterruptChan()

	eventSvc := event.New(logger, kafkaConsumer)
	cleanupEvent, err := eventSvc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running event service: %w", err)
	}
	logger.InfoContext(ctx, "event service started")

	httpSvc := http.New(cfg.HTTP, logger, metric.New(), v,
		categoryService, productService, tagService, dbClient)
	cleanupHTTP, err := httpSvc.Run(ctx)
	if err != nil {
		cleanupEvent()
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	relaySvc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer)
	cleanupRelay := relaySvc.Run(ctx)
	logger.InfoContext(ctx, "relay service started")

	<-interruptChan

	var wg sync.WaitGroup

	wg.Go(func() {
		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanupHTTP(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}
		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		logger.InfoContext(ctx, "relay service is shutting down")
		cleanupRelay()
		logger.InfoContext(ctx, "relay service is stopped")
	})

	wg.Go(func() {
		logger.InfoContext(ctx, "event service is shutting down")
		cleanupEvent()
		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Wait()

	return nil
}
