package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/config"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/http/metric"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/http/middleware"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/http/swagger"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/service"
	"github.com/tuanvumaihuynh/ecommerce-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/ecommerce-catalog/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// APIPrefix is where the catalog route groups are mounted.
const APIPrefix = "/api"

// Service represents the HTTP service.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	metrics   *metric.Metrics
	validator validator.Validator

	categorySvc   service.CategoryService
	productSvc    service.ProductService
	tagSvc        service.TagService
	healthChecker db.HealthChecker
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	metrics *metric.Metrics,
	v validator.Validator,
	categorySvc service.CategoryService,
	productSvc service.ProductService,
	tagSvc service.TagService,
	healthChecker db.HealthChecker,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        log.With(slog.String("service", "http")),
		metrics:       metrics,
		validator:     v,
		categorySvc:   categorySvc,
		productSvc:    productSvc,
		tagSvc:        tagSvc,
		healthChecker: healthChecker,
	}
}

// Handler builds the router with every middleware and route registered.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return r
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Handler())
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
			s.logger.ErrorContext(ctx, "http server stopped unexpectedly", slog.Any("error", err))
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.CorsOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	categories := newCategoryHandler(s.categorySvc, s.validator)
	products := newProductHandler(s.productSvc, s.validator)
	tags := newTagHandler(s.tagSvc, s.validator)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handle(categories.ListCategories))
			r.Post("/", s.handle(categories.CreateCategory))
			r.Get("/{id}", s.handle(categories.GetCategory))
			r.Put("/{id}", s.handle(categories.UpdateCategory))
			r.Delete("/{id}", s.handle(categories.DeleteCategory))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handle(products.ListProducts))
			r.Post("/", s.handle(products.CreateProduct))
			r.Get("/{id}", s.handle(products.GetProduct))
			r.Put("/{id}", s.handle(products.UpdateProduct))
			r.Delete("/{id}", s.handle(products.DeleteProduct))
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handle(tags.ListTags))
			r.Post("/", s.handle(tags.CreateTag))
			r.Get("/{id}", s.handle(tags.GetTag))
			r.Put("/{id}", s.handle(tags.UpdateTag))
			r.Delete("/{id}", s.handle(tags.DeleteTag))
		})
	})

	r.Get(middleware.HealthPath, s.handle(s.healthz))

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}
