package di

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sandeepkv93/catalog-api/internal/app"
	"github.com/sandeepkv93/catalog-api/internal/config"
	"github.com/sandeepkv93/catalog-api/internal/database"
	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/health"
	"github.com/sandeepkv93/catalog-api/internal/http/handler"
	"github.com/sandeepkv93/catalog-api/internal/http/middleware"
	"github.com/sandeepkv93/catalog-api/internal/http/router"
	"github.com/sandeepkv93/catalog-api/internal/observability"
	"github.com/sandeepkv93/catalog-api/internal/repository"
	"github.com/sandeepkv93/catalog-api/internal/security"
	"github.com/sandeepkv93/catalog-api/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	provideCategoryRepository,
	provideProductRepository,
)

var SecuritySet = wire.NewSet(
	provideTokenValidator,
	wire.Bind(new(middleware.TokenValidator), new(*security.TokenValidator)),
)

var ServiceSet = wire.NewSet(
	service.NewCategoryService,
	service.NewProductService,
	wire.Bind(new(service.CategoryService), new(*service.CategoryServiceImpl)),
	wire.Bind(new(service.ProductService), new(*service.ProductServiceImpl)),
)

var HTTPSet = wire.NewSet(
	provideCategoryHandler,
	provideProductHandler,
	provideGlobalRateLimiter,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(provideApp)

// MigrationRunner backs the migrate and seed tools.
type MigrationRunner struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewMigrationRunner(cfg *config.Config, db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{cfg: cfg, db: db}
}

func (m *MigrationRunner) Config() *config.Config { return m.cfg }

func (m *MigrationRunner) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (m *MigrationRunner) Up() error { return database.Migrate(m.db) }

func (m *MigrationRunner) Status() ([]database.TableStatus, error) { return database.Status(m.db) }

func (m *MigrationRunner) Plan() ([]string, error) { return database.Plan(m.db) }

func (m *MigrationRunner) Seed(ctx context.Context, dryRun bool) (*database.SeedReport, error) {
	return database.SeedCatalog(ctx, m.db, dryRun)
}

// Inventory returns every stored category and product, each ordered by name.
func (m *MigrationRunner) Inventory(ctx context.Context) ([]domain.Category, []domain.Product, error) {
	categories, err := repository.NewCategoryRepository(m.db, m.cfg.PaginationMaxLimit).ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	products, err := repository.NewProductRepository(m.db, m.cfg.PaginationMaxLimit).ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return categories, products, nil
}

func (m *MigrationRunner) Close() error { return database.Close(m.db) }

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

// provideRuntimeDB opens the pool and brings the schema up to date before serving.
// On failure the observability runtime is flushed, as no App will own it.
func provideRuntimeDB(cfg *config.Config, runtime *observability.Runtime) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err == nil {
		if err = database.Migrate(db); err != nil {
			_ = database.Close(db)
		}
	}
	if err != nil {
		_ = runtime.Shutdown(context.Background())
		return nil, err
	}
	return db, nil
}

func provideRedisClient(cfg *config.Config, logger *slog.Logger) redis.UniversalClient {
	if !cfg.RateLimitRedisEnabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	observability.InstrumentRedisClient(client, logger)
	return client
}

func provideCategoryRepository(cfg *config.Config, db *gorm.DB) repository.CategoryRepository {
	return repository.NewCategoryRepository(db, cfg.PaginationMaxLimit)
}

func provideProductRepository(cfg *config.Config, db *gorm.DB) repository.ProductRepository {
	return repository.NewProductRepository(db, cfg.PaginationMaxLimit)
}

func provideTokenValidator(cfg *config.Config) *security.TokenValidator {
	return security.NewTokenValidator(cfg.APIToken)
}

func provideCategoryHandler(cfg *config.Config, svc service.CategoryService) *handler.CategoryHandler {
	return handler.NewCategoryHandler(svc, cfg.PaginationMaxLimit)
}

func provideProductHandler(cfg *config.Config, svc service.ProductService) *handler.ProductHandler {
	return handler.NewProductHandler(svc, cfg.PaginationMaxLimit)
}

// provideGlobalRateLimiter uses the shared Redis window when enabled and fails
// open when Redis is unreachable.
func provideGlobalRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) router.GlobalRateLimiterFunc {
	if cfg.RateLimitRedisEnabled && redisClient != nil {
		redisLimiter := middleware.NewRedisFixedWindowLimiter(redisClient, cfg.RateLimitRedisPrefix+":api")
		return middleware.NewDistributedRateLimiter(
			redisLimiter,
			cfg.APIRateLimitPerMin,
			time.Minute,
			middleware.FailOpen,
			"api",
		).Middleware()
	}
	return middleware.NewRateLimiter(cfg.APIRateLimitPerMin, time.Minute).Middleware()
}

func provideRouterDependencies(
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	tokenValidator middleware.TokenValidator,
	globalRateLimiter router.GlobalRateLimiterFunc,
	readiness *health.ProbeRunner,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		CategoryHandler:   categoryHandler,
		ProductHandler:    productHandler,
		TokenValidator:    tokenValidator,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		APIRateLimitRPM:   cfg.APIRateLimitPerMin,
		GlobalRateLimiter: globalRateLimiter,
		Readiness:         readiness,
		EnableOTelHTTP:    cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient) *health.ProbeRunner {
	checkers := make([]health.Checker, 0, 2)
	checkers = append(checkers, health.NewDBChecker(db))
	if cfg.RateLimitRedisEnabled {
		checkers = append(checkers, health.NewRedisChecker(redisClient))
	}
	return health.NewProbeRunner(cfg.ReadinessProbeTimeout, cfg.ServerStartGracePeriod, checkers...)
}

func provideApp(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	db *gorm.DB,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
) *app.App {
	return app.New(cfg, logger, server, runtime, db, redisClient, readiness)
}
