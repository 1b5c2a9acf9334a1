package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"yamdb-backend/internal/config"
	infracache "yamdb-backend/internal/infrastructure/cache"
	"yamdb-backend/internal/infrastructure/database"
	"yamdb-backend/internal/infrastructure/queue"
	"yamdb-backend/internal/shared/middleware"
	"yamdb-backend/pkg/cache"
	"yamdb-backend/pkg/jwt"
	"yamdb-backend/pkg/logger"

	catalogHandler "yamdb-backend/internal/domains/catalog/handler"
	catalogRepo "yamdb-backend/internal/domains/catalog/repository"
	catalogService "yamdb-backend/internal/domains/catalog/service"
	reviewHandler "yamdb-backend/internal/domains/review/handler"
	reviewRepo "yamdb-backend/internal/domains/review/repository"
	reviewService "yamdb-backend/internal/domains/review/service"
	titleHandler "yamdb-backend/internal/domains/title/handler"
	titleRepo "yamdb-backend/internal/domains/title/repository"
	titleService "yamdb-backend/internal/domains/title/service"
	userHandler "yamdb-backend/internal/domains/user/handler"
	userRepo "yamdb-backend/internal/domains/user/repository"
	userService "yamdb-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton built once at startup.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infracache.RedisClient
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Metrics    *middleware.HTTPMetrics

	asynqClient *asynq.Client

	UserService    userService.UserService
	CatalogService catalogService.CatalogService
	TitleService   titleService.TitleService
	ReviewService  reviewService.ReviewService

	UserHandler    *userHandler.UserHandler
	CatalogHandler *catalogHandler.CatalogHandler
	TitleHandler   *titleHandler.TitleHandler
	ReviewHandler  *reviewHandler.ReviewHandler
}

// NewContainer builds the dependency graph bottom-up: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	c.Redis = infracache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = infracache.NewCache(c.Redis)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	c.Metrics = middleware.NewHTTPMetrics("yamdb")

	enqueuer, asynqClient := queue.NewEnqueuer(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.asynqClient = asynqClient

	users := userRepo.NewPostgresUserRepository(db.Pool)
	catalog := catalogRepo.NewPostgresCatalogRepository(db.Pool)
	titles := titleRepo.NewPostgresTitleRepository(db.Pool, c.Cache)
	reviews := reviewRepo.NewPostgresReviewRepository(db.Pool)

	c.UserService = userService.NewUserService(users, c.JWTManager, enqueuer)
	c.CatalogService = catalogService.NewCatalogService(catalog)
	c.TitleService = titleService.NewTitleService(titles, catalog)
	c.ReviewService = reviewService.NewReviewService(reviews, titles)

	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.TitleHandler = titleHandler.NewTitleHandler(c.TitleService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)

	logger.Info("Container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

// IdentityResolver exposes the user service as the per-request role
// resolver used by the auth middleware.
func (c *Container) IdentityResolver() middleware.IdentityResolver {
	return c.UserService
}

// Cleanup releases every connection the container owns. Safe to call
// on a partially built container.
func (c *Container) Cleanup() {
	if c.asynqClient != nil {
		if err := c.asynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close redis client", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
