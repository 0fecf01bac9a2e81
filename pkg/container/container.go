package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"worker-profile-service/internal/config"
	workerHandler "worker-profile-service/internal/domains/worker/handler"
	workerRepo "worker-profile-service/internal/domains/worker/repository"
	workerService "worker-profile-service/internal/domains/worker/service"
	infraCache "worker-profile-service/internal/infrastructure/cache"
	"worker-profile-service/internal/infrastructure/database"
	"worker-profile-service/internal/infrastructure/queue"
	"worker-profile-service/pkg/cache"
	"worker-profile-service/pkg/jwt"
)

// Container holds every application dependency. It is the root of the
// dependency graph: constructed once at process start, torn down on
// shutdown, and passed by reference to the HTTP layer.
type Container struct {
	// Infrastructure - shared singletons
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	AsynqClient *asynq.Client
	JWTManager  *jwt.Manager

	// Domain wiring
	Publisher     queue.Publisher
	WorkerRepo    workerRepo.Repository
	WorkerService workerService.Service
	WorkerHandler *workerHandler.WorkerHandler
}

// NewContainer builds the full dependency graph. Initialization order
// matters: config, then infrastructure, then repositories, services and
// handlers.
func NewContainer() (*Container, error) {
	log.Println("[CONTAINER] Initializing dependencies...")

	c := &Container{}

	// ----------------------------------------
	// Configuration
	// ----------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ----------------------------------------
	// Database
	// ----------------------------------------
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ----------------------------------------
	// Cache
	// ----------------------------------------
	// A cache outage is non-critical: the wrapper degrades every
	// operation to a miss/no-op, so startup only logs the failure.
	redisCache := infraCache.NewRedisCache(
		cfg.Cache.Addr,
		cfg.Cache.Password,
		cfg.Cache.DB,
	)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
	}
	c.Cache = redisCache

	// ----------------------------------------
	// Event queue
	// ----------------------------------------
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Queue.Addr,
		Password: cfg.Queue.Password,
		DB:       cfg.Queue.DB,
	})
	c.Publisher = queue.NewEventPublisher(c.AsynqClient)

	// ----------------------------------------
	// Auth
	// ----------------------------------------
	jwtManager, err := jwt.NewManagerFromFile(
		cfg.JWT.PublicKeyPath,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT manager: %w", err)
	}
	c.JWTManager = jwtManager

	// ----------------------------------------
	// Domain layers
	// ----------------------------------------
	c.WorkerRepo = workerRepo.NewPostgresRepository(c.DB.Pool)
	c.WorkerService = workerService.NewWorkerService(c.WorkerRepo, c.Cache, c.Publisher)
	c.WorkerHandler = workerHandler.NewWorkerHandler(c.WorkerService)

	log.Println("[CONTAINER] Dependencies initialized")
	return c, nil
}

// Cleanup tears the infrastructure down in reverse order.
func (c *Container) Cleanup() {
	log.Println("[CONTAINER] Cleaning up...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close queue client: %v", err)
		}
	}

	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close cache client: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("[CONTAINER] Cleanup complete")
}
