package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"journal-service/internal/config"
	croninfra "journal-service/internal/infrastructure/cron"
	"journal-service/internal/infrastructure/db"
	"journal-service/internal/infrastructure/kafka"
	"journal-service/internal/infrastructure/openai"
	"journal-service/internal/infrastructure/postgres"
	redisinfra "journal-service/internal/infrastructure/redis"
	"journal-service/internal/service"
	"journal-service/internal/transport/http/handler"
	"journal-service/internal/transport/http/middleware"
	"journal-service/pkg/jwt"
)

// App represents the application
type App struct {
	cfg            *config.Config
	httpServer     *http.Server
	summaryChecker *croninfra.SummaryChecker
	producer       *kafka.Producer
	redisClient    *goredis.Client
	dbPool         *pgxpool.Pool
}

// New creates a new application
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Println("Configuration loaded successfully")

	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Println("Connected to PostgreSQL")

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Redis.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at startup: %v", err)
	} else {
		log.Println("Connected to Redis")
	}

	// Repositories
	entryRepo := postgres.NewEntryRepository(dbPool)
	categoryRepo := postgres.NewCategoryRepository(dbPool)
	pendingRepo := postgres.NewPendingCategoryRepository(dbPool)
	goalRepo := postgres.NewGoalRepository(dbPool)
	progressRepo := postgres.NewGoalProgressRepository(dbPool)
	summaryRepo := postgres.NewSummaryRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)

	// Infrastructure
	classifier := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
	producer := kafka.NewProducer(&cfg.Kafka)
	summaryLock := redisinfra.NewSummaryLock(redisClient, cfg.Summary.LockTTL)

	// Services
	goalService := service.NewGoalService(goalRepo, progressRepo, classifier, producer)
	entryService := service.NewEntryService(entryRepo, categoryRepo, pendingRepo, goalService, classifier)
	categoryService := service.NewCategoryService(categoryRepo, pendingRepo, entryRepo)
	summaryService := service.NewSummaryService(summaryRepo, entryRepo, categoryRepo, classifier, summaryLock, producer, cfg.Summary.MinEntries)
	profileService := service.NewProfileService(profileRepo)
	log.Println("Services initialized")

	// HTTP transport
	tokenManager := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer)
	authMiddleware := middleware.NewAuthMiddleware(tokenManager)

	router := handler.NewRouter(
		handler.NewEntryHandler(entryService),
		handler.NewCategoryHandler(categoryService),
		handler.NewGoalHandler(goalService),
		handler.NewSummaryHandler(summaryService),
		handler.NewProfileHandler(profileService),
		authMiddleware,
		cfg.HTTP.RateLimit,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
	log.Printf("HTTP server configured on port %d", cfg.HTTP.Port)

	var summaryChecker *croninfra.SummaryChecker
	if cfg.Scheduler.Enabled {
		summaryChecker = croninfra.NewSummaryChecker(summaryService, entryRepo, cfg.Scheduler.SummarySpec, cfg.Scheduler.ActivityWindow)
	}

	return &App{
		cfg:            cfg,
		httpServer:     httpServer,
		summaryChecker: summaryChecker,
		producer:       producer,
		redisClient:    redisClient,
		dbPool:         dbPool,
	}, nil
}

// Run starts the application
func (a *App) Run() error {
	log.Println("Starting rate limit cleanup routine")
	middleware.CleanupVisitors()

	if a.summaryChecker != nil {
		if err := a.summaryChecker.Start(); err != nil {
			return fmt.Errorf("failed to start summary checker: %w", err)
		}
	}

	go func() {
		log.Printf("Starting HTTP server on %s", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownTimeout := a.cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if a.summaryChecker != nil {
		a.summaryChecker.Stop()
	}

	if err := a.producer.Close(); err != nil {
		log.Printf("Failed to close Kafka producer: %v", err)
	}

	if err := a.redisClient.Close(); err != nil {
		log.Printf("Failed to close Redis client: %v", err)
	}

	a.dbPool.Close()

	log.Println("Server stopped")
	return nil
}
