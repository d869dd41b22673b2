package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-touring-backend/config"
	_ "go-touring-backend/docs" // Important for Swagger
	"go-touring-backend/internal/delivery/http/middleware"
	v1 "go-touring-backend/internal/delivery/http/v1"
	"go-touring-backend/internal/domain"
	"go-touring-backend/internal/repository/cache"
	"go-touring-backend/internal/repository/postgres"
	"go-touring-backend/internal/usecase"
	"go-touring-backend/pkg/catalogue"
	"go-touring-backend/pkg/database"
	"go-touring-backend/pkg/logger"
	"go-touring-backend/pkg/notify"
	"go-touring-backend/pkg/redis"
	"go-touring-backend/pkg/sanity"
	"go-touring-backend/pkg/security"
	"go-touring-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Touring Site Backend API
// @version         1.0
// @description     Contact form, service catalogue and CMS revalidation for the touring company site.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.Environment)
	logger.Log.Info("Starting touring backend", "port", cfg.Port, "env", cfg.Environment)

	secLogger := security.InitSecurityLogger("touring-backend", cfg.Environment)
	defer secLogger.Sync()

	ctx := context.Background()

	// 3. Setup Redis (optional)
	redisClient, err := redis.Connect(ctx, redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	if err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable - cache and rate limiting use in-memory fallback", "error", err)
		}
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var contentCache domain.ContentCache = cache.NewMemoryCache()
	if redisClient != nil {
		contentCache = cache.NewRedisCache(redisClient)
	}

	// 4. Setup Content Source
	source, dbPool := newContentSource(ctx, cfg)
	if dbPool != nil {
		defer dbPool.Close()
	}

	// 5. Setup Notifier
	notifier, closeNotifier := notify.FromConfig(cfg)
	defer closeNotifier()

	// 6. Setup UseCases
	validate := validator.New()
	contactUC := usecase.NewContactUsecase(validation.NewContactValidator(validate), notifier)
	contentUC := usecase.NewContentUsecase(
		source,
		contentCache,
		time.Duration(cfg.ContentCacheTTLSeconds)*time.Second,
		cfg.SiteURL,
	)
	verifier := sanity.NewVerifier(cfg.SanityWebhookSecret, time.Duration(cfg.WebhookToleranceSeconds)*time.Second)
	revalidateUC := usecase.NewRevalidateUsecase(verifier, contentUC)
	healthUC := usecase.NewHealthUsecase(healthProbes(redisClient, dbPool))

	// 7. Setup Router
	rateLimiter := middleware.NewRateLimiter(redisClient)
	defer rateLimiter.Close()

	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:    contactUC,
		ContentUC:    contentUC,
		RevalidateUC: revalidateUC,
		HealthUC:     healthUC,
		RateLimiter:  rateLimiter,
		Config:       cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// newContentSource picks the backend named by CONTENT_BACKEND. A backend that
// cannot be set up leaves the catalogue empty instead of failing startup.
func newContentSource(ctx context.Context, cfg *config.Config) (domain.ContentSource, *pgxpool.Pool) {
	switch cfg.ContentBackend {
	case "sanity":
		client, err := sanity.NewClient(sanity.Config{
			ProjectID:  cfg.SanityProjectID,
			Dataset:    cfg.SanityDataset,
			APIVersion: cfg.SanityAPIVersion,
			UseCDN:     cfg.SanityUseCDN,
			Token:      cfg.SanityAPIToken,
		})
		if err == nil {
			return client, nil
		}
		logger.Log.Warn("Sanity not configured - service catalogue will be empty", "error", err)
	case "postgres":
		if cfg.DBUrl == "" {
			break
		}
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err == nil {
			return postgres.NewServiceRepository(pool), pool
		}
		logger.Log.Error("Failed to connect to database - service catalogue will be empty", "error", err)
	case "file":
		services, err := catalogue.LoadFile(cfg.ContentFile)
		if err == nil {
			return catalogue.NewSource(services), nil
		}
		logger.Log.Warn("Catalogue file unreadable - service catalogue will be empty", "path", cfg.ContentFile, "error", err)
	default:
		logger.Log.Warn("Unknown CONTENT_BACKEND - service catalogue will be empty", "backend", cfg.ContentBackend)
	}
	return usecase.NewUnconfiguredSource(), nil
}

func healthProbes(redisClient *goredis.Client, dbPool *pgxpool.Pool) map[string]usecase.Probe {
	probes := map[string]usecase.Probe{
		"redis":    nil,
		"database": nil,
	}
	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error {
			return redis.HealthCheck(ctx, redisClient)
		}
	}
	if dbPool != nil {
		probes["database"] = dbPool.Ping
	}
	return probes
}
