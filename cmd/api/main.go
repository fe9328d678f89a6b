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

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	"go-jobboard-backend/internal/delivery/http/middleware"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/repository/document"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Job Board Backend API
// @version         1.0
// @description     Users, vagas and saved jobs over a document store.
// @host            localhost:3000
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "docstore", cfg.DocstoreDriver)

	secLog := security.NewSecurityLogger("jobboard-backend", cfg.GinMode)
	defer func() { _ = secLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Document Store
	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to open document store", "driver", cfg.DocstoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 4. Setup Redis (optional)
	redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.Redis.URL, Password: cfg.Redis.Password})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured - rate limiting uses process memory and login blocking is disabled")
	case err != nil:
		logger.Log.Error("Failed to connect to redis - continuing without it", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
	}

	// 5. Setup Repositories
	userRepo := document.NewUserRepository(store)
	vagaRepo := document.NewVagaRepository(store)

	// 6. Setup UseCases
	validate := validation.New()
	userUC := usecase.NewUserUsecase(userRepo, security.NewBcryptHasher(cfg.BcryptCost), validate)
	savedUC := usecase.NewSavedUsecase(userRepo, vagaRepo)
	vagaUC := usecase.NewVagaUsecase(vagaRepo, validate)

	health := map[string]usecase.Pinger{"docstore": store}
	if redisClient != nil {
		health["redis"] = usecase.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	healthUC := usecase.NewHealthUsecase(health)

	// 7. Setup Security
	loginTracker := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLogin.MaxAttempts,
		AttemptWindow: cfg.FailedLogin.AttemptWindow(),
		BlockDuration: cfg.FailedLogin.BlockDuration(),
	}, secLog)
	rateLimiter := middleware.NewRateLimiter(redisClient, secLog)
	go rateLimiter.Run(ctx, time.Minute)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:         userUC,
		SavedUC:        savedUC,
		VagaUC:         vagaUC,
		HealthUC:       healthUC,
		LoginTracker:   loginTracker,
		SecurityLogger: secLog,
		RateLimiter:    rateLimiter,
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
