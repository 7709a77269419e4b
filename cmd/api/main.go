// @title           Project Task API
// @version         1.0
// @description     Project and task management API with custom fields

// @host      localhost:8004
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"project-task-api/internal/client"
	"project-task-api/internal/config"
	"project-task-api/internal/database"
	"project-task-api/internal/job"
	"project-task-api/internal/metrics"
	"project-task-api/internal/realtime"
	"project-task-api/internal/repository"
	"project-task-api/internal/router"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Project Task API",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
	)

	// Initialize database; a failed connection is retried in the background
	// so the pod stays alive behind its readiness probe
	dbConfig := database.Config{
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second)
	} else {
		database.SetDB(db)
		logger.Info("Database connected successfully")

		if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		}
	}

	// Metrics
	m := metrics.New()
	logger.Info("Metrics initialized")

	if db != nil {
		database.RegisterMetricsCallbacks(db, m)
		statsDone := database.StartDBStatsCollector(db, m)
		defer close(statsDone)

		collector := metrics.NewBusinessMetricsCollector(db, m, logger)
		collector.Start()
		defer collector.Stop()
	}

	// Redis (optional; definition list caching degrades gracefully)
	if err := database.InitRedis(cfg, logger); err != nil {
		logger.Warn("Failed to connect to Redis, definition caching disabled", zap.Error(err))
	}

	// User service client for premium plan lookups
	var userClient client.UserClient
	if cfg.User.ServiceURL != "" {
		userClient = client.NewUserClient(
			cfg.User.ServiceURL,
			cfg.User.InternalAPIKey,
			time.Duration(cfg.User.TimeoutSeconds)*time.Second,
			logger,
			m,
		)
		logger.Info("User client initialized", zap.String("user_service_url", cfg.User.ServiceURL))
	} else {
		userClient = client.NewNoOpUserClient()
		logger.Warn("User service URL not configured, all users treated as free plan")
	}

	// Realtime hub
	hub := realtime.NewHub(logger)

	// Scheduled orphaned-value cleanup
	scheduler := cron.New()
	if db != nil {
		cleanupJob := job.NewCleanupJob(repository.NewFieldValueRepository(db), m, logger)
		if _, err := scheduler.AddJob(cfg.Fields.CleanupSchedule, cleanupJob); err != nil {
			logger.Error("Failed to schedule cleanup job", zap.Error(err))
		} else {
			scheduler.Start()
			defer scheduler.Stop()
			logger.Info("Cleanup job scheduled", zap.String("schedule", cfg.Fields.CleanupSchedule))
		}
	}

	r := router.Setup(cfg, db, database.GetRedis(), userClient, hub, m, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("Project Task API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapConfig.Build()
}
