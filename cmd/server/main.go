package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tilalcrm/tilal/internal/adapter/persistence"
	"github.com/tilalcrm/tilal/internal/config"
	"github.com/tilalcrm/tilal/internal/service/jwt"
	"github.com/tilalcrm/tilal/internal/service/password"
	"github.com/tilalcrm/tilal/internal/service/ratelimit"
	"github.com/tilalcrm/tilal/internal/usecase"

	httpadapter "github.com/tilalcrm/tilal/internal/adapter/http"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Logging)
	logger.WithField("env", cfg.Server.Environment).Info("application starting")

	db, err := persistence.Open(ctx, cfg.Database.URL, cfg.Database.MaxConnections, cfg.Database.MaxIdleTime)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	logger.Info("database connection established")

	rateLimiter, err := ratelimit.New(ratelimit.Config{
		Enabled:  cfg.RateLimit.Enabled,
		RedisURL: cfg.Redis.URL,
		Window:   cfg.RateLimit.Window,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize rate limiter")
	}

	complaintRepo := persistence.NewPostgresComplaintRepository(db)
	auditRepo := persistence.NewPostgresAuditLogRepository(db)
	metricRepo := persistence.NewPostgresMetricRepository(db)
	userRepo := persistence.NewPostgresUserRepository(db)

	tokenService := jwt.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	passwordService := password.NewBcryptPasswordService(10)

	complaintUseCase := usecase.NewComplaintUseCase(complaintRepo, auditRepo, logger)
	metricsUseCase := usecase.NewMetricsUseCase(metricRepo, logger)
	authUseCase := usecase.NewAuthUseCase(userRepo, passwordService, tokenService, rateLimiter, cfg.RateLimit.Attempts, logger)

	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		complaintUseCase,
		metricsUseCase,
		authUseCase,
		httpadapter.NewAuthMiddleware(tokenService),
		logger,
	)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	logger.Info("server stopped")
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
