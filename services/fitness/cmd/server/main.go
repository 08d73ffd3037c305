package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"storefront/libs/go/auth"
	"storefront/libs/go/logging"
	"storefront/services/fitness/internal/application/services"
	"storefront/services/fitness/internal/config"
	"storefront/services/fitness/internal/delivery/handler"
	"storefront/services/fitness/internal/infrastructure/db/postgres"
)

const (
	shutdownTimeout = 10 * time.Second
	tokenLeeway     = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fitness:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	logger.Info("database opened", zap.String("driver", cfg.DBDriver))

	if cfg.AutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	workoutRepo := postgres.NewWorkoutRepository(db)
	logRepo := postgres.NewActivityLogRepository(db)

	h := handler.NewHandler(
		services.NewDashboardService(workoutRepo, logRepo),
		services.NewActivityLogService(logRepo),
		services.NewWorkoutService(workoutRepo, logger.Named("workouts")),
		auth.NewJWTService(cfg.JWTSecret, tokenLeeway),
		sqlDB.PingContext,
		logger.Named("http"),
	)
	e := handler.NewServer(h, cfg.RequestTimeout)
	e.Server.ReadHeaderTimeout = 5 * time.Second

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("fitness listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
