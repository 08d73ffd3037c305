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

	"github.com/nats-io/nats.go"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"storefront/libs/go/auth"
	"storefront/libs/go/logging"
	messaging "storefront/libs/go/messaging/nats"
	"storefront/services/storefront/internal/application/services"
	"storefront/services/storefront/internal/config"
	"storefront/services/storefront/internal/db"
	"storefront/services/storefront/internal/delivery/handler"
	natsdelivery "storefront/services/storefront/internal/delivery/nats"
	"storefront/services/storefront/internal/infrastructure"
	"storefront/services/storefront/internal/repository"
)

const (
	shutdownTimeout = 10 * time.Second
	tokenLeeway     = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
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

	client, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoConnectTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()
	logger.Info("connected to mongodb", zap.String("database", cfg.MongoDatabase))

	database := client.Database(cfg.MongoDatabase)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		return err
	}

	cache := repository.NewReportCache(nil, cfg.ReportCacheTTL)
	if cfg.RedisURL != "" {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("report cache disabled", zap.Error(err))
		} else {
			cache = repository.NewReportCache(rdb, cfg.ReportCacheTTL)
			logger.Info("report cache enabled", zap.Duration("ttl", cfg.ReportCacheTTL))
		}
	}
	defer func() { _ = cache.Close() }()

	var (
		nc        *nats.Conn
		publisher services.Publisher
	)
	if cfg.NATSURL != "" {
		nc, err = messaging.Connect(cfg.NATSURL, "storefront", logger)
		if err != nil {
			logger.Warn("tracking notifications disabled", zap.Error(err))
		} else {
			publisher = messaging.NewPublisher(nc)
		}
	}
	defer messaging.Close(nc, logger)

	events := repository.NewEventRepo(database)
	products := repository.NewProductRepo(database)
	analytics := services.NewAnalyticsService(
		events,
		repository.NewOrderRepo(database),
		products,
		repository.NewUserRepo(database),
		cache,
		logger.Named("analytics"),
	)
	tracking := services.NewTrackingService(events, products, publisher, logger.Named("tracking"))

	if nc != nil {
		if _, err := natsdelivery.NewHandler(analytics, logger.Named("nats")).Subscribe(nc); err != nil {
			logger.Warn("nats report subjects unavailable", zap.Error(err))
		}
	}

	sessionLimiter := infrastructure.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMaxRequests)
	defer sessionLimiter.Stop()

	h := handler.NewHandler(
		analytics,
		tracking,
		auth.NewJWTService(cfg.JWTSecret, tokenLeeway),
		handler.HealthCheck{
			Mongo:        func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
			CacheEnabled: cache.Enabled(),
		},
		cfg.DefaultLookback,
		logger.Named("http"),
	)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.NewRouter(h, handler.RouterConfig{
			HandlerTimeout: cfg.HandlerTimeout,
			GlobalLimiter:  rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
			SessionLimiter: sessionLimiter,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.HandlerTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
