package handler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"storefront/libs/go/auth"
	"storefront/services/storefront/internal/application/command"
	"storefront/services/storefront/internal/application/query"
)

// AnalyticsService is implemented by services.AnalyticsService.
type AnalyticsService interface {
	ConversionFunnel(ctx context.Context, q query.FunnelQuery) (*query.FunnelResult, error)
	RevenueMetrics(ctx context.Context, q query.RevenueQuery) (*query.RevenueResult, error)
	AttributionReport(ctx context.Context, q query.AttributionQuery) (*query.AttributionResult, error)
	CustomerCohorts(ctx context.Context) (*query.CohortResult, error)
	CategoryPerformance(ctx context.Context) (*query.CategoryResult, error)
	DashboardKPIs(ctx context.Context) (*query.DashboardResult, error)
}

// TrackingService is implemented by services.TrackingService.
type TrackingService interface {
	TrackEvent(ctx context.Context, cmd command.TrackEventCommand, rc command.RequestContext) (*command.TrackEventCommandResult, error)
	TrackBatch(ctx context.Context, cmd command.TrackBatchCommand, rc command.RequestContext) (*command.TrackBatchCommandResult, error)
}

// HealthCheck reports on backing stores for /api/health.
type HealthCheck struct {
	Mongo        func(ctx context.Context) error
	CacheEnabled bool
}

// Handler serves the storefront analytics and tracking API.
type Handler struct {
	analytics AnalyticsService
	tracking  TrackingService
	jwt       *auth.JWTService
	health    HealthCheck
	metrics   *Metrics
	logger    *zap.Logger
	lookback  time.Duration
	now       func() time.Time
}

func NewHandler(
	analytics AnalyticsService,
	tracking TrackingService,
	jwt *auth.JWTService,
	health HealthCheck,
	lookback time.Duration,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		analytics: analytics,
		tracking:  tracking,
		jwt:       jwt,
		health:    health,
		metrics:   NewMetrics(),
		logger:    logger,
		lookback:  lookback,
		now:       time.Now,
	}
}

func (h *Handler) Metrics() *Metrics {
	return h.metrics
}
