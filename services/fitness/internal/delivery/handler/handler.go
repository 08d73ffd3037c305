package handler

import (
	"context"

	"go.uber.org/zap"

	"storefront/libs/go/auth"
	"storefront/services/fitness/internal/application/command"
	"storefront/services/fitness/internal/application/query"
	"storefront/services/fitness/internal/domain/entities"
)

type DashboardService interface {
	Dashboard(ctx context.Context, userID string) (*query.DashboardResult, error)
}

type ActivityService interface {
	Log(ctx context.Context, userID string, cmd command.LogActivityCommand) (*entities.ActivityLog, bool, error)
	List(ctx context.Context, userID string, r query.ActivityRange) ([]entities.ActivityLog, error)
	Update(ctx context.Context, userID string, id uint, cmd command.UpdateActivityCommand) (*entities.ActivityLog, error)
}

type WorkoutService interface {
	Create(ctx context.Context, userID string, cmd command.CreateWorkoutCommand) (*entities.Workout, error)
	Complete(ctx context.Context, userID string, id uint, cmd command.CompleteWorkoutCommand) (*entities.Workout, error)
	Get(ctx context.Context, userID string, id uint) (*entities.Workout, error)
	List(ctx context.Context, userID string, limit int) ([]entities.Workout, error)
}

type Handler struct {
	dashboard DashboardService
	activity  ActivityService
	workouts  WorkoutService
	jwt       *auth.JWTService
	ping      func(ctx context.Context) error
	logger    *zap.Logger
}

// NewHandler wires the services; ping backs /api/health and may be nil.
func NewHandler(
	dashboard DashboardService,
	activity ActivityService,
	workouts WorkoutService,
	jwt *auth.JWTService,
	ping func(ctx context.Context) error,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		dashboard: dashboard,
		activity:  activity,
		workouts:  workouts,
		jwt:       jwt,
		ping:      ping,
		logger:    logger,
	}
}
