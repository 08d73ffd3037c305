package repositories

import (
	"context"
	"errors"

	"storefront/services/fitness/internal/domain/entities"
)

// Finders return (nil, nil) when no row matches.

type WorkoutRepository interface {
	Create(ctx context.Context, workout *entities.Workout) error
	Update(ctx context.Context, workout *entities.Workout) error
	FindByID(ctx context.Context, userID string, id uint) (*entities.Workout, error)
	// ListByUser returns workouts newest first; limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]entities.Workout, error)
	CompletedStats(ctx context.Context, userID string) (WorkoutStats, error)
}

type WorkoutStats struct {
	Count          int64
	CaloriesBurned float64
}

type ActivityLogRepository interface {
	Save(ctx context.Context, log *entities.ActivityLog) error
	FindByID(ctx context.Context, userID string, id uint) (*entities.ActivityLog, error)
	FindByDate(ctx context.Context, userID, date string) (*entities.ActivityLog, error)
	// ListByUser returns logs with from <= logDate <= to, newest first. Empty bounds are open.
	ListByUser(ctx context.Context, userID, from, to string) ([]entities.ActivityLog, error)
	Averages(ctx context.Context, userID string) (ActivityAverages, error)
}

type ActivityAverages struct {
	Steps      float64
	SleepHours float64
}

// ErrNotFound is returned by writes that matched no row.
var ErrNotFound = errors.New("record not found")
