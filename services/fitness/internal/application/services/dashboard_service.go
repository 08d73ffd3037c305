package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/services/fitness/internal/application/query"
	"storefront/services/fitness/internal/domain/entities"
	"storefront/services/fitness/internal/domain/repositories"
)

type DashboardService struct {
	workouts repositories.WorkoutRepository
	logs     repositories.ActivityLogRepository
	now      func() time.Time
}

func NewDashboardService(workouts repositories.WorkoutRepository, logs repositories.ActivityLogRepository) *DashboardService {
	return &DashboardService{
		workouts: workouts,
		logs:     logs,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard runs the four independent reads concurrently.
func (s *DashboardService) Dashboard(ctx context.Context, userID string) (*query.DashboardResult, error) {
	days := query.WeekDays(s.now())

	var (
		stats    repositories.WorkoutStats
		averages repositories.ActivityAverages
		recent   []entities.Workout
		week     []entities.ActivityLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.workouts.CompletedStats(gctx, userID)
		return wrap("workout stats", err)
	})
	g.Go(func() error {
		var err error
		averages, err = s.logs.Averages(gctx, userID)
		return wrap("activity averages", err)
	})
	g.Go(func() error {
		var err error
		recent, err = s.workouts.ListByUser(gctx, userID, query.RecentWorkoutLimit)
		return wrap("recent workouts", err)
	})
	g.Go(func() error {
		var err error
		week, err = s.logs.ListByUser(gctx, userID, days[0], days[len(days)-1])
		return wrap("weekly activity", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &query.DashboardResult{
		TotalWorkouts:       stats.Count,
		TotalCaloriesBurned: round2(stats.CaloriesBurned),
		AvgStepsPerDay:      round2(averages.Steps),
		AvgSleepHours:       round2(averages.SleepHours),
		RecentWorkouts:      make([]query.RecentWorkout, 0, len(recent)),
		WeeklyActivity:      query.WeeklyActivity(days, week),
	}
	for _, w := range recent {
		result.RecentWorkouts = append(result.RecentWorkouts, query.NewRecentWorkout(w))
	}
	return result, nil
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
