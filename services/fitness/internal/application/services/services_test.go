package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/services/fitness/internal/application/command"
	"storefront/services/fitness/internal/application/query"
	"storefront/services/fitness/internal/domain/entities"
	"storefront/services/fitness/internal/domain/repositories"
	"storefront/services/fitness/internal/infrastructure/db/postgres"
)

func ptr[T any](v T) *T { return &v }

var fixedNow = time.Date(2026, 10, 17, 18, 30, 0, 0, time.UTC)

type fixture struct {
	workouts  *WorkoutService
	activity  *ActivityLogService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := postgres.Open(postgres.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres.Migrate(db))

	workoutRepo := postgres.NewWorkoutRepository(db)
	logRepo := postgres.NewActivityLogRepository(db)

	f := &fixture{
		workouts:  NewWorkoutService(workoutRepo, zap.NewNop()),
		activity:  NewActivityLogService(logRepo),
		dashboard: NewDashboardService(workoutRepo, logRepo),
	}
	clock := func() time.Time { return fixedNow }
	f.workouts.now = clock
	f.activity.now = clock
	f.dashboard.now = clock
	return f
}

func TestWorkoutService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	started := fixedNow.Add(-50 * time.Minute)
	w, err := f.workouts.Create(ctx, "u1", command.CreateWorkoutCommand{
		Name:      "Intervals",
		StartedAt: &started,
		Exercises: []command.ExerciseInput{
			{ExerciseName: "Sprint", CaloriesBurned: ptr(150.0)},
			{ExerciseName: "Jog", CaloriesBurned: ptr(100.0)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusInProgress, w.Status)
	assert.NotZero(t, w.ID)

	t.Run("invalid create", func(t *testing.T) {
		_, err := f.workouts.Create(ctx, "u1", command.CreateWorkoutCommand{})
		assert.ErrorIs(t, err, command.ErrValidation)
	})

	t.Run("get is scoped to owner", func(t *testing.T) {
		_, err := f.workouts.Get(ctx, "u2", w.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("complete derives missing values", func(t *testing.T) {
		done, err := f.workouts.Complete(ctx, "u1", w.ID, command.CompleteWorkoutCommand{})
		require.NoError(t, err)
		assert.Equal(t, entities.StatusCompleted, done.Status)
		assert.Equal(t, 50, *done.DurationMinutes)
		assert.Equal(t, 250.0, *done.CaloriesBurned)
		assert.True(t, done.CompletedAt.Equal(fixedNow))
	})

	t.Run("complete twice conflicts", func(t *testing.T) {
		_, err := f.workouts.Complete(ctx, "u1", w.ID, command.CompleteWorkoutCommand{})
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("complete unknown", func(t *testing.T) {
		_, err := f.workouts.Complete(ctx, "u1", 9999, command.CompleteWorkoutCommand{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("complete with invalid input", func(t *testing.T) {
		_, err := f.workouts.Complete(ctx, "u1", w.ID, command.CompleteWorkoutCommand{DurationMinutes: ptr(-5)})
		assert.ErrorIs(t, err, command.ErrValidation)
	})

	t.Run("list", func(t *testing.T) {
		list, err := f.workouts.List(ctx, "u1", 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, entities.StatusCompleted, list[0].Status)
	})
}

func TestActivityLogService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	log, created, err := f.activity.Log(ctx, "u1", command.LogActivityCommand{
		ActivityFields: entities.ActivityFields{Steps: ptr(3000)},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "2026-10-17", log.LogDate)

	t.Run("second log of the day merges", func(t *testing.T) {
		merged, created, err := f.activity.Log(ctx, "u1", command.LogActivityCommand{
			ActivityFields: entities.ActivityFields{SleepHours: ptr(6.5)},
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, log.ID, merged.ID)
		assert.Equal(t, 3000, *merged.Steps)
		assert.Equal(t, 6.5, *merged.SleepHours)
	})

	t.Run("explicit date", func(t *testing.T) {
		past, created, err := f.activity.Log(ctx, "u1", command.LogActivityCommand{LogDate: "2026-10-10"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "2026-10-10", past.LogDate)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, _, err := f.activity.Log(ctx, "u1", command.LogActivityCommand{LogDate: "17-10-2026"})
		assert.ErrorIs(t, err, command.ErrValidation)

		_, _, err = f.activity.Log(ctx, "u1", command.LogActivityCommand{
			ActivityFields: entities.ActivityFields{Steps: ptr(-1)},
		})
		assert.ErrorIs(t, err, command.ErrValidation)
	})

	t.Run("list", func(t *testing.T) {
		all, err := f.activity.List(ctx, "u1", query.ActivityRange{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "2026-10-17", all[0].LogDate)

		recent, err := f.activity.List(ctx, "u1", query.ActivityRange{Start: "2026-10-11"})
		require.NoError(t, err)
		assert.Len(t, recent, 1)

		_, err = f.activity.List(ctx, "u1", query.ActivityRange{Start: "2026-10-12", End: "2026-10-11"})
		assert.ErrorIs(t, err, command.ErrInvalidRange)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := f.activity.Update(ctx, "u1", log.ID, command.UpdateActivityCommand{
			ActivityFields: entities.ActivityFields{Mood: ptr("great")},
		})
		require.NoError(t, err)
		assert.Equal(t, "great", *updated.Mood)
		assert.Equal(t, 3000, *updated.Steps)

		_, err = f.activity.Update(ctx, "u2", log.ID, command.UpdateActivityCommand{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDashboardService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("empty user", func(t *testing.T) {
		d, err := f.dashboard.Dashboard(ctx, "nobody")
		require.NoError(t, err)
		assert.Zero(t, d.TotalWorkouts)
		assert.Zero(t, d.TotalCaloriesBurned)
		assert.Zero(t, d.AvgStepsPerDay)
		assert.Empty(t, d.RecentWorkouts)
		require.Len(t, d.WeeklyActivity, query.WeeklyDays)
		assert.Equal(t, "2026-10-11", d.WeeklyActivity[0].Date)
		assert.Equal(t, "2026-10-17", d.WeeklyActivity[6].Date)
	})

	for i := 0; i < 7; i++ {
		f.workouts.now = func() time.Time { return fixedNow.Add(time.Duration(i-10) * time.Hour) }
		w, err := f.workouts.Create(ctx, "u1", command.CreateWorkoutCommand{
			Name:      "Session",
			Exercises: []command.ExerciseInput{{ExerciseName: "Row"}},
		})
		require.NoError(t, err)
		if i < 2 {
			_, err = f.workouts.Complete(ctx, "u1", w.ID, command.CompleteWorkoutCommand{
				DurationMinutes: ptr(30),
				CaloriesBurned:  ptr(100.125),
			})
			require.NoError(t, err)
		}
	}

	for date, steps := range map[string]int{"2026-10-01": 2000, "2026-10-12": 5000, "2026-10-17": 6001} {
		_, _, err := f.activity.Log(ctx, "u1", command.LogActivityCommand{
			LogDate:        date,
			ActivityFields: entities.ActivityFields{Steps: ptr(steps), WaterMl: ptr(1000)},
		})
		require.NoError(t, err)
	}

	d, err := f.dashboard.Dashboard(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, int64(2), d.TotalWorkouts)
	assert.Equal(t, 200.25, d.TotalCaloriesBurned)
	assert.Equal(t, 4333.67, d.AvgStepsPerDay)
	assert.Zero(t, d.AvgSleepHours)

	require.Len(t, d.RecentWorkouts, query.RecentWorkoutLimit)
	assert.Equal(t, entities.StatusInProgress, d.RecentWorkouts[0].Status)
	assert.Equal(t, 1, d.RecentWorkouts[0].ExerciseCount)
	assert.True(t, d.RecentWorkouts[0].Date.After(d.RecentWorkouts[4].Date))

	assert.Equal(t, query.DailyActivity{Date: "2026-10-12", Steps: 5000, WaterMl: 1000}, d.WeeklyActivity[1])
	assert.Equal(t, query.DailyActivity{Date: "2026-10-13"}, d.WeeklyActivity[2])
	assert.Equal(t, 6001, d.WeeklyActivity[6].Steps)
}

type failingLogs struct {
	repositories.ActivityLogRepository
}

func (failingLogs) Averages(context.Context, string) (repositories.ActivityAverages, error) {
	return repositories.ActivityAverages{}, errors.New("connection reset")
}

func (failingLogs) ListByUser(context.Context, string, string, string) ([]entities.ActivityLog, error) {
	return nil, nil
}

func TestDashboardService_Error(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.dashboard.workouts, failingLogs{})

	_, err := svc.Dashboard(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activity averages: connection reset")
}
