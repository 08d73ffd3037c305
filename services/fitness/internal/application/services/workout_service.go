package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront/services/fitness/internal/application/command"
	"storefront/services/fitness/internal/domain/entities"
	"storefront/services/fitness/internal/domain/repositories"
)

type WorkoutService struct {
	workouts repositories.WorkoutRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewWorkoutService(workouts repositories.WorkoutRepository, logger *zap.Logger) *WorkoutService {
	return &WorkoutService{
		workouts: workouts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *WorkoutService) Create(ctx context.Context, userID string, cmd command.CreateWorkoutCommand) (*entities.Workout, error) {
	workout, err := cmd.ToWorkout(userID, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.workouts.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// Complete finishes an in-progress workout.
func (s *WorkoutService) Complete(ctx context.Context, userID string, id uint, cmd command.CompleteWorkoutCommand) (*entities.Workout, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	workout, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if workout.Status != entities.StatusInProgress {
		return nil, fmt.Errorf("%w: workout %d is %s", ErrInvalidState, id, workout.Status)
	}

	workout.Complete(s.now(), cmd.DurationMinutes, cmd.CaloriesBurned)
	if err := s.workouts.Update(ctx, workout); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.logger.Info("workout completed",
		zap.String("user_id", userID),
		zap.Uint("workout_id", id),
		zap.Intp("duration_minutes", workout.DurationMinutes),
	)
	return workout, nil
}

func (s *WorkoutService) Get(ctx context.Context, userID string, id uint) (*entities.Workout, error) {
	workout, err := s.workouts.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if workout == nil {
		return nil, ErrNotFound
	}
	return workout, nil
}

func (s *WorkoutService) List(ctx context.Context, userID string, limit int) ([]entities.Workout, error) {
	return s.workouts.ListByUser(ctx, userID, limit)
}
