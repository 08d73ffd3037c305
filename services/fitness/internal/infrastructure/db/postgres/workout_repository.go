package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/services/fitness/internal/domain/entities"
	"storefront/services/fitness/internal/domain/repositories"
)

type WorkoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func orderedExercises(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

// Create inserts the workout with its exercises and copies generated ids back.
func (r *WorkoutRepository) Create(ctx context.Context, workout *entities.Workout) error {
	m := workoutToModel(workout)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	*workout = m.toEntity()
	return nil
}

// Update writes the workout row; exercises are immutable once created.
func (r *WorkoutRepository) Update(ctx context.Context, workout *entities.Workout) error {
	res := r.db.WithContext(ctx).
		Model(&WorkoutModel{}).
		Where("id = ? AND user_id = ?", workout.ID, workout.UserID).
		Updates(map[string]any{
			"name":             workout.Name,
			"notes":            workout.Notes,
			"status":           string(workout.Status),
			"completed_at":     workout.CompletedAt,
			"duration_minutes": workout.DurationMinutes,
			"calories_burned":  workout.CaloriesBurned,
		})
	if res.Error != nil {
		return fmt.Errorf("update workout %d: %w", workout.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *WorkoutRepository) FindByID(ctx context.Context, userID string, id uint) (*entities.Workout, error) {
	var m WorkoutModel
	err := r.db.WithContext(ctx).
		Preload("Exercises", orderedExercises).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	w := m.toEntity()
	return &w, nil
}

func (r *WorkoutRepository) ListByUser(ctx context.Context, userID string, limit int) ([]entities.Workout, error) {
	q := r.db.WithContext(ctx).
		Preload("Exercises", orderedExercises).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []WorkoutModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	workouts := make([]entities.Workout, 0, len(models))
	for i := range models {
		workouts = append(workouts, models[i].toEntity())
	}
	return workouts, nil
}

func (r *WorkoutRepository) CompletedStats(ctx context.Context, userID string) (repositories.WorkoutStats, error) {
	var row struct {
		Count    int64
		Calories float64
	}
	err := r.db.WithContext(ctx).
		Model(&WorkoutModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(calories_burned), 0) AS calories").
		Where("user_id = ? AND status = ?", userID, string(entities.StatusCompleted)).
		Scan(&row).Error
	if err != nil {
		return repositories.WorkoutStats{}, err
	}
	return repositories.WorkoutStats{Count: row.Count, CaloriesBurned: row.Calories}, nil
}

var _ repositories.WorkoutRepository = (*WorkoutRepository)(nil)
