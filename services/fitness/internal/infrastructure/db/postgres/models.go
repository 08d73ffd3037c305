package postgres

import (
	"time"

	"storefront/services/fitness/internal/domain/entities"
)

type WorkoutModel struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          string    `gorm:"size:64;not null;index"`
	Name            string    `gorm:"size:255;not null"`
	Notes           string    `gorm:"type:text"`
	Status          string    `gorm:"size:20;not null;default:IN_PROGRESS"`
	StartedAt       time.Time `gorm:"not null"`
	CompletedAt     *time.Time
	DurationMinutes *int
	CaloriesBurned  *float64
	CreatedAt       time.Time              `gorm:"index"`
	Exercises       []WorkoutExerciseModel `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE"`
}

func (WorkoutModel) TableName() string {
	return "workouts"
}

type WorkoutExerciseModel struct {
	ID              uint   `gorm:"primaryKey"`
	WorkoutID       uint   `gorm:"not null;index"`
	ExerciseName    string `gorm:"size:255;not null"`
	Sets            *int
	Reps            *int
	WeightKg        *float64
	DurationSeconds *int
	CaloriesBurned  *float64
	OrderIndex      int `gorm:"not null;default:0"`
}

func (WorkoutExerciseModel) TableName() string {
	return "workout_exercises"
}

// ActivityLogModel keeps LogDate as YYYY-MM-DD text so both dialects compare it the same way.
type ActivityLogModel struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           string `gorm:"size:64;not null;uniqueIndex:idx_activity_user_date"`
	LogDate          string `gorm:"size:10;not null;uniqueIndex:idx_activity_user_date"`
	Steps            *int
	CaloriesConsumed *int
	CaloriesBurned   *int
	WaterMl          *int
	SleepHours       *float64
	WeightKg         *float64
	Mood             *string `gorm:"size:50"`
	Notes            *string `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

func workoutToModel(w *entities.Workout) *WorkoutModel {
	m := &WorkoutModel{
		ID:              w.ID,
		UserID:          w.UserID,
		Name:            w.Name,
		Notes:           w.Notes,
		Status:          string(w.Status),
		StartedAt:       w.StartedAt,
		CompletedAt:     w.CompletedAt,
		DurationMinutes: w.DurationMinutes,
		CaloriesBurned:  w.CaloriesBurned,
		CreatedAt:       w.CreatedAt,
	}
	for _, e := range w.Exercises {
		m.Exercises = append(m.Exercises, WorkoutExerciseModel{
			ID:              e.ID,
			WorkoutID:       e.WorkoutID,
			ExerciseName:    e.ExerciseName,
			Sets:            e.Sets,
			Reps:            e.Reps,
			WeightKg:        e.WeightKg,
			DurationSeconds: e.DurationSeconds,
			CaloriesBurned:  e.CaloriesBurned,
			OrderIndex:      e.OrderIndex,
		})
	}
	return m
}

func (m *WorkoutModel) toEntity() entities.Workout {
	w := entities.Workout{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Notes:           m.Notes,
		Status:          entities.WorkoutStatus(m.Status),
		StartedAt:       m.StartedAt,
		CompletedAt:     m.CompletedAt,
		DurationMinutes: m.DurationMinutes,
		CaloriesBurned:  m.CaloriesBurned,
		CreatedAt:       m.CreatedAt,
		Exercises:       make([]entities.WorkoutExercise, 0, len(m.Exercises)),
	}
	for _, e := range m.Exercises {
		w.Exercises = append(w.Exercises, entities.WorkoutExercise{
			ID:              e.ID,
			WorkoutID:       e.WorkoutID,
			ExerciseName:    e.ExerciseName,
			Sets:            e.Sets,
			Reps:            e.Reps,
			WeightKg:        e.WeightKg,
			DurationSeconds: e.DurationSeconds,
			CaloriesBurned:  e.CaloriesBurned,
			OrderIndex:      e.OrderIndex,
		})
	}
	return w
}

func activityToModel(l *entities.ActivityLog) *ActivityLogModel {
	return &ActivityLogModel{
		ID:               l.ID,
		UserID:           l.UserID,
		LogDate:          l.LogDate,
		Steps:            l.Steps,
		CaloriesConsumed: l.CaloriesConsumed,
		CaloriesBurned:   l.CaloriesBurned,
		WaterMl:          l.WaterMl,
		SleepHours:       l.SleepHours,
		WeightKg:         l.WeightKg,
		Mood:             l.Mood,
		Notes:            l.Notes,
		CreatedAt:        l.CreatedAt,
	}
}

func (m *ActivityLogModel) toEntity() entities.ActivityLog {
	return entities.ActivityLog{
		ID:               m.ID,
		UserID:           m.UserID,
		LogDate:          m.LogDate,
		Steps:            m.Steps,
		CaloriesConsumed: m.CaloriesConsumed,
		CaloriesBurned:   m.CaloriesBurned,
		WaterMl:          m.WaterMl,
		SleepHours:       m.SleepHours,
		WeightKg:         m.WeightKg,
		Mood:             m.Mood,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
	}
}
