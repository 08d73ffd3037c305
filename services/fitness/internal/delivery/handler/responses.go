package handler

import (
	"time"

	"storefront/services/fitness/internal/domain/entities"
)

type workoutResponse struct {
	ID              uint                   `json:"id"`
	Name            string                 `json:"name"`
	Notes           string                 `json:"notes,omitempty"`
	Status          entities.WorkoutStatus `json:"status"`
	StartedAt       time.Time              `json:"startedAt"`
	CompletedAt     *time.Time             `json:"completedAt"`
	DurationMinutes *int                   `json:"durationMinutes"`
	CaloriesBurned  *float64               `json:"caloriesBurned"`
	CreatedAt       time.Time              `json:"createdAt"`
	Exercises       []exerciseResponse     `json:"exercises"`
}

type exerciseResponse struct {
	ID              uint     `json:"id"`
	ExerciseName    string   `json:"exerciseName"`
	Sets            *int     `json:"sets,omitempty"`
	Reps            *int     `json:"reps,omitempty"`
	WeightKg        *float64 `json:"weightKg,omitempty"`
	DurationSeconds *int     `json:"durationSeconds,omitempty"`
	CaloriesBurned  *float64 `json:"caloriesBurned,omitempty"`
	OrderIndex      int      `json:"orderIndex"`
}

type activityLogResponse struct {
	ID      uint   `json:"id"`
	LogDate string `json:"logDate"`
	entities.ActivityFields
	CreatedAt time.Time `json:"createdAt"`
}

func toWorkoutResponse(w *entities.Workout) workoutResponse {
	resp := workoutResponse{
		ID:              w.ID,
		Name:            w.Name,
		Notes:           w.Notes,
		Status:          w.Status,
		StartedAt:       w.StartedAt,
		CompletedAt:     w.CompletedAt,
		DurationMinutes: w.DurationMinutes,
		CaloriesBurned:  w.CaloriesBurned,
		CreatedAt:       w.CreatedAt,
		Exercises:       make([]exerciseResponse, 0, len(w.Exercises)),
	}
	for _, e := range w.Exercises {
		resp.Exercises = append(resp.Exercises, exerciseResponse{
			ID:              e.ID,
			ExerciseName:    e.ExerciseName,
			Sets:            e.Sets,
			Reps:            e.Reps,
			WeightKg:        e.WeightKg,
			DurationSeconds: e.DurationSeconds,
			CaloriesBurned:  e.CaloriesBurned,
			OrderIndex:      e.OrderIndex,
		})
	}
	return resp
}

func toActivityLogResponse(l *entities.ActivityLog) activityLogResponse {
	return activityLogResponse{
		ID:      l.ID,
		LogDate: l.LogDate,
		ActivityFields: entities.ActivityFields{
			Steps:            l.Steps,
			CaloriesConsumed: l.CaloriesConsumed,
			CaloriesBurned:   l.CaloriesBurned,
			WaterMl:          l.WaterMl,
			SleepHours:       l.SleepHours,
			WeightKg:         l.WeightKg,
			Mood:             l.Mood,
			Notes:            l.Notes,
		},
		CreatedAt: l.CreatedAt,
	}
}
