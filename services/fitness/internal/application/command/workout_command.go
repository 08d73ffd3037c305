package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/services/fitness/internal/domain/entities"
)

// ErrValidation marks command errors that should surface as 400.
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

type ExerciseInput struct {
	ExerciseName    string   `json:"exerciseName"`
	Sets            *int     `json:"sets,omitempty"`
	Reps            *int     `json:"reps,omitempty"`
	WeightKg        *float64 `json:"weightKg,omitempty"`
	DurationSeconds *int     `json:"durationSeconds,omitempty"`
	CaloriesBurned  *float64 `json:"caloriesBurned,omitempty"`
}

type CreateWorkoutCommand struct {
	Name      string          `json:"name"`
	Notes     string          `json:"notes,omitempty"`
	StartedAt *time.Time      `json:"startedAt,omitempty"`
	Exercises []ExerciseInput `json:"exercises"`
}

// ToWorkout validates the command and builds an in-progress workout.
// Exercises keep the order they were sent in.
func (c CreateWorkoutCommand) ToWorkout(userID string, now time.Time) (*entities.Workout, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, invalid("name is required")
	}

	started := now
	if c.StartedAt != nil {
		if c.StartedAt.After(now) {
			return nil, invalid("startedAt is in the future")
		}
		started = c.StartedAt.UTC()
	}

	w := &entities.Workout{
		UserID:    userID,
		Name:      name,
		Notes:     c.Notes,
		Status:    entities.StatusInProgress,
		StartedAt: started,
		CreatedAt: now,
		Exercises: make([]entities.WorkoutExercise, 0, len(c.Exercises)),
	}
	for i, e := range c.Exercises {
		if err := e.validate(i); err != nil {
			return nil, err
		}
		w.Exercises = append(w.Exercises, entities.WorkoutExercise{
			ExerciseName:    strings.TrimSpace(e.ExerciseName),
			Sets:            e.Sets,
			Reps:            e.Reps,
			WeightKg:        e.WeightKg,
			DurationSeconds: e.DurationSeconds,
			CaloriesBurned:  e.CaloriesBurned,
			OrderIndex:      i,
		})
	}
	return w, nil
}

func (e ExerciseInput) validate(i int) error {
	if strings.TrimSpace(e.ExerciseName) == "" {
		return invalid("exercises[%d].exerciseName is required", i)
	}
	for field, v := range map[string]*int{"sets": e.Sets, "reps": e.Reps, "durationSeconds": e.DurationSeconds} {
		if v != nil && *v < 0 {
			return invalid("exercises[%d].%s must not be negative", i, field)
		}
	}
	if e.WeightKg != nil && *e.WeightKg < 0 {
		return invalid("exercises[%d].weightKg must not be negative", i)
	}
	if e.CaloriesBurned != nil && *e.CaloriesBurned < 0 {
		return invalid("exercises[%d].caloriesBurned must not be negative", i)
	}
	return nil
}

type CompleteWorkoutCommand struct {
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	CaloriesBurned  *float64 `json:"caloriesBurned,omitempty"`
}

func (c CompleteWorkoutCommand) Validate() error {
	if c.DurationMinutes != nil && *c.DurationMinutes < 0 {
		return invalid("durationMinutes must not be negative")
	}
	if c.CaloriesBurned != nil && *c.CaloriesBurned < 0 {
		return invalid("caloriesBurned must not be negative")
	}
	return nil
}
