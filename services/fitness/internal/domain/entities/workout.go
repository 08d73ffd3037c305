package entities

import "time"

type WorkoutStatus string

const (
	StatusInProgress WorkoutStatus = "IN_PROGRESS"
	StatusCompleted  WorkoutStatus = "COMPLETED"
	StatusCancelled  WorkoutStatus = "CANCELLED"
)

type Workout struct {
	ID              uint
	UserID          string
	Name            string
	Notes           string
	Status          WorkoutStatus
	StartedAt       time.Time
	CompletedAt     *time.Time
	DurationMinutes *int
	CaloriesBurned  *float64
	CreatedAt       time.Time
	Exercises       []WorkoutExercise
}

// WorkoutExercise is one exercise performed in a workout, in OrderIndex order.
type WorkoutExercise struct {
	ID              uint
	WorkoutID       uint
	ExerciseName    string
	Sets            *int
	Reps            *int
	WeightKg        *float64
	DurationSeconds *int
	CaloriesBurned  *float64
	OrderIndex      int
}

// ExerciseCalories sums the calories recorded on the workout's exercises.
func (w *Workout) ExerciseCalories() float64 {
	var total float64
	for _, e := range w.Exercises {
		if e.CaloriesBurned != nil {
			total += *e.CaloriesBurned
		}
	}
	return total
}

// Complete marks the workout finished at now. Missing duration is derived
// from StartedAt and missing calories from the exercises.
func (w *Workout) Complete(now time.Time, durationMinutes *int, calories *float64) {
	w.Status = StatusCompleted
	w.CompletedAt = &now

	if durationMinutes == nil && !w.StartedAt.IsZero() {
		mins := int(now.Sub(w.StartedAt).Minutes())
		durationMinutes = &mins
	}
	w.DurationMinutes = durationMinutes

	if calories == nil {
		total := w.ExerciseCalories()
		calories = &total
	}
	w.CaloriesBurned = calories
}
