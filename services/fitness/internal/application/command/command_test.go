package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/services/fitness/internal/domain/entities"
)

func ptr[T any](v T) *T { return &v }

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func TestCreateWorkoutCommand_ToWorkout(t *testing.T) {
	cmd := CreateWorkoutCommand{
		Name: "  Leg day ",
		Exercises: []ExerciseInput{
			{ExerciseName: "Squat", Sets: ptr(5), Reps: ptr(5), WeightKg: ptr(100.0)},
			{ExerciseName: "Lunge", Sets: ptr(3), Reps: ptr(12)},
		},
	}

	w, err := cmd.ToWorkout("user-1", now)
	require.NoError(t, err)

	assert.Equal(t, "Leg day", w.Name)
	assert.Equal(t, "user-1", w.UserID)
	assert.Equal(t, entities.StatusInProgress, w.Status)
	assert.Equal(t, now, w.StartedAt)
	require.Len(t, w.Exercises, 2)
	assert.Equal(t, 0, w.Exercises[0].OrderIndex)
	assert.Equal(t, "Lunge", w.Exercises[1].ExerciseName)
	assert.Equal(t, 1, w.Exercises[1].OrderIndex)
}

func TestCreateWorkoutCommand_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateWorkoutCommand
		want string
	}{
		{"missing name", CreateWorkoutCommand{Name: " "}, "name is required"},
		{"future start", CreateWorkoutCommand{Name: "Run", StartedAt: ptr(now.Add(time.Hour))}, "startedAt"},
		{"unnamed exercise", CreateWorkoutCommand{Name: "Run", Exercises: []ExerciseInput{{}}}, "exercises[0].exerciseName"},
		{"negative reps", CreateWorkoutCommand{Name: "Run", Exercises: []ExerciseInput{{ExerciseName: "Row", Reps: ptr(-1)}}}, "exercises[0].reps"},
		{"negative calories", CreateWorkoutCommand{Name: "Run", Exercises: []ExerciseInput{{ExerciseName: "Row", CaloriesBurned: ptr(-3.0)}}}, "caloriesBurned"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cmd.ToWorkout("user-1", now)
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompleteWorkoutCommand_Validate(t *testing.T) {
	assert.NoError(t, CompleteWorkoutCommand{}.Validate())
	assert.NoError(t, CompleteWorkoutCommand{DurationMinutes: ptr(45)}.Validate())
	assert.ErrorIs(t, CompleteWorkoutCommand{DurationMinutes: ptr(-1)}.Validate(), ErrValidation)
	assert.ErrorIs(t, CompleteWorkoutCommand{CaloriesBurned: ptr(-1.0)}.Validate(), ErrValidation)
}

func TestLogActivityCommand_Date(t *testing.T) {
	d, err := LogActivityCommand{}.Date(now)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17", d)

	d, err = LogActivityCommand{LogDate: "2026-10-01"}.Date(now)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01", d)

	_, err = LogActivityCommand{LogDate: "10/01/2026"}.Date(now)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestActivityFieldsValidation(t *testing.T) {
	tests := []struct {
		name   string
		fields entities.ActivityFields
		ok     bool
	}{
		{"empty", entities.ActivityFields{}, true},
		{"typical", entities.ActivityFields{Steps: ptr(9000), SleepHours: ptr(7.5), WeightKg: ptr(70.2)}, true},
		{"negative steps", entities.ActivityFields{Steps: ptr(-10)}, false},
		{"negative water", entities.ActivityFields{WaterMl: ptr(-1)}, false},
		{"too much sleep", entities.ActivityFields{SleepHours: ptr(25.0)}, false},
		{"zero weight", entities.ActivityFields{WeightKg: ptr(0.0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UpdateActivityCommand{ActivityFields: tt.fields}.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}
