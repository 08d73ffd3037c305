package command

import (
	"fmt"
	"time"

	"storefront/services/fitness/internal/domain/entities"
)

// LogActivityCommand upserts the log for LogDate, or today when empty.
type LogActivityCommand struct {
	LogDate string `json:"logDate,omitempty"`
	entities.ActivityFields
}

// Date resolves and validates the target day.
func (c LogActivityCommand) Date(now time.Time) (string, error) {
	if c.LogDate == "" {
		return entities.Day(now), nil
	}
	if _, err := ParseDate(c.LogDate); err != nil {
		return "", err
	}
	return c.LogDate, nil
}

func (c LogActivityCommand) Validate() error {
	return validateFields(c.ActivityFields)
}

type UpdateActivityCommand struct {
	entities.ActivityFields
}

func (c UpdateActivityCommand) Validate() error {
	return validateFields(c.ActivityFields)
}

// ParseDate accepts a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(entities.DateLayout, s)
	if err != nil {
		return time.Time{}, invalid("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

func validateFields(f entities.ActivityFields) error {
	ints := []struct {
		name string
		v    *int
	}{
		{"steps", f.Steps},
		{"caloriesConsumed", f.CaloriesConsumed},
		{"caloriesBurned", f.CaloriesBurned},
		{"waterMl", f.WaterMl},
	}
	for _, field := range ints {
		if field.v != nil && *field.v < 0 {
			return invalid("%s must not be negative", field.name)
		}
	}
	if f.SleepHours != nil && (*f.SleepHours < 0 || *f.SleepHours > 24) {
		return invalid("sleepHours must be between 0 and 24")
	}
	if f.WeightKg != nil && *f.WeightKg <= 0 {
		return invalid("weightKg must be positive")
	}
	return nil
}

var ErrInvalidRange = fmt.Errorf("%w: start must not be after end", ErrValidation)
