package entities

import "time"

// DateLayout is the storage and wire format of ActivityLog.LogDate.
const DateLayout = "2006-01-02"

// ActivityLog is one user's daily record. Measurements are nil when not logged.
type ActivityLog struct {
	ID               uint
	UserID           string
	LogDate          string
	Steps            *int
	CaloriesConsumed *int
	CaloriesBurned   *int
	WaterMl          *int
	SleepHours       *float64
	WeightKg         *float64
	Mood             *string
	Notes            *string
	CreatedAt        time.Time
}

// ActivityFields carries optional measurements; nil fields leave the log unchanged.
type ActivityFields struct {
	Steps            *int     `json:"steps,omitempty"`
	CaloriesConsumed *int     `json:"caloriesConsumed,omitempty"`
	CaloriesBurned   *int     `json:"caloriesBurned,omitempty"`
	WaterMl          *int     `json:"waterMl,omitempty"`
	SleepHours       *float64 `json:"sleepHours,omitempty"`
	WeightKg         *float64 `json:"weightKg,omitempty"`
	Mood             *string  `json:"mood,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

func (l *ActivityLog) Apply(f ActivityFields) {
	if f.Steps != nil {
		l.Steps = f.Steps
	}
	if f.CaloriesConsumed != nil {
		l.CaloriesConsumed = f.CaloriesConsumed
	}
	if f.CaloriesBurned != nil {
		l.CaloriesBurned = f.CaloriesBurned
	}
	if f.WaterMl != nil {
		l.WaterMl = f.WaterMl
	}
	if f.SleepHours != nil {
		l.SleepHours = f.SleepHours
	}
	if f.WeightKg != nil {
		l.WeightKg = f.WeightKg
	}
	if f.Mood != nil {
		l.Mood = f.Mood
	}
	if f.Notes != nil {
		l.Notes = f.Notes
	}
}

// Day truncates t to its UTC calendar date in DateLayout.
func Day(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
