package query

import (
	"time"

	"storefront/services/fitness/internal/domain/entities"
)

const (
	RecentWorkoutLimit = 5
	WeeklyDays         = 7
)

type DashboardResult struct {
	TotalWorkouts       int64           `json:"totalWorkouts"`
	TotalCaloriesBurned float64         `json:"totalCaloriesBurned"`
	AvgStepsPerDay      float64         `json:"avgStepsPerDay"`
	AvgSleepHours       float64         `json:"avgSleepHours"`
	RecentWorkouts      []RecentWorkout `json:"recentWorkouts"`
	WeeklyActivity      []DailyActivity `json:"weeklyActivity"`
}

type RecentWorkout struct {
	ID              uint                   `json:"id"`
	Name            string                 `json:"name"`
	Status          entities.WorkoutStatus `json:"status"`
	DurationMinutes *int                   `json:"durationMinutes"`
	CaloriesBurned  *float64               `json:"caloriesBurned"`
	Date            time.Time              `json:"date"`
	ExerciseCount   int                    `json:"exerciseCount"`
}

// DailyActivity is one day of the weekly chart; missing measurements are zero.
type DailyActivity struct {
	Date           string  `json:"date"`
	Steps          int     `json:"steps"`
	CaloriesBurned int     `json:"caloriesBurned"`
	SleepHours     float64 `json:"sleepHours"`
	WaterMl        int     `json:"waterMl"`
}

func NewRecentWorkout(w entities.Workout) RecentWorkout {
	return RecentWorkout{
		ID:              w.ID,
		Name:            w.Name,
		Status:          w.Status,
		DurationMinutes: w.DurationMinutes,
		CaloriesBurned:  w.CaloriesBurned,
		Date:            w.CreatedAt,
		ExerciseCount:   len(w.Exercises),
	}
}

// WeekDays lists the WeeklyDays dates ending at today, oldest first.
func WeekDays(today time.Time) []string {
	days := make([]string, WeeklyDays)
	for i := range days {
		days[i] = entities.Day(today.AddDate(0, 0, i-(WeeklyDays-1)))
	}
	return days
}

// WeeklyActivity zero-fills days that have no log.
func WeeklyActivity(days []string, logs []entities.ActivityLog) []DailyActivity {
	byDate := make(map[string]entities.ActivityLog, len(logs))
	for _, l := range logs {
		byDate[l.LogDate] = l
	}

	out := make([]DailyActivity, 0, len(days))
	for _, d := range days {
		entry := DailyActivity{Date: d}
		if l, ok := byDate[d]; ok {
			entry.Steps = deref(l.Steps)
			entry.CaloriesBurned = deref(l.CaloriesBurned)
			entry.SleepHours = deref(l.SleepHours)
			entry.WaterMl = deref(l.WaterMl)
		}
		out = append(out, entry)
	}
	return out
}

func deref[T int | float64](v *T) T {
	if v == nil {
		return 0
	}
	return *v
}
