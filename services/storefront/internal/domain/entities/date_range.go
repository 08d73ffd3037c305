package entities

import "time"

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
