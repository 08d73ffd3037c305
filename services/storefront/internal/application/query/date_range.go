package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/services/storefront/internal/domain/entities"
)

const dateOnly = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDateRange = errors.New("startDate must not be after endDate")
)

// ParseDateRange turns the startDate/endDate query parameters into a range.
// Missing bounds default to the lookback window ending with the current
// minute, so repeated default requests within a minute resolve to the same
// range. A date-only end bound covers the whole day.
func ParseDateRange(start, end string, now time.Time, lookback time.Duration) (entities.DateRange, error) {
	minute := now.UTC().Truncate(time.Minute)
	r := entities.DateRange{
		Start: minute.Add(-lookback),
		End:   minute.Add(time.Minute - time.Millisecond),
	}

	if s := strings.TrimSpace(start); s != "" {
		t, _, err := parseDate(s)
		if err != nil {
			return entities.DateRange{}, fmt.Errorf("startDate: %w", err)
		}
		r.Start = t
	}

	if s := strings.TrimSpace(end); s != "" {
		t, wholeDay, err := parseDate(s)
		if err != nil {
			return entities.DateRange{}, fmt.Errorf("endDate: %w", err)
		}
		if wholeDay {
			t = t.AddDate(0, 0, 1).Add(-time.Millisecond)
		}
		r.End = t
	}

	if r.Start.After(r.End) {
		return entities.DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("%w %q: want YYYY-MM-DD or RFC3339", ErrInvalidDate, s)
}
