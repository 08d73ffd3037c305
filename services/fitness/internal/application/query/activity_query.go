package query

import (
	"storefront/services/fitness/internal/application/command"
)

// ActivityRange filters logs by date; empty bounds are open.
type ActivityRange struct {
	Start string
	End   string
}

func (r ActivityRange) Validate() error {
	for _, s := range []string{r.Start, r.End} {
		if s == "" {
			continue
		}
		if _, err := command.ParseDate(s); err != nil {
			return err
		}
	}
	if r.Start != "" && r.End != "" && r.Start > r.End {
		return command.ErrInvalidRange
	}
	return nil
}
