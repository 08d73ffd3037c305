package query

import (
	"fmt"
	"time"

	"storefront/services/storefront/internal/domain/entities"
	"storefront/services/storefront/internal/domain/repositories"
)

type FunnelQuery struct {
	Range   entities.DateRange
	Channel entities.Channel
}

type RevenueQuery struct {
	Range       entities.DateRange
	Granularity repositories.Granularity
}

type AttributionQuery struct {
	Range entities.DateRange
}

// CacheKey identifies the report for the report cache.
func (q FunnelQuery) CacheKey() string {
	return fmt.Sprintf("funnel:%s:%s:%s", stamp(q.Range.Start), stamp(q.Range.End), q.Channel)
}

func (q RevenueQuery) CacheKey() string {
	return fmt.Sprintf("revenue:%s:%s:%s", stamp(q.Range.Start), stamp(q.Range.End), q.Granularity)
}

func (q AttributionQuery) CacheKey() string {
	return fmt.Sprintf("attribution:%s:%s", stamp(q.Range.Start), stamp(q.Range.End))
}

// stamp renders a bound exactly; distinct ranges never share a cache entry.
func stamp(t time.Time) string {
	return t.UTC().Format("20060102T150405.999999999Z")
}

// ParseGranularity maps the query value to a granularity, defaulting to day.
func ParseGranularity(v string) repositories.Granularity {
	switch g := repositories.Granularity(v); g {
	case repositories.GranularityDay, repositories.GranularityWeek, repositories.GranularityMonth:
		return g
	}
	return repositories.GranularityDay
}
