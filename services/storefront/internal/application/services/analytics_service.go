package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/services/storefront/internal/application/query"
	"storefront/services/storefront/internal/domain/entities"
	"storefront/services/storefront/internal/domain/repositories"
)

const (
	topProductsLimit  = 5
	kpiWindow         = 30 * 24 * time.Hour
	cohortConcurrency = 4
)

type funnelStep struct {
	eventType entities.EventType
	label     string
}

var funnelSteps = []funnelStep{
	{entities.EventPageView, "Page View"},
	{entities.EventProductView, "Product View"},
	{entities.EventAddToCart, "Add to Cart"},
	{entities.EventCheckoutStart, "Checkout Started"},
	{entities.EventCheckoutComplete, "Purchase Complete"},
}

// ReportCache is satisfied by repository.ReportCache.
type ReportCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, report any) error
}

type bypassCacheKey struct{}

// WithCacheBypass makes the next report call skip the cache read.
func WithCacheBypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassCacheKey{}, true)
}

// CacheBypassed reports whether ctx was marked by WithCacheBypass.
func CacheBypassed(ctx context.Context) bool {
	v, _ := ctx.Value(bypassCacheKey{}).(bool)
	return v
}

type AnalyticsService struct {
	events   repositories.EventRepository
	orders   repositories.OrderRepository
	products repositories.ProductRepository
	users    repositories.UserRepository
	cache    ReportCache
	logger   *zap.Logger
	now      func() time.Time
}

func NewAnalyticsService(
	events repositories.EventRepository,
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	users repositories.UserRepository,
	cache ReportCache,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		events:   events,
		orders:   orders,
		products: products,
		users:    users,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// cachedReport serves key from the cache or computes and stores it. Cache
// failures are logged and never fail the report.
func cachedReport[T any](ctx context.Context, s *AnalyticsService, key string, compute func(context.Context) (*T, error)) (*T, error) {
	if s.cache != nil && !CacheBypassed(ctx) {
		var hit T
		found, err := s.cache.Get(ctx, key, &hit)
		if err != nil {
			s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			return &hit, nil
		}
	}

	report, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report); err != nil {
			s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return report, nil
}

// ConversionFunnel reports distinct users per funnel stage and the drop-off between stages.
func (s *AnalyticsService) ConversionFunnel(ctx context.Context, q query.FunnelQuery) (*query.FunnelResult, error) {
	return cachedReport(ctx, s, q.CacheKey(), func(ctx context.Context) (*query.FunnelResult, error) {
		rows, err := s.events.StageCounts(ctx, q.Range, q.Channel)
		if err != nil {
			return nil, fmt.Errorf("funnel: %w", err)
		}
		return buildFunnel(rows), nil
	})
}

func buildFunnel(rows []repositories.EventStageCount) *query.FunnelResult {
	byType := make(map[entities.EventType]repositories.EventStageCount, len(rows))
	for _, r := range rows {
		byType[r.EventType] = r
	}

	stages := make([]query.FunnelStage, 0, len(funnelSteps))
	for i, step := range funnelSteps {
		data := byType[step.eventType]

		prevUsers := data.UniqueUsers
		if i > 0 {
			prevUsers = byType[funnelSteps[i-1].eventType].UniqueUsers
		}

		stage := query.FunnelStage{
			Stage:              step.eventType,
			Label:              step.label,
			UniqueUsers:        data.UniqueUsers,
			UniqueSessions:     data.UniqueSessions,
			TotalEvents:        data.TotalEvents,
			ConversionFromPrev: 100,
		}
		if prevUsers > 0 {
			stage.DropOffRate = entities.Percentage(float64(prevUsers-data.UniqueUsers), float64(prevUsers))
			stage.ConversionFromPrev = entities.Percentage(float64(data.UniqueUsers), float64(prevUsers))
		}
		stages = append(stages, stage)
	}

	first, last := stages[0], stages[len(stages)-1]
	return &query.FunnelResult{
		Funnel:                       stages,
		OverallConversionRate:        entities.Percentage(float64(last.UniqueUsers), float64(first.UniqueUsers)),
		OverallSessionConversionRate: entities.Percentage(float64(last.UniqueSessions), float64(first.UniqueSessions)),
	}
}

// RevenueMetrics reports revenue per period plus a summary over the whole range.
func (s *AnalyticsService) RevenueMetrics(ctx context.Context, q query.RevenueQuery) (*query.RevenueResult, error) {
	return cachedReport(ctx, s, q.CacheKey(), func(ctx context.Context) (*query.RevenueResult, error) {
		var (
			series  []repositories.RevenueBucket
			summary *repositories.RevenueBucket
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			series, err = s.orders.RevenueSeries(gctx, q.Range, q.Granularity)
			return err
		})
		g.Go(func() error {
			var err error
			summary, err = s.orders.RevenueSummary(gctx, q.Range)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("revenue: %w", err)
		}

		result := &query.RevenueResult{TimeSeries: make([]query.RevenuePoint, 0, len(series))}
		if summary != nil {
			result.Summary = query.RevenueSummary{
				TotalRevenue:    entities.Round2(summary.Revenue),
				TotalOrders:     summary.Orders,
				AvgOrderValue:   entities.Round2(summary.AvgOrderValue),
				UniqueCustomers: summary.UniqueCustomers,
			}
		}
		for _, b := range series {
			result.TimeSeries = append(result.TimeSeries, query.RevenuePoint{
				Period:          b.Key,
				Revenue:         entities.Round2(b.Revenue),
				OrderCount:      b.Orders,
				AvgOrderValue:   entities.Round2(b.AvgOrderValue),
				UniqueCustomers: b.UniqueCustomers,
			})
		}
		return result, nil
	})
}

// AttributionReport merges revenue and traffic per marketing channel.
func (s *AnalyticsService) AttributionReport(ctx context.Context, q query.AttributionQuery) (*query.AttributionResult, error) {
	return cachedReport(ctx, s, q.CacheKey(), func(ctx context.Context) (*query.AttributionResult, error) {
		var (
			revenue []repositories.RevenueBucket
			traffic []repositories.ChannelTraffic
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			revenue, err = s.orders.RevenueByChannel(gctx, q.Range)
			return err
		})
		g.Go(func() error {
			var err error
			traffic, err = s.events.TrafficByChannel(gctx, q.Range)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("attribution: %w", err)
		}
		return buildAttribution(revenue, traffic), nil
	})
}

func buildAttribution(revenue []repositories.RevenueBucket, traffic []repositories.ChannelTraffic) *query.AttributionResult {
	revByChannel := make(map[entities.Channel]repositories.RevenueBucket, len(revenue))
	for _, r := range revenue {
		revByChannel[entities.Channel(r.Key)] = r
	}
	trafficByChannel := make(map[entities.Channel]repositories.ChannelTraffic, len(traffic))
	for _, t := range traffic {
		trafficByChannel[t.Channel] = t
	}

	result := &query.AttributionResult{Attribution: make([]query.ChannelAttribution, 0, len(entities.Channels))}
	var totalRevenue float64
	for _, ch := range entities.Channels {
		rev, tr := revByChannel[ch], trafficByChannel[ch]
		channelRevenue := entities.Round2(rev.Revenue)

		result.Attribution = append(result.Attribution, query.ChannelAttribution{
			Channel:           ch,
			Sessions:          tr.Sessions,
			PageViews:         tr.PageViews,
			Orders:            rev.Orders,
			Revenue:           channelRevenue,
			AvgOrderValue:     entities.Round2(rev.AvgOrderValue),
			UniqueCustomers:   rev.UniqueCustomers,
			ConversionRate:    entities.Percentage(float64(rev.Orders), float64(tr.Sessions)),
			RevenuePerSession: entities.Ratio(channelRevenue, float64(tr.Sessions)),
		})

		result.Totals.Sessions += tr.Sessions
		result.Totals.PageViews += tr.PageViews
		result.Totals.Orders += rev.Orders
		totalRevenue += rev.Revenue
	}

	result.Totals.Revenue = entities.Round2(totalRevenue)
	result.Totals.ConversionRate = entities.Percentage(float64(result.Totals.Orders), float64(result.Totals.Sessions))
	result.Totals.RevenuePerSession = entities.Ratio(totalRevenue, float64(result.Totals.Sessions))
	return result
}

// CustomerCohorts groups customers by first-seen month and tracks their monthly order activity.
func (s *AnalyticsService) CustomerCohorts(ctx context.Context) (*query.CohortResult, error) {
	return cachedReport(ctx, s, "cohorts", func(ctx context.Context) (*query.CohortResult, error) {
		signups, err := s.users.SignupCohorts(ctx)
		if err != nil {
			return nil, fmt.Errorf("cohorts: %w", err)
		}

		cohorts := make([]query.Cohort, len(signups))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cohortConcurrency)
		for i, signup := range signups {
			g.Go(func() error {
				activity, err := s.orders.CohortActivity(gctx, signup.Users)
				if err != nil {
					return fmt.Errorf("cohort %s: %w", signup.Month, err)
				}
				cohorts[i] = buildCohort(signup, activity)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("cohorts: %w", err)
		}
		return &query.CohortResult{Cohorts: cohorts}, nil
	})
}

func buildCohort(signup repositories.SignupCohort, activity []repositories.CohortMonthActivity) query.Cohort {
	cohort := query.Cohort{
		CohortMonth: signup.Month,
		TotalUsers:  signup.Count,
		Activity:    make([]query.CohortActivity, 0, len(activity)),
	}
	for _, a := range activity {
		cohort.Activity = append(cohort.Activity, query.CohortActivity{
			Month:             a.Month,
			MonthsSinceSignup: monthsBetween(signup.Month, a.Month),
			Revenue:           entities.Round2(a.Revenue),
			Orders:            a.Orders,
			ActiveUsers:       a.ActiveUsers,
			RetentionRate:     entities.Percentage(float64(a.ActiveUsers), float64(signup.Count)),
		})
	}
	return cohort
}

// monthsBetween counts calendar months from one YYYY-MM label to another.
func monthsBetween(from, to string) int {
	f, err1 := time.Parse("2006-01", from)
	t, err2 := time.Parse("2006-01", to)
	if err1 != nil || err2 != nil {
		return 0
	}
	return (t.Year()-f.Year())*12 + int(t.Month()) - int(f.Month())
}

// CategoryPerformance reports view, cart and purchase totals per product category.
func (s *AnalyticsService) CategoryPerformance(ctx context.Context) (*query.CategoryResult, error) {
	return cachedReport(ctx, s, "categories", func(ctx context.Context) (*query.CategoryResult, error) {
		rows, err := s.products.CategoryTotals(ctx)
		if err != nil {
			return nil, fmt.Errorf("categories: %w", err)
		}

		result := &query.CategoryResult{Categories: make([]query.CategoryPerformance, 0, len(rows))}
		for _, r := range rows {
			result.Categories = append(result.Categories, query.CategoryPerformance{
				Category:           r.Category,
				ProductCount:       r.ProductCount,
				TotalViews:         r.TotalViews,
				TotalAddToCarts:    r.TotalAddToCarts,
				TotalPurchases:     r.TotalPurchases,
				AvgPrice:           entities.Round2(r.AvgPrice),
				TotalRevenue:       entities.Round2(r.TotalRevenue),
				ViewToCartRate:     entities.Percentage(float64(r.TotalAddToCarts), float64(r.TotalViews)),
				CartToPurchaseRate: entities.Percentage(float64(r.TotalPurchases), float64(r.TotalAddToCarts)),
			})
		}
		return result, nil
	})
}

// DashboardKPIs gathers the overview numbers: today's orders, the last 30
// days against the 30 before, customers, events and top sellers.
func (s *AnalyticsService) DashboardKPIs(ctx context.Context) (*query.DashboardResult, error) {
	return cachedReport(ctx, s, "dashboard", func(ctx context.Context) (*query.DashboardResult, error) {
		now := s.now().UTC().Truncate(time.Millisecond)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		last30 := now.Add(-kpiWindow)
		prev30 := now.Add(-2 * kpiWindow)

		var (
			todayOrders, customers, events int64
			current, previous              *repositories.RevenueBucket
			top                            []entities.Product
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			todayOrders, err = s.orders.CountSince(gctx, today)
			return err
		})
		g.Go(func() (err error) {
			current, err = s.orders.RevenueSummary(gctx, entities.DateRange{Start: last30, End: now})
			return err
		})
		g.Go(func() (err error) {
			previous, err = s.orders.RevenueSummary(gctx, entities.DateRange{Start: prev30, End: last30.Add(-time.Millisecond)})
			return err
		})
		g.Go(func() (err error) {
			customers, err = s.users.CountByRole(gctx, entities.RoleCustomer)
			return err
		})
		g.Go(func() (err error) {
			events, err = s.events.CountSince(gctx, last30)
			return err
		})
		g.Go(func() (err error) {
			top, err = s.products.TopSellers(gctx, topProductsLimit)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}

		if current == nil {
			current = &repositories.RevenueBucket{}
		}
		if previous == nil {
			previous = &repositories.RevenueBucket{}
		}

		result := &query.DashboardResult{
			KPIs: query.DashboardKPIs{
				TodayOrders:       todayOrders,
				Last30DaysRevenue: entities.Round2(current.Revenue),
				Last30DaysOrders:  current.Orders,
				AvgOrderValue:     entities.Round2(current.AvgOrderValue),
				RevenueGrowth:     entities.Percentage(current.Revenue-previous.Revenue, previous.Revenue),
				TotalCustomers:    customers,
				Last30DaysEvents:  events,
			},
			TopProducts: make([]query.TopProduct, 0, len(top)),
		}
		for i := range top {
			p := &top[i]
			result.TopProducts = append(result.TopProducts, query.TopProduct{
				ID:             p.ID.Hex(),
				Name:           p.Name,
				Category:       p.Category,
				Price:          p.Price,
				PurchaseCount:  p.PurchaseCount,
				ViewCount:      p.ViewCount,
				ConversionRate: p.ConversionRate(),
			})
		}
		return result, nil
	})
}
