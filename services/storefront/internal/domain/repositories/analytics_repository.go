package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/services/storefront/internal/domain/entities"
)

// EventStageCount is one funnel stage as grouped by the database.
type EventStageCount struct {
	EventType      entities.EventType `bson:"_id"`
	UniqueUsers    int64              `bson:"uniqueUsers"`
	UniqueSessions int64              `bson:"uniqueSessions"`
	TotalEvents    int64              `bson:"totalEvents"`
}

type ChannelTraffic struct {
	Channel   entities.Channel `bson:"_id"`
	Sessions  int64            `bson:"sessions"`
	PageViews int64            `bson:"pageViews"`
}

// RevenueBucket is a revenue aggregate keyed by period, channel or nothing.
type RevenueBucket struct {
	Key             string  `bson:"_id"`
	Revenue         float64 `bson:"revenue"`
	Orders          int64   `bson:"orders"`
	AvgOrderValue   float64 `bson:"avgOrderValue"`
	UniqueCustomers int64   `bson:"uniqueCustomers"`
}

type SignupCohort struct {
	Month string               `bson:"_id"`
	Users []primitive.ObjectID `bson:"users"`
	Count int64                `bson:"count"`
}

type CohortMonthActivity struct {
	Month       string  `bson:"_id"`
	Revenue     float64 `bson:"revenue"`
	Orders      int64   `bson:"orders"`
	ActiveUsers int64   `bson:"activeUsers"`
}

type CategoryTotals struct {
	Category        entities.Category `bson:"_id"`
	ProductCount    int64             `bson:"productCount"`
	TotalViews      int64             `bson:"totalViews"`
	TotalAddToCarts int64             `bson:"totalAddToCarts"`
	TotalPurchases  int64             `bson:"totalPurchases"`
	AvgPrice        float64           `bson:"avgPrice"`
	TotalRevenue    float64           `bson:"totalRevenue"`
}

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

type EventRepository interface {
	Insert(ctx context.Context, event *entities.BehaviorEvent) (primitive.ObjectID, error)
	InsertMany(ctx context.Context, events []*entities.BehaviorEvent) (int, error)
	StageCounts(ctx context.Context, r entities.DateRange, channel entities.Channel) ([]EventStageCount, error)
	TrafficByChannel(ctx context.Context, r entities.DateRange) ([]ChannelTraffic, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type OrderRepository interface {
	RevenueSeries(ctx context.Context, r entities.DateRange, g Granularity) ([]RevenueBucket, error)
	RevenueSummary(ctx context.Context, r entities.DateRange) (*RevenueBucket, error)
	RevenueByChannel(ctx context.Context, r entities.DateRange) ([]RevenueBucket, error)
	CohortActivity(ctx context.Context, users []primitive.ObjectID) ([]CohortMonthActivity, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type ProductRepository interface {
	CategoryTotals(ctx context.Context) ([]CategoryTotals, error)
	TopSellers(ctx context.Context, limit int64) ([]entities.Product, error)
	IncrementCounter(ctx context.Context, id primitive.ObjectID, field string) error
}

type UserRepository interface {
	SignupCohorts(ctx context.Context) ([]SignupCohort, error)
	CountByRole(ctx context.Context, role entities.Role) (int64, error)
}
