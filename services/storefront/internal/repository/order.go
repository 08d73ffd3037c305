package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/services/storefront/internal/domain/entities"
	"storefront/services/storefront/internal/domain/repositories"
)

type OrderRepo struct {
	collection Collection
}

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return NewOrderRepoWithCollection(db.Collection(entities.OrderCollection))
}

func NewOrderRepoWithCollection(c Collection) *OrderRepo {
	return &OrderRepo{collection: c}
}

func (r *OrderRepo) RevenueSeries(ctx context.Context, dr entities.DateRange, g repositories.Granularity) ([]repositories.RevenueBucket, error) {
	return aggregate[repositories.RevenueBucket](ctx, r.collection, "revenue series", revenueSeriesPipeline(dr, g))
}

// RevenueSummary returns nil when no revenue-bearing order falls inside dr.
func (r *OrderRepo) RevenueSummary(ctx context.Context, dr entities.DateRange) (*repositories.RevenueBucket, error) {
	rows, err := aggregate[repositories.RevenueBucket](ctx, r.collection, "revenue summary", revenueSummaryPipeline(dr))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *OrderRepo) RevenueByChannel(ctx context.Context, dr entities.DateRange) ([]repositories.RevenueBucket, error) {
	return aggregate[repositories.RevenueBucket](ctx, r.collection, "revenue by channel", revenueByChannelPipeline(dr))
}

func (r *OrderRepo) CohortActivity(ctx context.Context, users []primitive.ObjectID) ([]repositories.CohortMonthActivity, error) {
	if len(users) == 0 {
		return []repositories.CohortMonthActivity{}, nil
	}
	return aggregate[repositories.CohortMonthActivity](ctx, r.collection, "cohort activity", cohortActivityPipeline(users))
}

func (r *OrderRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

var _ repositories.OrderRepository = (*OrderRepo)(nil)
