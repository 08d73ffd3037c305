package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/services/storefront/internal/domain/entities"
	"storefront/services/storefront/internal/domain/repositories"
)

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Insert(ctx context.Context, event *entities.BehaviorEvent) (primitive.ObjectID, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockEventRepository) InsertMany(ctx context.Context, events []*entities.BehaviorEvent) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

func (m *mockEventRepository) StageCounts(ctx context.Context, r entities.DateRange, channel entities.Channel) ([]repositories.EventStageCount, error) {
	args := m.Called(ctx, r, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.EventStageCount), args.Error(1)
}

func (m *mockEventRepository) TrafficByChannel(ctx context.Context, r entities.DateRange) ([]repositories.ChannelTraffic, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.ChannelTraffic), args.Error(1)
}

func (m *mockEventRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) RevenueSeries(ctx context.Context, r entities.DateRange, g repositories.Granularity) ([]repositories.RevenueBucket, error) {
	args := m.Called(ctx, r, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.RevenueBucket), args.Error(1)
}

func (m *mockOrderRepository) RevenueSummary(ctx context.Context, r entities.DateRange) (*repositories.RevenueBucket, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.RevenueBucket), args.Error(1)
}

func (m *mockOrderRepository) RevenueByChannel(ctx context.Context, r entities.DateRange) ([]repositories.RevenueBucket, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.RevenueBucket), args.Error(1)
}

func (m *mockOrderRepository) CohortActivity(ctx context.Context, users []primitive.ObjectID) ([]repositories.CohortMonthActivity, error) {
	args := m.Called(ctx, users)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.CohortMonthActivity), args.Error(1)
}

func (m *mockOrderRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) CategoryTotals(ctx context.Context) ([]repositories.CategoryTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.CategoryTotals), args.Error(1)
}

func (m *mockProductRepository) TopSellers(ctx context.Context, limit int64) ([]entities.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Product), args.Error(1)
}

func (m *mockProductRepository) IncrementCounter(ctx context.Context, id primitive.ObjectID, field string) error {
	return m.Called(ctx, id, field).Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) SignupCohorts(ctx context.Context) ([]repositories.SignupCohort, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.SignupCohort), args.Error(1)
}

func (m *mockUserRepository) CountByRole(ctx context.Context, role entities.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

// memoryCache is an in-process ReportCache that round-trips through JSON like Redis does.
type memoryCache struct {
	entries map[string][]byte
	getErr  error
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (c *memoryCache) Set(_ context.Context, key string, report any) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	c.entries[key] = data
	c.sets++
	return nil
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(subject string, payload any) error {
	return m.Called(subject, payload).Error(0)
}
