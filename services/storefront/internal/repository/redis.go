package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "analytics:"

// ReportCache stores rendered analytics reports as JSON. A nil client
// disables it: reads always miss and writes are dropped.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

func (r *ReportCache) Enabled() bool {
	return r != nil && r.client != nil && r.ttl > 0
}

// Get decodes the cached report into dst and reports whether it was found.
func (r *ReportCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if !r.Enabled() {
		return false, nil
	}

	data, err := r.client.Get(ctx, reportKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *ReportCache) Set(ctx context.Context, key string, report any) error {
	if !r.Enabled() {
		return nil
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.client.Set(ctx, reportKeyPrefix+key, data, r.ttl).Err()
}

func (r *ReportCache) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

func (r *ReportCache) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Close()
}
