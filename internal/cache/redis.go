// Package cache implements the report cache, an external side-table
// keyed by the full request-parameter key. Reports are pure functions
// of (stored data, request parameters), so a cached value is safe to
// serve until its TTL expires.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReportCache caches serialized reports in Redis. A nil *ReportCache is
// valid and behaves as a disabled cache.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache connects to Redis and returns a report cache.
func NewReportCache(addr, password string, db int, ttl time.Duration) (*ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ReportCache{client: client, ttl: ttl}, nil
}

// Key builds a cache key from the report type and every request
// parameter that affects the output.
func Key(reportType string, parts ...string) string {
	return "report:" + reportType + ":" + strings.Join(parts, ":")
}

// Get unmarshals a cached report into dest. It returns false on a miss
// or when the cache is disabled.
func (c *ReportCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached report: %w", err)
	}
	return true, nil
}

// Set stores a report under key with the configured TTL. A disabled
// cache ignores the write.
func (c *ReportCache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Close closes the Redis connection.
func (c *ReportCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
