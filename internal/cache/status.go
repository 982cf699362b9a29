package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ukydev/fleet-maintenance/internal/maintenance"
)

// TruckStatus is the cached monitoring view of one truck.
type TruckStatus struct {
	TruckID         string                `json:"truckId"`
	PlateNumber     string                `json:"plateNumber"`
	Brand           string                `json:"brand"`
	Model           string                `json:"model"`
	ClientID        string                `json:"clientId"`
	CurrentOdometer int                   `json:"currentOdometer"`
	Aggregate       maintenance.Aggregate `json:"aggregate"`
	NeedsAttention  bool                  `json:"needsAttention"`
	EstimatedCost   maintenance.CostRange `json:"estimatedCost"`
	EvaluatedAt     time.Time             `json:"evaluatedAt"`
}

// StatusCache stores computed truck statuses between requests. Get returns
// (nil, nil) on a miss.
type StatusCache interface {
	Get(ctx context.Context, truckID string) (*TruckStatus, error)
	Set(ctx context.Context, status TruckStatus) error
	Invalidate(ctx context.Context, truckID string) error
}

// StatusKey is the Redis key of a truck's cached status.
func StatusKey(truckID string) string {
	return fmt.Sprintf("truck:%s:status", truckID)
}

// RedisStatusCache implements StatusCache on Redis.
type RedisStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatusCache connects to Redis and verifies the connection.
func NewRedisStatusCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisStatusCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStatusCache{client: client, ttl: ttl}, nil
}

func (r *RedisStatusCache) Close() error {
	return r.client.Close()
}

func (r *RedisStatusCache) Get(ctx context.Context, truckID string) (*TruckStatus, error) {
	data, err := r.client.Get(ctx, StatusKey(truckID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get status failed: %w", err)
	}

	var status TruckStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to decode cached status: %w", err)
	}
	return &status, nil
}

func (r *RedisStatusCache) Set(ctx context.Context, status TruckStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	return r.client.Set(ctx, StatusKey(status.TruckID), data, r.ttl).Err()
}

func (r *RedisStatusCache) Invalidate(ctx context.Context, truckID string) error {
	return r.client.Del(ctx, StatusKey(truckID)).Err()
}

// NopStatusCache is used when no Redis is configured; every Get is a miss.
type NopStatusCache struct{}

func (NopStatusCache) Get(context.Context, string) (*TruckStatus, error) { return nil, nil }
func (NopStatusCache) Set(context.Context, TruckStatus) error             { return nil }
func (NopStatusCache) Invalidate(context.Context, string) error           { return nil }
