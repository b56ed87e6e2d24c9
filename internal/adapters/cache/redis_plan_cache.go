package cache

import (
	"context"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPlanCache stores encoded plans in Redis with a fixed TTL.
// A zero TTL keeps entries until they are evicted.
type RedisPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisPlanCache {
	return &RedisPlanCache{Client: client, TTL: ttl, Logger: logger}
}

func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ domain.Plan, _ bool, err error) {
	defer obs.Time(ctx, c.Logger, "plan.cache.redis.Get")(&err)

	if c.Client == nil {
		return domain.Plan{}, false, errors.New("redis plan cache: client is nil")
	}

	b, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Plan{}, false, nil
	}
	if err != nil {
		return domain.Plan{}, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}

	p, err := decodePlan(b)
	if err != nil {
		return domain.Plan{}, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}
	return p, true, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, key string, plan domain.Plan) (err error) {
	defer obs.Time(ctx, c.Logger, "plan.cache.redis.Put")(&err)

	if c.Client == nil {
		return errors.New("redis plan cache: client is nil")
	}

	b, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("put plan cache key=%q: %w", key, err)
	}

	if err := c.Client.Set(ctx, key, b, c.TTL).Err(); err != nil {
		return fmt.Errorf("put plan cache key=%q: %w", key, err)
	}
	return nil
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}
