package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"powermonitor/backend/services/monitor-service/internal/models"
)

const latestReadingKey = "power:readings:latest"

// ErrMiss is returned when no reading is cached.
var ErrMiss = errors.New("cache: miss")

// LatestReadingCache keeps the newest reading in redis so other processes can
// read it without going through the service.
type LatestReadingCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewLatestReadingCache returns redis-backed cache.
func NewLatestReadingCache(client redis.Cmdable, ttl time.Duration) *LatestReadingCache {
	return &LatestReadingCache{client: client, ttl: ttl}
}

// Save caches reading.
func (c *LatestReadingCache) Save(ctx context.Context, reading models.Reading) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, latestReadingKey, data, c.ttl).Err()
}

// Get returns cached reading or ErrMiss.
func (c *LatestReadingCache) Get(ctx context.Context) (models.Reading, error) {
	result, err := c.client.Get(ctx, latestReadingKey).Result()
	if errors.Is(err, redis.Nil) {
		return models.Reading{}, ErrMiss
	}
	if err != nil {
		return models.Reading{}, err
	}
	var reading models.Reading
	if err := json.Unmarshal([]byte(result), &reading); err != nil {
		return models.Reading{}, err
	}
	return reading, nil
}
