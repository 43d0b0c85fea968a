package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache stores lookups as hashes with lat/lon fields and an expiry.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func (r *RedisGeocodeCache) Get(ctx context.Context, key string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.Get")(&err)

	if r.Client == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Coordinates{}, false, nil
	}

	vals, err := r.Client.HMGet(ctx, redisKeyPrefix+key, "lat", "lon").Result()
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: hmget %q: %w", key, err)
	}
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return domain.Coordinates{}, false, nil
	}

	lat, err := parseRedisFloat(vals[0])
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: lat for %q: %w", key, err)
	}
	lon, err := parseRedisFloat(vals[1])
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: lon for %q: %w", key, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, true, nil
}

func (r *RedisGeocodeCache) Put(ctx context.Context, key string, c domain.Coordinates) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert geocode cache: empty key")
	}

	full := redisKeyPrefix + key
	_, err := r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, full,
			"lat", strconv.FormatFloat(c.Lat, 'f', -1, 64),
			"lon", strconv.FormatFloat(c.Lon, 'f', -1, 64),
		)
		if r.TTL > 0 {
			pipe.Expire(ctx, full, r.TTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert geocode cache key=%q: %w", key, err)
	}

	return nil
}

func parseRedisFloat(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected type %T", v)
	}
	return strconv.ParseFloat(s, 64)
}
