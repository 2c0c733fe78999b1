package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	genreTableKey = "tmdb:genres"
	genreTableTTL = 24 * time.Hour
	movieKeyFmt   = "tmdb:movie:%d"
	movieTTL      = time.Hour
)

// RedisCache fronts slow catalog lookups with Redis. All accessors are
// nil-safe: a nil *RedisCache behaves like a permanent miss, so the
// gateway works without Redis configured.
type RedisCache struct {
	Client *redis.Client
}

// New initializes a Redis client. Only addr is mandatory.
func New(addr, password string, db int) *RedisCache {
	opts := &redis.Options{Addr: addr}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("cache not configured")
	}
	return c.Client.Ping(ctx).Err()
}

// GetGenreTable returns the cached genre-name→id table, or nil on miss.
func (c *RedisCache) GetGenreTable(ctx context.Context) (map[string]int, error) {
	if c == nil {
		return nil, nil
	}
	val, err := c.Client.Get(ctx, genreTableKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var table map[string]int
	if err := json.Unmarshal([]byte(val), &table); err != nil {
		return nil, err
	}
	return table, nil
}

// SetGenreTable stores the genre-name→id table with a 24h TTL.
func (c *RedisCache) SetGenreTable(ctx context.Context, table map[string]int) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(table)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, genreTableKey, payload, genreTableTTL).Err()
}

// GetMovie returns the cached raw detail payload for a movie, or nil on miss.
func (c *RedisCache) GetMovie(ctx context.Context, tmdbID int) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	val, err := c.Client.Get(ctx, fmt.Sprintf(movieKeyFmt, tmdbID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return val, nil
}

// SetMovie stores a movie detail payload with a 1h TTL.
func (c *RedisCache) SetMovie(ctx context.Context, tmdbID int, payload []byte) error {
	if c == nil {
		return nil
	}
	return c.Client.Set(ctx, fmt.Sprintf(movieKeyFmt, tmdbID), payload, movieTTL).Err()
}
