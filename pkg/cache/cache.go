package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLPublished = 5 * time.Minute // public published-content listings
	TTLDefault   = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixPublished = "published:"
)

// Service is the Redis cache service interface
type Service interface {
	// Generic operations
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Published-content listing cache
	GetPublished(ctx context.Context, contentType string, page, limit int) ([]byte, error)
	SetPublished(ctx context.Context, contentType string, page, limit int, data interface{}) error
	InvalidatePublished(ctx context.Context, contentType string) error

	// Utilities
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache is the Redis-backed implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) publishedKey(contentType string, page, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", PrefixPublished, contentType, page, limit)
}

func (c *redisCache) GetPublished(ctx context.Context, contentType string, page, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.publishedKey(contentType, page, limit)).Bytes()
}

func (c *redisCache) SetPublished(ctx context.Context, contentType string, page, limit int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.publishedKey(contentType, page, limit), jsonData, TTLPublished).Err()
}

func (c *redisCache) InvalidatePublished(ctx context.Context, contentType string) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixPublished+contentType+":*")
}

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
