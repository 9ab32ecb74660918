package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

const (
	// Redis key prefix
	keyPrefix = "trivia:"

	categoriesKey = keyPrefix + "categories"
)

// CategoryCache keeps the category list in Redis
type CategoryCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewCategoryCache creates a new category cache. Entries expire after ttl.
func NewCategoryCache(redis *redis.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{redis: redis, ttl: ttl}
}

// Get retrieves the cached categories
func (c *CategoryCache) Get(ctx context.Context) ([]domain.Category, error) {
	data, err := c.redis.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}
	return categories, nil
}

// Set stores the categories
func (c *CategoryCache) Set(ctx context.Context, categories []domain.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	return c.redis.Set(ctx, categoriesKey, data, c.ttl).Err()
}

// Clear removes the cached categories
func (c *CategoryCache) Clear(ctx context.Context) error {
	if err := c.redis.Del(ctx, categoriesKey).Err(); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	return nil
}
