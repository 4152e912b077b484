package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubstitutionCache provides Redis-backed caching for substitution
// suggestions. The same ingredient/recipe pair always yields a usable
// answer, so replaying a cached one saves a provider round trip.
type SubstitutionCache struct {
	client *redis.Client
	prefix string
}

// NewSubstitutionCache creates a new substitution cache with the given
// Redis client. A nil client disables caching.
func NewSubstitutionCache(client *redis.Client) *SubstitutionCache {
	return &SubstitutionCache{
		client: client,
		prefix: "substitution:",
	}
}

// makeKey hashes the ingredient and recipe pair into a cache key.
func (c *SubstitutionCache) makeKey(ingredient, recipe string) string {
	normalized := strings.ToLower(strings.TrimSpace(ingredient)) + "|" +
		strings.ToLower(strings.TrimSpace(recipe))
	hash := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%s%x", c.prefix, hash)
}

// Get retrieves a cached suggestion. A miss or a Redis failure both return
// an empty string; the caller falls through to the provider.
func (c *SubstitutionCache) Get(ctx context.Context, ingredient, recipe string) string {
	if c.client == nil {
		return ""
	}

	key := c.makeKey(ingredient, recipe)
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ""
	}
	if err != nil {
		slog.Warn("Redis cache get failed", "error", err)
		return ""
	}
	return data
}

// Set stores a suggestion in the cache with the given TTL.
func (c *SubstitutionCache) Set(ctx context.Context, ingredient, recipe, suggestion string, ttl time.Duration) {
	if c.client == nil {
		return
	}

	key := c.makeKey(ingredient, recipe)
	if err := c.client.Set(ctx, key, suggestion, ttl).Err(); err != nil {
		slog.Warn("Redis cache set failed", "error", err)
	}
}

// Delete removes a suggestion from the cache.
func (c *SubstitutionCache) Delete(ctx context.Context, ingredient, recipe string) {
	if c.client == nil {
		return
	}

	key := c.makeKey(ingredient, recipe)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("Redis cache delete failed", "error", err)
	}
}
