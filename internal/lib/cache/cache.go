// Package cache keeps short-lived read models in Redis.
//
// Cache failures never fail a request: reads fall through to the caller's
// loader and writes are logged and dropped.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyPrefix = "gs:"

	// A reader that loaded before a write can still Set the old value
	// after the write's Del. The key is deleted a second time after
	// redeleteDelay so that entry lives at most that long.
	redeleteDelay   = 500 * time.Millisecond
	redeleteTimeout = 2 * time.Second
)

// RatingKey and ResponseKey name the cached summaries.
func RatingKey(gameID int64) string {
	return fmt.Sprintf("%srating:game:%d", keyPrefix, gameID)
}

func ResponseKey(postID int64) string {
	return fmt.Sprintf("%sresponses:post:%d", keyPrefix, postID)
}

// SummaryCache caches rating aggregates and response counts.
type SummaryCache struct {
	client        *redis.Client
	ttl           time.Duration
	redeleteDelay time.Duration
	logger        *zerolog.Logger
}

// NewSummaryCache returns a cache backed by client. A nil client disables
// caching.
func NewSummaryCache(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *SummaryCache {
	return &SummaryCache{
		client:        client,
		ttl:           ttl,
		redeleteDelay: redeleteDelay,
		logger:        logger,
	}
}

// RatingAggregate returns the cached aggregate for a game, or computes it
// with load and caches the result.
func (c *SummaryCache) RatingAggregate(ctx context.Context, gameID int64, load func(context.Context) (*model.RatingAggregate, error)) (*model.RatingAggregate, error) {
	return getOrLoad(ctx, c, RatingKey(gameID), load)
}

// ResponseCounts is RatingAggregate for post reactions.
func (c *SummaryCache) ResponseCounts(ctx context.Context, postID int64, load func(context.Context) (*model.ResponseCounts, error)) (*model.ResponseCounts, error) {
	return getOrLoad(ctx, c, ResponseKey(postID), load)
}

func (c *SummaryCache) InvalidateRating(ctx context.Context, gameID int64) {
	c.invalidate(ctx, RatingKey(gameID))
}

func (c *SummaryCache) InvalidateResponses(ctx context.Context, postID int64) {
	c.invalidate(ctx, ResponseKey(postID))
}

func (c *SummaryCache) invalidate(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	c.del(ctx, key)

	time.AfterFunc(c.redeleteDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), redeleteTimeout)
		defer cancel()
		c.del(ctx, key)
	})
}

func (c *SummaryCache) del(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to invalidate cache entry")
	}
}

func getOrLoad[T any](ctx context.Context, c *SummaryCache, key string, load func(context.Context) (*T, error)) (*T, error) {
	if c == nil || c.client == nil {
		return load(ctx)
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &cached, nil
		}
		c.logger.Warn().Str("key", key).Msg("discarding unreadable cache entry")
	case !errors.Is(err, redis.Nil):
		c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	return value, nil
}
