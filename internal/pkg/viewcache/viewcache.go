// Package viewcache keeps JSON read-model projections in Redis.
package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/murkotick/financial-catalog-service/internal/pkg/logging"
)

// ViewCache stores variants of one view under a single Redis hash, one hash
// field per variant (for instance one per locale), so a single DEL drops all
// of them. A zero TTL leaves keys without expiry.
type ViewCache[T any] struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func New[T any](client goredis.UniversalClient, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, ttl: ttl}
}

// Get returns (nil, false) on a miss, a Redis error or a value that no
// longer decodes.
func (c *ViewCache[T]) Get(ctx context.Context, key, field string) (*T, bool) {
	data, err := c.client.HGet(ctx, key, field).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			logging.Warn("view cache read failed", "key", key, "field", field, "err", err)
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		logging.Warn("view cache entry undecodable", "key", key, "field", field, "err", err)
		return nil, false
	}
	return &v, true
}

// Set stores value and refreshes the TTL of the whole hash. Errors are logged.
func (c *ViewCache[T]) Set(ctx context.Context, key, field string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Error("view cache marshal failed", "key", key, "err", err)
		return
	}
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, field, data)
	if c.ttl > 0 {
		pipe.Expire(ctx, key, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logging.Warn("view cache write failed", "key", key, "field", field, "err", err)
	}
}

// Delete drops every variant stored under key.
func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logging.Warn("view cache delete failed", "key", key, "err", err)
	}
}
