// Package query is the consumer-facing facade over the use-case services and
// the query cache. Reads go through the cache (staleness window, concurrent
// de-duplication, read retries); mutations go straight to the services and,
// on success, synchronously invalidate the cache entries they affect.
package query

import (
	"context"

	"github.com/registro/client/internal/infrastructure/cache"
)

// fetch runs a typed load through the cache. The cache stores values as any;
// this is the single place the type is asserted back.
func fetch[T any](ctx context.Context, c *cache.QueryCache, key string, fn func(context.Context) (T, error)) (T, error) {
	value, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, err
	}
	return typed, err
}
