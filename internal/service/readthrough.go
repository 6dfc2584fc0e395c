package service

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// ReadThrough is a lookaside cache helper: try the cache, on a miss load and populate.
// Concurrent misses for the same key share one load.
// ReadThrough 旁路缓存助手，未命中时加载并回填，同键并发未命中合并为一次加载
type ReadThrough[T any] struct {
	get func(ctx context.Context, key string) (T, bool, error)
	set func(ctx context.Context, key string, v T, ttl time.Duration) error
	sf  singleflight.Group

	// onLookup receives "hit", "miss" or "error"
	onLookup func(result string)
}

// NewReadThrough 创建助手
func NewReadThrough[T any](
	get func(ctx context.Context, key string) (T, bool, error),
	set func(ctx context.Context, key string, v T, ttl time.Duration) error,
) *ReadThrough[T] {
	return &ReadThrough[T]{get: get, set: set, onLookup: func(string) {}}
}

// Get returns the cached value or the loaded one. Cache errors are wrapped with errCacheTier,
// loader errors are returned unchanged.
// Get 返回缓存值或加载值，缓存错误包装为 errCacheTier，加载错误原样返回
func (r *ReadThrough[T]) Get(ctx context.Context, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	v, ok, err := r.get(ctx, key)
	if err != nil {
		r.onLookup("error")
		return zero, cacheErr(err)
	}
	if ok {
		r.onLookup("hit")
		return v, nil
	}
	r.onLookup("miss")

	res, err, _ := r.sf.Do(key, func() (interface{}, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := r.set(ctx, key, loaded, ttl); err != nil {
			return nil, cacheErr(err)
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return res.(T), nil
}
