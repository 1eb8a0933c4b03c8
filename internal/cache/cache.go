// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"

	"github.com/bluele/gcache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/cerbos/bucketfs/internal/observability/metrics"
)

// Cache is a size bounded ARC cache that records hits and misses.
type Cache[K comparable, V any] struct {
	cache     gcache.Cache
	hitAttrs  metric.MeasurementOption
	missAttrs metric.MeasurementOption
}

func New[K comparable, V any](kind string, size uint, attributes ...attribute.KeyValue) *Cache[K, V] {
	attrs := append([]attribute.KeyValue{metrics.KindKey(kind)}, attributes...)
	return &Cache[K, V]{
		cache:     gcache.New(int(size)).ARC().Build(),
		hitAttrs:  metric.WithAttributes(append([]attribute.KeyValue{metrics.ResultKey("hit")}, attrs...)...),
		missAttrs: metric.WithAttributes(append([]attribute.KeyValue{metrics.ResultKey("miss")}, attrs...)...),
	}
}

func (c *Cache[K, V]) Get(k K) (V, bool) {
	var zero V

	entry, err := c.cache.GetIFPresent(k)
	if err == nil {
		if v, ok := entry.(V); ok {
			metrics.CacheAccessCount().Add(context.Background(), 1, c.hitAttrs)
			return v, true
		}
	}

	metrics.CacheAccessCount().Add(context.Background(), 1, c.missAttrs)
	return zero, false
}

func (c *Cache[K, V]) Set(k K, v V) {
	_ = c.cache.Set(k, v)
}

func (c *Cache[K, V]) Remove(k K) bool {
	return c.cache.Remove(k)
}

func (c *Cache[K, V]) Len() int {
	return c.cache.Len(false)
}
