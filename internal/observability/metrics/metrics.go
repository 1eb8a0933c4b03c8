// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "bucketfs.dev/storage"

var (
	driverKey = attribute.Key("driver")
	opKey     = attribute.Key("op")
	statusKey = attribute.Key("status")
)

func DriverKey(driver string) attribute.KeyValue { return driverKey.String(driver) }
func OpKey(op string) attribute.KeyValue         { return opKey.String(op) }
func StatusKey(status string) attribute.KeyValue { return statusKey.String(status) }

var StoreOpLatency = sync.OnceValue(func() metric.Float64Histogram {
	h, err := otel.Meter(meterName).Float64Histogram(
		"bucketfs_storage_op_latency",
		metric.WithDescription("Time to do an operation against the object store"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		zap.L().Warn("Failed to create storage latency histogram", zap.Error(err))
	}

	return h
})

var UploadBytes = sync.OnceValue(func() metric.Int64Counter {
	c, err := otel.Meter(meterName).Int64Counter(
		"bucketfs_storage_upload_bytes",
		metric.WithDescription("Bytes uploaded to the object store"),
		metric.WithUnit("By"),
	)
	if err != nil {
		zap.L().Warn("Failed to create upload counter", zap.Error(err))
	}

	return c
})

var SpoolRolloverCount = sync.OnceValue(func() metric.Int64Counter {
	c, err := otel.Meter(meterName).Int64Counter(
		"bucketfs_spool_rollover_count",
		metric.WithDescription("Number of file buffers that spilled to disk"),
	)
	if err != nil {
		zap.L().Warn("Failed to create spool rollover counter", zap.Error(err))
	}

	return c
})

func TotalTimeMS(startTime time.Time) float64 {
	return float64(time.Since(startTime)) / float64(time.Millisecond)
}

var (
	kindKey   = attribute.Key("kind")
	resultKey = attribute.Key("result")
)

func KindKey(kind string) attribute.KeyValue     { return kindKey.String(kind) }
func ResultKey(result string) attribute.KeyValue { return resultKey.String(result) }

var CacheAccessCount = sync.OnceValue(func() metric.Int64Counter {
	c, err := otel.Meter(meterName).Int64Counter(
		"bucketfs_cache_access_count",
		metric.WithDescription("Number of cache accesses"),
	)
	if err != nil {
		zap.L().Warn("Failed to create cache access counter", zap.Error(err))
	}

	return c
})
