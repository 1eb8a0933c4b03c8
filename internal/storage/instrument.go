// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/cerbos/bucketfs/internal/observability/metrics"
	"github.com/cerbos/bucketfs/internal/observability/tracing"
)

func measureOp[T any](ctx context.Context, s *Store, op, key string, fn func(context.Context) (T, error)) (T, error) {
	startTime := time.Now()
	ctx, span := tracing.StartSpan(ctx, "storage."+op)
	span.SetAttributes(tracing.Bucket(s.conf.Bucket), tracing.ObjectKey(key))

	result, err := fn(ctx)

	status := "success"
	if err != nil {
		status = "failure"
		tracing.MarkFailed(span, err)
	}
	span.End()

	metrics.StoreOpLatency().Record(context.Background(), metrics.TotalTimeMS(startTime),
		metric.WithAttributes(metrics.DriverKey(s.driver), metrics.OpKey(op), metrics.StatusKey(status)),
	)

	return result, err
}
