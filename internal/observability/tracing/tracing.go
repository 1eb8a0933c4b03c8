// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cerbos/bucketfs/internal/util"
)

const (
	bucketKey = attribute.Key("bucketfs.bucket")
	objectKey = attribute.Key("bucketfs.object.key")
)

var (
	Bucket    = bucketKey.String
	ObjectKey = objectKey.String
)

func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(util.AppName).Start(ctx, name)
}

func MarkFailed(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
