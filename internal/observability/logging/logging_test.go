// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/cerbos/bucketfs/internal/observability/logging"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		level string
		want  zapcore.Level
	}{
		{level: "debug", want: zapcore.DebugLevel},
		{level: "INFO", want: zapcore.InfoLevel},
		{level: "warn", want: zapcore.WarnLevel},
		{level: "Error", want: zapcore.ErrorLevel},
		{level: "V2", want: zapcore.Level(-2)},
		{level: "v3", want: zapcore.Level(-3)},
		{level: "Vx", want: zapcore.InfoLevel},
		{level: "", want: zapcore.InfoLevel},
		{level: "chatty", want: zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			require.Equal(t, tc.want, logging.ParseLevel(tc.level))
		})
	}
}

func TestContextLogger(t *testing.T) {
	require.Equal(t, zap.L(), logging.FromContext(context.Background()))

	log := zaptest.NewLogger(t)
	ctx := logging.ToContext(context.Background(), log)
	require.Same(t, log, logging.FromContext(ctx))
}
