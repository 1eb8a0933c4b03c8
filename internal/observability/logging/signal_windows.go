// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SIGUSR1 does not exist on Windows so the log level can only be changed with a restart.
func handleUSR1Signal(context.Context, zapcore.Level, *zap.AtomicLevel) {}
