// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package logging

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// handleUSR1Signal switches to debug logging for a while whenever SIGUSR1 is received.
func handleUSR1Signal(ctx context.Context, originalLevel zapcore.Level, atomicLevel *zap.AtomicLevel) {
	sigusr1 := make(chan os.Signal, 1)
	signal.Notify(sigusr1, syscall.SIGUSR1)

	go func() {
		defer signal.Stop(sigusr1)

		inProgress := false
		doneChan := make(chan struct{}, 1)
		extendChan := make(chan struct{}, 1)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigusr1:
				zap.L().Named("logging").Debug("Received SIGUSR1")
				if inProgress {
					extendChan <- struct{}{}
				} else {
					inProgress = true
					go setLogLevelForDuration(ctx, doneChan, extendChan, originalLevel, atomicLevel)
				}
			case <-doneChan:
				inProgress = false
			}
		}
	}()
}
