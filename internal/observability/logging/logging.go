// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cerbos/bucketfs/internal/util"
)

const defaultTmpLogLevelDuration = 10 * time.Minute

type ctxLog struct{}

var ctxLogKey = &ctxLog{}

// InitLogging initializes the global logger.
func InitLogging(ctx context.Context, level string) {
	if envLevel := os.Getenv("BUCKETFS_LOG_LEVEL"); envLevel != "" {
		doInitLogging(ctx, envLevel)
		return
	}

	doInitLogging(ctx, level)
}

func doInitLogging(ctx context.Context, level string) {
	minLogLevel := ParseLevel(level)

	// Stdout carries object content for commands such as cat, so every log line goes to stderr.
	encoderConf := ecszap.NewDefaultEncoderConfig().ToZapCoreEncoderConfig()
	var encoder zapcore.Encoder
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		encoder = zapcore.NewJSONEncoder(encoderConf)
	} else {
		encoderConf.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConf)
	}

	atomicLevel := zap.NewAtomicLevelAt(minLogLevel)
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), atomicLevel)

	stackTraceEnabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl > zapcore.ErrorLevel
	})
	logger := zap.New(core, zap.AddStacktrace(stackTraceEnabler))

	zap.ReplaceGlobals(logger.Named(util.AppName))
	zap.RedirectStdLog(logger.Named("stdlog"))

	if minLogLevel > zap.DebugLevel {
		handleUSR1Signal(ctx, minLogLevel, &atomicLevel)
	}
}

// ParseLevel converts a level name (debug, info, warn, error or Vn) to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	}

	if strings.HasPrefix(strings.ToUpper(level), "V") {
		if vLevel, err := strconv.Atoi(level[1:]); err == nil {
			return zapcore.Level(-vLevel)
		}
	}

	return zapcore.InfoLevel
}

// setLogLevelForDuration temporarily sets the global log level to the given level for a period of time.
func setLogLevelForDuration(ctx context.Context, doneChan chan<- struct{}, extendChan <-chan struct{}, originalLevel zapcore.Level, atomicLevel *zap.AtomicLevel) {
	log := zap.S().Named("logging")

	tmpLogLevelDuration := defaultTmpLogLevelDuration
	if td := os.Getenv("BUCKETFS_TEMP_LOG_LEVEL_DURATION"); td != "" {
		if d, err := time.ParseDuration(td); err == nil {
			tmpLogLevelDuration = d
		}
	}

	log.Infof("Temporarily setting global log level to %s for %s", zap.DebugLevel, tmpLogLevelDuration)
	atomicLevel.SetLevel(zap.DebugLevel)

	timer := time.NewTimer(tmpLogLevelDuration)
	defer func() {
		timer.Stop()
		log.Infof("Reverting global log level to %s", originalLevel)
		atomicLevel.SetLevel(originalLevel)
		doneChan <- struct{}{}
	}()

	extendCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if extendCount <= 0 {
				return
			}

			log.Infof("Extending %s log level for further %s", zap.DebugLevel, tmpLogLevelDuration)
			extendCount--
			timer.Reset(tmpLogLevelDuration)
		case <-extendChan:
			log.Infof("Log level will be %s for further %s", zap.DebugLevel, tmpLogLevelDuration)
			extendCount++
		}
	}
}

// FromContext returns the logger from the context if one exists. Otherwise it returns a new logger.
func FromContext(ctx context.Context) *zap.Logger {
	log, ok := ctx.Value(ctxLogKey).(*zap.Logger)
	if !ok || log == nil {
		return zap.L()
	}

	return log
}

// ToContext adds a logger to the context.
func ToContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLogKey, log)
}
