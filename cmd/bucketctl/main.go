// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/cerbos/bucketfs/cmd/bucketctl/internal/client"
	"github.com/cerbos/bucketfs/cmd/bucketctl/root"
	"github.com/cerbos/bucketfs/internal/observability/logging"
	"github.com/cerbos/bucketfs/internal/util"
)

func main() {
	cli := &root.Cli{}
	ctx := kong.Parse(cli,
		kong.Name("bucketctl"),
		kong.Description("Browse and edit files in an object storage bucket"),
		kong.UsageOnError(),
		kong.Vars{"version": util.AppVersion()},
	)

	sigCtx, stopFunc := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopFunc()

	logging.InitLogging(sigCtx, string(cli.LogLevel))
	defer zap.L().Sync() //nolint:errcheck

	runCtx := logging.ToContext(sigCtx, zap.L().Named("bucketctl"))
	cctx := client.NewContext(runCtx, &cli.Globals)
	err := ctx.Run(cctx, &cli.Globals)
	if closeErr := cctx.Close(); closeErr != nil {
		zap.S().Warnw("Failed to close store", "error", closeErr)
	}

	ctx.FatalIfErrorf(err)
}
