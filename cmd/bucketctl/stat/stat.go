// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package stat

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/kong"

	cmdclient "github.com/cerbos/bucketfs/cmd/bucketctl/internal/client"
	"github.com/cerbos/bucketfs/cmd/bucketctl/internal/printer"
	"github.com/cerbos/bucketfs/pkg/bucketfs"
)

type Cmd struct {
	Name string `arg:"" help:"File to describe"`
}

func (c *Cmd) Run(k *kong.Kong, ctx *cmdclient.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	size, ok, err := store.Size(ctx.Ctx, c.Name)
	if err != nil {
		return fmt.Errorf("failed to get size of %q: %w", c.Name, err)
	}

	if !ok {
		return fmt.Errorf("%w: %s", bucketfs.ErrNotFound, c.Name)
	}

	created, createdOK, err := store.CreatedTime(ctx.Ctx, c.Name)
	if err != nil {
		return fmt.Errorf("failed to get creation time of %q: %w", c.Name, err)
	}

	modified, modifiedOK, err := store.ModifiedTime(ctx.Ctx, c.Name)
	if err != nil {
		return fmt.Errorf("failed to get modification time of %q: %w", c.Name, err)
	}

	tw := printer.NewTableWriter(k.Stdout)
	tw.SetHeader([]string{"name", "size", "created", "modified"})
	tw.Append([]string{c.Name, strconv.FormatInt(size, 10), printer.FormatTime(created, createdOK), printer.FormatTime(modified, modifiedOK)})
	tw.Render()

	return nil
}
