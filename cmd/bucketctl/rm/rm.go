// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package rm

import (
	"fmt"

	"github.com/alecthomas/kong"

	cmdclient "github.com/cerbos/bucketfs/cmd/bucketctl/internal/client"
)

type Cmd struct {
	Names []string `arg:"" help:"Files to delete"`
}

func (c *Cmd) Run(k *kong.Kong, ctx *cmdclient.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	for _, name := range c.Names {
		if err := store.Delete(ctx.Ctx, name); err != nil {
			return fmt.Errorf("failed to delete %q: %w", name, err)
		}
	}

	_, err = fmt.Fprintf(k.Stdout, "Deleted %d file(s)\n", len(c.Names))
	return err
}
