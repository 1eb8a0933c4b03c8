// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package cat

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	cmdclient "github.com/cerbos/bucketfs/cmd/bucketctl/internal/client"
)

type Cmd struct {
	Names []string `arg:"" help:"Files to print"`
}

func (c *Cmd) Run(k *kong.Kong, ctx *cmdclient.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	for _, name := range c.Names {
		f, err := store.Open(ctx.Ctx, name)
		if err != nil {
			return fmt.Errorf("failed to open %q: %w", name, err)
		}

		_, err = io.Copy(k.Stdout, f)
		_ = f.Discard()
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", name, err)
		}
	}

	return nil
}
