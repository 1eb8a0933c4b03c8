// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package put

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	cmdclient "github.com/cerbos/bucketfs/cmd/bucketctl/internal/client"
)

const help = `# Upload a file keeping its name
bucketctl put ./avatar.png

# Upload a file to a different name
bucketctl put ./avatar.png avatars/1.png

# Replace the file if it already exists
bucketctl --set=storage.fileOverwrite=true put ./avatar.png avatars/1.png`

type Cmd struct {
	Source string `arg:"" type:"existingfile" help:"Local file to upload"`
	Name   string `arg:"" optional:"" help:"Destination name. Defaults to the base name of the source"`
}

func (c *Cmd) Run(k *kong.Kong, ctx *cmdclient.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	name := c.Name
	if name == "" {
		name = filepath.Base(c.Source)
	}

	f, err := os.Open(c.Source)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", c.Source, err)
	}
	defer f.Close()

	key, err := store.Save(ctx.Ctx, name, f)
	if err != nil {
		return fmt.Errorf("failed to save %q: %w", name, err)
	}

	_, err = fmt.Fprintln(k.Stdout, key)
	return err
}

func (c *Cmd) Help() string {
	return help
}
