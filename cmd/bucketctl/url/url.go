// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package url

import (
	"fmt"

	"github.com/alecthomas/kong"

	cmdclient "github.com/cerbos/bucketfs/cmd/bucketctl/internal/client"
	"github.com/cerbos/bucketfs/pkg/bucketfs"
)

const help = `# Print a URL valid for the configured expiry
bucketctl url photos/a.jpg

# Print a URL valid for ten minutes
bucketctl --set=storage.signedURLExpiry=10m url photos/a.jpg`

type Cmd struct {
	Name string `arg:"" help:"File to sign a URL for"`
}

func (c *Cmd) Run(k *kong.Kong, ctx *cmdclient.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	signed, ok, err := store.URL(ctx.Ctx, c.Name)
	if err != nil {
		return fmt.Errorf("failed to sign a URL for %q: %w", c.Name, err)
	}

	if !ok {
		return fmt.Errorf("%w: %s", bucketfs.ErrNotFound, c.Name)
	}

	_, err = fmt.Fprintln(k.Stdout, signed)
	return err
}

func (c *Cmd) Help() string {
	return help
}
