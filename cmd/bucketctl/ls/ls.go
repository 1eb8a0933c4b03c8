// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package ls

import (
	"fmt"
	"path"
	"strconv"

	"github.com/alecthomas/kong"

	cmdclient "github.com/cerbos/bucketfs/cmd/bucketctl/internal/client"
	"github.com/cerbos/bucketfs/cmd/bucketctl/internal/printer"
	"github.com/cerbos/bucketfs/internal/util"
)

const help = `# List the root directory
bucketctl ls

# List a directory
bucketctl ls photos

# Show sizes and modification times
bucketctl ls -l photos

# Only show JPEG files
bucketctl ls --match="*.jpg" photos`

type Cmd struct {
	Dir   string `arg:"" optional:"" help:"Directory to list"`
	Match string `help:"Only show entries matching the glob" placeholder:"*.jpg"`
	Long  bool   `short:"l" help:"Show size and modification time of files"`
}

func (c *Cmd) Validate() error {
	if c.Match == "" {
		return nil
	}

	if err := util.ValidateGlob(c.Match); err != nil {
		return fmt.Errorf("invalid glob %q: %w", c.Match, err)
	}

	return nil
}

func (c *Cmd) Run(k *kong.Kong, ctx *cmdclient.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	dirs, files, err := store.ListDir(ctx.Ctx, c.Dir)
	if err != nil {
		return fmt.Errorf("failed to list %q: %w", c.Dir, err)
	}

	if c.Match != "" {
		dirs = util.FilterGlob(c.Match, dirs)
		files = util.FilterGlob(c.Match, files)
	}

	if !c.Long {
		for _, d := range dirs {
			if _, err := fmt.Fprintf(k.Stdout, "%s/\n", d); err != nil {
				return err
			}
		}

		for _, f := range files {
			if _, err := fmt.Fprintln(k.Stdout, f); err != nil {
				return err
			}
		}

		return nil
	}

	tw := printer.NewTableWriter(k.Stdout)
	tw.SetHeader([]string{"name", "size", "modified"})
	for _, d := range dirs {
		tw.Append([]string{d + "/", "-", "-"})
	}

	for _, f := range files {
		name := path.Join(c.Dir, f)
		size, ok, err := store.Size(ctx.Ctx, name)
		if err != nil {
			return fmt.Errorf("failed to get size of %q: %w", name, err)
		}

		sizeStr := "-"
		if ok {
			sizeStr = strconv.FormatInt(size, 10)
		}

		modTime, ok, err := store.ModifiedTime(ctx.Ctx, name)
		if err != nil {
			return fmt.Errorf("failed to get modification time of %q: %w", name, err)
		}

		tw.Append([]string{f, sizeStr, printer.FormatTime(modTime, ok)})
	}
	tw.Render()

	return nil
}

func (c *Cmd) Help() string {
	return help
}
