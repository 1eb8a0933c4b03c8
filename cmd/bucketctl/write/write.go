// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package write

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cmdclient "github.com/cerbos/bucketfs/cmd/bucketctl/internal/client"
	"github.com/cerbos/bucketfs/pkg/bucketfs"
)

const (
	writeHelp = `# Replace the content of a file
bucketctl write notes/todo.txt --content="buy milk"

# Empty the file
bucketctl write notes/todo.txt < /dev/null

# Write from stdin
echo "buy milk" | bucketctl write notes/todo.txt`

	appendHelp = `# Append a line to a file, creating it if necessary
bucketctl append logs/app.log --content="started"`
)

type Cmd struct {
	Name    string `arg:"" help:"File to write"`
	Content string `help:"Content to write. Read from stdin when empty"`
}

func (c *Cmd) Run(ctx *cmdclient.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	f, err := store.Create(ctx.Ctx, c.Name)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", c.Name, err)
	}

	// Empty input still replaces the stored object.
	if err := f.Truncate(0); err != nil {
		_ = f.Discard()
		return fmt.Errorf("failed to truncate %q: %w", c.Name, err)
	}

	return copyAndClose(f, content(c.Content))
}

func (c *Cmd) Help() string {
	return writeHelp
}

type AppendCmd struct {
	Name    string `arg:"" help:"File to append to"`
	Content string `help:"Content to append. Read from stdin when empty"`
}

func (c *AppendCmd) Run(ctx *cmdclient.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	f, err := store.Open(ctx.Ctx, c.Name)
	if errors.Is(err, bucketfs.ErrNotFound) {
		f, err = store.Create(ctx.Ctx, c.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", c.Name, err)
	}

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		_ = f.Discard()
		return fmt.Errorf("failed to seek to the end of %q: %w", c.Name, err)
	}

	return copyAndClose(f, content(c.Content))
}

func (c *AppendCmd) Help() string {
	return appendHelp
}

func content(value string) io.Reader {
	if value != "" {
		return strings.NewReader(value)
	}

	return os.Stdin
}

func copyAndClose(f *bucketfs.File, src io.Reader) error {
	if _, err := io.Copy(f, src); err != nil {
		_ = f.Discard()
		return fmt.Errorf("failed to write %q: %w", f.Name(), err)
	}

	if err := f.Close(); err != nil {
		_ = f.Discard()
		return err
	}

	return nil
}
