// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"

	"github.com/cerbos/bucketfs/cmd/bucketctl/internal/flagset"
	"github.com/cerbos/bucketfs/pkg/bucketfs"
)

// Context is bound to every command. The store is opened on first use.
type Context struct {
	Ctx     context.Context
	globals *flagset.Globals
	store   *bucketfs.Store
	opts    []bucketfs.Option
}

func NewContext(ctx context.Context, globals *flagset.Globals, opts ...bucketfs.Option) *Context {
	return &Context{Ctx: ctx, globals: globals, opts: opts}
}

func (c *Context) Store() (*bucketfs.Store, error) {
	if c.store != nil {
		return c.store, nil
	}

	overrides, err := c.globals.ConfigOverrides()
	if err != nil {
		return nil, err
	}

	opts := append([]bucketfs.Option{
		bucketfs.WithConfigFile(c.globals.Config),
		bucketfs.WithConfig(overrides),
	}, c.opts...)

	store, err := bucketfs.Open(c.Ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open the store: %w", err)
	}

	c.store = store
	return store, nil
}

func (c *Context) Close() error {
	if c.store == nil {
		return nil
	}

	return c.store.Close()
}
