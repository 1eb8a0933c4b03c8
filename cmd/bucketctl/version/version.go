// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/cerbos/bucketfs/internal/util"
)

type Cmd struct{}

func (c *Cmd) Run(k *kong.Kong) error {
	_, err := fmt.Fprintf(k.Stdout, "bucketctl version %s; commit sha: %s, build date: %s\n", util.AppShortVersion(), util.Commit, util.BuildDate)
	return err
}
