// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package root

import (
	"github.com/cerbos/bucketfs/cmd/bucketctl/cat"
	"github.com/cerbos/bucketfs/cmd/bucketctl/internal/flagset"
	"github.com/cerbos/bucketfs/cmd/bucketctl/ls"
	"github.com/cerbos/bucketfs/cmd/bucketctl/put"
	"github.com/cerbos/bucketfs/cmd/bucketctl/rm"
	"github.com/cerbos/bucketfs/cmd/bucketctl/stat"
	"github.com/cerbos/bucketfs/cmd/bucketctl/url"
	"github.com/cerbos/bucketfs/cmd/bucketctl/version"
	"github.com/cerbos/bucketfs/cmd/bucketctl/write"
)

var help = `Browse and edit files in an object storage bucket
Every path is resolved against the subdirectory configured in storage.subdir and
paths that escape it are rejected.

Environment variables

BUCKETFS_CONFIG: Path to the configuration file
BUCKETFS_LOG_LEVEL: Log level override

# List a directory of a local bucket
bucketctl --set=storage.bucket=file:///var/lib/bucketfs ls photos

# Upload a file to a GCS bucket under the media directory
bucketctl --config=.bucketfs.yaml --set=storage.subdir=media put ./avatar.png avatars/1.png`

type Cli struct {
	Version version.Cmd `cmd:"" help:"Show bucketctl version"`
	Ls      ls.Cmd      `cmd:"" help:"List a directory" aliases:"list"`
	Cat     cat.Cmd     `cmd:"" help:"Print the content of files"`
	flagset.Globals
	Put    put.Cmd         `cmd:"" help:"Upload a local file"`
	Write  write.Cmd       `cmd:"" help:"Replace the content of a file"`
	Append write.AppendCmd `cmd:"" help:"Append to a file"`
	Rm     rm.Cmd          `cmd:"" help:"Delete files" aliases:"del,delete"`
	Stat   stat.Cmd        `cmd:"" help:"Show file attributes"`
	URL    url.Cmd         `cmd:"" name:"url" help:"Print a signed URL for a file"`
}

func (c *Cli) Help() string {
	return help
}
