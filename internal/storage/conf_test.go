// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cerbos/bucketfs/internal/config"
	"github.com/cerbos/bucketfs/internal/storage"
)

func TestConfDefaults(t *testing.T) {
	conf := &storage.Conf{}
	conf.SetDefaults()

	require.Equal(t, int64(1000), conf.SpoolMaxSize)
	require.Equal(t, time.Hour, conf.SignedURLExpiry)
	require.False(t, conf.FileOverwrite)
	require.Nil(t, conf.RequestTimeout)
}

func TestConfFromYAML(t *testing.T) {
	credsFile := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(credsFile, []byte("{}"), 0o600))

	wrapper, err := config.FromMap(map[string]any{
		"storage": map[string]any{
			"bucket":          "gs://my-bucket",
			"project":         "my-project",
			"credentialsFile": credsFile,
			"subdir":          "media",
			"spoolMaxSize":    4096,
			"signedURLExpiry": "10m",
			"requestTimeout":  "30s",
			"fileOverwrite":   true,
		},
	})
	require.NoError(t, err)

	conf := new(storage.Conf)
	require.NoError(t, wrapper.GetSection(conf))

	require.Equal(t, "gs://my-bucket", conf.Bucket)
	require.Equal(t, "my-project", conf.Project)
	require.Equal(t, credsFile, conf.CredentialsFile)
	require.Equal(t, "media", conf.Subdir)
	require.Equal(t, int64(4096), conf.SpoolMaxSize)
	require.Equal(t, 10*time.Minute, conf.SignedURLExpiry)
	require.NotNil(t, conf.RequestTimeout)
	require.Equal(t, 30*time.Second, *conf.RequestTimeout)
	require.True(t, conf.FileOverwrite)
}

func TestConfValidate(t *testing.T) {
	negative := -time.Second

	testCases := []struct {
		name    string
		modify  func(*storage.Conf)
		wantErr bool
	}{
		{
			name:   "gs with project",
			modify: func(c *storage.Conf) { c.Bucket = "gs://media-bucket"; c.Project = "p" },
		},
		{
			name:    "gs without project",
			modify:  func(c *storage.Conf) { c.Bucket = "gs://media-bucket" },
			wantErr: true,
		},
		{
			name:   "s3",
			modify: func(c *storage.Conf) { c.Bucket = "s3://media-bucket?region=eu-west-1" },
		},
		{
			name:   "file",
			modify: func(c *storage.Conf) { c.Bucket = "file:///var/lib/bucketfs" },
		},
		{
			name:   "mem",
			modify: func(c *storage.Conf) { c.Bucket = "mem://" },
		},
		{
			name:    "missing bucket",
			modify:  func(c *storage.Conf) {},
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			modify:  func(c *storage.Conf) { c.Bucket = "azblob://container" },
			wantErr: true,
		},
		{
			name:    "missing bucket name",
			modify:  func(c *storage.Conf) { c.Bucket = "s3://" },
			wantErr: true,
		},
		{
			name:    "missing credentials file",
			modify:  func(c *storage.Conf) { c.Bucket = "mem://"; c.CredentialsFile = "/does/not/exist.json" },
			wantErr: true,
		},
		{
			name:    "negative spool size",
			modify:  func(c *storage.Conf) { c.Bucket = "mem://"; c.SpoolMaxSize = -1 },
			wantErr: true,
		},
		{
			name:    "zero expiry",
			modify:  func(c *storage.Conf) { c.Bucket = "mem://"; c.SignedURLExpiry = 0 },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			modify:  func(c *storage.Conf) { c.Bucket = "mem://"; c.RequestTimeout = &negative },
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := &storage.Conf{}
			conf.SetDefaults()
			tc.modify(conf)

			err := conf.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}

	t.Run("unsupported scheme is identifiable", func(t *testing.T) {
		conf := &storage.Conf{Bucket: "ftp://host"}
		conf.SetDefaults()
		require.ErrorIs(t, conf.Validate(), storage.ErrUnsupportedBucketScheme)
	})
}
