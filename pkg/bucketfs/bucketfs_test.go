// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package bucketfs_test

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gocloud.dev/blob/memblob"

	"github.com/cerbos/bucketfs/pkg/bucketfs"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("config file", func(t *testing.T) {
		store, err := bucketfs.Open(ctx,
			bucketfs.WithConfigFile(filepath.Join("testdata", "bucketfs.yaml")),
			bucketfs.WithSpoolFs(afero.NewMemMapFs()),
			bucketfs.WithLogger(zaptest.NewLogger(t)),
		)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })

		require.Equal(t, "/uploads/", store.Root())
		require.Equal(t, "mem", store.Driver())

		key, err := store.Save(ctx, "a.txt", strings.NewReader("a fairly long piece of content"))
		require.NoError(t, err)
		require.Equal(t, "/uploads/a.txt", key)

		f, err := store.Open(ctx, "a.txt")
		require.NoError(t, err)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		require.Equal(t, "a fairly long piece of content", string(data))
		require.NoError(t, f.Close())
	})

	t.Run("overrides", func(t *testing.T) {
		dir := t.TempDir()
		store, err := bucketfs.Open(ctx,
			bucketfs.WithConfigFile(filepath.Join("testdata", "bucketfs.yaml")),
			bucketfs.WithConfig(map[string]any{"storage": map[string]any{"bucket": "file://" + filepath.ToSlash(dir)}}),
		)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })

		require.Equal(t, "file", store.Driver())
		require.Equal(t, "/uploads/", store.Root())
	})

	t.Run("custom bucket", func(t *testing.T) {
		bucket := memblob.OpenBucket(nil)
		require.NoError(t, bucket.WriteAll(ctx, "/media/existing.txt", []byte("hello"), nil))

		store, err := bucketfs.Open(ctx,
			bucketfs.WithConfig(map[string]any{"storage": map[string]any{"bucket": "mem://", "subdir": "media"}}),
			bucketfs.WithBucket(bucket),
		)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })

		size, ok, err := store.Size(ctx, "existing.txt")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, int64(5), size)

		_, err = store.Open(ctx, "../existing.txt")
		require.ErrorIs(t, err, bucketfs.ErrSuspiciousPath)

		_, err = store.Open(ctx, "missing.txt")
		require.ErrorIs(t, err, bucketfs.ErrNotFound)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := bucketfs.Open(ctx, bucketfs.WithConfig(map[string]any{"storage": map[string]any{"bucket": "ftp://nope"}}))
		require.Error(t, err)
	})
}
