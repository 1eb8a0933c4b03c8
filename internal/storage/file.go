// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"io"
	"io/fs"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gocloud.dev/blob"

	"github.com/cerbos/bucketfs/internal/observability/metrics"
	"github.com/cerbos/bucketfs/internal/spool"
)

var (
	_ io.ReadWriteSeeker = (*File)(nil)
	_ io.Closer          = (*File)(nil)
	_ io.StringWriter    = (*File)(nil)
)

type uploader interface {
	Upload(ctx context.Context, key string, r io.Reader, opts *blob.WriterOptions) error
}

// File is a local buffer bound to an object key. Writes mark it dirty and Close uploads the whole
// buffer if it is dirty. A File is not safe for concurrent use.
type File struct {
	ctx    context.Context
	log    *zap.SugaredLogger
	bucket uploader
	buf    *spool.File
	key    string
	driver string
	dirty  bool
	closed bool
}

func (f *File) Name() string {
	return f.key
}

func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}

	return f.buf.Read(p)
}

func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}

	if len(p) == 0 {
		return 0, nil
	}

	rolled := f.buf.Rolled()
	n, err := f.buf.Write(p)
	if n > 0 {
		f.dirty = true
	}
	if !rolled && f.buf.Rolled() {
		metrics.SpoolRolloverCount().Add(f.ctx, 1)
		f.log.Debugw("Buffer spilled to disk", "path", f.buf.Name())
	}

	return n, err
}

func (f *File) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}

	return f.buf.Seek(offset, whence)
}

// Truncate resizes the buffer and marks the file dirty, even when the size does not change.
func (f *File) Truncate(size int64) error {
	if f.closed {
		return fs.ErrClosed
	}

	if err := f.buf.Truncate(size); err != nil {
		return err
	}

	f.dirty = true
	return nil
}

// Size returns the number of bytes currently buffered.
func (f *File) Size() (int64, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}

	return f.buf.Size()
}

// Dirty reports whether the buffer holds changes that have not been uploaded.
func (f *File) Dirty() bool {
	return f.dirty
}

// Close uploads the buffer if it was written to and releases it.
// If the upload fails the file stays open and dirty so that Close can be retried.
func (f *File) Close() error {
	if f.closed {
		return fs.ErrClosed
	}

	if f.dirty {
		if err := f.upload(); err != nil {
			return err
		}
	}

	f.closed = true
	return f.buf.Close()
}

// Discard releases the buffer without uploading. It is a no-op on a closed file.
func (f *File) Discard() error {
	if f.closed {
		return nil
	}

	if f.dirty {
		f.log.Warn("Discarding unsaved changes")
		f.dirty = false
	}

	f.closed = true
	return f.buf.Close()
}

func (f *File) upload() error {
	size, err := f.buf.Size()
	if err != nil {
		return &UploadError{Key: f.key, Err: err}
	}

	head, err := readHead(f.buf)
	if err != nil {
		return &UploadError{Key: f.key, Err: err}
	}

	if err := f.bucket.Upload(f.ctx, f.key, f.buf, writerOptions(f.key, head)); err != nil {
		f.log.Errorw("Failed to upload buffer", "error", err)
		return &UploadError{Key: f.key, Err: err}
	}

	f.dirty = false
	metrics.UploadBytes().Add(f.ctx, size, metric.WithAttributes(metrics.DriverKey(f.driver)))
	f.log.Debugw("Uploaded buffer", "size", size)

	return nil
}
