// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

// Package spool implements a read/write buffer that lives in memory until it grows past a
// threshold and then moves to a temporary file.
package spool

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/spf13/afero/mem"
	"go.uber.org/multierr"
)

const defaultPrefix = "bucketfs_"

var (
	_ io.ReadWriteSeeker = (*File)(nil)
	_ io.Closer          = (*File)(nil)
)

type Option func(*File)

// WithFs sets the filesystem temporary files are created on. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(f *File) {
		f.fs = fsys
	}
}

// WithDir sets the directory for temporary files. Defaults to the OS temp dir.
func WithDir(dir string) Option {
	return func(f *File) {
		f.dir = dir
	}
}

// WithPrefix sets the name prefix of temporary files.
func WithPrefix(prefix string) Option {
	return func(f *File) {
		f.prefix = prefix
	}
}

// File is a spooled temporary file. It is not safe for concurrent use.
type File struct {
	fs      afero.Fs
	current afero.File
	dir     string
	prefix  string
	maxSize int64
	rolled  bool
	closed  bool
}

// New creates an empty spooled file. A maxSize of zero or less keeps the content in memory regardless of size.
func New(maxSize int64, opts ...Option) *File {
	f := &File{
		fs:      afero.NewOsFs(),
		maxSize: maxSize,
		prefix:  defaultPrefix,
	}

	for _, opt := range opts {
		opt(f)
	}

	f.current = mem.NewFileHandle(mem.CreateFile(f.prefix))
	return f
}

func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}

	return f.current.Read(p)
}

func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}

	if !f.rolled && f.maxSize > 0 {
		pos, err := f.current.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, err
		}

		if pos+int64(len(p)) > f.maxSize {
			if err := f.Rollover(); err != nil {
				return 0, err
			}
		}
	}

	return f.current.Write(p)
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}

	return f.current.Seek(offset, whence)
}

// Size returns the number of bytes held.
func (f *File) Size() (int64, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}

	fi, err := f.current.Stat()
	if err != nil {
		return 0, err
	}

	return fi.Size(), nil
}

// Rolled reports whether the content has moved to a temporary file.
func (f *File) Rolled() bool {
	return f.rolled
}

// Truncate changes the size of the buffer without moving the cursor.
func (f *File) Truncate(size int64) error {
	if f.closed {
		return fs.ErrClosed
	}

	return f.current.Truncate(size)
}

// Name returns the temporary file name once rolled over and an empty string before that.
func (f *File) Name() string {
	if !f.rolled {
		return ""
	}

	return f.current.Name()
}

// Rollover moves the in-memory content to a temporary file, preserving the cursor position.
// It is a no-op if the content is already on disk.
func (f *File) Rollover() (err error) {
	if f.closed {
		return fs.ErrClosed
	}

	if f.rolled {
		return nil
	}

	pos, err := f.current.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	tmp, err := afero.TempFile(f.fs, f.dir, f.prefix)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if err := f.copyTo(tmp, pos); err != nil {
		_, seekErr := f.current.Seek(pos, io.SeekStart)
		return multierr.Combine(err, seekErr, tmp.Close(), f.fs.Remove(tmp.Name()))
	}

	_ = f.current.Close()
	f.current = tmp
	f.rolled = true

	return nil
}

func (f *File) copyTo(tmp afero.File, pos int64) error {
	if _, err := f.current.Seek(0, io.SeekStart); err != nil {
		return err
	}

	if _, err := io.Copy(tmp, f.current); err != nil {
		return fmt.Errorf("failed to spill to %s: %w", tmp.Name(), err)
	}

	_, err := tmp.Seek(pos, io.SeekStart)
	return err
}

// Close releases the buffer and removes the temporary file if one was created.
// Closing an already closed File returns fs.ErrClosed.
func (f *File) Close() error {
	if f.closed {
		return fs.ErrClosed
	}

	f.closed = true
	err := f.current.Close()

	if f.rolled {
		name := f.current.Name()
		if rmErr := f.fs.Remove(name); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			err = multierr.Append(err, fmt.Errorf("failed to remove %s: %w", name, rmErr))
		}
	}

	return err
}
