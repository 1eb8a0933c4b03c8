// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

// Package bucketfs exposes an object storage bucket as a file store confined to a root directory.
package bucketfs

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/cerbos/bucketfs/internal/config"
	"github.com/cerbos/bucketfs/internal/observability/logging"
	"github.com/cerbos/bucketfs/internal/safepath"
	"github.com/cerbos/bucketfs/internal/storage"
)

type (
	// Store is a file store backed by a bucket.
	Store = storage.Store
	// File is a local buffer bound to an object. Close uploads it if it was written to.
	File = storage.File
	// Bucket is the object store a Store is backed by. *blob.Bucket implements it.
	Bucket = storage.Bucket
	// Conf is the storage configuration section.
	Conf = storage.Conf

	UploadError    = storage.UploadError
	DownloadError  = storage.DownloadError
	TraversalError = safepath.TraversalError
)

var (
	ErrNotFound        = storage.ErrNotFound
	ErrNoAvailableName = storage.ErrNoAvailableName
	ErrSuspiciousPath  = safepath.ErrSuspiciousPath
	ErrInvalidName     = safepath.ErrInvalidName
)

type openOptions struct {
	bucket          Bucket
	spoolFS         afero.Fs
	logger          *zap.Logger
	configOverrides map[string]any
	configFilePath  string
}

// Option defines options for [Open].
type Option func(*openOptions)

// WithConfigFile sets the path to the configuration file.
func WithConfigFile(path string) Option {
	return func(opts *openOptions) {
		opts.configFilePath = path
	}
}

// WithConfig sets configuration values, overriding any values present in the configuration file.
func WithConfig(overrides map[string]any) Option {
	return func(opts *openOptions) {
		opts.configOverrides = overrides
	}
}

// WithBucket backs the store with the given bucket instead of opening the configured one.
// The store takes ownership of the bucket and closes it on Close.
func WithBucket(bucket Bucket) Option {
	return func(opts *openOptions) {
		opts.bucket = bucket
	}
}

// WithSpoolFs sets the filesystem that large file buffers spill to.
func WithSpoolFs(fsys afero.Fs) Option {
	return func(opts *openOptions) {
		opts.spoolFS = fsys
	}
}

// WithLogger sets the logger used by the store. Defaults to the logger carried by the context passed to [Open].
func WithLogger(logger *zap.Logger) Option {
	return func(opts *openOptions) {
		opts.logger = logger
	}
}

// Open loads the storage configuration and returns a store backed by the configured bucket.
// Without a configuration file a local bucket in the current working directory is used.
func Open(ctx context.Context, options ...Option) (*Store, error) {
	var opts openOptions
	for _, option := range options {
		option(&opts)
	}

	wrapper, err := config.Load(opts.configFilePath, opts.configOverrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	conf := new(storage.Conf)
	if err := wrapper.GetSection(conf); err != nil {
		return nil, fmt.Errorf("invalid storage configuration: %w", err)
	}

	var storeOpts []storage.StoreOpt
	if opts.spoolFS != nil {
		storeOpts = append(storeOpts, storage.WithSpoolFs(opts.spoolFS))
	}

	logger := opts.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	storeOpts = append(storeOpts, storage.WithLogger(logger))

	if opts.bucket != nil {
		return storage.NewStore(conf, opts.bucket, storeOpts...)
	}

	return storage.New(ctx, conf, storeOpts...)
}
