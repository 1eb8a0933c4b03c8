// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gocloud.dev/blob"

	"github.com/cerbos/bucketfs/internal/observability/metrics"
	"github.com/cerbos/bucketfs/internal/safepath"
	"github.com/cerbos/bucketfs/internal/spool"
	"github.com/cerbos/bucketfs/internal/util"
)

const listPageSize = 1000

// Store exposes a bucket as a file store rooted at a subdirectory.
type Store struct {
	log     *zap.SugaredLogger
	conf    *Conf
	bucket  Bucket
	spoolFS afero.Fs
	root    string
	driver  string
}

type StoreOpt func(*Store)

// WithSpoolFs sets the filesystem that file buffers spill to.
func WithSpoolFs(fsys afero.Fs) StoreOpt {
	return func(s *Store) {
		s.spoolFS = fsys
	}
}

// WithLogger overrides the logger used by the store.
func WithLogger(log *zap.Logger) StoreOpt {
	return func(s *Store) {
		s.log = log.Sugar()
	}
}

// New opens the configured bucket and returns a store backed by it.
func New(ctx context.Context, conf *Conf, opts ...StoreOpt) (*Store, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage configuration: %w", err)
	}

	bucket, err := OpenBucket(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %q: %w", conf.Bucket, err)
	}

	store, err := NewStore(conf, bucket, opts...)
	if err != nil {
		_ = bucket.Close()
		return nil, err
	}

	if conf.Project != "" {
		store.log.Debugw("Using project", "project", conf.Project)
	}

	return store, nil
}

// NewStore returns a store backed by the given bucket.
func NewStore(conf *Conf, bucket Bucket, opts ...StoreOpt) (*Store, error) {
	if conf == nil {
		return nil, errors.New("storage configuration is required")
	}

	if bucket == nil {
		return nil, errors.New("bucket is required")
	}

	if _, err := safepath.Join(conf.Subdir, ""); err != nil {
		return nil, fmt.Errorf("invalid subdir %q: %w", conf.Subdir, err)
	}

	driver := "custom"
	if u, err := url.Parse(conf.Bucket); err == nil && u.Scheme != "" {
		driver = u.Scheme
	}

	s := &Store{
		conf:    conf,
		bucket:  bucket,
		spoolFS: afero.NewOsFs(),
		root:    safepath.Base(conf.Subdir),
		driver:  driver,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = zap.S()
	}
	s.log = s.log.Named("storage").With("bucket", conf.Bucket, "root", s.root)

	return s, nil
}

func (s *Store) Driver() string {
	return s.driver
}

// Root returns the directory every key is confined to.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) resolve(name string) (string, error) {
	key, err := safepath.Join(s.conf.Subdir, name)
	if err != nil {
		s.log.Warnw("Rejected name", "name", name, "error", err)
		return "", err
	}

	return key, nil
}

func (s *Store) resolveFile(name string) (string, error) {
	key, err := s.resolve(name)
	if err != nil {
		return "", err
	}

	if strings.HasSuffix(key, safepath.Separator) {
		return "", fmt.Errorf("%w: %q names a directory", safepath.ErrInvalidName, name)
	}

	return key, nil
}

// Save uploads content under name and returns the key it was stored at.
// Unless overwriting is enabled, a random suffix is added to the name when the key is taken.
func (s *Store) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	key, err := s.resolveFile(name)
	if err != nil {
		return "", err
	}

	if content == nil {
		return "", fmt.Errorf("no content to save to %q", key)
	}

	return measureOp(ctx, s, "save", key, func(ctx context.Context) (string, error) {
		target := key
		if !s.conf.FileOverwrite {
			available, err := s.availableName(ctx, key)
			if err != nil {
				return "", err
			}
			target = available
		}

		body, head, err := peekHead(content)
		if err != nil {
			return "", &UploadError{Key: target, Err: err}
		}

		cr := &countingReader{r: body}
		if err := s.bucket.Upload(ctx, target, cr, writerOptions(target, head)); err != nil {
			return "", &UploadError{Key: target, Err: err}
		}

		metrics.UploadBytes().Add(ctx, cr.n, metric.WithAttributes(metrics.DriverKey(s.driver)))
		s.log.Debugw("Saved object", "key", target, "size", cr.n)
		return target, nil
	})
}

// Open downloads the object into a local buffer positioned at the start.
// The returned file uploads its content on Close if it was written to.
func (s *Store) Open(ctx context.Context, name string) (*File, error) {
	key, err := s.resolveFile(name)
	if err != nil {
		return nil, err
	}

	return measureOp(ctx, s, "open", key, func(opCtx context.Context) (*File, error) {
		f := s.newFile(ctx, key)
		if err := s.bucket.Download(opCtx, key, f.buf, nil); err != nil {
			_ = f.Discard()
			if isNotFound(err) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
			}
			return nil, &DownloadError{Key: key, Err: err}
		}

		if _, err := f.buf.Seek(0, io.SeekStart); err != nil {
			_ = f.Discard()
			return nil, &DownloadError{Key: key, Err: err}
		}

		return f, nil
	})
}

// Create returns an empty file bound to name. Nothing is uploaded until the file is written to and closed.
func (s *Store) Create(ctx context.Context, name string) (*File, error) {
	key, err := s.resolveFile(name)
	if err != nil {
		return nil, err
	}

	return s.newFile(ctx, key), nil
}

func (s *Store) newFile(ctx context.Context, key string) *File {
	spoolOpts := []spool.Option{spool.WithFs(s.spoolFS)}
	if s.conf.SpoolDir != "" {
		spoolOpts = append(spoolOpts, spool.WithDir(s.conf.SpoolDir))
	}

	return &File{
		ctx:    ctx,
		log:    s.log.With("key", key),
		bucket: s.bucket,
		buf:    spool.New(s.conf.SpoolMaxSize, spoolOpts...),
		key:    key,
		driver: s.driver,
	}
}

// Delete removes the object. Deleting an object that does not exist is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	key, err := s.resolve(name)
	if err != nil {
		return err
	}

	_, err = measureOp(ctx, s, "delete", key, func(ctx context.Context) (struct{}, error) {
		if err := s.bucket.Delete(ctx, key); err != nil && !isNotFound(err) {
			return struct{}{}, fmt.Errorf("failed to delete %q: %w", key, err)
		}
		return struct{}{}, nil
	})

	return err
}

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	key, err := s.resolve(name)
	if err != nil {
		return false, err
	}

	return measureOp(ctx, s, "exists", key, func(ctx context.Context) (bool, error) {
		exists, err := s.bucket.Exists(ctx, key)
		if err != nil {
			return false, fmt.Errorf("failed to check whether %q exists: %w", key, err)
		}
		return exists, nil
	})
}

// Size returns the size of the object in bytes. The boolean is false if the object does not exist.
func (s *Store) Size(ctx context.Context, name string) (int64, bool, error) {
	attrs, err := s.stat(ctx, "size", name)
	if err != nil || attrs == nil {
		return 0, false, err
	}

	return attrs.Size, true, nil
}

// CreatedTime returns the creation time of the object in UTC. The boolean is false if the object does not
// exist or the bucket does not record creation times.
func (s *Store) CreatedTime(ctx context.Context, name string) (time.Time, bool, error) {
	attrs, err := s.stat(ctx, "created_time", name)
	if err != nil || attrs == nil {
		return time.Time{}, false, err
	}

	t, ok := creationTime(attrs)
	return t, ok, nil
}

// ModifiedTime returns the last modification time of the object in UTC. The boolean is false if the object does not exist.
func (s *Store) ModifiedTime(ctx context.Context, name string) (time.Time, bool, error) {
	attrs, err := s.stat(ctx, "modified_time", name)
	if err != nil || attrs == nil || attrs.ModTime.IsZero() {
		return time.Time{}, false, err
	}

	return attrs.ModTime.UTC(), true, nil
}

// stat returns nil attributes if the object does not exist.
func (s *Store) stat(ctx context.Context, op, name string) (*blob.Attributes, error) {
	key, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	return measureOp(ctx, s, op, key, func(ctx context.Context) (*blob.Attributes, error) {
		attrs, err := s.bucket.Attributes(ctx, key)
		if err != nil {
			if isNotFound(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to get attributes of %q: %w", key, err)
		}
		return attrs, nil
	})
}

type listing struct {
	dirs  []string
	files []string
}

// ListDir returns the immediate subdirectories and files of the directory, both sorted and relative to it.
func (s *Store) ListDir(ctx context.Context, dir string) (dirs, files []string, err error) {
	prefix, err := s.resolve(dir)
	if err != nil {
		return nil, nil, err
	}

	if !strings.HasSuffix(prefix, safepath.Separator) {
		prefix += safepath.Separator
	}

	l, err := measureOp(ctx, s, "list_dir", prefix, func(ctx context.Context) (listing, error) {
		dirSet := make(util.StringSet)
		fileSet := make(util.StringSet)
		opts := &blob.ListOptions{Prefix: prefix, Delimiter: safepath.Separator}

		for token := blob.FirstPageToken; len(token) > 0; {
			objs, next, err := s.bucket.ListPage(ctx, token, listPageSize, opts)
			if err != nil {
				return listing{}, fmt.Errorf("failed to list %q: %w", prefix, err)
			}

			for _, obj := range objs {
				name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, prefix), safepath.Separator)
				if name == "" {
					continue
				}

				if obj.IsDir {
					dirSet.Add(name)
				} else {
					fileSet.Add(name)
				}
			}

			token = next
		}

		return listing{dirs: dirSet.Sorted(), files: fileSet.Sorted()}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	return l.dirs, l.files, nil
}

// URL returns a signed URL for reading the object. The boolean is false if the object does not exist.
func (s *Store) URL(ctx context.Context, name string) (string, bool, error) {
	key, err := s.resolveFile(name)
	if err != nil {
		return "", false, err
	}

	signed, err := measureOp(ctx, s, "url", key, func(ctx context.Context) (string, error) {
		exists, err := s.bucket.Exists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to check whether %q exists: %w", key, err)
		}

		if !exists {
			return "", nil
		}

		signed, err := s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{Expiry: s.signedURLExpiry()})
		if err != nil {
			return "", fmt.Errorf("failed to sign URL for %q: %w", key, err)
		}
		return signed, nil
	})
	if err != nil || signed == "" {
		return "", false, err
	}

	return signed, true, nil
}

func (s *Store) signedURLExpiry() time.Duration {
	if s.conf.SignedURLExpiry > 0 {
		return s.conf.SignedURLExpiry
	}

	return defaultSignedURLExpiry
}

func (s *Store) Close() error {
	return s.bucket.Close()
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}
