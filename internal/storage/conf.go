// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"go.uber.org/multierr"
)

const (
	ConfKey                = "storage"
	defaultSpoolMaxSize    = 1000
	defaultSignedURLExpiry = time.Hour
)

// Conf holds the configuration for the object store.
type Conf struct {
	// RequestTimeout specifies the timeout for an HTTP request made by the gs and s3 drivers. Unset means no timeout.
	RequestTimeout *time.Duration `yaml:"requestTimeout,omitempty"`
	// Bucket URL
	// For example
	// gs://my-bucket
	// s3://my-bucket?region=us-west-1
	// file:///var/lib/bucketfs
	// mem://
	Bucket string `yaml:"bucket"`
	// Project is the cloud project that owns the bucket. Required for gs buckets.
	Project string `yaml:"project,omitempty"`
	// CredentialsFile is the path to a service account JSON key. Application default credentials are used when empty.
	CredentialsFile string `yaml:"credentialsFile,omitempty"`
	// Subdir confines every operation to this directory of the bucket.
	Subdir string `yaml:"subdir,omitempty"`
	// SpoolDir is where file buffers spill to once they exceed SpoolMaxSize. Defaults to the OS temp dir.
	SpoolDir string `yaml:"spoolDir,omitempty"`
	// SpoolMaxSize is the number of bytes a file buffer keeps in memory. Zero keeps everything in memory.
	SpoolMaxSize int64 `yaml:"spoolMaxSize"`
	// SignedURLExpiry is how long signed URLs stay valid.
	SignedURLExpiry time.Duration `yaml:"signedURLExpiry"`
	// FileOverwrite makes Save replace existing objects instead of choosing an available name.
	FileOverwrite bool `yaml:"fileOverwrite"`
}

func (conf *Conf) Key() string {
	return ConfKey
}

func (conf *Conf) SetDefaults() {
	conf.SpoolMaxSize = defaultSpoolMaxSize
	conf.SignedURLExpiry = defaultSignedURLExpiry
}

func (conf *Conf) Validate() error {
	var errs []error

	if conf.Bucket == "" {
		errs = append(errs, errors.New("bucket is required"))
	} else if u, err := url.Parse(conf.Bucket); err != nil {
		errs = append(errs, fmt.Errorf("failed to parse bucket URL %q: %w", conf.Bucket, err))
	} else {
		switch u.Scheme {
		case gsScheme:
			if u.Host == "" {
				errs = append(errs, fmt.Errorf("bucket name missing from %q", conf.Bucket))
			}
			if conf.Project == "" {
				errs = append(errs, errors.New("project is required for gs buckets"))
			}
		case s3Scheme:
			if u.Host == "" {
				errs = append(errs, fmt.Errorf("bucket name missing from %q", conf.Bucket))
			}
		case fileScheme:
			if u.Path == "" {
				errs = append(errs, fmt.Errorf("directory missing from %q", conf.Bucket))
			}
		case memScheme:
		default:
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnsupportedBucketScheme, u.Scheme))
		}
	}

	if conf.CredentialsFile != "" {
		if finfo, err := os.Stat(conf.CredentialsFile); err != nil {
			errs = append(errs, fmt.Errorf("credentials file not found: %w", err))
		} else if finfo.IsDir() {
			errs = append(errs, fmt.Errorf("credentials file is a directory: %s", conf.CredentialsFile))
		}
	}

	if conf.SpoolMaxSize < 0 {
		errs = append(errs, fmt.Errorf("spoolMaxSize must not be negative: %d", conf.SpoolMaxSize))
	}

	if conf.SignedURLExpiry <= 0 {
		errs = append(errs, fmt.Errorf("signedURLExpiry must be positive: %s", conf.SignedURLExpiry))
	}

	if conf.RequestTimeout != nil && *conf.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("requestTimeout must be positive: %s", *conf.RequestTimeout))
	}

	if len(errs) > 0 {
		return multierr.Combine(errs...)
	}

	return nil
}
