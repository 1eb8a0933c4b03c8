// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/google/uuid"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/gcsblob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/blob/s3blob"
	"gocloud.dev/gcp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/cerbos/bucketfs/internal/safepath"
)

const (
	gsScheme   = "gs"
	s3Scheme   = "s3"
	fileScheme = "file"
	memScheme  = "mem"

	gcsScope = "https://www.googleapis.com/auth/devstorage.read_write"
)

// Bucket is the subset of *blob.Bucket the store relies on.
type Bucket interface {
	Attributes(ctx context.Context, key string) (*blob.Attributes, error)
	Exists(ctx context.Context, key string) (bool, error)
	Download(ctx context.Context, key string, w io.Writer, opts *blob.ReaderOptions) error
	Upload(ctx context.Context, key string, r io.Reader, opts *blob.WriterOptions) error
	Delete(ctx context.Context, key string) error
	ListPage(ctx context.Context, pageToken []byte, pageSize int, opts *blob.ListOptions) ([]*blob.ListObject, []byte, error)
	SignedURL(ctx context.Context, key string, opts *blob.SignedURLOptions) (string, error)
	Close() error
}

var (
	_ Bucket = (*blob.Bucket)(nil)
	_ Bucket = localBucket{}
)

// OpenBucket opens the bucket named by conf.Bucket.
func OpenBucket(ctx context.Context, conf *Conf) (Bucket, error) {
	u, err := url.Parse(conf.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bucket URL %q: %w", conf.Bucket, err)
	}

	switch u.Scheme {
	case gsScheme:
		return openGSBucket(ctx, conf, u)
	case s3Scheme:
		return openS3Bucket(ctx, conf, u)
	case fileScheme:
		return openFileBucket(u)
	case memScheme:
		return memblob.OpenBucket(nil), nil
	default:
		return nil, ErrUnsupportedBucketScheme
	}
}

func openGSBucket(ctx context.Context, conf *Conf, bucketURL *url.URL) (*blob.Bucket, error) {
	var ts oauth2.TokenSource
	var opts gcsblob.Options
	if conf.CredentialsFile == "" {
		creds, err := gcp.DefaultCredentials(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get default GCP credentials: %w", err)
		}
		ts = creds.TokenSource
	} else {
		jsonKey, err := os.ReadFile(conf.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file %q: %w", conf.CredentialsFile, err)
		}

		creds, err := google.CredentialsFromJSON(ctx, jsonKey, gcsScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials file %q: %w", conf.CredentialsFile, err)
		}
		ts = creds.TokenSource

		// Only service account keys carry a signing identity.
		if jwtConf, err := google.JWTConfigFromJSON(jsonKey); err == nil {
			opts.GoogleAccessID = jwtConf.Email
			opts.PrivateKey = jwtConf.PrivateKey
		}
	}

	client, err := gcp.NewHTTPClient(gcp.DefaultTransport(), ts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP HTTP client: %w", err)
	}
	if conf.RequestTimeout != nil {
		client.Timeout = *conf.RequestTimeout
	}

	opener := gcsblob.URLOpener{Client: client, Options: opts}
	return opener.OpenBucketURL(ctx, bucketURL)
}

func openS3Bucket(ctx context.Context, conf *Conf, bucketURL *url.URL) (*blob.Bucket, error) {
	client := &http.Client{}
	if conf.RequestTimeout != nil {
		client.Timeout = *conf.RequestTimeout
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config: aws.Config{HTTPClient: client},
		// Force enable Shared Config support
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}
	opener := s3blob.URLOpener{ConfigProvider: sess}
	return opener.OpenBucketURL(ctx, bucketURL)
}

func openFileBucket(bucketURL *url.URL) (Bucket, error) {
	dir := filepath.FromSlash(bucketURL.Path)
	if err := os.MkdirAll(dir, 0o744); err != nil { //nolint:gomnd
		return nil, fmt.Errorf("failed to create bucket directory %q: %w", dir, err)
	}

	signer := fileblob.NewURLSignerHMAC(&url.URL{Scheme: fileScheme, Path: bucketURL.Path}, []byte(uuid.NewString()))
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{URLSigner: signer})
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket directory %q: %w", dir, err)
	}

	return localBucket{Bucket: bucket}, nil
}

// localBucket maps rooted keys onto fileblob, which only accepts keys relative to its directory.
type localBucket struct {
	*blob.Bucket
}

func toLocal(key string) string {
	return strings.TrimLeft(key, safepath.Separator)
}

func (lb localBucket) Attributes(ctx context.Context, key string) (*blob.Attributes, error) {
	return lb.Bucket.Attributes(ctx, toLocal(key))
}

func (lb localBucket) Exists(ctx context.Context, key string) (bool, error) {
	return lb.Bucket.Exists(ctx, toLocal(key))
}

func (lb localBucket) Download(ctx context.Context, key string, w io.Writer, opts *blob.ReaderOptions) error {
	return lb.Bucket.Download(ctx, toLocal(key), w, opts)
}

func (lb localBucket) Upload(ctx context.Context, key string, r io.Reader, opts *blob.WriterOptions) error {
	return lb.Bucket.Upload(ctx, toLocal(key), r, opts)
}

func (lb localBucket) Delete(ctx context.Context, key string) error {
	return lb.Bucket.Delete(ctx, toLocal(key))
}

func (lb localBucket) SignedURL(ctx context.Context, key string, opts *blob.SignedURLOptions) (string, error) {
	return lb.Bucket.SignedURL(ctx, toLocal(key), opts)
}

func (lb localBucket) ListPage(ctx context.Context, pageToken []byte, pageSize int, opts *blob.ListOptions) ([]*blob.ListObject, []byte, error) {
	localOpts := &blob.ListOptions{}
	if opts != nil {
		*localOpts = *opts
	}
	localOpts.Prefix = toLocal(localOpts.Prefix)

	objs, next, err := lb.Bucket.ListPage(ctx, pageToken, pageSize, localOpts)
	if err != nil {
		return nil, nil, err
	}

	for _, obj := range objs {
		obj.Key = safepath.Separator + obj.Key
	}

	return objs, next, nil
}
