// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"errors"
	"fmt"

	"gocloud.dev/gcerrors"
)

var (
	ErrNotFound                = errors.New("object not found")
	ErrNoAvailableName         = errors.New("no available name")
	ErrUnsupportedBucketScheme = errors.New("currently only \"gs\", \"s3\", \"file\" and \"mem\" bucket URL schemes are supported")
)

// UploadError is returned when the object store rejects an upload. The buffered content is kept.
type UploadError struct {
	Err error
	Key string
}

func (ue *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %q: %v", ue.Key, ue.Err)
}

func (ue *UploadError) Unwrap() error {
	return ue.Err
}

// DownloadError is returned when the content of an object could not be fetched.
type DownloadError struct {
	Err error
	Key string
}

func (de *DownloadError) Error() string {
	return fmt.Sprintf("failed to download %q: %v", de.Key, de.Err)
}

func (de *DownloadError) Unwrap() error {
	return de.Err
}

func isNotFound(err error) bool {
	return gcerrors.Code(err) == gcerrors.NotFound
}
