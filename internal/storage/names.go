// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gocloud.dev/blob"
)

const (
	maxNameAttempts  = 100
	suffixLen        = 7
	timeCreatedField = "timecreated"
)

// availableName returns key if it is free. Otherwise it appends a random suffix to the file stem until a free key is found.
func (s *Store) availableName(ctx context.Context, key string) (string, error) {
	dir, file := path.Split(key)
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)

	candidate := key
	for i := 0; i < maxNameAttempts; i++ {
		exists, err := s.bucket.Exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check whether %q exists: %w", candidate, err)
		}

		if !exists {
			return candidate, nil
		}

		candidate = dir + stem + "_" + randomSuffix() + ext
	}

	return "", fmt.Errorf("%w for %q after %d attempts", ErrNoAvailableName, key, maxNameAttempts)
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
}

// creationTime returns the creation time recorded for an object in UTC.
// Drivers that do not populate CreateTime may still expose it as object metadata.
func creationTime(attrs *blob.Attributes) (time.Time, bool) {
	if attrs == nil {
		return time.Time{}, false
	}

	if !attrs.CreateTime.IsZero() {
		return attrs.CreateTime.UTC(), true
	}

	raw, ok := attrs.Metadata[timeCreatedField]
	if !ok {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}

	return t.UTC(), true
}
