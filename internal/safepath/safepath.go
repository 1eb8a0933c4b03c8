// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

// Package safepath resolves caller supplied names against a configured root so that the
// resulting object key can never escape the root.
package safepath

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const Separator = "/"

var (
	// ErrSuspiciousPath is the cause of every TraversalError.
	ErrSuspiciousPath = errors.New("suspicious path")
	ErrInvalidName    = errors.New("invalid name")

	multiSep = regexp.MustCompile(`//+`)
)

// TraversalError is returned when a resolved path is located outside of its base.
type TraversalError struct {
	Path string
	Base string
}

func (te *TraversalError) Error() string {
	return fmt.Sprintf("the joined path (%s) is located outside of the base path component (%s)", te.Path, te.Base)
}

func (te *TraversalError) Unwrap() error {
	return ErrSuspiciousPath
}

// Base normalizes root to have exactly one leading and one trailing separator.
// An empty root becomes the single separator and inner runs of separators are collapsed.
func Base(root string) string {
	return multiSep.ReplaceAllString(Separator+strings.Trim(root, Separator)+Separator, Separator)
}

// Join resolves name against base using relative URL resolution and collapses repeated separators.
// Leading separators of name are ignored but trailing ones are kept, so "dir/" resolves to a listing prefix.
func Join(base, name string) (string, error) {
	if err := validate(base); err != nil {
		return "", err
	}

	if err := validate(name); err != nil {
		return "", err
	}

	base = Base(base)
	name = strings.TrimLeft(name, Separator)

	// Building the references directly keeps characters such as ':', '?' and '%' literal.
	baseURL := &url.URL{Path: base}
	resolved := baseURL.ResolveReference(&url.URL{Path: name}).Path
	resolved = multiSep.ReplaceAllString(resolved, Separator)

	if !strings.HasPrefix(resolved, base) {
		return "", &TraversalError{Path: resolved, Base: base}
	}

	return resolved, nil
}

func validate(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidName, s)
	}

	if strings.ContainsRune(s, 0) {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidName, s)
	}

	return nil
}
