// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package safepath_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cerbos/bucketfs/internal/safepath"
)

func TestBase(t *testing.T) {
	testCases := []struct {
		root string
		want string
	}{
		{root: "", want: "/"},
		{root: "/", want: "/"},
		{root: "///", want: "/"},
		{root: "test", want: "/test/"},
		{root: "test///", want: "/test/"},
		{root: "////test", want: "/test/"},
		{root: "media/avatars", want: "/media/avatars/"},
		{root: "media//avatars", want: "/media/avatars/"},
	}

	for _, tc := range testCases {
		t.Run(tc.root, func(t *testing.T) {
			require.Equal(t, tc.want, safepath.Base(tc.root))
		})
	}
}

func TestJoin(t *testing.T) {
	testCases := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "simple", base: "test", path: "index.html", want: "/test/index.html"},
		{name: "trailing_slash_on_base", base: "test/", path: "index.html", want: "/test/index.html"},
		{name: "many_trailing_slashes_on_base", base: "test///", path: "index.html", want: "/test/index.html"},
		{name: "leading_slash_on_base", base: "/test", path: "index.html", want: "/test/index.html"},
		{name: "many_leading_slashes_on_base", base: "////test", path: "index.html", want: "/test/index.html"},
		{name: "dots_resolved", base: "test", path: "/test/../index.html", want: "/test/index.html"},
		{name: "multiple_slashes_in_path", base: "test", path: "/test//abc////index.html", want: "/test/test/abc/index.html"},
		{name: "multiple_slashes_everywhere", base: "test///", path: "///test//abc////index.html", want: "/test/test/abc/index.html"},
		{name: "nested", base: "/media/", path: "avatars/1.png", want: "/media/avatars/1.png"},
		{name: "empty_base_collapses_slashes", base: "", path: "a//b", want: "/a/b"},
		{name: "empty_path_is_base", base: "media", path: "", want: "/media/"},
		{name: "trailing_slash_kept", base: "media", path: "photos/", want: "/media/photos/"},
		{name: "single_dot", base: "media", path: "./photos/./a.jpg", want: "/media/photos/a.jpg"},
		{name: "dot_dot_within_base", base: "media", path: "photos/../a.jpg", want: "/media/a.jpg"},
		{name: "unicode", base: "test", path: "brathähnchen.html", want: "/test/brathähnchen.html"},
		{name: "colon_is_literal", base: "test", path: "a:b.txt", want: "/test/a:b.txt"},
		{name: "percent_is_literal", base: "test", path: "a%2Fb.txt", want: "/test/a%2Fb.txt"},
		{name: "query_chars_are_literal", base: "test", path: "a?b#c", want: "/test/a?b#c"},
		{name: "root_base_absorbs_dot_dot", base: "", path: "../x", want: "/x"},
		{name: "drive_letter_is_literal", base: "media", path: "c:foo", want: "/media/c:foo"},
		{name: "scheme_is_literal", base: "media", path: "http://evil/x", want: "/media/http:/evil/x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			have, err := safepath.Join(tc.base, tc.path)
			require.NoError(t, err)
			require.Equal(t, tc.want, have)
		})
	}
}

func TestJoinRejectsTraversal(t *testing.T) {
	testCases := []struct {
		base string
		path string
	}{
		{base: "test", path: "../index.html"},
		{base: "test", path: "/../index.html"},
		{base: "/media/", path: "../../etc/passwd"},
		{base: "media", path: "photos/../../etc"},
		{base: "media", path: "./../../etc/passwd"},
		{base: "media", path: ".."},
		{base: "a/b", path: "../c"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			_, err := safepath.Join(tc.base, tc.path)
			require.Error(t, err)
			require.ErrorIs(t, err, safepath.ErrSuspiciousPath)

			var te *safepath.TraversalError
			require.True(t, errors.As(err, &te))
			require.Equal(t, safepath.Base(tc.base), te.Base)
			require.Contains(t, err.Error(), te.Path)
			require.Contains(t, err.Error(), te.Base)
		})
	}
}

func TestJoinRejectsInvalidNames(t *testing.T) {
	_, err := safepath.Join("media", "file\x00.txt")
	require.ErrorIs(t, err, safepath.ErrInvalidName)

	_, err = safepath.Join("media", string([]byte{0xff, 0xfe}))
	require.ErrorIs(t, err, safepath.ErrInvalidName)

	_, err = safepath.Join("med\x00ia", "file.txt")
	require.ErrorIs(t, err, safepath.ErrInvalidName)
}

func TestJoinProperties(t *testing.T) {
	roots := []string{"", "/", "media", "/media/", "a/b/c", "x//y"}
	names := []string{"f", "d/f", "d//f/", "/lead", "deep/er/still/file.txt", "trail/"}

	for _, root := range roots {
		for _, name := range names {
			have, err := safepath.Join(root, name)
			require.NoError(t, err, "root=%q name=%q", root, name)

			require.True(t, strings.HasPrefix(have, safepath.Base(root)), "root=%q name=%q have=%q", root, name, have)
			require.NotContains(t, have, "//", "root=%q name=%q have=%q", root, name, have)

			again, err := safepath.Join(root, name)
			require.NoError(t, err)
			require.Equal(t, have, again)
		}
	}
}
