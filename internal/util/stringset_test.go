// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package util_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cerbos/bucketfs/internal/util"
)

func TestStringSet(t *testing.T) {
	testCases := []struct {
		input    []string
		expected map[string]struct{}
		sorted   []string
	}{
		{
			input:    input(t),
			expected: expected(t),
			sorted:   []string{},
		},
		{
			input:    input(t, "y", "x", "y"),
			expected: expected(t, "x", "y"),
			sorted:   []string{"x", "y"},
		},
		{
			input:    input(t, "b.jpg", "a.jpg", "B.jpg"),
			expected: expected(t, "a.jpg", "b.jpg", "B.jpg"),
			sorted:   []string{"B.jpg", "a.jpg", "b.jpg"},
		},
	}

	for idx, testCase := range testCases {
		t.Run(fmt.Sprint(idx), func(t *testing.T) {
			ss := util.ToStringSet(testCase.input)
			var m map[string]struct{} = ss
			require.Equal(t, testCase.expected, m)
			require.Equal(t, testCase.sorted, ss.Sorted())

			for _, in := range testCase.input {
				require.True(t, ss.Contains(in))
			}
			require.False(t, ss.Contains("missing"))
		})
	}
}

func TestStringSetAdd(t *testing.T) {
	ss := make(util.StringSet)
	ss.Add("sub")
	ss.Add("sub")
	ss.Add("a")
	require.Equal(t, []string{"a", "sub"}, ss.Sorted())
}

func input(t *testing.T, inputs ...string) []string {
	t.Helper()

	return inputs
}

func expected(t *testing.T, expectedKeys ...string) map[string]struct{} {
	t.Helper()

	m := make(map[string]struct{})
	for _, e := range expectedKeys {
		m[e] = struct{}{}
	}

	return m
}
