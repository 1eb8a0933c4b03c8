// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package util

import "sort"

func ToStringSet(values []string) StringSet {
	ss := make(StringSet)
	for _, v := range values {
		ss[v] = struct{}{}
	}

	return ss
}

type StringSet map[string]struct{}

func (ss StringSet) Contains(value string) bool {
	_, exists := ss[value]
	return exists
}

func (ss StringSet) Add(value string) {
	ss[value] = struct{}{}
}

// Sorted returns the members in lexicographic order.
func (ss StringSet) Sorted() []string {
	out := make([]string, 0, len(ss))
	for v := range ss {
		out = append(out, v)
	}

	sort.Strings(out)
	return out
}
