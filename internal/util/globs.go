// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"github.com/cerbos/bucketfs/internal/cache"
)

var globs = &globCache{cache: cache.New[string, glob.Glob]("glob", 1024)} //nolint:mnd

type globCache struct {
	cache *cache.Cache[string, glob.Glob]
}

func (gc *globCache) getOrCompile(globExpr string) (glob.Glob, error) {
	if g, ok := gc.cache.Get(globExpr); ok {
		return g, nil
	}

	g, err := glob.Compile(globExpr, '/')
	if err != nil {
		return nil, err
	}

	gc.cache.Set(globExpr, g)
	return g, nil
}

// ValidateGlob reports whether the expression can be compiled.
func ValidateGlob(globExpr string) error {
	_, err := globs.getOrCompile(globExpr)
	return err
}

// MatchesGlob returns true if the given glob expression matches the given string.
func MatchesGlob(globExpr, val string) bool {
	g, err := globs.getOrCompile(globExpr)
	if err != nil {
		zap.L().Warn("Invalid glob expression", zap.String("glob", globExpr), zap.Error(err))
		return false
	}

	return g.Match(val)
}

// FilterGlob returns the values that match the given glob.
func FilterGlob(globExpr string, values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if MatchesGlob(globExpr, v) {
			out = append(out, v)
		}
	}

	return out
}
