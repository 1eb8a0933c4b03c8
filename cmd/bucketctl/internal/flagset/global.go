// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package flagset

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"helm.sh/helm/v3/pkg/strvals"
)

type LogLevelFlag string

func (ll *LogLevelFlag) Decode(ctx *kong.DecodeContext) error {
	var loglevel LogLevelFlag
	if err := ctx.Scan.PopValueInto("log-level", &loglevel); err != nil {
		return err
	}

	*ll = LogLevelFlag(strings.ToLower(string(loglevel)))
	return nil
}

type Globals struct {
	Config   string       `help:"Path to config file" optional:"" placeholder:".bucketfs.yaml" env:"BUCKETFS_CONFIG"`
	LogLevel LogLevelFlag `help:"Log level (${enum})" default:"warn" enum:"debug,info,warn,error"`
	Set      []string     `help:"Config overrides" placeholder:"storage.subdir=media"`
}

// ConfigOverrides parses the --set flags into a nested map.
func (g *Globals) ConfigOverrides() (map[string]any, error) {
	confOverrides := map[string]any{}
	for _, override := range g.Set {
		if err := strvals.ParseInto(override, confOverrides); err != nil {
			return nil, fmt.Errorf("failed to parse config override [%s]: %w", override, err)
		}
	}

	return confOverrides, nil
}
