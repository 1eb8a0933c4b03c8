// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

// Package config reads layered YAML configuration. Values are looked up by dotted key and
// decoded into sections that may supply their own defaults and validation.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/config"
)

//go:embed .bucketfs.yaml.gotmpl
var defaultConfTmpl string

type Section interface {
	Key() string
}

type Defaulter interface {
	SetDefaults()
}

type Validator interface {
	Validate() error
}

// Load reads the configuration file at path and applies overrides on top of it.
// An empty path renders the built-in configuration for the current working directory.
func Load(path string, overrides map[string]any) (*Wrapper, error) {
	if path == "" {
		rendered, err := renderDefault()
		if err != nil {
			return nil, err
		}

		return newWrapper(config.Source(rendered), config.Static(overrides))
	}

	finfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if finfo.IsDir() {
		return nil, fmt.Errorf("config file path is a directory: %s", path)
	}

	return newWrapper(config.File(path), config.Static(overrides))
}

// FromReader reads YAML configuration from r and applies overrides on top of it.
func FromReader(r io.Reader, overrides map[string]any) (*Wrapper, error) {
	return newWrapper(config.Source(r), config.Static(overrides))
}

// FromMap builds configuration from nested maps. Keys are not split on dots.
func FromMap(m map[string]any) (*Wrapper, error) {
	return newWrapper(config.Static(m))
}

func renderDefault() (io.Reader, error) {
	tmpl, err := template.New("conf").Parse(defaultConfTmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse default config template: %w", err)
	}

	currDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine current working directory: %w", err)
	}

	rendered := new(bytes.Buffer)
	if err := tmpl.Execute(rendered, map[string]string{"directory": filepath.ToSlash(filepath.Join(currDir, "bucket"))}); err != nil {
		return nil, fmt.Errorf("failed to render default config template: %w", err)
	}

	return rendered, nil
}

func newWrapper(sources ...config.YAMLOption) (*Wrapper, error) {
	opts := append(sources, config.Expand(os.LookupEnv)) //nolint:gocritic
	provider, err := config.NewYAML(opts...)
	if err != nil {
		if strings.Contains(err.Error(), "couldn't expand environment") {
			return nil, fmt.Errorf("unknown environment variable in configuration. Values containing '$' are expanded from the environment; use '$$' for a literal '$': [%w]", err)
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &Wrapper{provider: provider}, nil
}

// Wrapper holds a loaded configuration. It is immutable and safe for concurrent use.
type Wrapper struct {
	provider config.Provider
}

// Get decodes the value at key into out. Defaults are applied before decoding and validation runs after.
func (w *Wrapper) Get(key string, out any) error {
	if d, ok := out.(Defaulter); ok {
		d.SetDefaults()
	}

	if err := w.provider.Get(key).Populate(out); err != nil {
		return err
	}

	if v, ok := out.(Validator); ok {
		return v.Validate()
	}

	return nil
}

func (w *Wrapper) GetSection(section Section) error {
	return w.Get(section.Key(), section)
}
