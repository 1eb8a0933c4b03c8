// Copyright 2021-2026 Zenauth Ltd.
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cerbos/bucketfs/internal/config"
)

var errTestValidate = errors.New("validation error")

type Store struct {
	Credentials *Credentials `yaml:"credentials"`
	Bucket      string       `yaml:"bucket"`
	Subdir      string       `yaml:"subdir"`
}

func (s *Store) Key() string {
	return "storage"
}

func (s *Store) SetDefaults() {
	s.Bucket = "mem://"
	s.Subdir = "default"
}

func (s *Store) Validate() error {
	if s.Bucket == "xxx" {
		return errTestValidate
	}

	return nil
}

type Credentials struct {
	File    string `yaml:"file"`
	Project string `yaml:"project"`
}

func TestLoad(t *testing.T) {
	wrapper, err := config.Load(filepath.Join("testdata", "test_load.yaml"), nil)
	require.NoError(t, err)

	t.Run("get_single_value", func(t *testing.T) {
		var haveProject string
		require.NoError(t, wrapper.Get("storage.credentials.project", &haveProject))
		require.Equal(t, "my-project", haveProject)
	})

	t.Run("get_tree_with_env_var_interpolation", func(t *testing.T) {
		wantStore := Store{
			Bucket: "gs://my-bucket",
			Subdir: fmt.Sprintf("%s/media", os.Getenv("HOME")),
			Credentials: &Credentials{
				File:    "sa.json",
				Project: "my-project",
			},
		}

		var haveStore1 Store
		require.NoError(t, wrapper.Get("storage", &haveStore1))
		require.Equal(t, wantStore, haveStore1)

		var haveStore2 Store
		require.NoError(t, wrapper.GetSection(&haveStore2))
		require.Equal(t, wantStore, haveStore2)
	})
}

func TestOverride(t *testing.T) {
	overrides := map[string]any{
		"storage": map[string]any{
			"bucket": "mem://",
			"credentials": map[string]any{
				"project": "other-project",
			},
		},
	}

	wrapper, err := config.Load(filepath.Join("testdata", "test_load.yaml"), overrides)
	require.NoError(t, err)

	var haveStore Store
	require.NoError(t, wrapper.GetSection(&haveStore))
	require.Equal(t, "mem://", haveStore.Bucket)
	require.Equal(t, "other-project", haveStore.Credentials.Project)
	require.Equal(t, "sa.json", haveStore.Credentials.File)
}

func TestDefaults(t *testing.T) {
	wrapper, err := config.Load(filepath.Join("testdata", "test_defaults.yaml"), nil)
	require.NoError(t, err)

	wantStore := Store{
		Bucket: "mem://",
		Subdir: "media",
	}

	var haveStore Store
	require.NoError(t, wrapper.Get("storage", &haveStore))
	require.Equal(t, wantStore, haveStore)
}

func TestValidate(t *testing.T) {
	wrapper, err := config.Load(filepath.Join("testdata", "test_validate.yaml"), nil)
	require.NoError(t, err)

	var haveStore Store
	require.ErrorIs(t, wrapper.Get("storage", &haveStore), errTestValidate)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := config.Load(filepath.Join("testdata", "does_not_exist.yaml"), nil)
		require.Error(t, err)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := config.Load("testdata", nil)
		require.Error(t, err)
	})

	t.Run("unknown_env_var", func(t *testing.T) {
		_, err := config.FromReader(strings.NewReader("storage:\n  bucket: ${BUCKETFS_UNDEFINED_ENV_VAR_FOR_TEST}\n"), nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown environment variable")
	})
}

func TestDefaultConfig(t *testing.T) {
	wrapper, err := config.Load("", nil)
	require.NoError(t, err)

	var bucket string
	require.NoError(t, wrapper.Get("storage.bucket", &bucket))
	require.True(t, strings.HasPrefix(bucket, "file://"), bucket)
	require.True(t, strings.HasSuffix(bucket, "/bucket"), bucket)
}

func TestWrappersAreIndependent(t *testing.T) {
	first, err := config.FromMap(map[string]any{"storage": map[string]any{"bucket": "mem://"}})
	require.NoError(t, err)

	second, err := config.FromMap(map[string]any{"storage": map[string]any{"bucket": "gs://other"}})
	require.NoError(t, err)

	var fromFirst, fromSecond string
	require.NoError(t, first.Get("storage.bucket", &fromFirst))
	require.NoError(t, second.Get("storage.bucket", &fromSecond))
	require.Equal(t, "mem://", fromFirst)
	require.Equal(t, "gs://other", fromSecond)
}

func TestStrictParsing(t *testing.T) {
	testCases := []struct {
		name    string
		conf    map[string]any
		wantErr bool
	}{
		{
			name: "valid config",
			conf: map[string]any{
				"storage": map[string]any{
					"bucket": "mem://",
					"credentials": map[string]any{
						"project": "p",
					},
				},
			},
		},
		{
			name: "undeclared field",
			conf: map[string]any{
				"storage": map[string]any{
					"bucket": "mem://",
					"wibble": "wobble",
				},
			},
			wantErr: true,
		},
		{
			name: "wrong case for field",
			conf: map[string]any{
				"storage": map[string]any{
					"Bucket": "mem://",
				},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapper, err := config.FromMap(tc.conf)
			require.NoError(t, err)

			var haveStore Store
			err = wrapper.GetSection(&haveStore)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
