// Copyright 2025 PyLaunch Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pylaunch/pylaunch/pkg/bootstrap"
	"github.com/pylaunch/pylaunch/pkg/config"
)

func TestApplyProjectConfig(t *testing.T) {
	opts := bootstrap.Options{Python: "/usr/bin/python3"}

	applyProjectConfig(&opts, nil)
	assert.Equal(t, "/usr/bin/python3", opts.Python, "nil config must change nothing")

	proj := &config.PylaunchTOML{
		Env: &config.EnvTOMLConfig{
			Dir:       "venv",
			MinPython: "3.11",
		},
		Launch: &config.LaunchTOMLConfig{
			Entrypoint: "app.py",
		},
	}
	applyProjectConfig(&opts, proj)

	assert.Equal(t, "venv", opts.EnvDir)
	assert.Equal(t, "3.11", opts.MinPython)
	assert.Equal(t, "app.py", opts.Entrypoint)
	assert.Equal(t, "/usr/bin/python3", opts.Python, "empty TOML fields must not clobber earlier settings")
	assert.Empty(t, opts.Manifest, "unset TOML fields leave the default resolution to the bootstrapper")
}

func TestRememberPython(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.LoadOrCreate()
	require.NoError(t, err)

	require.NoError(t, rememberPython(cfg, ""), "no explicit interpreter, nothing to remember")
	loaded, err := config.LoadOrCreate()
	require.NoError(t, err)
	assert.Empty(t, loaded.DefaultPython)

	require.NoError(t, rememberPython(cfg, "/usr/local/bin/python3.12"))
	loaded, err = config.LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/python3.12", loaded.DefaultPython, "explicit interpreter becomes the cross-project default")

	require.NoError(t, rememberPython(nil, "/usr/bin/python3"), "nil config is a no-op")
}

func TestProjectSkipsPause(t *testing.T) {
	assert.False(t, projectSkipsPause(nil))
	assert.False(t, projectSkipsPause(&config.PylaunchTOML{}))
	assert.False(t, projectSkipsPause(&config.PylaunchTOML{Launch: &config.LaunchTOMLConfig{}}))
	assert.True(t, projectSkipsPause(&config.PylaunchTOML{Launch: &config.LaunchTOMLConfig{SkipPause: true}}))
}
