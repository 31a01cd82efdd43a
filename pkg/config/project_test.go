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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTOMLFileMissing(t *testing.T) {
	cfg, exists, err := LoadTOMLFile(t.TempDir(), PylaunchTOMLFile)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Nil(t, cfg)
}

func TestLoadTOMLFile(t *testing.T) {
	dir := t.TempDir()
	contents := `
[env]
dir = "venv"
manifest = "requirements-dev.txt"
min_python = "3.11"

[launch]
entrypoint = "app.py"
skip_pause = true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, PylaunchTOMLFile), []byte(contents), 0644))

	cfg, exists, err := LoadTOMLFile(dir, PylaunchTOMLFile)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NotNil(t, cfg)
	require.NotNil(t, cfg.Env)
	require.NotNil(t, cfg.Launch)
	assert.Equal(t, "venv", cfg.Env.Dir)
	assert.Equal(t, "requirements-dev.txt", cfg.Env.Manifest)
	assert.Equal(t, "3.11", cfg.Env.MinPython)
	assert.Equal(t, "app.py", cfg.Launch.Entrypoint)
	assert.True(t, cfg.Launch.SkipPause)
}

func TestLoadTOMLFileRejectsAbsoluteEnvDir(t *testing.T) {
	dir := t.TempDir()
	contents := `
[env]
dir = "/opt/venvs/shared"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, PylaunchTOMLFile), []byte(contents), 0644))

	_, exists, err := LoadTOMLFile(dir, PylaunchTOMLFile)
	assert.True(t, exists)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveTOMLFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := NewPylaunchTOML()
	cfg.Env.Dir = ".venv"
	cfg.Launch.Entrypoint = "main.py"
	require.NoError(t, cfg.SaveTOMLFile(dir, PylaunchTOMLFile))

	loaded, exists, err := LoadTOMLFile(dir, PylaunchTOMLFile)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, ".venv", loaded.Env.Dir)
	assert.Equal(t, "main.py", loaded.Launch.Entrypoint)
}

func TestCLIConfigLoadOrCreate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// no file yet: empty config, nothing persisted
	cfg, err := LoadOrCreate()
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultPython)
	require.NoError(t, cfg.PersistIfNeeded())
	_, err = os.Stat(filepath.Join(home, ".pylaunch", "config.yaml"))
	assert.True(t, os.IsNotExist(err))

	// set a default interpreter and persist
	cfg.DefaultPython = "/usr/local/bin/python3.12"
	require.NoError(t, cfg.PersistIfNeeded())

	loaded, err := LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/python3.12", loaded.DefaultPython)
}
