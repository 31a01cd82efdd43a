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

package bootstrap

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenvExists(t *testing.T) {
	projectDir := t.TempDir()
	v := NewVenv(projectDir, DefaultEnvDir)
	assert.False(t, v.Exists())

	require.NoError(t, os.Mkdir(v.Root, 0755))
	assert.True(t, v.Exists())

	// a file with the environment name does not count
	other := NewVenv(projectDir, "venv-file")
	require.NoError(t, os.WriteFile(other.Root, []byte("not a dir"), 0644))
	assert.False(t, other.Exists())
}

func TestVenvLayout(t *testing.T) {
	v := NewVenv("/proj", ".venv")
	if runtime.GOOS == "windows" {
		assert.Equal(t, filepath.Join("/proj", ".venv", "Scripts"), v.BinDir())
		assert.Equal(t, filepath.Join("/proj", ".venv", "Scripts", "python.exe"), v.Python())
	} else {
		assert.Equal(t, filepath.Join("/proj", ".venv", "bin"), v.BinDir())
		assert.Equal(t, filepath.Join("/proj", ".venv", "bin", "python"), v.Python())
	}
}

func TestVenvEnviron(t *testing.T) {
	v := NewVenv("/proj", ".venv")
	sep := string(os.PathListSeparator)
	base := []string{
		"PATH=/usr/bin" + sep + "/bin",
		"PYTHONHOME=/usr",
		"HOME=/home/u",
		"VIRTUAL_ENV=/somewhere/else",
	}

	env := v.Environ(base)

	var path, virtualEnv string
	for _, kv := range env {
		key, val, _ := strings.Cut(kv, "=")
		switch key {
		case "PATH":
			path = val
		case "VIRTUAL_ENV":
			virtualEnv = val
		case "PYTHONHOME":
			t.Errorf("PYTHONHOME should have been removed, got %q", kv)
		}
	}
	assert.Equal(t, v.BinDir()+sep+"/usr/bin"+sep+"/bin", path)
	assert.Equal(t, v.Root, virtualEnv)
	assert.Contains(t, env, "HOME=/home/u")

	// base must not be mutated
	assert.Equal(t, "PYTHONHOME=/usr", base[1])

	// activating an already-activated environment is a no-op
	assert.Equal(t, env, v.Environ(env))
}

func TestVenvEnvironWithoutPath(t *testing.T) {
	v := NewVenv("/proj", ".venv")
	env := v.Environ([]string{"HOME=/home/u"})
	assert.Contains(t, env, "PATH="+v.BinDir())
	assert.Contains(t, env, "VIRTUAL_ENV="+v.Root)
}
