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
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/pylaunch/pylaunch/pkg/util"
)

// Venv is a project-local virtual environment. Existence of the root
// directory alone marks it initialized.
type Venv struct {
	Root string
}

func NewVenv(projectDir, name string) *Venv {
	return &Venv{Root: filepath.Join(projectDir, name)}
}

func (v *Venv) Exists() bool {
	return util.DirExists(v.Root)
}

// BinDir is where the environment keeps its executables. The venv layout
// differs per platform: Scripts on Windows, bin everywhere else.
func (v *Venv) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(v.Root, "Scripts")
	}
	return filepath.Join(v.Root, "bin")
}

// Python is the environment's isolated interpreter.
func (v *Venv) Python() string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}
	return filepath.Join(v.BinDir(), name)
}

// Create builds the environment with the given base interpreter. The
// interpreter's own output is forwarded to errOut.
func (v *Venv) Create(ctx context.Context, basePython string, errOut io.Writer) error {
	cmd := exec.CommandContext(ctx, basePython, "-m", "venv", v.Root)
	cmd.Stderr = errOut
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "failed to create virtual environment at %s", v.Root)
	}
	return nil
}

// Environ returns base with the environment activated: VIRTUAL_ENV set,
// the bin directory prepended to PATH, and PYTHONHOME removed. The input
// slice is never mutated, so activation stays scoped to the child process
// the result is handed to. Applying it twice yields the same environment.
func (v *Venv) Environ(base []string) []string {
	env := make([]string, 0, len(base)+2)
	pathSet := false
	for _, kv := range base {
		key, val, _ := strings.Cut(kv, "=")
		switch {
		case envKeyIs(key, "PYTHONHOME"), envKeyIs(key, "VIRTUAL_ENV"):
			continue
		case envKeyIs(key, "PATH"):
			prefix := v.BinDir() + string(os.PathListSeparator)
			val = strings.TrimPrefix(val, prefix)
			env = append(env, key+"="+prefix+val)
			pathSet = true
		default:
			env = append(env, kv)
		}
	}
	if !pathSet {
		env = append(env, "PATH="+v.BinDir())
	}
	return append(env, "VIRTUAL_ENV="+v.Root)
}

// Environment variable names are case-insensitive on Windows.
func envKeyIs(key, name string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(key, name)
	}
	return key == name
}
