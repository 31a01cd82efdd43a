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
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"

	"github.com/pylaunch/pylaunch/pkg/logger"
	"github.com/pylaunch/pylaunch/pkg/util"
)

const DotEnvFile = ".env"

// Launcher runs the entry point with the environment's interpreter. The
// activated environment is passed to the child process directly; the
// parent process environment is never mutated.
type Launcher struct {
	Venv       *Venv
	ProjectDir string
	Entrypoint string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run launches the entry point with no arguments and waits for it to
// exit, returning its exit code. A non-zero exit is a result, not an
// error.
func (l *Launcher) Run(ctx context.Context) (int, error) {
	if !util.FileExists(os.DirFS(l.ProjectDir), l.Entrypoint) {
		return -1, fmt.Errorf("entry point %s not found", filepath.Join(l.ProjectDir, l.Entrypoint))
	}

	env := mergeDotEnv(l.Venv.Environ(os.Environ()), l.dotEnv())

	cmd := exec.CommandContext(ctx, l.Venv.Python(), l.Entrypoint)
	cmd.Dir = l.ProjectDir
	cmd.Env = env
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	logger.Debugw("launching entry point", "python", l.Venv.Python(), "entrypoint", l.Entrypoint)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, pkgerrors.Wrapf(err, "failed to launch %s", l.Entrypoint)
	}
	return 0, nil
}

// dotEnv reads the project's .env file for the child process. The entry
// point would load it itself anyway; merging it here keeps behavior
// consistent when the entry point relies on inherited variables.
func (l *Launcher) dotEnv() map[string]string {
	path := filepath.Join(l.ProjectDir, DotEnvFile)
	if !util.FileExists(os.DirFS(l.ProjectDir), DotEnvFile) {
		return nil
	}
	envMap, err := godotenv.Read(path)
	if err != nil {
		logger.Debugw("failed to read .env file", "path", path, "error", err)
		return nil
	}
	return envMap
}

// mergeDotEnv appends .env entries whose keys are not already present,
// so activation variables like PATH and VIRTUAL_ENV keep a single
// authoritative value in the child environment.
func mergeDotEnv(env []string, extra map[string]string) []string {
	for key, value := range extra {
		present := false
		for _, kv := range env {
			name, _, _ := strings.Cut(kv, "=")
			if envKeyIs(name, key) {
				present = true
				break
			}
		}
		if !present {
			env = append(env, key+"="+value)
		}
	}
	return env
}
