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

// This package implements the environment bootstrapper: it ensures a
// project-local virtual environment exists, populates it on first run
// from the requirements manifest, and launches the project entry point
// with the environment's isolated interpreter. Every external command is
// checked and failures abort with a descriptive error.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pylaunch/pylaunch/pkg/logger"
	"github.com/pylaunch/pylaunch/pkg/util"
)

const (
	DefaultEnvDir     = ".venv"
	DefaultManifest   = "requirements.txt"
	DefaultEntrypoint = "main.py"
	DefaultMinPython  = "3.9"

	// How long the terminal stays open after the entry point exits.
	PostRunDelay = 5 * time.Second
)

type Options struct {
	// ProjectDir is the directory holding the manifest and entry point.
	ProjectDir string
	// EnvDir is the environment directory name, relative to ProjectDir.
	EnvDir string
	// Manifest is the dependency list installed on first run.
	Manifest string
	// Entrypoint is the program launched once the environment is ready.
	Entrypoint string
	// Python is an explicit base interpreter. When empty the interpreter
	// is resolved from PYLAUNCH_PYTHON, then PATH.
	Python string
	// MinPython is the lowest accepted interpreter version.
	MinPython string
	Verbose   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) withDefaults() Options {
	if o.ProjectDir == "" {
		o.ProjectDir = "."
	}
	if o.EnvDir == "" {
		o.EnvDir = DefaultEnvDir
	}
	if o.Manifest == "" {
		o.Manifest = DefaultManifest
	}
	if o.Entrypoint == "" {
		o.Entrypoint = DefaultEntrypoint
	}
	if o.MinPython == "" {
		o.MinPython = DefaultMinPython
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

type Bootstrapper struct {
	opts Options
	venv *Venv
}

func New(opts Options) *Bootstrapper {
	opts = opts.withDefaults()
	return &Bootstrapper{
		opts: opts,
		venv: NewVenv(opts.ProjectDir, opts.EnvDir),
	}
}

func (b *Bootstrapper) Venv() *Venv {
	return b.venv
}

func (b *Bootstrapper) Options() Options {
	return b.opts
}

// Ensure makes the environment directory ready for launching. An existing
// directory is trusted as fully initialized and skipped without any
// content validation. Returns whether a new environment was created.
func (b *Bootstrapper) Ensure(ctx context.Context) (bool, error) {
	if b.venv.Exists() {
		logger.Debugw("environment exists, skipping setup", "dir", b.venv.Root)
		return false, nil
	}

	manifestPath := filepath.Join(b.opts.ProjectDir, b.opts.Manifest)
	if !util.FileExists(os.DirFS(b.opts.ProjectDir), b.opts.Manifest) {
		return false, fmt.Errorf("manifest %s not found: cannot install dependencies", manifestPath)
	}

	projectType, err := DetectProjectType(os.DirFS(b.opts.ProjectDir))
	if err != nil || !projectType.IsPython() {
		// the manifest exists, so treat the project as plain pip
		logger.Debugw("project type detection inconclusive, assuming pip", "error", err)
		projectType = ProjectTypePythonPip
	}

	python, err := ResolveInterpreter(b.opts.Python)
	if err != nil {
		return false, err
	}
	version, err := InterpreterVersion(ctx, python)
	if err != nil {
		return false, err
	}
	if err := CheckMinVersion(version, b.opts.MinPython); err != nil {
		return false, err
	}
	logger.Debugw("resolved base interpreter", "python", python, "version", version.String())

	if err := b.venv.Create(ctx, python, b.opts.Stderr); err != nil {
		return false, err
	}

	installer := &Installer{
		Venv:        b.venv,
		ProjectType: projectType,
		Verbose:     b.opts.Verbose,
		Stdout:      b.opts.Stdout,
		Stderr:      b.opts.Stderr,
	}
	if err := installer.UpgradePip(ctx); err != nil {
		return false, err
	}
	if err := installer.InstallManifest(ctx, manifestPath); err != nil {
		return false, err
	}

	return true, nil
}

// Launch runs the entry point with the environment's interpreter and
// returns its exit code.
func (b *Bootstrapper) Launch(ctx context.Context) (int, error) {
	l := &Launcher{
		Venv:       b.venv,
		ProjectDir: b.opts.ProjectDir,
		Entrypoint: b.opts.Entrypoint,
		Stdin:      b.opts.Stdin,
		Stdout:     b.opts.Stdout,
		Stderr:     b.opts.Stderr,
	}
	return l.Run(ctx)
}

// Determine if `cmd` is a binary in PATH or a known alias
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return (err == nil || CommandIsAlias(cmd))
}

// Determine if `cmd` is a known alias
func CommandIsAlias(cmd string) bool {
	if runtime.GOOS == "windows" {
		return false
	}
	out, err := exec.Command("alias", cmd).Output()
	if err != nil {
		return false
	}
	output := strings.TrimSpace(string(out))
	return strings.HasPrefix(output, cmd+"=")
}
