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
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/pylaunch/pylaunch/pkg/logger"
)

// Keep this many trailing output lines for error reporting.
const outputTailLen = 10

// Installer populates a virtual environment with the packages named in
// the manifest, preferring uv when the project uses it and uv is on PATH.
type Installer struct {
	Venv        *Venv
	ProjectType ProjectType
	Verbose     bool
	Stdout      io.Writer
	Stderr      io.Writer
}

// UpgradePip brings the environment's package installer to its latest
// version before anything else is installed into it.
func (i *Installer) UpgradePip(ctx context.Context) error {
	err := i.run(ctx, i.Venv.Python(), "-m", "pip", "install", "--upgrade", "pip")
	return errors.Wrap(err, "failed to upgrade pip")
}

// InstallManifest installs every package listed in the manifest file.
func (i *Installer) InstallManifest(ctx context.Context, manifestPath string) error {
	var err error
	if i.ProjectType == ProjectTypePythonUV && CommandExists("uv") {
		err = i.run(ctx, "uv", "pip", "install", "-r", manifestPath, "--python", i.Venv.Python())
	} else {
		err = i.run(ctx, i.Venv.Python(), "-m", "pip", "install", "-r", manifestPath)
	}
	return errors.Wrapf(err, "failed to install %s", manifestPath)
}

// run executes one installer command, scanning stdout and stderr line by
// line. In verbose mode lines are forwarded as they arrive; otherwise
// they only surface in debug logs and in the error tail on failure.
func (i *Installer) run(ctx context.Context, name string, args ...string) error {
	logger.Debugw("running installer command", "cmd", name, "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	var tail []string
	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()
			if i.Verbose {
				fmt.Fprintln(i.Stdout, line)
			} else {
				logger.Debugw("installer", "line", line)
			}
		}
		return scanner.Err()
	})
	eg.Go(func() error {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := scanner.Text()
			tail = append(tail, line)
			if len(tail) > outputTailLen {
				tail = tail[1:]
			}
			if i.Verbose {
				fmt.Fprintln(i.Stderr, line)
			}
		}
		return scanner.Err()
	})

	scanErr := eg.Wait()
	if err := cmd.Wait(); err != nil {
		logger.Errorw("installer command failed", err, "cmd", name)
		if len(tail) > 0 && !i.Verbose {
			fmt.Fprintln(i.Stderr, strings.Join(tail, "\n"))
		}
		return err
	}
	return scanErr
}
