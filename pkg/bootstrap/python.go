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
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// PythonEnvVar overrides interpreter resolution without touching flags or
// config files.
const PythonEnvVar = "PYLAUNCH_PYTHON"

var (
	pythonCandidates = []string{"python3", "python"}
	versionRegexp    = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)
)

// ResolveInterpreter finds the base interpreter used to create new
// environments. An explicit path wins, then PYLAUNCH_PYTHON, then the
// first of python3/python found on PATH. A per-machine absolute path is
// never assumed.
func ResolveInterpreter(explicit string) (string, error) {
	for _, candidate := range []string{explicit, os.Getenv(PythonEnvVar)} {
		if candidate == "" {
			continue
		}
		resolved, err := exec.LookPath(candidate)
		if err != nil {
			return "", errors.Wrapf(err, "interpreter %s not usable", candidate)
		}
		return resolved, nil
	}

	for _, name := range pythonCandidates {
		if resolved, err := exec.LookPath(name); err == nil {
			return resolved, nil
		}
	}
	return "", fmt.Errorf(
		"no python interpreter found on PATH: install Python 3 or set %s",
		PythonEnvVar,
	)
}

// InterpreterVersion asks the interpreter for its version. Older pythons
// print it on stderr, so both streams are read.
func InterpreterVersion(ctx context.Context, python string) (*semver.Version, error) {
	out, err := exec.CommandContext(ctx, python, "--version").CombinedOutput()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to run %s --version", python)
	}
	return parseVersionOutput(string(out))
}

func parseVersionOutput(out string) (*semver.Version, error) {
	match := versionRegexp.FindString(strings.TrimSpace(out))
	if match == "" {
		return nil, fmt.Errorf("unrecognized interpreter version output %q", strings.TrimSpace(out))
	}
	v, err := semver.NewVersion(match)
	if err != nil {
		return nil, fmt.Errorf("unparseable interpreter version %q: %w", match, err)
	}
	return v, nil
}

// CheckMinVersion enforces the configured version floor.
func CheckMinVersion(v *semver.Version, minVersion string) error {
	c, err := semver.NewConstraint(">= " + minVersion)
	if err != nil {
		return fmt.Errorf("invalid minimum python version %q: %w", minVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("python %s is too old, need at least %s", v, minVersion)
	}
	return nil
}
