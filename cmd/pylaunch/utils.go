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
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/pylaunch/pylaunch/pkg/bootstrap"
	"github.com/pylaunch/pylaunch/pkg/config"
)

var (
	projectDir   string = "."
	tomlFilename string = config.PylaunchTOMLFile
	cliConfig    *config.CLIConfig

	jsonFlag = &cli.BoolFlag{
		Name:    "json",
		Aliases: []string{"j"},
		Usage:   "Output as JSON",
	}
	silentFlag = &cli.BoolFlag{
		Name:     "silent",
		Usage:    "If set, will not prompt for confirmation",
		Required: false,
		Value:    false,
	}
	pythonFlag = &cli.StringFlag{
		Name:    "python",
		Usage:   "`PATH` to the base interpreter used when creating the environment",
		Sources: cli.EnvVars(bootstrap.PythonEnvVar),
	}

	globalFlags = []cli.Flag{
		&cli.StringFlag{
			Name:        "project-dir",
			Usage:       "`DIR` holding the manifest and entry point",
			Value:       ".",
			Destination: &projectDir,
			Required:    false,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Config `TOML` to use in the project directory",
			Value:       config.PylaunchTOMLFile,
			Destination: &tomlFilename,
			Required:    false,
		},
		&cli.BoolFlag{
			Name:     "verbose",
			Required: false,
		},
	}
)

// loadOptions assembles bootstrapper options from the fixed defaults, the
// user config, the optional project TOML, and finally the command flags,
// in increasing priority. The project TOML is returned for settings that
// live outside the bootstrapper, like the pause behavior.
func loadOptions(cmd *cli.Command) (bootstrap.Options, *config.PylaunchTOML, error) {
	opts := bootstrap.Options{
		ProjectDir: projectDir,
		Verbose:    cmd.Bool("verbose"),
	}

	conf, err := config.LoadOrCreate()
	if err != nil {
		return opts, nil, err
	}
	cliConfig = conf
	opts.Python = conf.DefaultPython
	opts.MinPython = conf.MinPython

	proj, _, err := config.LoadTOMLFile(projectDir, tomlFilename)
	if err != nil {
		return opts, nil, err
	}
	applyProjectConfig(&opts, proj)

	if python := cmd.String("python"); python != "" {
		opts.Python = python
	}

	return opts, proj, nil
}

func applyProjectConfig(opts *bootstrap.Options, proj *config.PylaunchTOML) {
	if proj == nil {
		return
	}
	if env := proj.Env; env != nil {
		if env.Dir != "" {
			opts.EnvDir = env.Dir
		}
		if env.Manifest != "" {
			opts.Manifest = env.Manifest
		}
		if env.Python != "" {
			opts.Python = env.Python
		}
		if env.MinPython != "" {
			opts.MinPython = env.MinPython
		}
	}
	if launch := proj.Launch; launch != nil {
		if launch.Entrypoint != "" {
			opts.Entrypoint = launch.Entrypoint
		}
	}
}

// rememberPython records an explicitly chosen base interpreter as the
// cross-project default. Only called once the interpreter has actually
// produced a working environment.
func rememberPython(cfg *config.CLIConfig, python string) error {
	if cfg == nil || python == "" || cfg.DefaultPython == python {
		return nil
	}
	cfg.DefaultPython = python
	return cfg.PersistIfNeeded()
}

func projectSkipsPause(proj *config.PylaunchTOML) bool {
	return proj != nil && proj.Launch != nil && proj.Launch.SkipPause
}

func stdinIsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
