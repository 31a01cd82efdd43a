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
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/pylaunch/pylaunch/pkg/bootstrap"
	"github.com/pylaunch/pylaunch/pkg/util"
)

var (
	EnvCommands = []*cli.Command{
		{
			Name:   "status",
			Usage:  "Report the environment, interpreter, and project state",
			Action: envStatus,
			Flags: []cli.Flag{
				jsonFlag,
				pythonFlag,
			},
		},
		{
			Name:   "clean",
			Usage:  "Remove the virtual environment directory",
			Action: envClean,
			Flags: []cli.Flag{
				silentFlag,
			},
		},
	}
)

type envReport struct {
	ProjectDir       string `json:"project_dir"`
	EnvDir           string `json:"env_dir"`
	EnvExists        bool   `json:"env_exists"`
	ProjectType      string `json:"project_type"`
	Manifest         string `json:"manifest"`
	ManifestExists   bool   `json:"manifest_exists"`
	Entrypoint       string `json:"entrypoint"`
	EntrypointExists bool   `json:"entrypoint_exists"`
	Python           string `json:"python,omitempty"`
	PythonVersion    string `json:"python_version,omitempty"`
}

func envStatus(ctx context.Context, cmd *cli.Command) error {
	opts, _, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	b := bootstrap.New(opts)
	opts = b.Options()
	dir := os.DirFS(opts.ProjectDir)

	report := envReport{
		ProjectDir:       opts.ProjectDir,
		EnvDir:           b.Venv().Root,
		EnvExists:        b.Venv().Exists(),
		Manifest:         opts.Manifest,
		ManifestExists:   util.FileExists(dir, opts.Manifest),
		Entrypoint:       opts.Entrypoint,
		EntrypointExists: util.FileExists(dir, opts.Entrypoint),
	}

	projectType, err := bootstrap.DetectProjectType(dir)
	if err != nil {
		report.ProjectType = string(bootstrap.ProjectTypeUnknown)
	} else {
		report.ProjectType = string(projectType)
	}

	if python, err := bootstrap.ResolveInterpreter(opts.Python); err == nil {
		report.Python = python
		if version, err := bootstrap.InterpreterVersion(ctx, python); err == nil {
			report.PythonVersion = version.String()
		}
	}

	if cmd.Bool("json") {
		util.PrintJSON(report)
		return nil
	}

	fmt.Printf("Project:     %s\n", util.Accented(report.ProjectDir))
	fmt.Printf("Type:        %s\n", report.ProjectType)
	fmt.Printf("Environment: %s %s\n", report.EnvDir, existsLabel(report.EnvExists))
	fmt.Printf("Manifest:    %s %s\n", report.Manifest, existsLabel(report.ManifestExists))
	fmt.Printf("Entry point: %s %s\n", report.Entrypoint, existsLabel(report.EntrypointExists))
	if report.Python != "" {
		fmt.Printf("Python:      %s (%s)\n", report.Python, report.PythonVersion)
	} else {
		fmt.Printf("Python:      %s\n", util.Dimmed("not found"))
	}
	return nil
}

func existsLabel(exists bool) string {
	if exists {
		return ""
	}
	return util.Dimmed("(missing)")
}

func envClean(ctx context.Context, cmd *cli.Command) error {
	opts, _, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	b := bootstrap.New(opts)

	if !b.Venv().Exists() {
		fmt.Printf("No environment at [%s]\n", util.Accented(b.Venv().Root))
		return nil
	}

	if !cmd.Bool("silent") && stdinIsTTY() {
		var confirmed bool
		if err := huh.NewConfirm().
			Title(fmt.Sprintf("Remove %s and everything installed in it?", b.Venv().Root)).
			Value(&confirmed).
			WithTheme(theme).
			Run(); err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	if err := os.RemoveAll(b.Venv().Root); err != nil {
		return err
	}
	fmt.Printf("Removed environment [%s]\n", util.Accented(b.Venv().Root))
	return nil
}
