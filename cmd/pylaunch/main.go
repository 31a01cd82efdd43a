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
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	pylaunch "github.com/pylaunch/pylaunch"
	"github.com/pylaunch/pylaunch/pkg/logger"
)

func newApp() *cli.Command {
	app := &cli.Command{
		Name:                   "pylaunch",
		Usage:                  "Bootstrap and launch Python projects",
		Description:            "Ensures a project-local virtual environment exists, installs the requirements manifest on first run, then launches the project entry point with the environment's isolated interpreter.",
		Version:                pylaunch.Version,
		EnableShellCompletion:  true,
		Suggest:                true,
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Flags:                  globalFlags,
		Before:                 initLogger,
		// bare `pylaunch` behaves exactly like `pylaunch run`
		Action: runProject,
	}

	app.Commands = append(app.Commands, RunCommands...)
	app.Commands = append(app.Commands, EnvCommands...)
	return app
}

func main() {
	app := newApp()

	// Register cleanup hook for SIGINT, SIGTERM, SIGQUIT
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logger.Init("pylaunch", cmd.Bool("verbose"))
	return nil, nil
}
