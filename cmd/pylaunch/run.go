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
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pylaunch/pylaunch/pkg/bootstrap"
	"github.com/pylaunch/pylaunch/pkg/util"
)

var (
	skipPause   bool
	RunCommands = []*cli.Command{
		{
			Name:   "run",
			Usage:  "Ensure the environment exists, then launch the entry point",
			Action: runProject,
			Flags: []cli.Flag{
				pythonFlag,
				&cli.BoolFlag{
					Name:        "skip-pause",
					Usage:       "Exit immediately after the entry point instead of pausing",
					Destination: &skipPause,
				},
			},
		},
		{
			Name:   "setup",
			Usage:  "Create the environment and install dependencies without launching",
			Action: setupProject,
			Flags: []cli.Flag{
				pythonFlag,
			},
		},
	}
)

func runProject(ctx context.Context, cmd *cli.Command) error {
	opts, proj, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	b := bootstrap.New(opts)

	if err := ensureEnvironment(ctx, b); err != nil {
		return err
	}
	if cmd.IsSet("python") {
		if err := rememberPython(cliConfig, cmd.String("python")); err != nil {
			return err
		}
	}

	code, err := b.Launch(ctx)
	if err != nil {
		return err
	}

	if !skipPause && !projectSkipsPause(proj) {
		pause()
		countdown(ctx, bootstrap.PostRunDelay)
	}

	if code != 0 {
		return cli.Exit(
			util.Dimmed(fmt.Sprintf("%s exited with status %d", b.Options().Entrypoint, code)),
			code,
		)
	}
	return nil
}

func setupProject(ctx context.Context, cmd *cli.Command) error {
	opts, _, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	b := bootstrap.New(opts)
	if err := ensureEnvironment(ctx, b); err != nil {
		return err
	}
	if cmd.IsSet("python") {
		return rememberPython(cliConfig, cmd.String("python"))
	}
	return nil
}

func ensureEnvironment(ctx context.Context, b *bootstrap.Bootstrapper) error {
	if b.Venv().Exists() {
		fmt.Printf("Using existing environment [%s]\n", util.Accented(b.Venv().Root))
		return nil
	}

	var created bool
	ensure := func(ctx context.Context) (err error) {
		created, err = b.Ensure(ctx)
		return err
	}

	var err error
	if b.Options().Verbose || !stdinIsTTY() {
		err = ensure(ctx)
	} else {
		err = util.Await("Setting up environment...", ctx, ensure)
	}
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Created environment [%s]\n", util.Accented(b.Venv().Root))
	}
	return nil
}

// pause blocks until the operator presses enter, keeping the terminal
// open so the entry point's final output stays visible. Skipped when
// stdin is not a terminal.
func pause() {
	if !stdinIsTTY() {
		return
	}
	fmt.Print(util.Dimmed("Press enter to continue..."))
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
}

func countdown(ctx context.Context, d time.Duration) {
	for remaining := int(d.Seconds()); remaining > 0; remaining-- {
		fmt.Printf("\rExiting in %ds...", remaining)
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			fmt.Println()
			return
		}
	}
	fmt.Println()
}
