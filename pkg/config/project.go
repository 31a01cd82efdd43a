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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pylaunch/pylaunch/pkg/logger"
	"github.com/pylaunch/pylaunch/pkg/util"
)

const (
	PylaunchTOMLFile = "pylaunch.toml"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration file")
)

// PylaunchTOML is the optional per-project configuration. Every field
// falls back to the fixed defaults when absent, so a project without a
// pylaunch.toml behaves exactly like the stock bootstrapper.
type PylaunchTOML struct {
	Env    *EnvTOMLConfig    `toml:"env"`
	Launch *LaunchTOMLConfig `toml:"launch"`
}

type EnvTOMLConfig struct {
	Dir       string `toml:"dir"`
	Manifest  string `toml:"manifest"`
	Python    string `toml:"python"`
	MinPython string `toml:"min_python"`
}

type LaunchTOMLConfig struct {
	Entrypoint string `toml:"entrypoint"`
	SkipPause  bool   `toml:"skip_pause"`
}

func NewPylaunchTOML() *PylaunchTOML {
	return &PylaunchTOML{
		Env:    &EnvTOMLConfig{},
		Launch: &LaunchTOMLConfig{},
	}
}

func (c *PylaunchTOML) Validate() error {
	if c.Env != nil && filepath.IsAbs(c.Env.Dir) {
		return fmt.Errorf("env.dir must be relative to the project: %w", ErrInvalidConfig)
	}
	return nil
}

func (c *PylaunchTOML) SaveTOMLFile(dir string, tomlFileName string) error {
	f, err := os.Create(filepath.Join(dir, tomlFileName))
	if err != nil {
		return err
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("error encoding TOML: %w", err)
	}
	fmt.Printf("Saving config file [%s]\n", util.Accented(tomlFileName))
	return nil
}

func LoadTOMLFile(dir string, tomlFileName string) (*PylaunchTOML, bool, error) {
	logger.Debugw(fmt.Sprintf("loading %s file", tomlFileName))
	var config *PylaunchTOML = nil

	tomlFile := filepath.Join(dir, tomlFileName)

	if _, err := os.Stat(tomlFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if _, err := toml.DecodeFile(tomlFile, &config); err != nil {
		return nil, true, err
	}
	if err := config.Validate(); err != nil {
		return nil, true, err
	}

	return config, true, nil
}
