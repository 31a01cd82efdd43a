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

// Package logger provides the process-wide diagnostic logger. User-facing
// output goes to stdout through plain prints; this logger carries debug
// detail on stderr and stays silent unless verbose mode is on.
package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

const debugLevel = 1

var (
	mu  sync.Mutex
	log = logr.Discard()
)

// Init configures the package logger. With verbose false only error and
// info records are emitted; verbose true also emits debug records.
func Init(name string, verbose bool) {
	verbosity := 0
	if verbose {
		verbosity = debugLevel
	}
	l := funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
		} else {
			fmt.Fprintln(os.Stderr, args)
		}
	}, funcr.Options{Verbosity: verbosity})

	mu.Lock()
	defer mu.Unlock()
	log = l.WithName(name)
}

// Get returns the configured logger, or a discarding one before Init.
func Get() logr.Logger {
	mu.Lock()
	defer mu.Unlock()
	return log
}

func Debugw(msg string, keysAndValues ...any) {
	Get().V(debugLevel).Info(msg, keysAndValues...)
}

func Errorw(msg string, err error, keysAndValues ...any) {
	Get().Error(err, msg, keysAndValues...)
}
