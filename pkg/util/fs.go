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

package util

import (
	"io/fs"
	"os"
)

// FileExists reports whether filename exists inside dir and is a regular
// file. Directories (and symlinks resolving to directories) return false.
func FileExists(dir fs.FS, filename string) bool {
	info, err := fs.Stat(dir, filename)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path exists and is a directory. The check is
// existence-only: the contents are never inspected.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
