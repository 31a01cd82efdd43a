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
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestProjectTypeIsPython(t *testing.T) {
	assert.True(t, ProjectTypePythonPip.IsPython())
	assert.True(t, ProjectTypePythonUV.IsPython())
	assert.False(t, ProjectTypeUnknown.IsPython())
}

func TestDetectProjectType(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    ProjectType
		wantErr bool
	}{
		{
			name:  "requirements file",
			files: map[string]string{"requirements.txt": "requests\n"},
			want:  ProjectTypePythonPip,
		},
		{
			name:  "uv lock",
			files: map[string]string{"uv.lock": ""},
			want:  ProjectTypePythonUV,
		},
		{
			name:  "uv lock wins over requirements",
			files: map[string]string{"uv.lock": "", "requirements.txt": "requests\n"},
			want:  ProjectTypePythonUV,
		},
		{
			name:  "poetry lock",
			files: map[string]string{"poetry.lock": ""},
			want:  ProjectTypePythonPip,
		},
		{
			name:  "pipfile lock",
			files: map[string]string{"Pipfile.lock": "{}"},
			want:  ProjectTypePythonPip,
		},
		{
			name:  "pyproject with poetry tool",
			files: map[string]string{"pyproject.toml": "[tool.poetry]\nname = \"demo\"\n"},
			want:  ProjectTypePythonPip,
		},
		{
			name:  "pyproject with uv tool",
			files: map[string]string{"pyproject.toml": "[tool.uv]\ndev-dependencies = []\n"},
			want:  ProjectTypePythonUV,
		},
		{
			name:  "bare pyproject defaults to pip",
			files: map[string]string{"pyproject.toml": "[project]\nname = \"demo\"\n"},
			want:  ProjectTypePythonPip,
		},
		{
			name:  "malformed pyproject defaults to pip",
			files: map[string]string{"pyproject.toml": "not toml at all ["},
			want:  ProjectTypePythonPip,
		},
		{
			name:    "empty project",
			files:   map[string]string{},
			want:    ProjectTypeUnknown,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := fstest.MapFS{}
			for name, contents := range tt.files {
				dir[name] = &fstest.MapFile{Data: []byte(contents)}
			}
			got, err := DetectProjectType(dir)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
