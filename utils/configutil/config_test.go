// Copyright (c) 2016-2019 Uber Technologies, Inc.
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
package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestLoadEmptyPathIsNoop(t *testing.T) {
	require := require.New(t)

	var c testConfig
	require.NoError(Load("", &c))
	require.Equal(testConfig{}, c)
}

func TestLoadReadsYAML(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(os.WriteFile(path, []byte("name: tracker\ncount: 3\n"), 0644))

	var c testConfig
	require.NoError(Load(path, &c))
	require.Equal(testConfig{Name: "tracker", Count: 3}, c)
}

func TestLoadMissingFileErrors(t *testing.T) {
	require := require.New(t)

	var c testConfig
	err := Load("/nonexistent/config.yaml", &c)
	require.Error(err)
}
