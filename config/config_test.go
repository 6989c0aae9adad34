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
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsZeroValue(t *testing.T) {
	require := require.New(t)

	c, err := Load("")
	require.NoError(err)
	require.Equal(Config{}, c)
}

func TestLoadParsesNestedConfig(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
log:
  level: debug
tracker:
  http:
    timeout: 5s
announce:
  default_interval: 30s
block_request_timeout: 1m
`
	require.NoError(os.WriteFile(path, []byte(body), 0644))

	c, err := Load(path)
	require.NoError(err)
	require.Equal("debug", c.Log.Level)
	require.Equal(5*time.Second, c.Tracker.HTTP.Timeout)
	require.Equal(30*time.Second, c.Announce.DefaultInterval)
	require.Equal(time.Minute, c.BlockRequestTimeout)
}
