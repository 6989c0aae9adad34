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

// Package config assembles the per-package Config structs the engine that
// embeds this module needs into one YAML-loadable document. Loading a file
// is optional: every field defaults sensibly when the file is absent or
// omits it.
package config

import (
	"time"

	"github.com/uber/kraken-bittorrent/lib/torrent/scheduler/announcer"
	"github.com/uber/kraken-bittorrent/tracker"
	"github.com/uber/kraken-bittorrent/utils/configutil"
	"github.com/uber/kraken-bittorrent/utils/log"
)

// Config is the top-level configuration for an engine embedding this
// module's tracker client and piece download tracker.
type Config struct {
	Log      log.Config       `yaml:"log"`
	Tracker  tracker.Config   `yaml:"tracker"`
	Announce announcer.Config `yaml:"announce"`

	// BlockRequestTimeout bounds how long a block may sit Requested
	// before piecedownload.PieceDownload.ReapExpired resets it back to
	// Free. Zero disables reaping.
	BlockRequestTimeout time.Duration `yaml:"block_request_timeout"`
}

// Load reads the YAML file at path into a Config, falling back to the zero
// value (and therefore every sub-Config's own defaults) when path is empty.
func Load(path string) (Config, error) {
	var c Config
	if err := configutil.Load(path, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
