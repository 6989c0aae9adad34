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

// Package configutil loads YAML configuration files into the per-package
// Config structs used throughout this module.
package configutil

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads the YAML file at path and unmarshals it into v, which must be
// a pointer. An empty path is not an error: v is left at its zero value so
// that every Config's applyDefaults can take over. A path naming a file
// that cannot be read is an error.
func Load(path string, v interface{}) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %s", err)
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("unmarshal config file %s: %s", path, err)
	}
	return nil
}
