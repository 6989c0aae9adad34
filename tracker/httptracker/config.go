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

// Package httptracker implements the HTTP/Bencode tracker announce
// transaction (BEP-3).
package httptracker

import "time"

// Config configures an httptracker Client.
type Config struct {
	// Timeout bounds the full GET request, including connect and body
	// read.
	Timeout time.Duration `yaml:"timeout"`

	// RetryAttempts is how many times a transport-level failure is
	// retried before giving up. Non-2xx status and Bencode decode
	// errors are never retried at this layer.
	RetryAttempts int `yaml:"retry_attempts"`

	// RetryInterval is the fixed delay between retries.
	RetryInterval time.Duration `yaml:"retry_interval"`
}

func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.RetryInterval == 0 {
		c.RetryInterval = 500 * time.Millisecond
	}
}
