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

// Package backoff implements a simple exponential retry loop bounded by a
// total retry timeout rather than a fixed attempt count.
package backoff

import (
	"fmt"
	"math/rand"
	"time"
)

// Config defines an exponential backoff policy.
type Config struct {
	Min          time.Duration `yaml:"min"`
	Max          time.Duration `yaml:"max"`
	Factor       float64       `yaml:"factor"`
	NoJitter     bool          `yaml:"no_jitter"`
	RetryTimeout time.Duration `yaml:"retry_timeout"`
}

func (c *Config) applyDefaults() {
	if c.Factor <= 0 {
		c.Factor = 2
	}
	if c.Max < c.Min {
		c.Max = c.Min
	}
}

// Backoff constructs Attempts iterators from a fixed Config.
type Backoff struct {
	config Config
}

// New creates a Backoff from config.
func New(config Config) *Backoff {
	config.applyDefaults()
	return &Backoff{config}
}

// Attempts starts a new retry loop. The first call to WaitForNext always
// succeeds immediately regardless of RetryTimeout, so that every operation
// gets at least one try; subsequent calls sleep for an exponentially
// increasing duration (capped at Max) and return false once the cumulative
// wait would exceed RetryTimeout.
func (b *Backoff) Attempts() *Attempts {
	return &Attempts{config: b.config, next: b.config.Min}
}

// Attempts iterates a single retry loop.
type Attempts struct {
	config  Config
	started bool
	elapsed time.Duration
	next    time.Duration
	err     error
}

// WaitForNext blocks until the caller should make its next attempt,
// returning false once RetryTimeout has been exhausted. Call Err after it
// returns false to retrieve the reason.
func (a *Attempts) WaitForNext() bool {
	if !a.started {
		a.started = true
		return true
	}

	wait := a.next
	if !a.config.NoJitter && wait > 0 {
		wait = time.Duration(rand.Int63n(int64(wait)) + int64(wait)/2)
	}

	if a.elapsed+wait > a.config.RetryTimeout {
		a.err = fmt.Errorf("backoff: retry timeout exceeded after %v", a.elapsed)
		return false
	}

	time.Sleep(wait)
	a.elapsed += wait

	a.next = time.Duration(float64(a.next) * a.config.Factor)
	if a.next > a.config.Max {
		a.next = a.config.Max
	}
	return true
}

// Err returns the reason WaitForNext returned false, or nil if Attempts has
// not yet been exhausted.
func (a *Attempts) Err() error {
	return a.err
}
