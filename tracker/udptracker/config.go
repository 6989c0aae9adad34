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

// Package udptracker implements the BEP-15 UDP tracker announce
// transaction: a connect handshake followed by an announce, both
// bit-exact binary frames over a UDP datagram socket.
package udptracker

import "time"

// Config configures a udptracker Client.
type Config struct {
	// AttemptTimeout bounds each individual connect/announce datagram
	// round trip.
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`

	// ConnectAttempts is how many times the connect step is retried
	// before giving up.
	ConnectAttempts int `yaml:"connect_attempts"`

	// RecvBufferSize sizes the receive buffer for the announce reply.
	// It must be at least 20 + 6*N bytes for N expected peers.
	RecvBufferSize int `yaml:"recv_buffer_size"`
}

func (c *Config) applyDefaults() {
	if c.AttemptTimeout == 0 {
		c.AttemptTimeout = 3 * time.Second
	}
	if c.ConnectAttempts == 0 {
		c.ConnectAttempts = 5
	}
	if c.RecvBufferSize == 0 {
		c.RecvBufferSize = 2048
	}
}
