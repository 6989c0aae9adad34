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
package tracker

import (
	"time"

	"github.com/uber/kraken-bittorrent/core"
)

// Response is the normalized output of a tracker announce, regardless of
// which wire protocol produced it.
type Response struct {
	TrackerID string

	// FailureReason is set when the tracker (or, for UDP, this client on
	// its behalf) rejected the announce. Other fields are not
	// guaranteed valid when this is set.
	FailureReason string

	WarningMessage string

	Interval    time.Duration
	MinInterval time.Duration

	SeederCount  int
	LeecherCount int

	Peers []core.Peer
}

// Failed reports whether the tracker (or a local in-band substitute, such
// as a UDP timeout) reported a failure.
func (r Response) Failed() bool {
	return r.FailureReason != ""
}
