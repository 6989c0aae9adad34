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

import "github.com/uber/kraken-bittorrent/core"

// Announce is the input to a tracker announce transaction.
type Announce struct {
	InfoHash core.InfoHash
	PeerID   core.PeerID
	Port     uint16

	// IP is the client's reported true-IP, used to work around NAT/proxy
	// setups. Nil means let the tracker infer it from the request's
	// source address.
	IP []byte

	Downloaded int64
	Uploaded   int64
	Left       int64

	// PeerCount is the desired number of peers to receive back. Nil
	// means no preference.
	PeerCount *int

	// TrackerID was echoed back by a previous Response and is resent
	// verbatim on this announce; empty if this is the first announce.
	TrackerID string

	Event Event
}

// NewAnnounce builds the zero-value announce appropriate for the first
// contact with a tracker: Event is set to EventStarted and all progress
// counters are zero.
func NewAnnounce(h core.InfoHash, id core.PeerID, port uint16) Announce {
	return Announce{
		InfoHash: h,
		PeerID:   id,
		Port:     port,
		Event:    EventStarted,
	}
}
