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

// Package tracker implements a BitTorrent tracker client: it executes an
// announce transaction against a tracker addressed by an HTTP(S) or UDP
// URL and normalizes the result into a Response.
package tracker

// Event tags the purpose of an announce within a torrent's lifecycle.
type Event int

const (
	// EventNone is sent on a routine reannounce, with no event attached.
	EventNone Event = iota
	// EventStarted marks the first announce of a download.
	EventStarted
	// EventCompleted marks the announce sent when the download finishes.
	EventCompleted
	// EventStopped marks the announce sent when the client abandons a
	// download.
	EventStopped
)

// udpCode returns the BEP-15 wire code for e.
func (e Event) udpCode() int32 {
	switch e {
	case EventCompleted:
		return 1
	case EventStarted:
		return 2
	case EventStopped:
		return 3
	default:
		return 0
	}
}
