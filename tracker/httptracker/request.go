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
package httptracker

import "github.com/uber/kraken-bittorrent/core"

// Request is the input to an HTTP announce transaction.
type Request struct {
	InfoHash core.InfoHash
	PeerID   core.PeerID
	Port     uint16

	Downloaded int64
	Uploaded   int64
	Left       int64

	// PeerCount, if non-nil, is sent as numwant.
	PeerCount *int

	// IP, if non-empty, is sent as the ip query parameter.
	IP string
}
