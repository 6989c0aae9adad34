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
	"fmt"
	"net/url"

	"github.com/uber/kraken-bittorrent/utils/netutil"
)

// Protocol selects the wire dialect a TrackerURL speaks.
type Protocol int

const (
	// HTTP selects the Bencode-over-HTTP(S) announce transaction.
	HTTP Protocol = iota
	// UDP selects the BEP-15 binary announce transaction.
	UDP
)

// TrackerURL addresses a tracker: a URL plus the wire protocol it speaks.
type TrackerURL struct {
	URL      string
	Protocol Protocol
}

// ParseTrackerURL classifies raw by its scheme ("http"/"https" or "udp")
// and returns the corresponding TrackerURL.
func ParseTrackerURL(raw string) (TrackerURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return TrackerURL{}, fmt.Errorf("parse tracker url: %s", err)
	}
	switch u.Scheme {
	case "http", "https":
		return TrackerURL{URL: raw, Protocol: HTTP}, nil
	case "udp":
		return TrackerURL{URL: raw, Protocol: UDP}, nil
	default:
		return TrackerURL{}, fmt.Errorf("unsupported tracker scheme: %q", u.Scheme)
	}
}

// Host returns t's host, without a port, for use in logging and metrics
// tags. It tolerates a tracker URL whose host has no port (the scheme's
// default port applies on the wire), unlike net.SplitHostPort, which
// errors on a bare host.
func (t TrackerURL) Host() (string, error) {
	u, err := url.Parse(t.URL)
	if err != nil {
		return "", fmt.Errorf("parse tracker url: %s", err)
	}
	host, _, err := netutil.SplitHostPort(u.Host)
	if err != nil {
		return "", fmt.Errorf("split tracker host: %s", err)
	}
	return host, nil
}
