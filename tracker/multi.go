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

import "fmt"

// MultiTracker tries a list of TrackerURLs in priority order on each
// Announce, falling through to the next one on any error or in-band
// failure. This mirrors a BEP-12 announce-list tier: a single TrackerURL
// is the norm, but a torrent may name several trackers for resilience.
type MultiTracker struct {
	trackers []Tracker
}

// NewMulti constructs a MultiTracker over urls, each built with config.
func NewMulti(urls []TrackerURL, config Config) (*MultiTracker, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("no tracker urls given")
	}
	trackers := make([]Tracker, 0, len(urls))
	for _, u := range urls {
		t, err := New(u, config)
		if err != nil {
			return nil, fmt.Errorf("construct tracker for %s: %s", u.URL, err)
		}
		trackers = append(trackers, t)
	}
	return &MultiTracker{trackers: trackers}, nil
}

// Announce tries each tracker in order, returning the first response that
// neither errors nor reports an in-band failure. If every tracker fails,
// the last error (or failed Response) is returned.
func (m *MultiTracker) Announce(a Announce) (*Response, error) {
	var lastResp *Response
	var lastErr error
	for _, t := range m.trackers {
		resp, err := t.Announce(a)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.Failed() {
			lastResp = resp
			continue
		}
		return resp, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return lastResp, nil
}
