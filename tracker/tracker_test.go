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
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uber/kraken-bittorrent/core"
)

func TestNewAnnounceDefaultsToStarted(t *testing.T) {
	require := require.New(t)

	a := NewAnnounce(core.InfoHashFixture(), core.PeerIDFixture(), 6881)
	require.Equal(EventStarted, a.Event)
}

func TestHTTPTrackerAnnounce(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "d8:completei1e10:incompletei0e8:intervali60ee")
	}))
	defer server.Close()

	turl, err := ParseTrackerURL(server.URL)
	require.NoError(err)

	tr, err := New(turl, Config{})
	require.NoError(err)

	resp, err := tr.Announce(NewAnnounce(core.InfoHashFixture(), core.PeerIDFixture(), 6881))
	require.NoError(err)
	require.Equal(1, resp.SeederCount)
}

func TestNewRejectsUnknownProtocol(t *testing.T) {
	require := require.New(t)

	_, err := New(TrackerURL{URL: "http://tracker.example.com/announce", Protocol: Protocol(99)}, Config{})
	require.Error(err)
	require.Contains(err.Error(), "tracker.example.com")
}

func TestHTTPTrackerAnnounceWrapsBencodeError(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not bencode")
	}))
	defer server.Close()

	turl, err := ParseTrackerURL(server.URL)
	require.NoError(err)

	tr, err := New(turl, Config{})
	require.NoError(err)

	_, err = tr.Announce(NewAnnounce(core.InfoHashFixture(), core.PeerIDFixture(), 6881))
	require.Error(err)

	var terr *TrackerError
	require.True(errors.As(err, &terr))
	require.Equal(ErrBencode, terr.Kind)
}

func TestHTTPTrackerAnnounceWrapsHTTPError(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	turl, err := ParseTrackerURL(server.URL)
	require.NoError(err)

	tr, err := New(turl, Config{})
	require.NoError(err)

	_, err = tr.Announce(NewAnnounce(core.InfoHashFixture(), core.PeerIDFixture(), 6881))
	require.Error(err)

	var terr *TrackerError
	require.True(errors.As(err, &terr))
	require.Equal(ErrHTTP, terr.Kind)
}

func TestUDPTrackerAnnounceWrapsTransportError(t *testing.T) {
	require := require.New(t)

	turl, err := ParseTrackerURL("udp://does-not-resolve.invalid:6969/announce")
	require.NoError(err)

	tr, err := New(turl, Config{})
	require.NoError(err)

	_, err = tr.Announce(NewAnnounce(core.InfoHashFixture(), core.PeerIDFixture(), 6881))
	require.Error(err)

	var terr *TrackerError
	require.True(errors.As(err, &terr))
	require.Equal(ErrUDPTransport, terr.Kind)
}

type fakeTracker struct {
	resp *Response
	err  error
}

func (f *fakeTracker) Announce(Announce) (*Response, error) {
	return f.resp, f.err
}

func TestMultiTrackerFallsThroughOnError(t *testing.T) {
	require := require.New(t)

	m := &MultiTracker{trackers: []Tracker{
		&fakeTracker{err: fmt.Errorf("first tracker down")},
		&fakeTracker{resp: &Response{SeederCount: 3}},
	}}

	resp, err := m.Announce(Announce{})
	require.NoError(err)
	require.Equal(3, resp.SeederCount)
}

func TestMultiTrackerFallsThroughOnFailureReason(t *testing.T) {
	require := require.New(t)

	m := &MultiTracker{trackers: []Tracker{
		&fakeTracker{resp: &Response{FailureReason: "rejected"}},
		&fakeTracker{resp: &Response{SeederCount: 7}},
	}}

	resp, err := m.Announce(Announce{})
	require.NoError(err)
	require.Equal(7, resp.SeederCount)
}

func TestMultiTrackerReturnsLastErrorWhenAllFail(t *testing.T) {
	require := require.New(t)

	m := &MultiTracker{trackers: []Tracker{
		&fakeTracker{err: fmt.Errorf("first down")},
		&fakeTracker{err: fmt.Errorf("second down")},
	}}

	_, err := m.Announce(Announce{})
	require.Error(err)
	require.Contains(err.Error(), "second down")
}
