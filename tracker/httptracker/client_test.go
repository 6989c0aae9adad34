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

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uber/kraken-bittorrent/core"
)

func TestAnnounceHappyPath(t *testing.T) {
	require := require.New(t)

	body := "d8:completei5e10:incompletei3e8:intervali15e12:min intervali10e5:peers6:\xc0\xa8\x00\x0a\xbf\xe3e"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal("16", q.Get("port"))
		require.Equal("1234", q.Get("downloaded"))
		require.Equal("1234", q.Get("uploaded"))
		require.Equal("1234", q.Get("left"))
		require.Equal("1", q.Get("compact"))
		require.Equal("2", q.Get("numwant"))
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	var peerID core.PeerID
	copy(peerID[:], []byte("cbt-2020-03-03-00000"))

	numwant := 2
	c := New(server.URL, Config{})
	reply, err := c.Announce(Request{
		InfoHash:   core.NewInfoHashFromBytes([]byte("abcdefghij1234567890")),
		PeerID:     peerID,
		Port:       16,
		Downloaded: 1234,
		Uploaded:   1234,
		Left:       1234,
		PeerCount:  &numwant,
	})
	require.NoError(err)
	require.Equal(5, reply.SeederCount)
	require.Equal(3, reply.LeecherCount)
	require.Len(reply.Peers, 1)
}

func TestBuildURLPercentEncodesRawBytes(t *testing.T) {
	require := require.New(t)

	var peerID core.PeerID
	copy(peerID[:], []byte{0x00, 0x01, 0xff, 'a', 'B', '-', '_', '~', '.'})

	u, err := buildURL("http://tracker.example/announce", Request{
		PeerID: peerID,
		Port:   1,
	})
	require.NoError(err)
	require.Contains(u, "peer_id=%00%01%FFaB-_~.")
}
