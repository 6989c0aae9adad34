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
package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPeerIDErrors(t *testing.T) {
	tests := []struct {
		desc  string
		input string
	}{
		{"empty", ""},
		{"invalid hex", "invalid"},
		{"too short", "beef"},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, err := NewPeerID(test.input)
			require.Error(t, err)
		})
	}
}

func TestRandomPeerIDNoCollisions(t *testing.T) {
	require := require.New(t)

	n := 50
	ids := make(map[string]bool)
	for i := 0; i < n; i++ {
		p, err := RandomPeerID()
		require.NoError(err)
		ids[p.String()] = true
	}
	require.Len(ids, n)
}

func TestNewClientPeerIDPrefix(t *testing.T) {
	require := require.New(t)

	p, err := NewClientPeerID("-GT0001-")
	require.NoError(err)
	require.Equal("-GT0001-", string(p[:8]))
}

func TestNewClientPeerIDPadsShortPrefix(t *testing.T) {
	require := require.New(t)

	p, err := NewClientPeerID("-GT-")
	require.NoError(err)
	require.Equal("-GT-0000", string(p[:8]))
}

func TestPeerIDCompare(t *testing.T) {
	require := require.New(t)

	peer1 := PeerIDFixture()
	peer2 := PeerIDFixture()
	if peer1.String() < peer2.String() {
		require.True(peer1.LessThan(peer2))
	} else if peer1.String() > peer2.String() {
		require.True(peer2.LessThan(peer1))
	}
}
