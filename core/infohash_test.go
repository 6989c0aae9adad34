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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInfoHashFromHex(t *testing.T) {
	require := require.New(t)

	d, err := NewInfoHashFromHex("e3b0c44298fc1c149afbf4c8996fb92427ae41e4")
	require.NoError(err)
	require.Equal("e3b0c44298fc1c149afbf4c8996fb92427ae41e4", d.Hex())
	require.Equal("e3b0c44298fc1c149afbf4c8996fb92427ae41e4", d.String())
}

func TestNewInfoHashFromHexWrongLength(t *testing.T) {
	tests := []struct {
		desc  string
		input string
	}{
		{"empty", ""},
		{"too short", "e3b0c4"},
		{"too long", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			require := require.New(t)

			_, err := NewInfoHashFromHex(test.input)
			require.Error(err)
			require.True(errors.Is(err, ErrInvalidInfoHashLength))
		})
	}
}

func TestNewInfoHashFromHexInvalidHex(t *testing.T) {
	require := require.New(t)

	_, err := NewInfoHashFromHex("x3b0c44298fc1c149afbf4c8996fb92427ae41e4")
	require.Error(err)
	require.False(errors.Is(err, ErrInvalidInfoHashLength))
}

func TestNewInfoHashFromBytesIsSHA1(t *testing.T) {
	require := require.New(t)

	h := NewInfoHashFromBytes([]byte("some bencoded info dictionary"))
	require.Len(h.Bytes(), 20)

	// Hashing is deterministic: the same input always yields the same
	// InfoHash, which is what lets two peers that parsed the same
	// torrent agree on its identity.
	require.Equal(h, NewInfoHashFromBytes([]byte("some bencoded info dictionary")))
}
