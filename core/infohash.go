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
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidInfoHashLength returns when a hex-encoded info hash does not
// decode into 20 bytes.
var ErrInvalidInfoHashLength = errors.New("info hash has invalid length")

// InfoHash is the 20-byte SHA-1 digest of a torrent's info dictionary. It
// is the identifier a tracker announce and a peer handshake both key on to
// pick out one swarm; metainfo parsing (out of scope for this module)
// supplies it, never computes it here from a dictionary this package
// knows about.
type InfoHash [20]byte

// NewInfoHashFromHex parses an InfoHash from its hexadecimal encoding.
func NewInfoHashFromHex(s string) (InfoHash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return InfoHash{}, fmt.Errorf("decode hex: %s", err)
	}
	if len(b) != 20 {
		return InfoHash{}, ErrInvalidInfoHashLength
	}
	var h InfoHash
	copy(h[:], b)
	return h, nil
}

// NewInfoHashFromBytes hashes raw bytes (a torrent's bencoded info
// dictionary, or test fixture data) into an InfoHash.
func NewInfoHashFromBytes(b []byte) InfoHash {
	return InfoHash(sha1.Sum(b))
}

// Bytes returns h as a raw byte slice.
func (h InfoHash) Bytes() []byte {
	return h[:]
}

// Hex encodes h in hexadecimal.
func (h InfoHash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h InfoHash) String() string {
	return h.Hex()
}
