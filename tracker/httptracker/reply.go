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
	"bytes"
	"fmt"
	"net"
	"time"

	"github.com/jackpal/bencode-go"

	"github.com/uber/kraken-bittorrent/core"
)

// BencodeError wraps a failure to decode an HTTP tracker's Bencode
// response body, including a compact peer string whose length is not a
// multiple of 6. Client.Announce returns it unwrapped so that a caller
// one level up (tracker.Tracker) can distinguish it from a transport-level
// failure via errors.As.
type BencodeError struct {
	Err error
}

func (e *BencodeError) Error() string {
	return fmt.Sprintf("decode bencode reply: %s", e.Err)
}

func (e *BencodeError) Unwrap() error {
	return e.Err
}

// wirePeer is the Bencode shape of one entry in the "full" peers form.
type wirePeer struct {
	IP   string `bencode:"ip"`
	Port int    `bencode:"port"`
}

// wireReply is the raw Bencode dictionary returned by an HTTP tracker.
// Peers is decoded separately since it is polymorphic (a raw byte string
// in the compact form, a list of dictionaries in the full form), so it has
// no field here; decodePeers re-decodes the whole body, first into a
// string-typed peers field and, if that fails, into a list-typed one.
type wireReply struct {
	TrackerID      string `bencode:"tracker id"`
	FailureReason  string `bencode:"failure reason"`
	WarningMessage string `bencode:"warning message"`
	Interval       int    `bencode:"interval"`
	MinInterval    int    `bencode:"min interval"`
	Complete       int    `bencode:"complete"`
	Incomplete     int    `bencode:"incomplete"`
}

// Reply is the normalized output of an HTTP announce transaction.
type Reply struct {
	TrackerID      string
	FailureReason  string
	WarningMessage string
	Interval       time.Duration
	MinInterval    time.Duration
	SeederCount    int
	LeecherCount   int
	Peers          []core.Peer
}

// decodeReply decodes a Bencode-encoded HTTP tracker response body.
//
// The "peers" key is polymorphic: a raw byte string in the compact form,
// or a list of {ip, port} dictionaries in the full form. bencode-go decodes
// into concrete Go types by struct tag, so instead of unmarshalling the
// whole body in one pass, the body is buffered, decoded once into
// wireReply for the scalar fields, and decoded a second time into a
// peers-only struct shaped to match whichever form the tracker used.
func decodeReply(body []byte) (*Reply, error) {
	var wr wireReply
	if err := bencode.Unmarshal(bytes.NewReader(body), &wr); err != nil {
		return nil, &BencodeError{Err: fmt.Errorf("decode bencode dict: %s", err)}
	}

	peers, err := decodePeers(body)
	if err != nil {
		return nil, err
	}

	return &Reply{
		TrackerID:      wr.TrackerID,
		FailureReason:  wr.FailureReason,
		WarningMessage: wr.WarningMessage,
		Interval:       time.Duration(wr.Interval) * time.Second,
		MinInterval:    time.Duration(wr.MinInterval) * time.Second,
		SeederCount:    wr.Complete,
		LeecherCount:   wr.Incomplete,
		Peers:          peers,
	}, nil
}

func decodePeers(body []byte) ([]core.Peer, error) {
	// Try the compact form first: a raw byte string under "peers".
	var compact struct {
		Peers string `bencode:"peers"`
	}
	if err := bencode.Unmarshal(bytes.NewReader(body), &compact); err == nil {
		return decodeCompactPeers([]byte(compact.Peers))
	}

	var full struct {
		Peers []wirePeer `bencode:"peers"`
	}
	if err := bencode.Unmarshal(bytes.NewReader(body), &full); err != nil {
		return nil, &BencodeError{Err: fmt.Errorf("decode peers: %s", err)}
	}
	return decodeFullPeers(full.Peers), nil
}

// decodeCompactPeers parses the 6-byte-per-peer compact form: 4-byte
// big-endian IPv4 address followed by a 2-byte big-endian port.
func decodeCompactPeers(b []byte) ([]core.Peer, error) {
	if len(b)%6 != 0 {
		return nil, &BencodeError{Err: fmt.Errorf("compact peers: length %d is not a multiple of 6", len(b))}
	}
	peers := make([]core.Peer, 0, len(b)/6)
	for i := 0; i+6 <= len(b); i += 6 {
		ip := net.IPv4(b[i], b[i+1], b[i+2], b[i+3])
		port := uint16(b[i+4])<<8 | uint16(b[i+5])
		peers = append(peers, core.NewPeer(ip, port))
	}
	return peers, nil
}

// encodeCompactPeers is the inverse of decodeCompactPeers, used by tests to
// verify the round-trip property.
func encodeCompactPeers(peers []core.Peer) []byte {
	b := make([]byte, 0, len(peers)*6)
	for _, p := range peers {
		ip4 := p.IP.To4()
		b = append(b, ip4[0], ip4[1], ip4[2], ip4[3])
		b = append(b, byte(p.Port>>8), byte(p.Port))
	}
	return b
}

// decodeFullPeers parses the "full" peer-list form: a Bencode list of
// {ip, port} dictionaries. Entries whose ip does not parse are skipped.
func decodeFullPeers(wps []wirePeer) []core.Peer {
	peers := make([]core.Peer, 0, len(wps))
	for _, wp := range wps {
		ip := net.ParseIP(wp.IP)
		if ip == nil {
			continue
		}
		peers = append(peers, core.NewPeer(ip, uint16(wp.Port)))
	}
	return peers
}
