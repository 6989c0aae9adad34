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
package udptracker

import (
	"encoding/binary"
	"net"
	"time"

	"github.com/uber/kraken-bittorrent/core"
)

// protocolID is the BEP-15 magic constant identifying a connect request.
const protocolID int64 = 0x41727101980

const (
	actionConnect  int32 = 0
	actionAnnounce int32 = 1
)

// Request is the input to a UDP announce transaction.
type Request struct {
	InfoHash core.InfoHash
	PeerID   core.PeerID

	Downloaded int64
	Left       int64
	Uploaded   int64

	// EventCode is the BEP-15 event code: 0=none, 1=completed, 2=started,
	// 3=stopped.
	EventCode int32

	// IP is the 4 IPv4 octets to report, or nil/empty to report none.
	IP []byte

	// PeerCount, if non-nil, is sent as numwant; absent means -1 (no
	// preference).
	PeerCount *int

	Port uint16
}

// Reply is the normalized output of a UDP announce transaction.
type Reply struct {
	FailureReason string
	Interval      time.Duration
	LeecherCount  int
	SeederCount   int
	Peers         []core.Peer
}

func buildConnectFrame(transactionID int32) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[0:8], uint64(protocolID))
	binary.BigEndian.PutUint32(b[8:12], uint32(actionConnect))
	binary.BigEndian.PutUint32(b[12:16], uint32(transactionID))
	return b
}

// parseConnectReply validates a 16-byte connect reply against the
// transaction id that was sent and returns the opaque connection id.
func parseConnectReply(b []byte, wantTransactionID int32) (connectionID int64, ok bool) {
	if len(b) < 16 {
		return 0, false
	}
	action := int32(binary.BigEndian.Uint32(b[0:4]))
	transactionID := int32(binary.BigEndian.Uint32(b[4:8]))
	if action != actionConnect || transactionID != wantTransactionID {
		return 0, false
	}
	return int64(binary.BigEndian.Uint64(b[8:16])), true
}

func buildAnnounceFrame(connectionID int64, transactionID int32, req Request) []byte {
	b := make([]byte, 98)
	binary.BigEndian.PutUint64(b[0:8], uint64(connectionID))
	binary.BigEndian.PutUint32(b[8:12], uint32(actionAnnounce))
	binary.BigEndian.PutUint32(b[12:16], uint32(transactionID))
	copy(b[16:36], req.InfoHash.Bytes())
	copy(b[36:56], req.PeerID[:])
	binary.BigEndian.PutUint64(b[56:64], uint64(req.Downloaded))
	binary.BigEndian.PutUint64(b[64:72], uint64(req.Left))
	binary.BigEndian.PutUint64(b[72:80], uint64(req.Uploaded))
	binary.BigEndian.PutUint32(b[80:84], uint32(req.EventCode))
	if len(req.IP) == 4 {
		copy(b[84:88], req.IP)
	}
	binary.BigEndian.PutUint32(b[88:92], randomUint32())
	numwant := int32(-1)
	if req.PeerCount != nil {
		numwant = int32(*req.PeerCount)
	}
	binary.BigEndian.PutUint32(b[92:96], uint32(numwant))
	binary.BigEndian.PutUint16(b[96:98], req.Port)
	return b
}

// parseAnnounceReply parses a BEP-15 announce reply into a Reply. If the
// transaction id doesn't match wantTransactionID, FailureReason is set
// instead of returning an error, per this module's choice to surface UDP
// in-band failures via the Response rather than a typed error.
func parseAnnounceReply(b []byte, wantTransactionID int32) *Reply {
	if len(b) < 20 {
		return &Reply{FailureReason: "udp tracker: announce reply too short"}
	}
	action := int32(binary.BigEndian.Uint32(b[0:4]))
	transactionID := int32(binary.BigEndian.Uint32(b[4:8]))
	if action != actionAnnounce || transactionID != wantTransactionID {
		return &Reply{FailureReason: "udp tracker: non-matching transaction id"}
	}

	interval := binary.BigEndian.Uint32(b[8:12])
	leechers := binary.BigEndian.Uint32(b[12:16])
	seeders := binary.BigEndian.Uint32(b[16:20])

	return &Reply{
		Interval:     time.Duration(interval) * time.Second,
		LeecherCount: int(leechers),
		SeederCount:  int(seeders),
		Peers:        parsePeers(b[20:]),
	}
}

// parsePeers walks 6-byte compact peer records starting at the beginning
// of b, stopping at the first all-zero record (sentinel for the unused
// tail of the receive buffer) or when fewer than 6 bytes remain.
func parsePeers(b []byte) []core.Peer {
	var peers []core.Peer
	for i := 0; i+6 <= len(b); i += 6 {
		rec := b[i : i+6]
		if isZero(rec) {
			break
		}
		ip := net.IPv4(rec[0], rec[1], rec[2], rec[3])
		port := binary.BigEndian.Uint16(rec[4:6])
		peers = append(peers, core.NewPeer(ip, port))
	}
	return peers
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
