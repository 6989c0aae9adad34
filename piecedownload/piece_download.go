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
package piecedownload

import (
	"time"

	"github.com/andres-erbsen/clock"
	"github.com/willf/bitset"
)

// PieceDownload tracks the block-level download state of one in-flight
// piece. It is not internally synchronized: the engine that owns a
// PieceDownload is responsible for serializing access across the peer
// sessions that request and deliver its blocks, either by confining the
// piece to one goroutine or by guarding calls with a mutex. Concurrent
// PickBlocks calls on the same PieceDownload without external
// synchronization would violate the "no two picks return the same block"
// guarantee.
type PieceDownload struct {
	pieceIndex  uint32
	pieceLength uint32

	blocks      []status
	received    *bitset.BitSet
	requestedAt []time.Time

	clk clock.Clock
}

// New constructs a PieceDownload for the piece at pieceIndex with the given
// pieceLength. pieceLength must be at least 1. The block sequence is sized
// to ceil(pieceLength / BlockLen) and every block starts Free.
func New(clk clock.Clock, pieceIndex, pieceLength uint32) *PieceDownload {
	n := numBlocks(pieceLength)
	return &PieceDownload{
		pieceIndex:  pieceIndex,
		pieceLength: pieceLength,
		blocks:      make([]status, n),
		received:    bitset.New(uint(n)),
		requestedAt: make([]time.Time, n),
		clk:         clk,
	}
}

func numBlocks(pieceLength uint32) uint32 {
	return (pieceLength + BlockLen - 1) / BlockLen
}

func (d *PieceDownload) blockLength(i uint32) uint32 {
	offset := i * BlockLen
	if rem := d.pieceLength - offset; rem < BlockLen {
		return rem
	}
	return BlockLen
}

// PickBlocks scans the block sequence in ascending index order, transitions
// each currently Free block it encounters to Requested, and appends a
// BlockInfo for it, stopping once count blocks have been picked or the
// sequence is exhausted. The returned list is in ascending block-index
// order and is never padded beyond the blocks actually available; a pick
// of count = 0 returns an empty list and mutates no state.
func (d *PieceDownload) PickBlocks(count int) []BlockInfo {
	if count <= 0 {
		return nil
	}
	var picked []BlockInfo
	for i := range d.blocks {
		if len(picked) >= count {
			break
		}
		if d.blocks[i] != free {
			continue
		}
		d.blocks[i] = requested
		d.requestedAt[i] = d.clk.Now()
		picked = append(picked, BlockInfo{
			PieceIndex: d.pieceIndex,
			Offset:     uint32(i) * BlockLen,
			Length:     d.blockLength(uint32(i)),
		})
	}
	return picked
}

// ReceivedBlock marks b as Received. The caller (the peer session) is
// expected to have validated b against this piece and its current
// Requested state upstream; a redelivery of an already-Received block is a
// caller bug and is not checked here.
func (d *PieceDownload) ReceivedBlock(b BlockInfo) {
	i := b.Index()
	d.blocks[i] = received
	d.received.Set(uint(i))
}

// FreeBlockCount returns the number of blocks still in the Free state.
func (d *PieceDownload) FreeBlockCount() int {
	n := 0
	for _, s := range d.blocks {
		if s == free {
			n++
		}
	}
	return n
}

// Complete reports whether every block in the piece has been Received.
func (d *PieceDownload) Complete() bool {
	return d.received.Count() == uint(len(d.blocks))
}

// ReapExpired resets any Requested block whose request timestamp is older
// than after back to Free, making it eligible for a subsequent PickBlocks
// call, and returns the number of blocks reset. This implements the
// Requested -> Free timeout transition that the base state machine omits:
// without it, a peer that never delivers a requested block stalls that
// block forever.
func (d *PieceDownload) ReapExpired(after time.Duration) int {
	now := d.clk.Now()
	n := 0
	for i, s := range d.blocks {
		if s != requested {
			continue
		}
		if now.Sub(d.requestedAt[i]) >= after {
			d.blocks[i] = free
			d.requestedAt[i] = time.Time{}
			n++
		}
	}
	return n
}
