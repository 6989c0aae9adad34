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

// Package piecedownload tracks the per-block download state of a single
// in-flight piece: which blocks are still free, which have been requested
// from a peer, and which have arrived.
package piecedownload

// BlockLen is the standard BitTorrent block size: peers exchange data in
// chunks of this size, except possibly the last block of a piece.
const BlockLen = 16384

// BlockInfo identifies a contiguous byte range within a piece. Length is
// BlockLen for every block except possibly the last block of a piece, whose
// length is the remainder of the piece.
type BlockInfo struct {
	PieceIndex uint32
	Offset     uint32
	Length     uint32
}

// Index returns the block's position within its piece.
func (b BlockInfo) Index() uint32 {
	return b.Offset / BlockLen
}

// status enumerates the lifecycle of a single block.
type status int

const (
	// free means the block has never been requested.
	free status = iota
	// requested means a peer has been asked for the block; arrival pending.
	requested
	// received means the block is present locally.
	received
)
