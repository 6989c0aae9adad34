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

// ErrorKind enumerates the transport/decode-level failures that an
// announce can return. Timeout and transaction-id mismatch on the UDP path
// are reported in-band via Response.FailureReason instead (see DESIGN.md),
// not as a TrackerError.
type ErrorKind int

const (
	// ErrBencode means the HTTP response body was not valid Bencode, or
	// did not match the expected shape (for example a compact peer
	// string whose length is not a multiple of 6).
	ErrBencode ErrorKind = iota
	// ErrHTTP means the HTTP transport failed or returned a non-2xx
	// status.
	ErrHTTP
	// ErrUDPTransport means the UDP socket could not be bound, or DNS
	// resolution of the tracker host failed.
	ErrUDPTransport
)

// TrackerError is returned by Tracker.Announce for failures that have no
// sensible representation as a Response value.
type TrackerError struct {
	Kind ErrorKind
	Err  error
}

func (e *TrackerError) Error() string {
	var kind string
	switch e.Kind {
	case ErrBencode:
		kind = "bencode"
	case ErrHTTP:
		kind = "http"
	case ErrUDPTransport:
		kind = "udp transport"
	default:
		kind = "unknown"
	}
	return fmt.Sprintf("tracker error (%s): %s", kind, e.Err)
}

func (e *TrackerError) Unwrap() error {
	return e.Err
}

func newBencodeError(err error) error {
	return &TrackerError{Kind: ErrBencode, Err: err}
}

func newHTTPError(err error) error {
	return &TrackerError{Kind: ErrHTTP, Err: err}
}

func newUDPTransportError(err error) error {
	return &TrackerError{Kind: ErrUDPTransport, Err: err}
}
