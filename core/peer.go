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
	"fmt"
	"net"
)

// Peer is a swarm member's socket address, as returned by a tracker
// announce. The tracker decoders in this module never set ID: the HTTP
// full peer-list form discards any peer id it carries, and the compact and
// UDP forms carry none.
type Peer struct {
	IP   net.IP
	Port uint16
	ID   PeerID
}

// NewPeer builds a Peer from an IP and port with no associated PeerID.
func NewPeer(ip net.IP, port uint16) Peer {
	return Peer{IP: ip, Port: port}
}

// Addr returns the peer's address in "ip:port" form.
func (p Peer) Addr() string {
	return fmt.Sprintf("%s:%d", p.IP.String(), p.Port)
}

func (p Peer) String() string {
	return p.Addr()
}
