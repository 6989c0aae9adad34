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
	"fmt"
	"math/rand"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Client executes BEP-15 UDP announce transactions against a single
// tracker host.
type Client struct {
	host   string
	config Config
}

// New constructs a Client for the UDP tracker addressed by rawURL (for
// example "udp://tracker.example.com:6969/announce"). No network I/O
// occurs until Announce is called.
func New(rawURL string, config Config) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse udp tracker url: %s", err)
	}
	config.applyDefaults()
	return &Client{host: u.Host, config: config}, nil
}

// Announce executes the two-step connect/announce transaction. A UDP
// timeout or transaction id mismatch is reported in-band via
// Reply.FailureReason rather than as an error; only socket/DNS-level
// failures return an error.
func (c *Client) Announce(req Request) (*Reply, error) {
	addr, err := c.resolveAddr()
	if err != nil {
		return nil, fmt.Errorf("resolve tracker address: %s", err)
	}

	conn, err := c.dial(addr)
	if err != nil {
		return nil, fmt.Errorf("dial tracker: %s", err)
	}
	defer conn.Close()

	connectionID, reply := c.connect(conn)
	if reply != nil {
		return reply, nil
	}

	return c.announce(conn, connectionID, req), nil
}

func (c *Client) resolveAddr() (*net.UDPAddr, error) {
	host, port, err := net.SplitHostPort(c.host)
	if err != nil {
		return nil, err
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, err
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %s", port, err)
	}
	rand.Shuffle(len(ips), func(i, j int) { ips[i], ips[j] = ips[j], ips[i] })
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return &net.UDPAddr{IP: v4, Port: portNum}, nil
		}
	}
	return nil, fmt.Errorf("no IPv4 address found for %s", host)
}

// dial binds a local UDP socket to a random ephemeral port in
// [1025, 65534] and connects it to addr.
func (c *Client) dial(addr *net.UDPAddr) (*net.UDPConn, error) {
	localPort := 1025 + rand.Intn(65534-1025+1)
	local := &net.UDPAddr{Port: localPort}
	conn, err := net.DialUDP("udp4", local, addr)
	if err != nil {
		// The randomly chosen ephemeral port may already be in use; let
		// the OS pick one instead.
		return net.DialUDP("udp4", nil, addr)
	}
	return conn, nil
}

// connect performs the connect step, retrying up to ConnectAttempts times
// with a fresh transaction id on each attempt. If every attempt times out,
// it returns a Reply carrying FailureReason rather than an error, per this
// module's choice to surface UDP timeouts in-band.
func (c *Client) connect(conn *net.UDPConn) (connectionID int64, failure *Reply) {
	for attempt := 0; attempt < c.config.ConnectAttempts; attempt++ {
		transactionID := randomInt32()
		if _, err := conn.Write(buildConnectFrame(transactionID)); err != nil {
			continue
		}

		conn.SetReadDeadline(time.Now().Add(c.config.AttemptTimeout))
		buf := make([]byte, 16)
		n, err := conn.Read(buf)
		if err != nil {
			continue
		}

		id, ok := parseConnectReply(buf[:n], transactionID)
		if !ok {
			continue
		}
		return id, nil
	}
	return 0, &Reply{FailureReason: "udp tracker: connect timed out"}
}

func (c *Client) announce(conn *net.UDPConn, connectionID int64, req Request) *Reply {
	transactionID := randomInt32()
	if _, err := conn.Write(buildAnnounceFrame(connectionID, transactionID, req)); err != nil {
		return &Reply{FailureReason: fmt.Sprintf("udp tracker: send announce: %s", err)}
	}

	conn.SetReadDeadline(time.Now().Add(c.config.AttemptTimeout))
	buf := make([]byte, c.config.RecvBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		return &Reply{FailureReason: "udp tracker: the tracker did not respond"}
	}

	return parseAnnounceReply(buf[:n], transactionID)
}

func randomInt32() int32 {
	return int32(rand.Uint32())
}

func randomUint32() uint32 {
	return rand.Uint32()
}
