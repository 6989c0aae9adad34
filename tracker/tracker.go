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

import (
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/uber/kraken-bittorrent/tracker/httptracker"
	"github.com/uber/kraken-bittorrent/tracker/udptracker"
)

// Config configures a Tracker built by New, covering both wire protocols;
// only the half matching the constructed TrackerURL's Protocol is used.
type Config struct {
	HTTP httptracker.Config `yaml:"http"`
	UDP  udptracker.Config  `yaml:"udp"`
}

// Tracker executes announce transactions against the tracker it was
// constructed with.
type Tracker interface {
	Announce(Announce) (*Response, error)
}

// New constructs a Tracker for turl. No network I/O occurs until Announce
// is called. Concurrent Announce calls against the returned Tracker that
// race with the same info hash and event are collapsed into a single wire
// transaction via singleflight, and every such caller receives that
// transaction's result; announces for different torrents or events are
// sent separately.
func New(turl TrackerURL, config Config) (Tracker, error) {
	switch turl.Protocol {
	case HTTP:
		return &httpAdapter{client: httptracker.New(turl.URL, config.HTTP)}, nil
	case UDP:
		client, err := udptracker.New(turl.URL, config.UDP)
		if err != nil {
			return nil, err
		}
		return &udpAdapter{client: client}, nil
	default:
		host, _ := turl.Host()
		return nil, fmt.Errorf("unknown tracker protocol %v for host %q", turl.Protocol, host)
	}
}

type httpAdapter struct {
	client *httptracker.Client
	group  singleflight.Group
}

// announceKey is the singleflight key under which racing announces share
// one wire transaction.
func announceKey(an Announce) string {
	return fmt.Sprintf("%s/%d", an.InfoHash.Hex(), an.Event)
}

func (a *httpAdapter) Announce(an Announce) (*Response, error) {
	v, err, _ := a.group.Do(announceKey(an), func() (interface{}, error) {
		reply, err := a.client.Announce(toHTTPRequest(an))
		if err != nil {
			return nil, classifyHTTPError(err)
		}
		return fromHTTPReply(reply), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Response), nil
}

// classifyHTTPError distinguishes a Bencode decode failure from every
// other httptracker.Client.Announce error (transport failure, non-2xx
// status), per spec.md §7's Bencode/Http taxonomy.
func classifyHTTPError(err error) error {
	var berr *httptracker.BencodeError
	if errors.As(err, &berr) {
		return newBencodeError(berr.Err)
	}
	return newHTTPError(err)
}

type udpAdapter struct {
	client *udptracker.Client
	group  singleflight.Group
}

func (a *udpAdapter) Announce(an Announce) (*Response, error) {
	v, err, _ := a.group.Do(announceKey(an), func() (interface{}, error) {
		reply, err := a.client.Announce(toUDPRequest(an))
		if err != nil {
			// udptracker.Client.Announce only returns an error for a
			// DNS resolution or socket bind/dial failure; the UDP
			// timeout and transaction-id-mismatch cases are reported
			// in-band via Reply.FailureReason instead (see DESIGN.md).
			return nil, newUDPTransportError(err)
		}
		return fromUDPReply(reply), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Response), nil
}

func toHTTPRequest(a Announce) httptracker.Request {
	req := httptracker.Request{
		InfoHash:   a.InfoHash,
		PeerID:     a.PeerID,
		Port:       a.Port,
		Downloaded: a.Downloaded,
		Uploaded:   a.Uploaded,
		Left:       a.Left,
		PeerCount:  a.PeerCount,
	}
	if len(a.IP) > 0 {
		req.IP = fmt.Sprintf("%d.%d.%d.%d", a.IP[0], a.IP[1], a.IP[2], a.IP[3])
	}
	return req
}

func fromHTTPReply(r *httptracker.Reply) *Response {
	return &Response{
		TrackerID:      r.TrackerID,
		FailureReason:  r.FailureReason,
		WarningMessage: r.WarningMessage,
		Interval:       r.Interval,
		MinInterval:    r.MinInterval,
		SeederCount:    r.SeederCount,
		LeecherCount:   r.LeecherCount,
		Peers:          r.Peers,
	}
}

func toUDPRequest(a Announce) udptracker.Request {
	return udptracker.Request{
		InfoHash:   a.InfoHash,
		PeerID:     a.PeerID,
		Port:       a.Port,
		IP:         a.IP,
		Downloaded: a.Downloaded,
		Left:       a.Left,
		Uploaded:   a.Uploaded,
		EventCode:  a.Event.udpCode(),
		PeerCount:  a.PeerCount,
	}
}

func fromUDPReply(r *udptracker.Reply) *Response {
	return &Response{
		FailureReason: r.FailureReason,
		Interval:      r.Interval,
		SeederCount:   r.SeederCount,
		LeecherCount:  r.LeecherCount,
		Peers:         r.Peers,
	}
}
