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
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	cenkaltibackoff "github.com/cenkalti/backoff"

	"github.com/uber/kraken-bittorrent/utils/httputil"
)

// Client executes HTTP/Bencode announce transactions against a single
// tracker base URL.
type Client struct {
	baseURL string
	config  Config
}

// New constructs a Client for the tracker at baseURL. No network I/O
// occurs until Announce is called.
func New(baseURL string, config Config) *Client {
	config.applyDefaults()
	return &Client{baseURL: baseURL, config: config}
}

// Announce executes a single announce transaction and returns the
// normalized reply. HTTP-layer errors, non-2xx statuses and Bencode decode
// errors all propagate as errors; this layer never retries on a non-2xx
// status or a decode failure, only on transport-level errors.
func (c *Client) Announce(req Request) (*Reply, error) {
	u, err := buildURL(c.baseURL, req)
	if err != nil {
		return nil, fmt.Errorf("build announce url: %s", err)
	}

	opts := []httputil.SendOption{httputil.SendTimeout(c.config.Timeout)}
	resp, err := httputil.Get(u, opts...)
	if c.config.RetryAttempts > 0 {
		b := cenkaltibackoff.WithMaxRetries(
			cenkaltibackoff.NewConstantBackOff(c.config.RetryInterval),
			uint64(c.config.RetryAttempts))
		for err != nil && httputil.IsNetworkError(err) {
			wait := b.NextBackOff()
			if wait == cenkaltibackoff.Stop {
				break
			}
			time.Sleep(wait)
			resp, err = httputil.Get(u, opts...)
		}
	}
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %s", err)
	}

	reply, err := decodeReply(body)
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func buildURL(baseURL string, req Request) (string, error) {
	var sb strings.Builder
	sb.WriteString(baseURL)
	if strings.Contains(baseURL, "?") {
		sb.WriteByte('&')
	} else {
		sb.WriteByte('?')
	}

	sb.WriteString("info_hash=")
	sb.WriteString(percentEncodeBytes(req.InfoHash.Bytes()))
	sb.WriteString("&peer_id=")
	sb.WriteString(percentEncodeBytes(req.PeerID[:]))
	sb.WriteString("&port=")
	sb.WriteString(strconv.Itoa(int(req.Port)))
	sb.WriteString("&downloaded=")
	sb.WriteString(strconv.FormatInt(req.Downloaded, 10))
	sb.WriteString("&uploaded=")
	sb.WriteString(strconv.FormatInt(req.Uploaded, 10))
	sb.WriteString("&left=")
	sb.WriteString(strconv.FormatInt(req.Left, 10))
	sb.WriteString("&compact=1")
	if req.PeerCount != nil {
		sb.WriteString("&numwant=")
		sb.WriteString(strconv.Itoa(*req.PeerCount))
	}
	if req.IP != "" {
		sb.WriteString("&ip=")
		sb.WriteString(url.QueryEscape(req.IP))
	}
	return sb.String(), nil
}
