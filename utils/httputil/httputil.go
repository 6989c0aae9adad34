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

// Package httputil provides a small wrapper around net/http for making
// requests with accepted status codes, retries and timeouts configured via
// functional options.
package httputil

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
)

// StatusError occurs when a request was successfully sent, but the
// response's status code does not match the set of accepted codes.
type StatusError struct {
	Method       string
	URL          string
	Status       int
	ResponseDump string
}

func (e StatusError) Error() string {
	return fmt.Sprintf(
		"%s request to %s failed with status %d: %s",
		e.Method, e.URL, e.Status, e.ResponseDump)
}

// IsStatus returns true if err is a StatusError with the given status code.
func IsStatus(err error, status int) bool {
	se, ok := err.(StatusError)
	return ok && se.Status == status
}

// IsNotFound returns true if err is a 404 StatusError.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// NetworkError occurs when a request could not be sent because of a
// transport-level failure (DNS, connection refused, timeout, and so on).
type NetworkError struct {
	err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.err)
}

// IsNetworkError returns true if err is a NetworkError.
func IsNetworkError(err error) bool {
	_, ok := err.(NetworkError)
	return ok
}

type sendOptions struct {
	codes     map[int]bool
	timeout   time.Duration
	transport http.RoundTripper
	retry     retryOptions
}

func defaultSendOptions() *sendOptions {
	return &sendOptions{
		codes:     map[int]bool{http.StatusOK: true},
		transport: http.DefaultTransport,
	}
}

// SendOption configures a Get/Post call.
type SendOption func(*sendOptions)

// SendAcceptedCodes adds codes to the set of status codes that do not
// result in a StatusError.
func SendAcceptedCodes(codes ...int) SendOption {
	return func(o *sendOptions) {
		for _, c := range codes {
			o.codes[c] = true
		}
	}
}

// SendTimeout sets the per-attempt request timeout.
func SendTimeout(timeout time.Duration) SendOption {
	return func(o *sendOptions) { o.timeout = timeout }
}

// SendTransport overrides the http.RoundTripper used to send the request.
func SendTransport(t http.RoundTripper) SendOption {
	return func(o *sendOptions) { o.transport = t }
}

// SendRetry enables retrying the request on transport errors and on
// non-accepted status codes matching RetryCodes (5XX by default).
func SendRetry(opts ...RetryOption) SendOption {
	return func(o *sendOptions) {
		o.retry = defaultRetryOptions()
		for _, opt := range opts {
			opt(&o.retry)
		}
	}
}

type retryOptions struct {
	backoff backoff.BackOff
	codes   map[int]bool
}

func defaultRetryOptions() retryOptions {
	return retryOptions{
		backoff: backoff.NewConstantBackOff(time.Second),
	}
}

// RetryOption configures a SendRetry policy.
type RetryOption func(*retryOptions)

// RetryBackoff overrides the backoff.BackOff used between retries.
func RetryBackoff(b backoff.BackOff) RetryOption {
	return func(o *retryOptions) { o.backoff = b }
}

// RetryCodes adds status codes that should trigger a retry in addition to
// the default 5XX range.
func RetryCodes(codes ...int) RetryOption {
	return func(o *retryOptions) {
		if o.codes == nil {
			o.codes = make(map[int]bool)
		}
		for _, c := range codes {
			o.codes[c] = true
		}
	}
}

func (o retryOptions) shouldRetry(status int) bool {
	if status >= 500 {
		return true
	}
	return o.codes[status]
}

// Get sends a GET request to url.
func Get(url string, opts ...SendOption) (*http.Response, error) {
	return send(http.MethodGet, url, opts...)
}

// Post sends a POST request to url.
func Post(url string, opts ...SendOption) (*http.Response, error) {
	return send(http.MethodPost, url, opts...)
}

func send(method, url string, opts ...SendOption) (*http.Response, error) {
	o := defaultSendOptions()
	for _, opt := range opts {
		opt(o)
	}

	client := &http.Client{Transport: o.transport, Timeout: o.timeout}

	if o.retry.backoff == nil {
		return do(client, method, url, o)
	}

	var resp *http.Response
	var lastErr error
	b := o.retry.backoff
	for {
		resp, lastErr = do(client, method, url, o)
		if lastErr == nil {
			return resp, nil
		}
		if serr, ok := lastErr.(StatusError); ok && !o.retry.shouldRetry(serr.Status) {
			return nil, lastErr
		}
		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return nil, lastErr
		}
		time.Sleep(wait)
	}
}

func do(client *http.Client, method, url string, o *sendOptions) (*http.Response, error) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %s", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		if nerr, ok := err.(net.Error); ok {
			return nil, NetworkError{nerr}
		}
		return nil, NetworkError{err}
	}

	if !o.codes[resp.StatusCode] {
		defer resp.Body.Close()
		dump, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, StatusError{
			Method:       method,
			URL:          url,
			Status:       resp.StatusCode,
			ResponseDump: string(dump),
		}
	}
	return resp, nil
}

// PollAccepted polls url with Get until the response status is no longer
// http.StatusAccepted, using b to back off between polls.
func PollAccepted(url string, b backoff.BackOff, opts ...SendOption) (*http.Response, error) {
	opts = append(opts, SendAcceptedCodes(http.StatusAccepted))
	for {
		resp, err := Get(url, opts...)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusAccepted {
			return resp, nil
		}
		resp.Body.Close()
		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return nil, fmt.Errorf("polling %s timed out", url)
		}
		time.Sleep(wait)
	}
}
