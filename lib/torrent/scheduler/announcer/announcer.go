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

// Package announcer schedules periodic reannounces to a tracker and
// tracks the reannounce interval the tracker asks for.
package announcer

import (
	"time"

	"github.com/andres-erbsen/clock"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/uber/kraken-bittorrent/tracker"
	"github.com/uber/kraken-bittorrent/utils/backoff"
)

// Config defines Announcer configuration.
type Config struct {
	DefaultInterval time.Duration `yaml:"default_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`

	// Retry controls retrying a failed Announce. Its RetryTimeout
	// defaults to 0, meaning an Announce failure is not retried; set it
	// to enable retries against a flaky tracker.
	Retry backoff.Config `yaml:"retry"`
}

func (c Config) applyDefaults() Config {
	if c.DefaultInterval == 0 {
		c.DefaultInterval = 5 * time.Second
	}
	if c.MaxInterval == 0 {
		c.MaxInterval = time.Minute
	}
	if c.Retry.Min == 0 {
		c.Retry.Min = time.Second
	}
	if c.Retry.Max == 0 {
		c.Retry.Max = 10 * time.Second
	}
	return c
}

// Events defines Announcer events.
type Events interface {
	AnnounceTick()
}

// Announcer is a thin wrapper around a tracker.Tracker which handles
// changes to the announce interval.
type Announcer struct {
	config   Config
	tracker  tracker.Tracker
	events   Events
	interval *atomic.Int64
	timer    *clock.Timer
	logger   *zap.SugaredLogger
	retry    *backoff.Backoff
}

// New creates a new Announcer.
func New(
	config Config,
	t tracker.Tracker,
	events Events,
	clk clock.Clock,
	logger *zap.SugaredLogger) *Announcer {
	config = config.applyDefaults()
	return &Announcer{
		config:   config,
		tracker:  t,
		events:   events,
		interval: atomic.NewInt64(int64(config.DefaultInterval)),
		timer:    clk.Timer(config.DefaultInterval),
		logger:   logger,
		retry:    backoff.New(config.Retry),
	}
}

// Default creates a default Announcer.
func Default(
	t tracker.Tracker,
	events Events,
	clk clock.Clock,
	logger *zap.SugaredLogger) *Announcer {
	return New(Config{}, t, events, clk, logger)
}

// Announce executes an announce transaction through the underlying
// tracker, retrying per Config.Retry on failure, and returns the
// resulting response. Updates the announce interval if the tracker's
// reply changed it.
func (a *Announcer) Announce(req tracker.Announce) (*tracker.Response, error) {
	var resp *tracker.Response
	var err error
	attempts := a.retry.Attempts()
	for attempts.WaitForNext() {
		resp, err = a.tracker.Announce(req)
		if err == nil {
			break
		}
		a.logger.Warnf("Announce attempt failed: %s", err)
	}
	if err != nil {
		return nil, err
	}

	interval := resp.Interval
	if interval == 0 {
		// Protect against unset intervals.
		interval = a.config.DefaultInterval
	}
	if interval > a.config.MaxInterval {
		// Since the timer is only reset on ticks, a wildly high interval can lock
		// down future updates to interval. The max interval protects against a
		// mistake in the tracker which will become impossible to correct.
		interval = a.config.DefaultInterval
	}
	if a.interval.Swap(int64(interval)) != int64(interval) {
		// Note: updated interval will take effect after next tick.
		a.logger.Infof("Announce interval updated to %s", interval)
	}
	return resp, nil
}

// Ticker emits AnnounceTick events at the current announce interval, which may be
// updated by Announce. Ticker exits when done is closed.
func (a *Announcer) Ticker(done <-chan struct{}) {
	for {
		select {
		case <-a.timer.C:
			a.events.AnnounceTick()
			a.timer.Reset(time.Duration(a.interval.Load()))
		case <-done:
			return
		}
	}
}
