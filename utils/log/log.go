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

// Package log wraps a global zap.SugaredLogger so that every package in
// this module logs through one configured instance instead of constructing
// its own.
package log

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	global = NewNopLogger()
)

// Config configures the global logger.
type Config struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Development enables human-readable, stack-trace-on-warn output
	// suitable for local runs instead of the default JSON production
	// encoding.
	Development bool `yaml:"development"`
}

func (c *Config) applyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// NewNopLogger returns a logger that discards everything, used as the
// default global logger before Configure is called and in tests.
func NewNopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// New builds a *zap.SugaredLogger from config without installing it as the
// global logger.
func New(config Config) (*zap.SugaredLogger, error) {
	config.applyDefaults()

	var level zap.AtomicLevel
	if err := level.UnmarshalText([]byte(config.Level)); err != nil {
		return nil, err
	}

	var zconfig zap.Config
	if config.Development {
		zconfig = zap.NewDevelopmentConfig()
	} else {
		zconfig = zap.NewProductionConfig()
	}
	zconfig.Level = level

	logger, err := zconfig.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Configure builds a logger from config and installs it as the global
// logger used by the package-level functions below.
func Configure(config Config) error {
	logger, err := New(config)
	if err != nil {
		return err
	}
	SetGlobalLogger(logger)
	return nil
}

// SetGlobalLogger installs logger as the global logger.
func SetGlobalLogger(logger *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	global = logger
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// With returns a logger with keysAndValues attached as structured fields,
// for a single log line or a component-scoped sub-logger.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return get().With(keysAndValues...)
}

// Sync flushes any buffered log entries.
func Sync() error {
	return get().Sync()
}

// Debug logs args at debug level.
func Debug(args ...interface{}) { get().Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(template string, args ...interface{}) { get().Debugf(template, args...) }

// Info logs args at info level.
func Info(args ...interface{}) { get().Info(args...) }

// Infof logs a formatted message at info level.
func Infof(template string, args ...interface{}) { get().Infof(template, args...) }

// Warn logs args at warn level.
func Warn(args ...interface{}) { get().Warn(args...) }

// Warnf logs a formatted message at warn level.
func Warnf(template string, args ...interface{}) { get().Warnf(template, args...) }

// Error logs args at error level.
func Error(args ...interface{}) { get().Error(args...) }

// Errorf logs a formatted message at error level.
func Errorf(template string, args ...interface{}) { get().Errorf(template, args...) }

// Fatal logs args at fatal level then exits the process.
func Fatal(args ...interface{}) { get().Fatal(args...) }

// Fatalf logs a formatted message at fatal level then exits the process.
func Fatalf(template string, args ...interface{}) { get().Fatalf(template, args...) }
