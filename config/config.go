// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config holds the functional-option surface shared by the client
// and server packages, plus an optional file/env loader for embedders that
// prefer a config file over wiring options in code. The functional-option
// pattern mirrors this module's own root-level options.go; the file/env
// loader is built on github.com/spf13/viper, the configuration library
// used throughout nabbar-golib.
package config

import (
	"time"

	"go.uber.org/zap"
)

// Options configures a Client or Server. Both packages keep a copy of this
// struct and re-export Option through a type alias so callers import one
// package, not two.
type Options struct {
	// Name is the client's human-readable identity sent during handshake.
	// Unused by Server.
	Name string

	// BufferCapacity sets the datagram buffer capacity in bytes. Zero
	// means netmsg.DefaultCapacity (512).
	BufferCapacity int

	// PongInterval and PingInterval set the Server's heartbeat windows.
	// Unused by Client. Zero values disable the heartbeat.
	PongInterval time.Duration
	PingInterval time.Duration

	// TagRegistration, when true, makes the Client send a
	// ClientMessageTagRegistration message right after a successful
	// handshake, declaring RegisteredTags.
	TagRegistration bool
	RegisteredTags  []uint16

	// StartID is the first id the Server's allocator hands out.
	StartID int16

	// Logger replaces the process-wide structured logger
	// (internal/netlog) when the Client or Server is constructed; the
	// replacement stays in effect for the whole process, not just that
	// Client/Server. Nil keeps the current process-wide logger.
	Logger *zap.SugaredLogger
}

// Default returns the zero-value-safe baseline: no name, default buffer
// capacity is applied by the caller (Client/Server treat 0 as "use
// netmsg.DefaultCapacity"), heartbeat disabled, id allocation from 0.
func Default() Options {
	return Options{}
}

// Option mutates Options.
type Option func(*Options)

// Apply folds opts onto a copy of Default() and returns the result.
func Apply(opts ...Option) Options {
	o := Default()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithName sets the client's handshake name.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithBufferCapacity overrides the datagram buffer capacity.
func WithBufferCapacity(capacity int) Option {
	return func(o *Options) { o.BufferCapacity = capacity }
}

// WithHeartbeat sets the server's pong/ping windows.
func WithHeartbeat(pongInterval, pingInterval time.Duration) Option {
	return func(o *Options) {
		o.PongInterval = pongInterval
		o.PingInterval = pingInterval
	}
}

// WithTagRegistration opts a Client into sending a
// ClientMessageTagRegistration message for the given tags right after
// handshake.
func WithTagRegistration(tags ...uint16) Option {
	return func(o *Options) {
		o.TagRegistration = true
		o.RegisteredTags = tags
	}
}

// WithStartID sets the server's first allocated client id.
func WithStartID(id int16) Option {
	return func(o *Options) { o.StartID = id }
}

// WithLogger sets the logger that replaces the process-wide structured
// logger when the Client or Server is constructed.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *Options) { o.Logger = l }
}
