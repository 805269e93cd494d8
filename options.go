// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

// Options configures a Message's underlying Stream.
type Options struct {
	// Capacity sets the buffer's capacity in bytes. Zero means DefaultCapacity.
	Capacity int
}

var defaultOptions = Options{
	Capacity: DefaultCapacity,
}

// Option mutates Options; the functional-option pattern used throughout
// this module (see client.Option, server.Option, config.Option).
type Option func(*Options)

// WithCapacity overrides the datagram buffer capacity used by a Message.
func WithCapacity(capacity int) Option {
	return func(o *Options) { o.Capacity = capacity }
}

func resolveOptions(opts []Option) Options {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
