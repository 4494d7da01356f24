// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

type Option func(*Options)

type Options struct {
	NoFastPath bool
	Verbose    bool
	LogCb      func(format string, args ...any)
}

// WithNoFastPath disables the Unpacker/Packer short-circuit in the
// reflection paths, forcing every type through tag-driven processing.
// Generally not recommended unless consistent behavior across all types is
// needed.
func WithNoFastPath() Option {
	return func(opts *Options) {
		opts.NoFastPath = true
	}
}

// WithVerbose enables detailed logging of the reflection read/write walk.
// Useful for debugging but impacts performance.
func WithVerbose() Option {
	return func(opts *Options) {
		opts.Verbose = true
	}
}

// WithLogCb routes verbose logging through the given printf-style callback
// instead of stdout.
func WithLogCb(logCb func(format string, args ...any)) Option {
	return func(opts *Options) {
		opts.Verbose = true
		opts.LogCb = logCb
	}
}
