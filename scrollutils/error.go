// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scrollutils

import "fmt"

var (
	// ErrBadOffset is returned when a requested byte range exceeds the
	// bounds of the source. It is always recoverable; typically the caller
	// stops iterating or reports truncated input.
	ErrBadOffset = fmt.Errorf("bad offset")

	// ErrBadInput is returned when the bytes are in range but do not form a
	// valid instance of the requested type under the given context, e.g. a
	// LEB128 encoding that overflows the target width or text that is not
	// valid UTF-8.
	ErrBadInput = fmt.Errorf("bad input")

	// ErrNoConversion is returned when no conversion exists for a
	// (target type, context type) pair.
	ErrNoConversion = fmt.Errorf("no conversion")
)

// BadOffset returns an ErrBadOffset describing an out-of-range access of
// size bytes at offset into a source of srcLen bytes.
func BadOffset(offset, size, srcLen int) error {
	return fmt.Errorf("%w: offset %d size %d len %d", ErrBadOffset, offset, size, srcLen)
}
