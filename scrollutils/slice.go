// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scrollutils

import (
	"fmt"
	"unicode/utf8"
	"unsafe"
)

// GetBytes returns a view of n bytes of src starting at offset. The result
// aliases src; it is not a copy and must not outlive the source.
func GetBytes(src []byte, offset, n int) ([]byte, error) {
	// n > len(src)-offset instead of offset+n > len(src): the sum can
	// overflow for adversarial lengths
	if offset < 0 || n < 0 || offset > len(src) || n > len(src)-offset {
		return nil, BadOffset(offset, n, len(src))
	}
	return src[offset : offset+n : offset+n], nil
}

// GetString returns n bytes of src starting at offset as a string view.
// The bytes must be valid UTF-8. Like GetBytes, the result aliases the
// source storage without copying; mutating the underlying bytes afterwards
// results in undefined string contents.
func GetString(src []byte, offset, n int) (string, error) {
	b, err := GetBytes(src, offset, n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: invalid utf-8 at offset %d size %d", ErrBadInput, offset, n)
	}
	if len(b) == 0 {
		return "", nil
	}
	return unsafe.String(&b[0], len(b)), nil
}

// PutBytes copies v into dst starting at offset and returns the number of
// bytes written.
func PutBytes(dst []byte, offset int, v []byte) (int, error) {
	if offset < 0 || offset > len(dst) || len(v) > len(dst)-offset {
		return 0, BadOffset(offset, len(v), len(dst))
	}
	copy(dst[offset:], v)
	return len(v), nil
}

// ZeroBytes zeroes n bytes of dst starting at offset.
func ZeroBytes(dst []byte, offset, n int) error {
	if offset < 0 || n < 0 || offset > len(dst) || n > len(dst)-offset {
		return BadOffset(offset, n, len(dst))
	}
	clear(dst[offset : offset+n])
	return nil
}
