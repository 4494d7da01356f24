// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scrollutils

import "fmt"

const (
	continuationBit = 0x80
	signBit         = 0x40
)

// DecodeUleb128 decodes an unsigned LEB128 integer of at most bits bits
// starting at src[offset]. Byte i contributes its low 7 bits at shift 7*i;
// a set high bit means more bytes follow. It returns the value and the
// number of bytes consumed.
//
// ErrBadOffset is returned when the source is exhausted before a
// terminating byte, ErrBadInput when the accumulated value would exceed
// the target width.
func DecodeUleb128(src []byte, offset int, bits uint) (uint64, int, error) {
	if offset < 0 {
		return 0, 0, BadOffset(offset, 1, len(src))
	}
	var result uint64
	var shift uint
	count := 0
	for {
		if offset+count >= len(src) {
			return 0, 0, fmt.Errorf("%w: unterminated uleb128 at offset %d (len %d)", ErrBadOffset, offset, len(src))
		}
		b := src[offset+count]
		count++
		low := uint64(b &^ continuationBit)
		switch {
		case shift >= bits:
			if low != 0 {
				return 0, 0, fmt.Errorf("%w: uleb128 at offset %d overflows %d bits", ErrBadInput, offset, bits)
			}
		case shift+7 > bits:
			if low>>(bits-shift) != 0 {
				return 0, 0, fmt.Errorf("%w: uleb128 at offset %d overflows %d bits", ErrBadInput, offset, bits)
			}
			result |= low << shift
		default:
			result |= low << shift
		}
		if b&continuationBit == 0 {
			return result, count, nil
		}
		shift += 7
	}
}

// DecodeSleb128 decodes a signed LEB128 integer of at most bits bits
// starting at src[offset]. The value is sign-extended from bit 6 of the
// last contributing byte. Error conditions mirror DecodeUleb128.
func DecodeSleb128(src []byte, offset int, bits uint) (int64, int, error) {
	if offset < 0 {
		return 0, 0, BadOffset(offset, 1, len(src))
	}
	var result int64
	var shift uint
	var b byte
	count := 0
	maxBytes := int((bits + 6) / 7)
	for {
		if offset+count >= len(src) {
			return 0, 0, fmt.Errorf("%w: unterminated sleb128 at offset %d (len %d)", ErrBadOffset, offset, len(src))
		}
		b = src[offset+count]
		count++
		result |= int64(b&^continuationBit) << shift
		shift += 7
		if b&continuationBit == 0 {
			break
		}
		if count == maxBytes {
			return 0, 0, fmt.Errorf("%w: sleb128 at offset %d overflows %d bits", ErrBadInput, offset, bits)
		}
	}
	if shift < 64 && b&signBit != 0 {
		result |= ^int64(0) << shift
	}
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if result >= limit || result < -limit {
			return 0, 0, fmt.Errorf("%w: sleb128 at offset %d overflows %d bits", ErrBadInput, offset, bits)
		}
	}
	return result, count, nil
}

// AppendUleb128 appends the minimal unsigned LEB128 encoding of v to dst.
func AppendUleb128(dst []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= continuationBit
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// AppendSleb128 appends the minimal signed LEB128 encoding of v to dst.
func AppendSleb128(dst []byte, v int64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&signBit == 0) || (v == -1 && b&signBit != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|continuationBit)
	}
}

// Uleb128Size returns the number of bytes the minimal encoding of v uses.
func Uleb128Size(v uint64) int {
	n := 1
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}

// Sleb128Size returns the number of bytes the minimal encoding of v uses.
func Sleb128Size(v int64) int {
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		n++
		if (v == 0 && b&signBit == 0) || (v == -1 && b&signBit != 0) {
			return n
		}
	}
}
