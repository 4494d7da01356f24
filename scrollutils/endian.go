// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scrollutils

import (
	"encoding/binary"
	"fmt"
)

// Endian selects the byte order used to decode or encode a fixed-width
// numeric value. The width itself is implied by the target type.
type Endian uint8

const (
	LittleEndian Endian = iota
	BigEndian
)

// NativeEndian is the byte order of the host machine. It is the default
// context for fixed-width numeric conversion.
var NativeEndian = func() Endian {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}()

func (e Endian) IsLittle() bool {
	return e == LittleEndian
}

func (e Endian) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// Order returns the encoding/binary byte order for e.
func (e Endian) Order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ---- bounds-checked fixed-width reads ----

func GetUint8(src []byte, offset int) (uint8, error) {
	if offset < 0 || len(src)-offset < 1 {
		return 0, BadOffset(offset, 1, len(src))
	}
	return src[offset], nil
}

func GetUint16(src []byte, offset int, e Endian) (uint16, error) {
	if offset < 0 || len(src)-offset < 2 {
		return 0, BadOffset(offset, 2, len(src))
	}
	return e.Order().Uint16(src[offset:]), nil
}

func GetUint32(src []byte, offset int, e Endian) (uint32, error) {
	if offset < 0 || len(src)-offset < 4 {
		return 0, BadOffset(offset, 4, len(src))
	}
	return e.Order().Uint32(src[offset:]), nil
}

func GetUint64(src []byte, offset int, e Endian) (uint64, error) {
	if offset < 0 || len(src)-offset < 8 {
		return 0, BadOffset(offset, 8, len(src))
	}
	return e.Order().Uint64(src[offset:]), nil
}

// GetBool reads a single byte and requires it to be 0x00 or 0x01.
func GetBool(src []byte, offset int) (bool, error) {
	b, err := GetUint8(src, offset)
	if err != nil {
		return false, err
	}
	if b > 1 {
		return false, fmt.Errorf("%w: invalid bool byte 0x%02x at offset %d", ErrBadInput, b, offset)
	}
	return b == 1, nil
}

// ---- bounds-checked fixed-width writes ----

func PutUint8(dst []byte, offset int, v uint8) error {
	if offset < 0 || len(dst)-offset < 1 {
		return BadOffset(offset, 1, len(dst))
	}
	dst[offset] = v
	return nil
}

func PutUint16(dst []byte, offset int, v uint16, e Endian) error {
	if offset < 0 || len(dst)-offset < 2 {
		return BadOffset(offset, 2, len(dst))
	}
	e.Order().PutUint16(dst[offset:], v)
	return nil
}

func PutUint32(dst []byte, offset int, v uint32, e Endian) error {
	if offset < 0 || len(dst)-offset < 4 {
		return BadOffset(offset, 4, len(dst))
	}
	e.Order().PutUint32(dst[offset:], v)
	return nil
}

func PutUint64(dst []byte, offset int, v uint64, e Endian) error {
	if offset < 0 || len(dst)-offset < 8 {
		return BadOffset(offset, 8, len(dst))
	}
	e.Order().PutUint64(dst[offset:], v)
	return nil
}

func PutBool(dst []byte, offset int, v bool) error {
	if v {
		return PutUint8(dst, offset, 1)
	}
	return PutUint8(dst, offset, 0)
}
