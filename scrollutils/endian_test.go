// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scrollutils

import (
	"errors"
	"math"
	"testing"

	"github.com/maxatome/go-testdeep/td"
)

func TestGetFixedWidth(t *testing.T) {
	src := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	v8, err := GetUint8(src, 0)
	td.CmpNoError(t, err)
	td.Cmp(t, v8, uint8(0x01))

	v16, err := GetUint16(src, 0, BigEndian)
	td.CmpNoError(t, err)
	td.Cmp(t, v16, uint16(0x0102))

	v16, err = GetUint16(src, 0, LittleEndian)
	td.CmpNoError(t, err)
	td.Cmp(t, v16, uint16(0x0201))

	v32, err := GetUint32(src, 2, BigEndian)
	td.CmpNoError(t, err)
	td.Cmp(t, v32, uint32(0x03040506))

	v64, err := GetUint64(src, 0, LittleEndian)
	td.CmpNoError(t, err)
	td.Cmp(t, v64, uint64(0x0807060504030201))
}

func TestGetBounds(t *testing.T) {
	src := []byte{1, 2, 3}

	_, err := GetUint32(src, 0, LittleEndian)
	td.CmpTrue(t, errors.Is(err, ErrBadOffset))

	_, err = GetUint16(src, 2, LittleEndian)
	td.CmpTrue(t, errors.Is(err, ErrBadOffset))

	_, err = GetUint8(src, -1)
	td.CmpTrue(t, errors.Is(err, ErrBadOffset))

	_, err = GetUint8(src, 3)
	td.CmpTrue(t, errors.Is(err, ErrBadOffset))

	// offsets near the int limit must not overflow the bounds check
	_, err = GetUint64(src, math.MaxInt-3, LittleEndian)
	td.CmpTrue(t, errors.Is(err, ErrBadOffset))

	_, err = GetUint16(src, math.MaxInt, LittleEndian)
	td.CmpTrue(t, errors.Is(err, ErrBadOffset))
}

func TestGetBool(t *testing.T) {
	src := []byte{0x00, 0x01, 0x2a}

	v, err := GetBool(src, 0)
	td.CmpNoError(t, err)
	td.CmpFalse(t, v)

	v, err = GetBool(src, 1)
	td.CmpNoError(t, err)
	td.CmpTrue(t, v)

	_, err = GetBool(src, 2)
	td.CmpTrue(t, errors.Is(err, ErrBadInput))
}

func TestPutFixedWidth(t *testing.T) {
	dst := make([]byte, 8)

	td.CmpNoError(t, PutUint16(dst, 0, 0x0102, BigEndian))
	td.Cmp(t, dst[:2], []byte{0x01, 0x02})

	td.CmpNoError(t, PutUint16(dst, 0, 0x0102, LittleEndian))
	td.Cmp(t, dst[:2], []byte{0x02, 0x01})

	td.CmpNoError(t, PutUint32(dst, 4, 0xdeadbeef, BigEndian))
	td.Cmp(t, dst[4:], []byte{0xde, 0xad, 0xbe, 0xef})

	td.CmpNoError(t, PutUint64(dst, 0, 0x0102030405060708, LittleEndian))
	td.Cmp(t, dst, []byte{8, 7, 6, 5, 4, 3, 2, 1})

	td.CmpNoError(t, PutBool(dst, 0, true))
	td.Cmp(t, dst[0], byte(1))
}

func TestPutBounds(t *testing.T) {
	dst := make([]byte, 3)

	td.CmpTrue(t, errors.Is(PutUint32(dst, 0, 1, LittleEndian), ErrBadOffset))
	td.CmpTrue(t, errors.Is(PutUint16(dst, 2, 1, LittleEndian), ErrBadOffset))
	td.CmpTrue(t, errors.Is(PutUint8(dst, -1, 1), ErrBadOffset))
	td.CmpTrue(t, errors.Is(PutUint64(dst, math.MaxInt-3, 1, LittleEndian), ErrBadOffset))
	td.Cmp(t, dst, []byte{0, 0, 0})
}

func TestNativeEndianIsConsistent(t *testing.T) {
	// whatever the host order is, a native write must read back natively
	dst := make([]byte, 2)
	td.CmpNoError(t, PutUint16(dst, 0, 0x0102, NativeEndian))
	v, err := GetUint16(dst, 0, NativeEndian)
	td.CmpNoError(t, err)
	td.Cmp(t, v, uint16(0x0102))

	td.CmpTrue(t, NativeEndian == LittleEndian || NativeEndian == BigEndian)
}

func TestEndianString(t *testing.T) {
	td.Cmp(t, LittleEndian.String(), "little")
	td.Cmp(t, BigEndian.String(), "big")
	td.CmpTrue(t, LittleEndian.IsLittle())
	td.CmpFalse(t, BigEndian.IsLittle())
}
