// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll_test

import (
	"errors"
	"math"
	"testing"

	. "github.com/m4b/scroll"
)

func TestPreadEndian(t *testing.T) {
	src := fromHex("0xdeadbeefcafebabe")

	if v, err := PreadWith[uint32](src, 0, BE); err != nil || v != 0xdeadbeef {
		t.Errorf("big-endian uint32: got 0x%x, err %v", v, err)
	}
	if v, err := PreadWith[uint32](src, 0, LE); err != nil || v != 0xefbeadde {
		t.Errorf("little-endian uint32: got 0x%x, err %v", v, err)
	}
	if v, err := PreadWith[uint16](src, 2, BE); err != nil || v != 0xbeef {
		t.Errorf("big-endian uint16 at 2: got 0x%x, err %v", v, err)
	}
	if v, err := PreadWith[uint64](src, 0, BE); err != nil || v != 0xdeadbeefcafebabe {
		t.Errorf("big-endian uint64: got 0x%x, err %v", v, err)
	}
	if v, err := PreadWith[uint8](src, 3, BE); err != nil || v != 0xef {
		t.Errorf("uint8 at 3: got 0x%x, err %v", v, err)
	}
	if v, err := PreadWith[int8](src, 0, LE); err != nil || v != -34 {
		t.Errorf("int8 at 0: got %d, err %v", v, err)
	}
	if v, err := PreadWith[int32](src, 0, BE); err != nil || v != -559038737 {
		t.Errorf("big-endian int32: got %d, err %v", v, err)
	}
}

func TestPreadDefaultContext(t *testing.T) {
	buf := make([]byte, 8)
	if _, err := Pwrite(buf, 0, uint64(0x0102030405060708)); err != nil {
		t.Fatalf("Pwrite failed: %v", err)
	}
	v, err := Pread[uint64](buf, 0)
	if err != nil || v != 0x0102030405060708 {
		t.Errorf("native round trip: got 0x%x, err %v", v, err)
	}
}

func TestPreadFloats(t *testing.T) {
	src := make([]byte, 12)
	if _, err := PwriteWith(src, 0, float32(3.5), LE); err != nil {
		t.Fatalf("Pwrite float32 failed: %v", err)
	}
	if _, err := PwriteWith(src, 4, float64(-1.25), BE); err != nil {
		t.Fatalf("Pwrite float64 failed: %v", err)
	}

	if v, err := PreadWith[float32](src, 0, LE); err != nil || v != 3.5 {
		t.Errorf("float32: got %v, err %v", v, err)
	}
	if v, err := PreadWith[float64](src, 4, BE); err != nil || v != -1.25 {
		t.Errorf("float64: got %v, err %v", v, err)
	}

	if _, err := PwriteWith(src, 0, math.Float32frombits(0x7fc00000), LE); err != nil {
		t.Fatalf("Pwrite NaN failed: %v", err)
	}
	if v, err := PreadWith[float32](src, 0, LE); err != nil || !math.IsNaN(float64(v)) {
		t.Errorf("NaN round trip: got %v, err %v", v, err)
	}
}

func TestPreadBool(t *testing.T) {
	src := []byte{0x00, 0x01, 0x02}

	if v, err := PreadWith[bool](src, 0, LE); err != nil || v {
		t.Errorf("bool at 0: got %v, err %v", v, err)
	}
	if v, err := PreadWith[bool](src, 1, LE); err != nil || !v {
		t.Errorf("bool at 1: got %v, err %v", v, err)
	}
	if _, err := PreadWith[bool](src, 2, LE); !errors.Is(err, ErrBadInput) {
		t.Errorf("bool at 2: expected ErrBadInput, got %v", err)
	}
}

func TestPreadBounds(t *testing.T) {
	src := fromHex("0xdeadbeefcafebabe")

	// last valid offset for each width succeeds, one past fails
	if _, err := PreadWith[uint32](src, len(src)-4, LE); err != nil {
		t.Errorf("uint32 at len-4: unexpected error %v", err)
	}
	if _, err := PreadWith[uint32](src, len(src)-3, LE); !errors.Is(err, ErrBadOffset) {
		t.Errorf("uint32 at len-3: expected ErrBadOffset, got %v", err)
	}
	if _, err := PreadWith[uint64](src, 1, LE); !errors.Is(err, ErrBadOffset) {
		t.Errorf("uint64 at 1: expected ErrBadOffset, got %v", err)
	}
	if _, err := PreadWith[uint8](src, len(src), LE); !errors.Is(err, ErrBadOffset) {
		t.Errorf("uint8 at len: expected ErrBadOffset, got %v", err)
	}
	if _, err := PreadWith[uint16](src, -1, LE); !errors.Is(err, ErrBadOffset) {
		t.Errorf("uint16 at -1: expected ErrBadOffset, got %v", err)
	}
}

func TestPreadNoConversion(t *testing.T) {
	src := fromHex("0x01020304")

	// a chan has no conversion under any built-in context
	if _, err := PreadWith[chan int](src, 0, LE); !errors.Is(err, ErrNoConversion) {
		t.Errorf("chan int: expected ErrNoConversion, got %v", err)
	}
	// integers have no StrCtx conversion
	if _, err := PreadWith[uint32](src, 0, StrLen(4)); !errors.Is(err, ErrNoConversion) {
		t.Errorf("uint32 with StrCtx: expected ErrNoConversion, got %v", err)
	}
	// Varint only pairs with matching signedness
	if _, err := PreadWith[uint32](src, 0, Sleb); !errors.Is(err, ErrNoConversion) {
		t.Errorf("uint32 with Sleb: expected ErrNoConversion, got %v", err)
	}
	if _, err := PreadWith[int32](src, 0, Uleb); !errors.Is(err, ErrNoConversion) {
		t.Errorf("int32 with Uleb: expected ErrNoConversion, got %v", err)
	}
}

func TestPreadBytesAndString(t *testing.T) {
	src := []byte("UserName\x00pass")

	name, err := PreadString(src, 0, Null)
	if err != nil || name != "UserName" {
		t.Errorf("null-delimited string: got %q, err %v", name, err)
	}

	b, err := PreadBytes(src, 0, StrLen(4))
	if err != nil || string(b) != "User" {
		t.Errorf("length-bounded bytes: got %q, err %v", b, err)
	}

	// the view aliases the source
	src[0] = 'X'
	if string(b[:1]) != "X" {
		t.Error("PreadBytes returned a copy, expected a view into src")
	}
}
