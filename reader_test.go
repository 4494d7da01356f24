// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll_test

import (
	"errors"
	"testing"

	. "github.com/m4b/scroll"
)

func TestReaderSequence(t *testing.T) {
	src := fromHex("0xdeadbeef" + "3905" + "01" + "ac02" + "68690062")
	r := NewReader(src, BE)

	if v, err := r.Uint32(); err != nil || v != 0xdeadbeef {
		t.Fatalf("uint32: got 0x%x, err %v", v, err)
	}
	if v, err := r.Uint16(); err != nil || v != 0x3905 {
		t.Fatalf("uint16: got 0x%x, err %v", v, err)
	}
	if v, err := r.Bool(); err != nil || !v {
		t.Fatalf("bool: got %v, err %v", v, err)
	}
	if v, err := r.Uleb128(); err != nil || v != 300 {
		t.Fatalf("uleb128: got %d, err %v", v, err)
	}
	if s, err := r.String(Null); err != nil || s != "hi" {
		t.Fatalf("string: got %q, err %v", s, err)
	}
	if err := r.Skip(1); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if v, err := r.Uint8(); err != nil || v != 0x62 {
		t.Fatalf("uint8: got 0x%x, err %v", v, err)
	}
	if r.Len() != 0 {
		t.Errorf("remaining: got %d, want 0", r.Len())
	}
}

func TestReaderFailureKeepsPosition(t *testing.T) {
	r := NewReader(fromHex("0x0102"), LE)

	if _, err := r.Uint32(); !errors.Is(err, ErrBadOffset) {
		t.Fatalf("expected ErrBadOffset, got %v", err)
	}
	if r.Pos() != 0 {
		t.Errorf("position moved on failure: %d", r.Pos())
	}
	if v, err := r.Uint16(); err != nil || v != 0x0201 {
		t.Errorf("recovery read: got 0x%x, err %v", v, err)
	}
}

func TestReaderLimits(t *testing.T) {
	src := fromHex("0x0102030405060708")
	r := NewReader(src, LE)

	r.PushLimit(4)
	if r.Len() != 4 {
		t.Fatalf("limited len: got %d, want 4", r.Len())
	}
	if _, err := r.Uint16(); err != nil {
		t.Fatalf("read within limit failed: %v", err)
	}
	// a read crossing the limit fails
	if _, err := r.Uint32(); !errors.Is(err, ErrBadOffset) {
		t.Fatalf("read across limit: expected ErrBadOffset, got %v", err)
	}

	// nested limits narrow, never widen
	r.PushLimit(100)
	if r.Len() != 2 {
		t.Errorf("nested limit len: got %d, want 2", r.Len())
	}
	r.PopLimit()

	unread := r.PopLimit()
	if unread != 2 {
		t.Errorf("unread within limit: got %d, want 2", unread)
	}
	if r.Len() != 6 {
		t.Errorf("len after pop: got %d, want 6", r.Len())
	}
}

func TestReaderEndianChoice(t *testing.T) {
	src := fromHex("0x0102")

	if v, _ := NewReader(src, BE).Uint16(); v != 0x0102 {
		t.Errorf("big-endian: got 0x%x", v)
	}
	if v, _ := NewReader(src, LE).Uint16(); v != 0x0201 {
		t.Errorf("little-endian: got 0x%x", v)
	}
}

func TestReaderBytesView(t *testing.T) {
	src := []byte("abcdef")
	r := NewReader(src, LE)

	b, err := r.Bytes(StrLen(3))
	if err != nil {
		t.Fatalf("bytes failed: %v", err)
	}
	src[0] = 'X'
	if b[0] != 'X' {
		t.Error("expected the result to alias the source")
	}
	if r.Pos() != 3 {
		t.Errorf("position: got %d, want 3", r.Pos())
	}
}
