// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll_test

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/m4b/scroll"
)

func TestGwriteAdvances(t *testing.T) {
	buf := make([]byte, 8)
	offset := 0

	if err := GwriteWith(buf, &offset, uint32(0xdeadbeef), BE); err != nil {
		t.Fatalf("uint32 write failed: %v", err)
	}
	if offset != 4 {
		t.Fatalf("offset after uint32: got %d, want 4", offset)
	}
	if err := GwriteWith(buf, &offset, uint32(0xcafebabe), BE); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if offset != 8 {
		t.Fatalf("offset after second write: got %d, want 8", offset)
	}
	if !bytes.Equal(buf, fromHex("0xdeadbeefcafebabe")) {
		t.Errorf("buffer: got %x", buf)
	}
}

func TestGwriteFailureKeepsOffset(t *testing.T) {
	buf := make([]byte, 6)
	offset := 4

	if err := GwriteWith(buf, &offset, uint32(1), LE); !errors.Is(err, ErrBadOffset) {
		t.Fatalf("expected ErrBadOffset, got %v", err)
	}
	if offset != 4 {
		t.Errorf("offset changed on failure: got %d, want 4", offset)
	}
	if err := GwriteWith(buf, &offset, uint16(0xbeef), BE); err != nil {
		t.Errorf("recovery write failed: %v", err)
	}
}

func TestGwriteMixed(t *testing.T) {
	buf := make([]byte, 32)
	offset := 0

	if err := GwriteString(buf, &offset, "hdr:"); err != nil {
		t.Fatalf("string write failed: %v", err)
	}
	if err := GwriteWith(buf, &offset, uint32(300), Uleb); err != nil {
		t.Fatalf("varint write failed: %v", err)
	}
	if err := GwriteBytes(buf, &offset, []byte{0xff, 0xfe}); err != nil {
		t.Fatalf("bytes write failed: %v", err)
	}

	want := append([]byte("hdr:"), 0xac, 0x02, 0xff, 0xfe)
	if !bytes.Equal(buf[:offset], want) {
		t.Errorf("buffer: got %x, want %x", buf[:offset], want)
	}
}
