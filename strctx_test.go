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

func TestStrLen(t *testing.T) {
	src := []byte("hello, world")

	s, err := PreadString(src, 7, StrLen(5))
	if err != nil || s != "world" {
		t.Errorf("got %q, err %v", s, err)
	}

	if _, err := PreadString(src, 7, StrLen(6)); !errors.Is(err, ErrBadOffset) {
		t.Errorf("expected ErrBadOffset past end, got %v", err)
	}

	if s, err := PreadString(src, 3, StrLen(0)); err != nil || s != "" {
		t.Errorf("zero length: got %q, err %v", s, err)
	}
}

func TestStrDelim(t *testing.T) {
	src := []byte("key=value\x00tail")

	k, err := PreadString(src, 0, StrDelim('='))
	if err != nil || k != "key" {
		t.Errorf("key: got %q, err %v", k, err)
	}

	v, err := PreadString(src, 4, Null)
	if err != nil || v != "value" {
		t.Errorf("value: got %q, err %v", v, err)
	}

	// no delimiter found runs to the end of the source
	tail, err := PreadString(src, 10, Null)
	if err != nil || tail != "tail" {
		t.Errorf("tail: got %q, err %v", tail, err)
	}
}

func TestStrDelimUntil(t *testing.T) {
	src := []byte("abcdef")

	// delimiter within the bound
	s, err := PreadString([]byte("ab\x00def"), 0, StrDelimUntil(0, 5))
	if err != nil || s != "ab" {
		t.Errorf("bounded with delimiter: got %q, err %v", s, err)
	}

	// no delimiter: the full bound is taken
	s, err = PreadString(src, 0, StrDelimUntil(0, 4))
	if err != nil || s != "abcd" {
		t.Errorf("bounded without delimiter: got %q, err %v", s, err)
	}

	// bound exceeding the source fails instead of truncating
	if _, err := PreadString(src, 4, StrDelimUntil(0, 4)); !errors.Is(err, ErrBadOffset) {
		t.Errorf("bound past end: expected ErrBadOffset, got %v", err)
	}
}

func TestStrHostileLengths(t *testing.T) {
	src := []byte("abcdef")

	// lengths near the int limit must fail cleanly, not wrap around in
	// the bounds arithmetic
	if _, err := PreadBytes(src, 1, StrLen(math.MaxInt)); !errors.Is(err, ErrBadOffset) {
		t.Errorf("StrLen(MaxInt): expected ErrBadOffset, got %v", err)
	}
	if _, err := PreadString(src, 1, StrLen(math.MaxInt)); !errors.Is(err, ErrBadOffset) {
		t.Errorf("string StrLen(MaxInt): expected ErrBadOffset, got %v", err)
	}
	if _, err := PreadBytes(src, 0, StrLen(-1)); !errors.Is(err, ErrBadOffset) {
		t.Errorf("StrLen(-1): expected ErrBadOffset, got %v", err)
	}
	if _, err := PreadBytes(src, 1, StrDelimUntil(0, math.MaxInt)); !errors.Is(err, ErrBadOffset) {
		t.Errorf("StrDelimUntil(MaxInt): expected ErrBadOffset, got %v", err)
	}
	if _, err := PreadBytes(src, 1, StrDelimUntil(0, -1)); !errors.Is(err, ErrBadOffset) {
		t.Errorf("StrDelimUntil(-1): expected ErrBadOffset, got %v", err)
	}
}

func TestStrInvalidUtf8(t *testing.T) {
	src := []byte{'a', 0xff, 0xfe, 'b'}

	if _, err := PreadString(src, 0, StrLen(4)); !errors.Is(err, ErrBadInput) {
		t.Errorf("expected ErrBadInput for invalid utf-8, got %v", err)
	}

	// the same bytes are fine as a raw slice
	if b, err := PreadBytes(src, 0, StrLen(4)); err != nil || len(b) != 4 {
		t.Errorf("bytes: got %x, err %v", b, err)
	}
}

func TestStrCtxViaGenericRead(t *testing.T) {
	src := []byte("UserName\x00")

	s, err := PreadWith[string](src, 0, Null)
	if err != nil || s != "UserName" {
		t.Errorf("string target: got %q, err %v", s, err)
	}

	b, err := PreadWith[[]byte](src, 0, StrLen(4))
	if err != nil || string(b) != "User" {
		t.Errorf("byte slice target: got %q, err %v", b, err)
	}
}

func TestBytesZeroCopy(t *testing.T) {
	src := make([]byte, 16)
	copy(src, "window")

	b, err := PreadBytes(src, 0, StrLen(6))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	src[0] = 'W'
	if b[0] != 'W' {
		t.Error("expected the result to alias the source")
	}

	// the view has no spare capacity to stomp the source through
	b = append(b, '!')
	if src[6] != 0 {
		t.Error("append through the view clobbered the source")
	}
}
