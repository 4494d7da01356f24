// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import (
	"math"

	"github.com/m4b/scroll/scrollutils"
)

// Writer fills a byte destination sequentially with an internal cursor and
// a fixed byte order chosen at construction. The destination is never
// resized; a write that does not fit fails with ErrBadOffset and leaves
// the cursor unchanged. Not safe for concurrent use.
type Writer struct {
	buffer   []byte
	position int
	endian   Endian
}

// NewWriter returns a Writer over buffer encoding fixed-width values in
// the given byte order.
func NewWriter(buffer []byte, endian Endian) *Writer {
	return &Writer{buffer: buffer, endian: endian}
}

// Pos returns the current cursor position.
func (w *Writer) Pos() int {
	return w.position
}

// Len returns the number of bytes remaining in the destination.
func (w *Writer) Len() int {
	return len(w.buffer) - w.position
}

// Buffer returns the written prefix of the destination.
func (w *Writer) Buffer() []byte {
	return w.buffer[:w.position]
}

func (w *Writer) Bool(v bool) error {
	if err := scrollutils.PutBool(w.buffer, w.position, v); err != nil {
		return err
	}
	w.position++
	return nil
}

func (w *Writer) Uint8(v uint8) error {
	if err := scrollutils.PutUint8(w.buffer, w.position, v); err != nil {
		return err
	}
	w.position++
	return nil
}

func (w *Writer) Uint16(v uint16) error {
	if err := scrollutils.PutUint16(w.buffer, w.position, v, w.endian); err != nil {
		return err
	}
	w.position += 2
	return nil
}

func (w *Writer) Uint32(v uint32) error {
	if err := scrollutils.PutUint32(w.buffer, w.position, v, w.endian); err != nil {
		return err
	}
	w.position += 4
	return nil
}

func (w *Writer) Uint64(v uint64) error {
	if err := scrollutils.PutUint64(w.buffer, w.position, v, w.endian); err != nil {
		return err
	}
	w.position += 8
	return nil
}

func (w *Writer) Int8(v int8) error {
	return w.Uint8(uint8(v))
}

func (w *Writer) Int16(v int16) error {
	return w.Uint16(uint16(v))
}

func (w *Writer) Int32(v int32) error {
	return w.Uint32(uint32(v))
}

func (w *Writer) Int64(v int64) error {
	return w.Uint64(uint64(v))
}

func (w *Writer) Float32(v float32) error {
	return w.Uint32(math.Float32bits(v))
}

func (w *Writer) Float64(v float64) error {
	return w.Uint64(math.Float64bits(v))
}

// Uleb128 emits the minimal unsigned LEB128 encoding of v at the cursor
// and returns the number of bytes written.
func (w *Writer) Uleb128(v uint64) (int, error) {
	var buf [10]byte
	n, err := scrollutils.PutBytes(w.buffer, w.position, scrollutils.AppendUleb128(buf[:0], v))
	if err != nil {
		return 0, err
	}
	w.position += n
	return n, nil
}

// Sleb128 emits the minimal signed LEB128 encoding of v at the cursor and
// returns the number of bytes written.
func (w *Writer) Sleb128(v int64) (int, error) {
	var buf [10]byte
	n, err := scrollutils.PutBytes(w.buffer, w.position, scrollutils.AppendSleb128(buf[:0], v))
	if err != nil {
		return 0, err
	}
	w.position += n
	return n, nil
}

// Bytes copies v to the cursor.
func (w *Writer) Bytes(v []byte) error {
	n, err := scrollutils.PutBytes(w.buffer, w.position, v)
	if err != nil {
		return err
	}
	w.position += n
	return nil
}

// String copies the bytes of v to the cursor.
func (w *Writer) String(v string) error {
	return w.Bytes([]byte(v))
}

// Skip zeroes n bytes at the cursor and advances past them.
func (w *Writer) Skip(n int) error {
	if err := scrollutils.ZeroBytes(w.buffer, w.position, n); err != nil {
		return err
	}
	w.position += n
	return nil
}
