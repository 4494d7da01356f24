// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import (
	"math"

	"github.com/m4b/scroll/scrollutils"
)

// Reader walks a byte source sequentially with an internal cursor and a
// fixed byte order chosen at construction. Every accessor reads at the
// current position and advances by the number of bytes consumed; on
// failure the position is left unchanged. A Reader is not safe for
// concurrent use; give each goroutine its own Reader over the shared
// source instead.
type Reader struct {
	buffer    []byte
	limits    []int
	lastLimit int
	position  int
	endian    Endian
}

// NewReader returns a Reader over buffer decoding fixed-width values in
// the given byte order.
func NewReader(buffer []byte, endian Endian) *Reader {
	return &Reader{
		buffer:    buffer,
		limits:    make([]int, 0, 8),
		lastLimit: len(buffer),
		endian:    endian,
	}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int {
	return r.position
}

// Len returns the number of bytes remaining before the active limit.
func (r *Reader) Len() int {
	return r.lastLimit - r.position
}

// PushLimit caps subsequent reads to the next limit bytes. Limits nest;
// an inner limit never exceeds the outer one.
func (r *Reader) PushLimit(limit int) {
	limitPos := r.position + limit
	if limitPos > r.lastLimit {
		limitPos = r.lastLimit
	}
	r.limits = append(r.limits, limitPos)
	r.lastLimit = limitPos
}

// PopLimit removes the innermost limit and returns the number of bytes
// that were left unread within it.
func (r *Reader) PopLimit() int {
	n := len(r.limits)
	if n == 0 {
		return 0
	}
	limit := r.limits[n-1]
	if n == 1 {
		r.lastLimit = len(r.buffer)
	} else {
		r.lastLimit = r.limits[n-2]
	}
	r.limits = r.limits[:n-1]
	return limit - r.position
}

// Skip advances the cursor by n bytes without interpreting them.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.Len() < n {
		return scrollutils.BadOffset(r.position, n, r.lastLimit)
	}
	r.position += n
	return nil
}

// window returns the readable view up to the active limit.
func (r *Reader) window() []byte {
	return r.buffer[:r.lastLimit]
}

func (r *Reader) Bool() (bool, error) {
	v, err := scrollutils.GetBool(r.window(), r.position)
	if err != nil {
		return false, err
	}
	r.position++
	return v, nil
}

func (r *Reader) Uint8() (uint8, error) {
	v, err := scrollutils.GetUint8(r.window(), r.position)
	if err != nil {
		return 0, err
	}
	r.position++
	return v, nil
}

func (r *Reader) Uint16() (uint16, error) {
	v, err := scrollutils.GetUint16(r.window(), r.position, r.endian)
	if err != nil {
		return 0, err
	}
	r.position += 2
	return v, nil
}

func (r *Reader) Uint32() (uint32, error) {
	v, err := scrollutils.GetUint32(r.window(), r.position, r.endian)
	if err != nil {
		return 0, err
	}
	r.position += 4
	return v, nil
}

func (r *Reader) Uint64() (uint64, error) {
	v, err := scrollutils.GetUint64(r.window(), r.position, r.endian)
	if err != nil {
		return 0, err
	}
	r.position += 8
	return v, nil
}

func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	return math.Float32frombits(v), err
}

func (r *Reader) Float64() (float64, error) {
	v, err := r.Uint64()
	return math.Float64frombits(v), err
}

// Uleb128 decodes an unsigned LEB128 integer at the cursor.
func (r *Reader) Uleb128() (uint64, error) {
	v, n, err := scrollutils.DecodeUleb128(r.window(), r.position, 64)
	if err != nil {
		return 0, err
	}
	r.position += n
	return v, nil
}

// Sleb128 decodes a signed LEB128 integer at the cursor.
func (r *Reader) Sleb128() (int64, error) {
	v, n, err := scrollutils.DecodeSleb128(r.window(), r.position, 64)
	if err != nil {
		return 0, err
	}
	r.position += n
	return v, nil
}

// Bytes extracts a byte slice view at the cursor according to ctx. The
// result aliases the source.
func (r *Reader) Bytes(ctx StrCtx) ([]byte, error) {
	b, n, err := preadBytes(r.window(), r.position, ctx)
	if err != nil {
		return nil, err
	}
	r.position += n
	return b, nil
}

// String extracts a UTF-8 text view at the cursor according to ctx.
func (r *Reader) String(ctx StrCtx) (string, error) {
	s, n, err := preadString(r.window(), r.position, ctx)
	if err != nil {
		return "", err
	}
	r.position += n
	return s, nil
}
