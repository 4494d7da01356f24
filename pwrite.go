// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import (
	"fmt"
	"math"

	"github.com/m4b/scroll/scrollutils"
)

// Pwrite writes a fixed-width value into dst at offset using the default
// context, the host machine's byte order, and returns the number of bytes
// written. The destination is mutated in place and never resized; a write
// that does not fit fails with ErrBadOffset. The caller must hold
// exclusive access to dst for the duration of the write.
func Pwrite[T Fixed](dst []byte, offset int, v T) (int, error) {
	return PwriteWith(dst, offset, v, NATIVE)
}

// PwriteWith writes a value into dst at offset using the given context,
// returning the number of bytes written. Dispatch mirrors PreadWith: a
// TryIntoCtx implementation for the context type wins, then the built-in
// contexts, then the reflection engine for Endian contexts.
func PwriteWith[T any, C any](dst []byte, offset int, v T, ctx C) (int, error) {
	if p, ok := any(v).(Packer[C]); ok {
		return packInto(p, dst, offset, ctx)
	}
	if p, ok := any(&v).(Packer[C]); ok {
		return packInto(p, dst, offset, ctx)
	}
	switch c := any(ctx).(type) {
	case Endian:
		n, handled, err := writeFixed(v, dst, offset, c)
		if err != nil {
			return 0, err
		}
		if handled {
			return n, nil
		}
		return GetGlobalScroll().WriteAt(v, dst, offset, c)
	case Varint:
		return writeVarint(v, dst, offset, c)
	case StrCtx:
		switch s := any(v).(type) {
		case []byte:
			return scrollutils.PutBytes(dst, offset, s)
		case string:
			return scrollutils.PutBytes(dst, offset, []byte(s))
		}
	}
	return 0, fmt.Errorf("%w: cannot write %T with context %T", ErrNoConversion, v, ctx)
}

// PwriteBytes copies v into dst at offset, returning the number of bytes
// written.
func PwriteBytes(dst []byte, offset int, v []byte) (int, error) {
	return scrollutils.PutBytes(dst, offset, v)
}

// PwriteString copies the bytes of v into dst at offset.
func PwriteString(dst []byte, offset int, v string) (int, error) {
	return scrollutils.PutBytes(dst, offset, []byte(v))
}

// packInto runs a Packer implementation and validates the byte count it
// reports.
func packInto[C any](p Packer[C], dst []byte, offset int, ctx C) (int, error) {
	n, err := p.TryIntoCtx(dst, offset, ctx)
	if err != nil {
		return 0, err
	}
	if n < 0 || offset+n > len(dst) {
		panic(fmt.Sprintf("scroll: TryIntoCtx of %T wrote %d bytes at offset %d of %d", p, n, offset, len(dst)))
	}
	return n, nil
}

// writeFixed encodes the fixed-width built-in values plus whole byte and
// string slices. The returned bool is false when T is not handled.
func writeFixed[T any](v T, dst []byte, offset int, e Endian) (int, bool, error) {
	switch x := any(v).(type) {
	case bool:
		return 1, true, scrollutils.PutBool(dst, offset, x)
	case uint8:
		return 1, true, scrollutils.PutUint8(dst, offset, x)
	case int8:
		return 1, true, scrollutils.PutUint8(dst, offset, uint8(x))
	case uint16:
		return 2, true, scrollutils.PutUint16(dst, offset, x, e)
	case int16:
		return 2, true, scrollutils.PutUint16(dst, offset, uint16(x), e)
	case uint32:
		return 4, true, scrollutils.PutUint32(dst, offset, x, e)
	case int32:
		return 4, true, scrollutils.PutUint32(dst, offset, uint32(x), e)
	case uint64:
		return 8, true, scrollutils.PutUint64(dst, offset, x, e)
	case int64:
		return 8, true, scrollutils.PutUint64(dst, offset, uint64(x), e)
	case float32:
		return 4, true, scrollutils.PutUint32(dst, offset, math.Float32bits(x), e)
	case float64:
		return 8, true, scrollutils.PutUint64(dst, offset, math.Float64bits(x), e)
	case []byte:
		n, err := scrollutils.PutBytes(dst, offset, x)
		return n, true, err
	case string:
		n, err := scrollutils.PutBytes(dst, offset, []byte(x))
		return n, true, err
	}
	return 0, false, nil
}

// writeVarint emits the minimal LEB128 encoding of an integer value. The
// encoding itself cannot fail for in-range values; only a destination too
// short for the emitted bytes does.
func writeVarint[T any](v T, dst []byte, offset int, ctx Varint) (int, error) {
	var buf [10]byte
	var enc []byte
	if ctx == Uleb {
		var val uint64
		switch x := any(v).(type) {
		case uint8:
			val = uint64(x)
		case uint16:
			val = uint64(x)
		case uint32:
			val = uint64(x)
		case uint64:
			val = x
		default:
			return 0, fmt.Errorf("%w: cannot write %T as unsigned leb128", ErrNoConversion, v)
		}
		enc = scrollutils.AppendUleb128(buf[:0], val)
	} else {
		var val int64
		switch x := any(v).(type) {
		case int8:
			val = int64(x)
		case int16:
			val = int64(x)
		case int32:
			val = int64(x)
		case int64:
			val = x
		default:
			return 0, fmt.Errorf("%w: cannot write %T as signed leb128", ErrNoConversion, v)
		}
		enc = scrollutils.AppendSleb128(buf[:0], val)
	}
	return scrollutils.PutBytes(dst, offset, enc)
}
