// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import (
	"fmt"
	"math"

	"github.com/m4b/scroll/scrollutils"
)

// Pread reads a fixed-width value from src at offset using the default
// context, the host machine's byte order. Only types in Fixed have a
// default context; everything else must go through PreadWith.
//
// Pread never mutates src or any shared state, so any number of reads
// against the same source may run concurrently without coordination.
func Pread[T Fixed](src []byte, offset int) (T, error) {
	return PreadWith[T](src, offset, NATIVE)
}

// PreadWith reads a value of type T from src at offset using the given
// context. Dispatch order: a TryFromCtx implementation of *T for the
// context type wins; otherwise the built-in contexts (Endian for
// fixed-width numerics, Varint for LEB128 integers, StrCtx for byte and
// text slices) are handled directly; Endian contexts finally fall back to
// the reflection engine for tagged structs, arrays and slices. A pair with
// no conversion yields ErrNoConversion.
func PreadWith[T any, C any](src []byte, offset int, ctx C) (T, error) {
	v, _, err := preadWith[T](src, offset, ctx)
	return v, err
}

// PreadBytes extracts a byte slice from src at offset according to ctx.
// The result is a view into src, not a copy, and must not outlive it.
func PreadBytes(src []byte, offset int, ctx StrCtx) ([]byte, error) {
	b, _, err := preadBytes(src, offset, ctx)
	return b, err
}

// PreadString extracts a UTF-8 text slice from src at offset according to
// ctx. The result aliases the source storage without copying.
func PreadString(src []byte, offset int, ctx StrCtx) (string, error) {
	s, _, err := preadString(src, offset, ctx)
	return s, err
}

// preadWith is the shared core of PreadWith and GreadWith; it also reports
// the number of bytes the read consumed.
func preadWith[T any, C any](src []byte, offset int, ctx C) (T, int, error) {
	var out T
	if u, ok := any(&out).(Unpacker[C]); ok {
		n, err := u.TryFromCtx(src, offset, ctx)
		if err != nil {
			var zero T
			return zero, 0, err
		}
		if n < 0 || offset+n > len(src) {
			panic(fmt.Sprintf("scroll: TryFromCtx of %T consumed %d bytes at offset %d of %d", out, n, offset, len(src)))
		}
		return out, n, nil
	}
	switch c := any(ctx).(type) {
	case Endian:
		n, handled, err := readFixed(&out, src, offset, c)
		if err != nil {
			var zero T
			return zero, 0, err
		}
		if handled {
			return out, n, nil
		}
		n, err = GetGlobalScroll().ReadAt(&out, src, offset, c)
		if err != nil {
			var zero T
			return zero, 0, err
		}
		return out, n, nil
	case Varint:
		n, err := readVarint(&out, src, offset, c)
		if err != nil {
			var zero T
			return zero, 0, err
		}
		return out, n, nil
	case StrCtx:
		switch p := any(&out).(type) {
		case *[]byte:
			b, n, err := preadBytes(src, offset, c)
			if err != nil {
				var zero T
				return zero, 0, err
			}
			*p = b
			return out, n, nil
		case *string:
			s, n, err := preadString(src, offset, c)
			if err != nil {
				var zero T
				return zero, 0, err
			}
			*p = s
			return out, n, nil
		}
	}
	var zero T
	return zero, 0, fmt.Errorf("%w: cannot read %T with context %T", ErrNoConversion, out, ctx)
}

func preadBytes(src []byte, offset int, ctx StrCtx) ([]byte, int, error) {
	n, err := ctx.length(src, offset)
	if err != nil {
		return nil, 0, err
	}
	b, err := scrollutils.GetBytes(src, offset, n)
	if err != nil {
		return nil, 0, err
	}
	return b, n, nil
}

func preadString(src []byte, offset int, ctx StrCtx) (string, int, error) {
	n, err := ctx.length(src, offset)
	if err != nil {
		return "", 0, err
	}
	s, err := scrollutils.GetString(src, offset, n)
	if err != nil {
		return "", 0, err
	}
	return s, n, nil
}

// readFixed decodes the fixed-width built-in targets. The returned bool is
// false when T is not such a target.
func readFixed[T any](out *T, src []byte, offset int, e Endian) (int, bool, error) {
	switch p := any(out).(type) {
	case *bool:
		v, err := scrollutils.GetBool(src, offset)
		if err != nil {
			return 0, true, err
		}
		*p = v
		return 1, true, nil
	case *uint8:
		v, err := scrollutils.GetUint8(src, offset)
		if err != nil {
			return 0, true, err
		}
		*p = v
		return 1, true, nil
	case *int8:
		v, err := scrollutils.GetUint8(src, offset)
		if err != nil {
			return 0, true, err
		}
		*p = int8(v)
		return 1, true, nil
	case *uint16:
		v, err := scrollutils.GetUint16(src, offset, e)
		if err != nil {
			return 0, true, err
		}
		*p = v
		return 2, true, nil
	case *int16:
		v, err := scrollutils.GetUint16(src, offset, e)
		if err != nil {
			return 0, true, err
		}
		*p = int16(v)
		return 2, true, nil
	case *uint32:
		v, err := scrollutils.GetUint32(src, offset, e)
		if err != nil {
			return 0, true, err
		}
		*p = v
		return 4, true, nil
	case *int32:
		v, err := scrollutils.GetUint32(src, offset, e)
		if err != nil {
			return 0, true, err
		}
		*p = int32(v)
		return 4, true, nil
	case *uint64:
		v, err := scrollutils.GetUint64(src, offset, e)
		if err != nil {
			return 0, true, err
		}
		*p = v
		return 8, true, nil
	case *int64:
		v, err := scrollutils.GetUint64(src, offset, e)
		if err != nil {
			return 0, true, err
		}
		*p = int64(v)
		return 8, true, nil
	case *float32:
		v, err := scrollutils.GetUint32(src, offset, e)
		if err != nil {
			return 0, true, err
		}
		*p = math.Float32frombits(v)
		return 4, true, nil
	case *float64:
		v, err := scrollutils.GetUint64(src, offset, e)
		if err != nil {
			return 0, true, err
		}
		*p = math.Float64frombits(v)
		return 8, true, nil
	}
	return 0, false, nil
}

// readVarint decodes a LEB128 integer into the integer targets. Unsigned
// targets pair with Uleb, signed targets with Sleb.
func readVarint[T any](out *T, src []byte, offset int, v Varint) (int, error) {
	if v == Uleb {
		var bits uint
		switch any(out).(type) {
		case *uint8:
			bits = 8
		case *uint16:
			bits = 16
		case *uint32:
			bits = 32
		case *uint64:
			bits = 64
		default:
			return 0, fmt.Errorf("%w: cannot read %T as unsigned leb128", ErrNoConversion, *out)
		}
		val, n, err := scrollutils.DecodeUleb128(src, offset, bits)
		if err != nil {
			return 0, err
		}
		switch p := any(out).(type) {
		case *uint8:
			*p = uint8(val)
		case *uint16:
			*p = uint16(val)
		case *uint32:
			*p = uint32(val)
		case *uint64:
			*p = val
		}
		return n, nil
	}
	var bits uint
	switch any(out).(type) {
	case *int8:
		bits = 8
	case *int16:
		bits = 16
	case *int32:
		bits = 32
	case *int64:
		bits = 64
	default:
		return 0, fmt.Errorf("%w: cannot read %T as signed leb128", ErrNoConversion, *out)
	}
	val, n, err := scrollutils.DecodeSleb128(src, offset, bits)
	if err != nil {
		return 0, err
	}
	switch p := any(out).(type) {
	case *int8:
		*p = int8(val)
	case *int16:
		*p = int16(val)
	case *int32:
		*p = int32(val)
	case *int64:
		*p = val
	}
	return n, nil
}
