// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import (
	"fmt"
	"math"
	"reflect"

	"github.com/m4b/scroll/scrollutils"
)

// unmarshalType is the core recursive function for decoding bytes into Go
// values. It dispatches on the type descriptor, short-circuiting to a
// type's own TryFromCtx where one exists, and returns the number of bytes
// consumed.
func (s *Scroll) unmarshalType(desc *typeDescriptor, val reflect.Value, src []byte, offset int, endian Endian, idt int) (int, error) {
	if desc.isPtr {
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		val = val.Elem()
	}

	if desc.mode == modeSkip {
		if _, err := scrollutils.GetBytes(src, offset, desc.skipSize); err != nil {
			return 0, err
		}
		return desc.skipSize, nil
	}

	useFastPath := !s.noFastPath && desc.hasUnpacker
	s.logf(idt, "type: %s\t kind: %v\t fastpath: %v", desc.t.Name(), desc.kind, useFastPath)

	if useFastPath {
		unpacker, ok := val.Addr().Interface().(Unpacker[Endian])
		if ok {
			return unpacker.TryFromCtx(src, offset, endian)
		}
	}

	if desc.mode == modeUleb && isUnsignedKind(desc.kind) {
		v, n, err := scrollutils.DecodeUleb128(src, offset, uint(val.Type().Bits()))
		if err != nil {
			return 0, err
		}
		val.SetUint(v)
		return n, nil
	}
	if desc.mode == modeSleb && isSignedKind(desc.kind) {
		v, n, err := scrollutils.DecodeSleb128(src, offset, uint(val.Type().Bits()))
		if err != nil {
			return 0, err
		}
		val.SetInt(v)
		return n, nil
	}

	switch desc.kind {
	case reflect.Struct:
		return s.unmarshalStruct(desc, val, src, offset, endian, idt)
	case reflect.Array:
		return s.unmarshalArray(desc, val, src, offset, endian, idt)
	case reflect.Slice:
		return s.unmarshalSlice(desc, val, src, offset, endian, idt)
	case reflect.String:
		if desc.length < 0 {
			return 0, fmt.Errorf("%w: string of unknown length; use a scroll-size tag or a StrCtx", ErrNoConversion)
		}
		str, err := scrollutils.GetString(src, offset, desc.length)
		if err != nil {
			return 0, err
		}
		val.SetString(str)
		return desc.length, nil

	case reflect.Bool:
		v, err := scrollutils.GetBool(src, offset)
		if err != nil {
			return 0, err
		}
		val.SetBool(v)
		return 1, nil
	case reflect.Uint8:
		v, err := scrollutils.GetUint8(src, offset)
		if err != nil {
			return 0, err
		}
		val.SetUint(uint64(v))
		return 1, nil
	case reflect.Uint16:
		v, err := scrollutils.GetUint16(src, offset, endian)
		if err != nil {
			return 0, err
		}
		val.SetUint(uint64(v))
		return 2, nil
	case reflect.Uint32:
		v, err := scrollutils.GetUint32(src, offset, endian)
		if err != nil {
			return 0, err
		}
		val.SetUint(uint64(v))
		return 4, nil
	case reflect.Uint64:
		v, err := scrollutils.GetUint64(src, offset, endian)
		if err != nil {
			return 0, err
		}
		val.SetUint(v)
		return 8, nil
	case reflect.Int8:
		v, err := scrollutils.GetUint8(src, offset)
		if err != nil {
			return 0, err
		}
		val.SetInt(int64(int8(v)))
		return 1, nil
	case reflect.Int16:
		v, err := scrollutils.GetUint16(src, offset, endian)
		if err != nil {
			return 0, err
		}
		val.SetInt(int64(int16(v)))
		return 2, nil
	case reflect.Int32:
		v, err := scrollutils.GetUint32(src, offset, endian)
		if err != nil {
			return 0, err
		}
		val.SetInt(int64(int32(v)))
		return 4, nil
	case reflect.Int64:
		v, err := scrollutils.GetUint64(src, offset, endian)
		if err != nil {
			return 0, err
		}
		val.SetInt(int64(v))
		return 8, nil
	case reflect.Float32:
		v, err := scrollutils.GetUint32(src, offset, endian)
		if err != nil {
			return 0, err
		}
		val.SetFloat(float64(math.Float32frombits(v)))
		return 4, nil
	case reflect.Float64:
		v, err := scrollutils.GetUint64(src, offset, endian)
		if err != nil {
			return 0, err
		}
		val.SetFloat(math.Float64frombits(v))
		return 8, nil

	default:
		return 0, fmt.Errorf("%w: unknown type: %v", ErrNoConversion, desc.t)
	}
}

// unmarshalStruct walks the fields in declaration order, applying
// per-field endian overrides and advancing through the source.
func (s *Scroll) unmarshalStruct(desc *typeDescriptor, val reflect.Value, src []byte, offset int, endian Endian, idt int) (int, error) {
	cur := offset
	for _, field := range desc.fields {
		fieldEndian := endian
		if field.hasEndian {
			fieldEndian = field.endian
		}

		n, err := s.unmarshalType(field.desc, val.Field(field.index), src, cur, fieldEndian, idt+2)
		if err != nil {
			return 0, fmt.Errorf("failed decoding field %v.%v: %w", desc.t.Name(), field.name, err)
		}
		cur += n
	}
	return cur - offset, nil
}

func (s *Scroll) unmarshalArray(desc *typeDescriptor, val reflect.Value, src []byte, offset int, endian Endian, idt int) (int, error) {
	// plain byte arrays copy in one go
	if desc.elem.t == byteType && desc.elem.mode == modeAuto {
		b, err := scrollutils.GetBytes(src, offset, desc.length)
		if err != nil {
			return 0, err
		}
		reflect.Copy(val, reflect.ValueOf(b))
		return desc.length, nil
	}

	cur := offset
	for i := 0; i < desc.length; i++ {
		n, err := s.unmarshalType(desc.elem, val.Index(i), src, cur, endian, idt+2)
		if err != nil {
			return 0, err
		}
		cur += n
	}
	return cur - offset, nil
}

func (s *Scroll) unmarshalSlice(desc *typeDescriptor, val reflect.Value, src []byte, offset int, endian Endian, idt int) (int, error) {
	if desc.length < 0 {
		return 0, fmt.Errorf("%w: slice of unknown length; use a scroll-size tag", ErrNoConversion)
	}

	// byte slices become views into the source, not copies
	if desc.elem.t == byteType && desc.elem.mode == modeAuto {
		b, err := scrollutils.GetBytes(src, offset, desc.length)
		if err != nil {
			return 0, err
		}
		val.SetBytes(b)
		return desc.length, nil
	}

	newValue := reflect.MakeSlice(val.Type(), desc.length, desc.length)
	cur := offset
	for i := 0; i < desc.length; i++ {
		n, err := s.unmarshalType(desc.elem, newValue.Index(i), src, cur, endian, idt+2)
		if err != nil {
			return 0, err
		}
		cur += n
	}
	val.Set(newValue)
	return cur - offset, nil
}
