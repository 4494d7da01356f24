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

// marshalType is the core recursive function for encoding Go values into
// bytes. It mirrors unmarshalType: a type's own TryIntoCtx wins over the
// generic kind dispatch, and the returned count is the number of bytes
// written at offset.
func (s *Scroll) marshalType(desc *typeDescriptor, val reflect.Value, dst []byte, offset int, endian Endian, idt int) (int, error) {
	if desc.isPtr {
		if val.IsNil() {
			// nil pointers encode as the zero value
			val = reflect.New(val.Type().Elem()).Elem()
		} else {
			val = val.Elem()
		}
	}

	if desc.mode == modeSkip {
		if err := scrollutils.ZeroBytes(dst, offset, desc.skipSize); err != nil {
			return 0, err
		}
		return desc.skipSize, nil
	}

	useFastPath := !s.noFastPath && desc.hasPacker
	s.logf(idt, "type: %s\t kind: %v\t fastpath: %v", desc.t.Name(), desc.kind, useFastPath)

	if useFastPath {
		packer, ok := val.Interface().(Packer[Endian])
		if !ok && val.CanAddr() {
			packer, ok = val.Addr().Interface().(Packer[Endian])
		}
		if ok {
			return packer.TryIntoCtx(dst, offset, endian)
		}
	}

	if desc.mode == modeUleb && isUnsignedKind(desc.kind) {
		var buf [10]byte
		return scrollutils.PutBytes(dst, offset, scrollutils.AppendUleb128(buf[:0], val.Uint()))
	}
	if desc.mode == modeSleb && isSignedKind(desc.kind) {
		var buf [10]byte
		return scrollutils.PutBytes(dst, offset, scrollutils.AppendSleb128(buf[:0], val.Int()))
	}

	switch desc.kind {
	case reflect.Struct:
		return s.marshalStruct(desc, val, dst, offset, endian, idt)
	case reflect.Array:
		return s.marshalArray(desc, val, dst, offset, endian, idt)
	case reflect.Slice:
		return s.marshalSlice(desc, val, dst, offset, endian, idt)
	case reflect.String:
		return s.marshalString(desc, val, dst, offset)

	case reflect.Bool:
		if err := scrollutils.PutBool(dst, offset, val.Bool()); err != nil {
			return 0, err
		}
		return 1, nil
	case reflect.Uint8:
		if err := scrollutils.PutUint8(dst, offset, uint8(val.Uint())); err != nil {
			return 0, err
		}
		return 1, nil
	case reflect.Uint16:
		if err := scrollutils.PutUint16(dst, offset, uint16(val.Uint()), endian); err != nil {
			return 0, err
		}
		return 2, nil
	case reflect.Uint32:
		if err := scrollutils.PutUint32(dst, offset, uint32(val.Uint()), endian); err != nil {
			return 0, err
		}
		return 4, nil
	case reflect.Uint64:
		if err := scrollutils.PutUint64(dst, offset, val.Uint(), endian); err != nil {
			return 0, err
		}
		return 8, nil
	case reflect.Int8:
		if err := scrollutils.PutUint8(dst, offset, uint8(val.Int())); err != nil {
			return 0, err
		}
		return 1, nil
	case reflect.Int16:
		if err := scrollutils.PutUint16(dst, offset, uint16(val.Int()), endian); err != nil {
			return 0, err
		}
		return 2, nil
	case reflect.Int32:
		if err := scrollutils.PutUint32(dst, offset, uint32(val.Int()), endian); err != nil {
			return 0, err
		}
		return 4, nil
	case reflect.Int64:
		if err := scrollutils.PutUint64(dst, offset, uint64(val.Int()), endian); err != nil {
			return 0, err
		}
		return 8, nil
	case reflect.Float32:
		if err := scrollutils.PutUint32(dst, offset, math.Float32bits(float32(val.Float())), endian); err != nil {
			return 0, err
		}
		return 4, nil
	case reflect.Float64:
		if err := scrollutils.PutUint64(dst, offset, math.Float64bits(val.Float()), endian); err != nil {
			return 0, err
		}
		return 8, nil

	default:
		return 0, fmt.Errorf("%w: unknown type: %v", ErrNoConversion, desc.t)
	}
}

func (s *Scroll) marshalStruct(desc *typeDescriptor, val reflect.Value, dst []byte, offset int, endian Endian, idt int) (int, error) {
	cur := offset
	for _, field := range desc.fields {
		fieldEndian := endian
		if field.hasEndian {
			fieldEndian = field.endian
		}

		n, err := s.marshalType(field.desc, val.Field(field.index), dst, cur, fieldEndian, idt+2)
		if err != nil {
			return 0, fmt.Errorf("failed encoding field %v.%v: %w", desc.t.Name(), field.name, err)
		}
		cur += n
	}
	return cur - offset, nil
}

func (s *Scroll) marshalArray(desc *typeDescriptor, val reflect.Value, dst []byte, offset int, endian Endian, idt int) (int, error) {
	if desc.elem.t == byteType && desc.elem.mode == modeAuto {
		if !val.CanAddr() {
			tmp := reflect.New(val.Type()).Elem()
			tmp.Set(val)
			val = tmp
		}
		return scrollutils.PutBytes(dst, offset, val.Slice(0, desc.length).Bytes())
	}

	cur := offset
	for i := 0; i < desc.length; i++ {
		n, err := s.marshalType(desc.elem, val.Index(i), dst, cur, endian, idt+2)
		if err != nil {
			return 0, err
		}
		cur += n
	}
	return cur - offset, nil
}

// marshalSlice pads slices shorter than their declared size with zero
// elements and rejects slices that overflow it. Slices without a declared
// size write exactly their elements.
func (s *Scroll) marshalSlice(desc *typeDescriptor, val reflect.Value, dst []byte, offset int, endian Endian, idt int) (int, error) {
	n := val.Len()
	if desc.length >= 0 && n > desc.length {
		return 0, fmt.Errorf("%w: slice length %d exceeds declared size %d", ErrBadInput, n, desc.length)
	}

	if desc.elem.t == byteType && desc.elem.mode == modeAuto {
		written, err := scrollutils.PutBytes(dst, offset, val.Bytes())
		if err != nil {
			return 0, err
		}
		if desc.length > n {
			if err := scrollutils.ZeroBytes(dst, offset+n, desc.length-n); err != nil {
				return 0, err
			}
			written = desc.length
		}
		return written, nil
	}

	total := n
	if desc.length >= 0 {
		total = desc.length
	}

	cur := offset
	for i := 0; i < total; i++ {
		var elem reflect.Value
		if i < n {
			elem = val.Index(i)
		} else {
			elem = reflect.New(val.Type().Elem()).Elem()
		}
		written, err := s.marshalType(desc.elem, elem, dst, cur, endian, idt+2)
		if err != nil {
			return 0, err
		}
		cur += written
	}
	return cur - offset, nil
}

func (s *Scroll) marshalString(desc *typeDescriptor, val reflect.Value, dst []byte, offset int) (int, error) {
	str := val.String()
	n := len(str)
	if desc.length >= 0 && n > desc.length {
		return 0, fmt.Errorf("%w: string length %d exceeds declared size %d", ErrBadInput, n, desc.length)
	}

	written, err := scrollutils.PutBytes(dst, offset, []byte(str))
	if err != nil {
		return 0, err
	}
	if desc.length > n {
		if err := scrollutils.ZeroBytes(dst, offset+n, desc.length-n); err != nil {
			return 0, err
		}
		written = desc.length
	}
	return written, nil
}

// sizeValue computes the encoded size of a value without writing it.
// Static types report their descriptor size, dynamic ones walk the value.
func (s *Scroll) sizeValue(desc *typeDescriptor, val reflect.Value) (int, error) {
	if desc.isPtr {
		if val.IsNil() {
			val = reflect.New(val.Type().Elem()).Elem()
		} else {
			val = val.Elem()
		}
	}

	if desc.size >= 0 {
		return desc.size, nil
	}

	if desc.mode == modeUleb && isUnsignedKind(desc.kind) {
		return scrollutils.Uleb128Size(val.Uint()), nil
	}
	if desc.mode == modeSleb && isSignedKind(desc.kind) {
		return scrollutils.Sleb128Size(val.Int()), nil
	}

	switch desc.kind {
	case reflect.Struct:
		total := 0
		for _, field := range desc.fields {
			n, err := s.sizeValue(field.desc, val.Field(field.index))
			if err != nil {
				return 0, fmt.Errorf("failed sizing field %v.%v: %w", desc.t.Name(), field.name, err)
			}
			total += n
		}
		return total, nil

	case reflect.Array:
		total := 0
		for i := 0; i < desc.length; i++ {
			n, err := s.sizeValue(desc.elem, val.Index(i))
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil

	case reflect.Slice:
		count := val.Len()
		if desc.length >= 0 {
			if count > desc.length {
				return 0, fmt.Errorf("%w: slice length %d exceeds declared size %d", ErrBadInput, count, desc.length)
			}
			count = desc.length
		}
		if desc.elem.t == byteType && desc.elem.mode == modeAuto {
			return count, nil
		}
		total := 0
		for i := 0; i < count; i++ {
			var elem reflect.Value
			if i < val.Len() {
				elem = val.Index(i)
			} else {
				elem = reflect.New(val.Type().Elem()).Elem()
			}
			n, err := s.sizeValue(desc.elem, elem)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil

	case reflect.String:
		if desc.length >= 0 {
			if val.Len() > desc.length {
				return 0, fmt.Errorf("%w: string length %d exceeds declared size %d", ErrBadInput, val.Len(), desc.length)
			}
			return desc.length, nil
		}
		return val.Len(), nil

	default:
		return 0, fmt.Errorf("%w: unknown type: %v", ErrNoConversion, desc.t)
	}
}
