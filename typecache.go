// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	endianUnpackerType = reflect.TypeOf((*Unpacker[Endian])(nil)).Elem()
	endianPackerType   = reflect.TypeOf((*Packer[Endian])(nil)).Elem()
	byteType           = reflect.TypeOf(byte(0))
)

// typeDescriptor is the analyzed layout of one Go type: how many bytes it
// spans, how to walk its fields or elements, and whether it implements the
// conversion protocol itself. Descriptors are immutable once built.
type typeDescriptor struct {
	t     reflect.Type
	kind  reflect.Kind
	isPtr bool

	// size is the static encoded byte size, or -1 when it depends on the
	// value (variable-length integers).
	size int

	// length is the element count for arrays and size-hinted slices and
	// strings, -1 when no length is known.
	length int

	mode     fieldMode
	skipSize int

	elem   *typeDescriptor
	fields []*fieldDescriptor

	hasUnpacker bool
	hasPacker   bool
}

// fieldDescriptor is one struct field in declaration order.
type fieldDescriptor struct {
	name      string
	index     int
	endian    Endian
	hasEndian bool
	desc      *typeDescriptor
}

// typeCache maps reflect types to their descriptors. Descriptors are only
// cached for types analyzed without parent tag hints; hinted layouts
// depend on the field they appear in and are rebuilt on demand.
type typeCache struct {
	scroll      *Scroll
	mutex       sync.RWMutex
	descriptors map[reflect.Type]*typeDescriptor
}

func newTypeCache(s *Scroll) *typeCache {
	return &typeCache{
		scroll:      s,
		descriptors: map[reflect.Type]*typeDescriptor{},
	}
}

// getTypeDescriptor returns the descriptor for t, computing it if
// necessary. Thread-safe; concurrent requests for the same type compute it
// once.
func (tc *typeCache) getTypeDescriptor(t reflect.Type, sizeHints []sizeHint) (*typeDescriptor, error) {
	if len(sizeHints) == 0 {
		tc.mutex.RLock()
		desc := tc.descriptors[t]
		tc.mutex.RUnlock()
		if desc != nil {
			return desc, nil
		}
	}

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if len(sizeHints) == 0 {
		if desc := tc.descriptors[t]; desc != nil {
			return desc, nil
		}
	}

	desc, err := tc.buildTypeDescriptor(t, sizeHints, modeAuto)
	if err != nil {
		return nil, err
	}

	if len(sizeHints) == 0 {
		tc.descriptors[t] = desc
	}
	return desc, nil
}

func (tc *typeCache) buildTypeDescriptor(t reflect.Type, sizeHints []sizeHint, mode fieldMode) (*typeDescriptor, error) {
	desc := &typeDescriptor{
		t:      t,
		kind:   t.Kind(),
		length: -1,
		mode:   mode,
	}

	if desc.kind == reflect.Pointer {
		elem, err := tc.buildTypeDescriptor(t.Elem(), sizeHints, mode)
		if err != nil {
			return nil, err
		}
		elem.isPtr = true
		elem.t = t
		return elem, nil
	}

	ptrType := reflect.PointerTo(t)
	desc.hasUnpacker = ptrType.Implements(endianUnpackerType)
	desc.hasPacker = t.Implements(endianPackerType) || ptrType.Implements(endianPackerType)

	switch desc.kind {
	case reflect.Bool, reflect.Uint8, reflect.Int8:
		desc.size = 1
	case reflect.Uint16, reflect.Int16:
		desc.size = 2
	case reflect.Uint32, reflect.Int32, reflect.Float32:
		desc.size = 4
	case reflect.Uint64, reflect.Int64, reflect.Float64:
		desc.size = 8

	case reflect.Struct:
		if err := tc.buildStructFields(desc, t); err != nil {
			return nil, err
		}

	case reflect.Array:
		elem, err := tc.buildTypeDescriptor(t.Elem(), consumeHint(sizeHints), mode)
		if err != nil {
			return nil, err
		}
		desc.elem = elem
		desc.length = t.Len()
		desc.size = staticTotal(elem.size, desc.length)

	case reflect.Slice:
		elem, err := tc.buildTypeDescriptor(t.Elem(), consumeHint(sizeHints), mode)
		if err != nil {
			return nil, err
		}
		desc.elem = elem
		if len(sizeHints) > 0 {
			desc.length = sizeHints[0].size
			desc.size = staticTotal(elem.size, desc.length)
		} else {
			desc.size = -1
		}

	case reflect.String:
		if len(sizeHints) > 0 {
			desc.length = sizeHints[0].size
			desc.size = desc.length
		} else {
			desc.size = -1
		}

	default:
		return nil, fmt.Errorf("%w: unhandled reflection kind: %v", ErrNoConversion, desc.kind)
	}

	switch mode {
	case modeUleb, modeSleb:
		// containers pass the mode down to their elements
		if desc.kind != reflect.Slice && desc.kind != reflect.Array {
			if mode == modeUleb && !isUnsignedKind(desc.kind) {
				return nil, fmt.Errorf("%w: scroll-type uleb128 requires an unsigned integer type, got %v", ErrNoConversion, desc.kind)
			}
			if mode == modeSleb && !isSignedKind(desc.kind) {
				return nil, fmt.Errorf("%w: scroll-type sleb128 requires a signed integer type, got %v", ErrNoConversion, desc.kind)
			}
		}
		desc.size = -1
	case modeSkip:
		if len(sizeHints) == 0 {
			return nil, fmt.Errorf("%w: scroll-type skip requires a scroll-size tag", ErrNoConversion)
		}
		desc.skipSize = sizeHints[0].size
		desc.size = desc.skipSize
	}

	return desc, nil
}

func (tc *typeCache) buildStructFields(desc *typeDescriptor, t reflect.Type) error {
	desc.size = 0
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			// unexported fields have no place in the wire layout
			continue
		}

		sizeHints, err := tc.scroll.getSizeTag(&field)
		if err != nil {
			return err
		}
		endian, hasEndian, err := getEndianTag(&field)
		if err != nil {
			return err
		}
		mode, err := getTypeTag(&field)
		if err != nil {
			return err
		}

		fieldType, err := tc.buildTypeDescriptor(field.Type, sizeHints, mode)
		if err != nil {
			return fmt.Errorf("field %v.%v: %w", t.Name(), field.Name, err)
		}

		if fieldType.size < 0 {
			desc.size = -1
		} else if desc.size >= 0 {
			desc.size += fieldType.size
		}

		desc.fields = append(desc.fields, &fieldDescriptor{
			name:      field.Name,
			index:     i,
			endian:    endian,
			hasEndian: hasEndian,
			desc:      fieldType,
		})
	}
	return nil
}

// consumeHint drops the hint claimed by the current nesting level.
func consumeHint(hints []sizeHint) []sizeHint {
	if len(hints) == 0 {
		return nil
	}
	return hints[1:]
}

func staticTotal(elemSize, length int) int {
	if elemSize < 0 || length < 0 {
		return -1
	}
	return elemSize * length
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
