// Package scroll provides generic, context-driven reading and writing of
// typed values out of and into raw byte buffers at arbitrary offsets. It
// is infrastructure for building binary-format parsers (executable
// formats, wire protocols, archives) without hand-rolling the offset
// arithmetic and bounds checks for every format.
//
// The same byte buffer can be read back as wildly different shapes
// depending on the caller-chosen context: a big-endian integer, a
// variable-length LEB128 integer, a length-prefixed string, or a
// caller-defined record.
//
//	bytes := []byte{0xde, 0xad, 0xbe, 0xef}
//
//	v, _ := scroll.PreadWith[uint32](bytes, 0, scroll.BE) // 0xdeadbeef
//	w, _ := scroll.PreadWith[uint16](bytes, 2, scroll.BE) // 0xbeef
//	b, _ := scroll.Pread[uint8](bytes, 0)                 // 0xde, native order
//
// Two access disciplines are offered: the offset-indexed functions (Pread,
// Pwrite) take explicit offsets, never touch shared state and are safe for
// unlimited concurrent reads of an immutable source; the cursor-advancing
// functions (Gread, Gwrite, Reader, Writer) auto-advance a caller-owned
// offset after each call for sequential parsing.
//
// Custom types join the protocol by implementing Unpacker and Packer for
// their context type, or, without writing any code, by tagging struct
// fields and using a Scroll instance (or the generated methods from
// scroll-gen). Tag sizes may be expressions over runtime specification
// values, evaluated when the type is first analyzed.
//
// Copyright (c) 2025 pk910. See LICENSE file for details.
package scroll

import (
	"fmt"
	"reflect"
	"strings"
)

// Scroll is a reflection-based reader/writer for tagged Go structs,
// arrays, slices and strings. It maintains caches for type descriptors
// and specification values, so it is recommended to reuse the same
// instance across operations. A Scroll is safe for concurrent use.
//
// The specs map supplies runtime specification values referenced by
// `scroll-size` tag expressions, enabling layouts whose field lengths are
// decided by the deployment rather than the source code:
//
//	specs := map[string]any{"NAME_LEN": uint64(8)}
//	s := scroll.NewScroll(specs)
//
//	type Record struct {
//		Name string `scroll-size:"NAME_LEN"`
//		ID   uint32 `scroll-endian:"big"`
//	}
//
//	var rec Record
//	n, err := s.ReadAt(&rec, data, 0, scroll.LE)
type Scroll struct {
	typeCache      *typeCache
	specValues     map[string]any
	evalParams     map[string]any
	specValueCache map[string]*cachedSpecValue

	noFastPath bool
	verbose    bool
	logCb      func(format string, args ...any)
}

// NewScroll creates a new reflection reader/writer instance. The specs map
// can be nil when no tag expressions are used. Options tune fast-path
// dispatch and verbose logging.
func NewScroll(specs map[string]any, opts ...Option) *Scroll {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}

	s := &Scroll{
		specValues:     specs,
		evalParams:     toEvalParams(specs),
		specValueCache: map[string]*cachedSpecValue{},
		noFastPath:     options.NoFastPath,
		verbose:        options.Verbose,
		logCb:          options.LogCb,
	}
	s.typeCache = newTypeCache(s)
	return s
}

// ReadAt decodes src starting at offset into the value target points to,
// walking tagged fields in declaration order with the given byte order as
// the ambient context. It returns the number of bytes consumed.
//
// Fields or nested types implementing Unpacker for Endian contexts
// short-circuit to their own TryFromCtx unless the instance was created
// with WithNoFastPath.
func (s *Scroll) ReadAt(target any, src []byte, offset int, endian Endian) (int, error) {
	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return 0, fmt.Errorf("%w: reflection target must be a non-nil pointer, got %T", ErrNoConversion, target)
	}

	desc, err := s.typeCache.getTypeDescriptor(value.Type().Elem(), nil)
	if err != nil {
		return 0, err
	}

	return s.unmarshalType(desc, value.Elem(), src, offset, endian, 0)
}

// WriteAt encodes the value behind source into dst starting at offset and
// returns the number of bytes written. The destination is mutated in place
// and never resized.
func (s *Scroll) WriteAt(source any, dst []byte, offset int, endian Endian) (int, error) {
	value := reflect.ValueOf(source)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return 0, fmt.Errorf("%w: cannot write nil pointer", ErrBadInput)
		}
		value = value.Elem()
	}

	desc, err := s.typeCache.getTypeDescriptor(value.Type(), nil)
	if err != nil {
		return 0, err
	}

	return s.marshalType(desc, value, dst, offset, endian, 0)
}

// SizeOf returns the number of bytes WriteAt would emit for v. Sizes of
// variable-length fields depend on the actual values.
func (s *Scroll) SizeOf(v any) (int, error) {
	value := reflect.ValueOf(v)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return 0, fmt.Errorf("%w: cannot size nil pointer", ErrBadInput)
		}
		value = value.Elem()
	}

	desc, err := s.typeCache.getTypeDescriptor(value.Type(), nil)
	if err != nil {
		return 0, err
	}

	return s.sizeValue(desc, value)
}

func (s *Scroll) logf(idt int, format string, args ...any) {
	if !s.verbose {
		return
	}
	if s.logCb != nil {
		s.logCb(strings.Repeat(" ", idt)+format, args...)
		return
	}
	fmt.Printf(strings.Repeat(" ", idt)+format+"\n", args...)
}

// toEvalParams normalizes numeric spec values to float64 for expression
// evaluation.
func toEvalParams(specs map[string]any) map[string]any {
	params := make(map[string]any, len(specs))
	for name, value := range specs {
		switch v := value.(type) {
		case int:
			params[name] = float64(v)
		case int8:
			params[name] = float64(v)
		case int16:
			params[name] = float64(v)
		case int32:
			params[name] = float64(v)
		case int64:
			params[name] = float64(v)
		case uint:
			params[name] = float64(v)
		case uint8:
			params[name] = float64(v)
		case uint16:
			params[name] = float64(v)
		case uint32:
			params[name] = float64(v)
		case uint64:
			params[name] = float64(v)
		case float32:
			params[name] = float64(v)
		default:
			params[name] = value
		}
	}
	return params
}
