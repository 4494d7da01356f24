// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

// Unpacker is the read half of the conversion protocol and the single
// extension point for custom target types. Implementing it for a context
// type C makes the target usable with every read entry point of this
// package for that context: PreadWith, GreadWith and the reflection-based
// struct paths all dispatch to it.
//
// TryFromCtx fills the receiver from src starting at offset, interpreting
// the bytes according to ctx, and returns the number of bytes consumed.
// Implementations must range-check every access (the helpers in
// scrollutils and the package-level read functions already do) and return
// an error instead of panicking on malformed or truncated input. Returned
// errors are propagated to the caller verbatim.
//
// The method set rule of Go guarantees at most one implementation per
// (target type, context type) pair, which is what allows the same raw
// bytes to be reinterpreted completely differently depending on the
// caller-chosen context:
//
//	type Record struct {
//		Name string
//		ID   uint32
//	}
//
//	type RecordCtx struct {
//		NameLen int
//		Endian  scroll.Endian
//	}
//
//	func (r *Record) TryFromCtx(src []byte, offset int, ctx RecordCtx) (int, error) {
//		cur := offset
//		name, err := scroll.GreadString(src, &cur, scroll.StrLen(ctx.NameLen))
//		if err != nil {
//			return 0, err
//		}
//		id, err := scroll.GreadWith[uint32](src, &cur, ctx.Endian)
//		if err != nil {
//			return 0, err
//		}
//		r.Name, r.ID = name, id
//		return cur - offset, nil
//	}
type Unpacker[C any] interface {
	TryFromCtx(src []byte, offset int, ctx C) (int, error)
}

// Packer is the write half of the conversion protocol, symmetric to
// Unpacker. TryIntoCtx writes the receiver's byte representation into dst
// starting at offset and returns the number of bytes written.
type Packer[C any] interface {
	TryIntoCtx(dst []byte, offset int, ctx C) (int, error)
}

// Fixed covers the built-in target types that have exactly one default
// context: the fixed-width numerics, read and written at the host byte
// order when no explicit context is given. Types whose valid contexts are
// ambiguous (LEB128 targets, slices, structs) deliberately do not satisfy
// Fixed, so reading them through the default-context entry points is
// rejected at compile time.
type Fixed interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 |
		int64 | uint64 | float32 | float64
}
