// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import (
	"bytes"

	"github.com/m4b/scroll/scrollutils"
)

// Endian selects the byte order for fixed-width numeric conversion. It is
// the default context kind: Pread and Pwrite without an explicit context
// use NATIVE.
type Endian = scrollutils.Endian

const (
	// LE reads and writes fixed-width values in little-endian byte order.
	LE = scrollutils.LittleEndian
	// BE reads and writes fixed-width values in big-endian byte order.
	BE = scrollutils.BigEndian
)

// NATIVE is the host machine's byte order.
var NATIVE = scrollutils.NativeEndian

// Errors of the core, re-exported so callers only need this package.
// Match them with errors.Is; user Unpacker/Packer implementations may
// return their own error types, which are propagated verbatim.
var (
	ErrBadOffset    = scrollutils.ErrBadOffset
	ErrBadInput     = scrollutils.ErrBadInput
	ErrNoConversion = scrollutils.ErrNoConversion
)

// Varint selects the LEB128 variable-length integer family. Unlike Endian
// contexts the consumed size is data-dependent and discovered during
// decoding, so Varint targets have no default context.
type Varint uint8

const (
	// Uleb decodes/encodes unsigned LEB128. Valid for unsigned integer
	// targets and Uleb128.
	Uleb Varint = iota
	// Sleb decodes/encodes signed LEB128, sign-extending from bit 6 of the
	// last contributing byte. Valid for signed integer targets and Sleb128.
	Sleb
)

type strKind uint8

const (
	strLength strKind = iota
	strDelimiter
	strDelimiterUntil
)

// StrCtx is the context for raw byte and text slice extraction. It fixes
// how many bytes the conversion consumes: either an explicit length, or a
// scan up to a delimiter byte (optionally bounded). Results are views into
// the source, never copies.
type StrCtx struct {
	kind  strKind
	delim byte
	n     int
}

// StrLen extracts exactly n bytes.
func StrLen(n int) StrCtx {
	return StrCtx{kind: strLength, n: n}
}

// StrDelim extracts bytes up to (not including) the first occurrence of
// delim, or up to the end of the source when delim does not occur.
func StrDelim(delim byte) StrCtx {
	return StrCtx{kind: strDelimiter, delim: delim}
}

// StrDelimUntil extracts bytes up to the first occurrence of delim,
// scanning at most n bytes.
func StrDelimUntil(delim byte, n int) StrCtx {
	return StrCtx{kind: strDelimiterUntil, delim: delim, n: n}
}

// Common delimiters.
var (
	Null  = StrDelim(0)
	Space = StrDelim(' ')
	Ret   = StrDelim('\n')
	Tab   = StrDelim('\t')
)

// length resolves the byte count the context selects in src at offset.
func (c StrCtx) length(src []byte, offset int) (int, error) {
	if offset < 0 || offset > len(src) {
		return 0, scrollutils.BadOffset(offset, 0, len(src))
	}
	rest := src[offset:]
	switch c.kind {
	case strLength:
		return c.n, nil
	case strDelimiter:
		if i := bytes.IndexByte(rest, c.delim); i >= 0 {
			return i, nil
		}
		return len(rest), nil
	default: // strDelimiterUntil
		if c.n < 0 || c.n > len(rest) {
			return 0, scrollutils.BadOffset(offset, c.n, len(src))
		}
		if i := bytes.IndexByte(rest[:c.n], c.delim); i >= 0 {
			return i, nil
		}
		return c.n, nil
	}
}
