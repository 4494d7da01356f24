// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import "github.com/m4b/scroll/scrollutils"

// Uleb128 is an unsigned variable-length integer together with the number
// of bytes its encoding occupied in the source. Read it with a Varint
// context:
//
//	v, err := scroll.PreadWith[scroll.Uleb128](src, 0, scroll.Uleb)
type Uleb128 struct {
	Value uint64
	Count int
}

// TryFromCtx implements Unpacker for Varint contexts. The variant is
// ignored; a Uleb128 is always decoded unsigned.
func (u *Uleb128) TryFromCtx(src []byte, offset int, _ Varint) (int, error) {
	v, n, err := scrollutils.DecodeUleb128(src, offset, 64)
	if err != nil {
		return 0, err
	}
	u.Value, u.Count = v, n
	return n, nil
}

// TryIntoCtx implements Packer for Varint contexts, emitting the minimal
// encoding of the value.
func (u Uleb128) TryIntoCtx(dst []byte, offset int, _ Varint) (int, error) {
	var buf [10]byte
	return scrollutils.PutBytes(dst, offset, scrollutils.AppendUleb128(buf[:0], u.Value))
}

// Size returns the number of bytes the value's minimal encoding occupies.
func (u Uleb128) Size() int {
	return scrollutils.Uleb128Size(u.Value)
}

// Sleb128 is the signed counterpart of Uleb128, sign-extended from the
// last contributing bit of its encoding.
type Sleb128 struct {
	Value int64
	Count int
}

func (s *Sleb128) TryFromCtx(src []byte, offset int, _ Varint) (int, error) {
	v, n, err := scrollutils.DecodeSleb128(src, offset, 64)
	if err != nil {
		return 0, err
	}
	s.Value, s.Count = v, n
	return n, nil
}

func (s Sleb128) TryIntoCtx(dst []byte, offset int, _ Varint) (int, error) {
	var buf [10]byte
	return scrollutils.PutBytes(dst, offset, scrollutils.AppendSleb128(buf[:0], s.Value))
}

func (s Sleb128) Size() int {
	return scrollutils.Sleb128Size(s.Value)
}
