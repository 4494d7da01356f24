// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll_test

import (
	"encoding/hex"

	. "github.com/m4b/scroll"
)

type slug_Header struct {
	Magic uint32 `scroll-endian:"big"`
	Flags uint16
	Name  []byte `scroll-size:"8"`
}

type slug_Packet struct {
	Kind    uint8
	Header  slug_Header
	Payload []byte `scroll-size:"4"`
}

type slug_VarintPair struct {
	Id    uint64 `scroll-type:"uleb128"`
	Delta int64  `scroll-type:"sleb128"`
}

type slug_SpecSized struct {
	Data []byte `scroll-size:"PAGE_SIZE"`
}

// slug_SelfCodec frames itself: a fixed 8-byte name, no tags.
type slug_SelfCodec struct {
	Name string
}

func (s *slug_SelfCodec) TryFromCtx(src []byte, offset int, _ Endian) (int, error) {
	name, err := PreadString(src, offset, StrLen(8))
	if err != nil {
		return 0, err
	}
	s.Name = name
	return 8, nil
}

func (s slug_SelfCodec) TryIntoCtx(dst []byte, offset int, _ Endian) (int, error) {
	return PwriteString(dst, offset, s.Name)
}

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with "0x".
func fromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex2Bytes(s)
}

// has0xPrefix validates str begins with '0x' or '0X'.
func has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

// Hex2Bytes returns the bytes represented by the hexadecimal string str.
func hex2Bytes(str string) []byte {
	h, _ := hex.DecodeString(str)
	return h
}
