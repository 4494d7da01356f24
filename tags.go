// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// fieldMode selects how a field's bytes are interpreted, from the
// `scroll-type` tag.
type fieldMode uint8

const (
	modeAuto fieldMode = iota
	modeUleb
	modeSleb
	modeSkip
)

// sizeHint carries a resolved length for a sized kind (string, slice,
// skip), from the `scroll-size` tag. Sizes count elements; for byte slices
// and strings an element is a byte.
type sizeHint struct {
	size   int
	custom bool // resolved from a spec expression rather than a literal
}

// getSizeTag parses the `scroll-size` tag of a struct field. A
// comma-separated list applies to successive nesting levels, so
// `scroll-size:"4,8"` describes four slices of eight bytes each. Each
// entry is either an integer literal or an expression over the instance's
// specification values.
func (s *Scroll) getSizeTag(field *reflect.StructField) ([]sizeHint, error) {
	sizeStr, hasSize := field.Tag.Lookup("scroll-size")
	if !hasSize {
		return nil, nil
	}

	hints := []sizeHint{}
	for _, sizeEntry := range strings.Split(sizeStr, ",") {
		sizeEntry = strings.TrimSpace(sizeEntry)
		if size, err := strconv.Atoi(sizeEntry); err == nil {
			if size < 0 {
				return nil, fmt.Errorf("negative scroll-size for '%v' field: %v", field.Name, sizeEntry)
			}
			hints = append(hints, sizeHint{size: size})
			continue
		}

		resolved, value, err := s.getSpecValue(sizeEntry)
		if err != nil {
			return nil, fmt.Errorf("invalid scroll-size expression for '%v' field: %v", field.Name, err)
		}
		if !resolved {
			return nil, fmt.Errorf("unresolved scroll-size expression for '%v' field: %v", field.Name, sizeEntry)
		}
		hints = append(hints, sizeHint{size: int(value), custom: true})
	}

	return hints, nil
}

// getEndianTag parses the `scroll-endian` tag, which overrides the ambient
// byte order for one field and everything nested beneath it.
func getEndianTag(field *reflect.StructField) (Endian, bool, error) {
	endianStr, hasEndian := field.Tag.Lookup("scroll-endian")
	if !hasEndian {
		return 0, false, nil
	}

	switch endianStr {
	case "big", "be":
		return BE, true, nil
	case "little", "le":
		return LE, true, nil
	case "native":
		return NATIVE, true, nil
	default:
		return 0, false, fmt.Errorf("invalid scroll-endian tag for '%v' field: %v", field.Name, endianStr)
	}
}

// getTypeTag parses the `scroll-type` tag.
func getTypeTag(field *reflect.StructField) (fieldMode, error) {
	typeStr, hasType := field.Tag.Lookup("scroll-type")
	if !hasType {
		return modeAuto, nil
	}

	switch typeStr {
	case "?", "auto":
		return modeAuto, nil
	case "uleb128":
		return modeUleb, nil
	case "sleb128":
		return modeSleb, nil
	case "skip":
		return modeSkip, nil
	default:
		return modeAuto, fmt.Errorf("invalid scroll-type tag for '%v' field: %v", field.Name, typeStr)
	}
}
