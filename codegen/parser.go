// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package codegen

import (
	"fmt"
	"go/types"
	"reflect"
	"strconv"
	"strings"
)

type planKind int

const (
	kindScalar planKind = iota
	kindUleb
	kindSleb
	kindByteArray
	kindByteSlice
	kindString
	kindStruct
	kindVector // array or slice of scalars
	kindSkip
)

// typePlan describes how to encode one struct type.
type typePlan struct {
	name   string
	fields []*fieldPlan
}

// fieldPlan describes one struct field. For kindVector the scalar fields
// (width, basic, typeName) describe the element.
type fieldPlan struct {
	name     string
	typeName string
	kind     planKind
	basic    types.BasicKind
	width    int
	length   int    // declared element count, -1 if unset
	endian   string // override expression, "" uses the ctx parameter
	isPtr    bool   // pointer to struct
	isSlice  bool   // vector backed by a slice
}

// typePrinter renders type names relative to the target package and records
// imports for foreign types.
type typePrinter struct {
	pkg     *types.Package
	imports map[string]string
}

func newTypePrinter(pkg *types.Package) *typePrinter {
	return &typePrinter{
		pkg:     pkg,
		imports: map[string]string{},
	}
}

func (p *typePrinter) name(t types.Type) string {
	return types.TypeString(t, func(other *types.Package) string {
		if other == p.pkg {
			return ""
		}
		p.imports[other.Path()] = other.Name()
		return other.Name()
	})
}

func (p *typePrinter) addImport(path, alias string) {
	p.imports[path] = alias
}

// buildTypePlan analyzes a named struct type and produces its encoding plan.
// Fields whose layout can only be resolved at runtime (spec expressions in
// scroll-size tags, unsupported kinds) fail with an error.
func buildTypePlan(t types.Type, printer *typePrinter) (*typePlan, error) {
	named, ok := t.(*types.Named)
	if !ok {
		return nil, fmt.Errorf("not a named type")
	}
	strct, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("not a struct type")
	}

	plan := &typePlan{
		name: named.Obj().Name(),
	}

	for i := 0; i < strct.NumFields(); i++ {
		field := strct.Field(i)
		if !field.Exported() {
			continue
		}

		tag := reflect.StructTag(strct.Tag(i))
		fp, err := buildFieldPlan(field, tag, printer)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", plan.name, field.Name(), err)
		}
		plan.fields = append(plan.fields, fp)
	}

	return plan, nil
}

func buildFieldPlan(field *types.Var, tag reflect.StructTag, printer *typePrinter) (*fieldPlan, error) {
	fp := &fieldPlan{
		name:   field.Name(),
		length: -1,
	}

	endian, err := parseEndianTag(tag)
	if err != nil {
		return nil, err
	}
	fp.endian = endian
	if endian != "" {
		printer.addImport("github.com/m4b/scroll/scrollutils", "scrollutils")
	}

	sizes, err := parseSizeTag(tag)
	if err != nil {
		return nil, err
	}
	if len(sizes) > 0 {
		fp.length = sizes[0]
	}

	mode := tag.Get("scroll-type")
	switch mode {
	case "", "?", "auto":
	case "uleb128", "sleb128":
	case "skip":
		if fp.length < 0 {
			return nil, fmt.Errorf("scroll-type skip requires a scroll-size tag")
		}
		fp.kind = kindSkip
		return fp, nil
	default:
		return nil, fmt.Errorf("unknown scroll-type: %v", mode)
	}

	ftype := field.Type()
	fp.typeName = printer.name(ftype)

	if ptr, ok := ftype.(*types.Pointer); ok {
		fp.isPtr = true
		ftype = ptr.Elem()
		fp.typeName = printer.name(ftype)
	}

	switch ut := ftype.Underlying().(type) {
	case *types.Basic:
		info, ok := scalarInfo(ut.Kind())
		if !ok {
			return nil, fmt.Errorf("unsupported basic type: %v", ut)
		}
		if fp.isPtr {
			return nil, fmt.Errorf("pointer to scalar is not supported")
		}
		if ut.Kind() == types.String {
			if fp.length < 0 {
				return nil, fmt.Errorf("string requires a scroll-size tag")
			}
			fp.kind = kindString
			return fp, nil
		}
		fp.basic = ut.Kind()
		fp.width = info.width
		switch mode {
		case "uleb128":
			if !info.unsigned {
				return nil, fmt.Errorf("scroll-type uleb128 requires an unsigned integer type")
			}
			fp.kind = kindUleb
		case "sleb128":
			if !info.signed {
				return nil, fmt.Errorf("scroll-type sleb128 requires a signed integer type")
			}
			fp.kind = kindSleb
		default:
			fp.kind = kindScalar
		}
		return fp, nil

	case *types.Struct:
		fp.kind = kindStruct
		return fp, nil

	case *types.Array:
		return buildSequencePlan(fp, ftype, ut.Elem(), int(ut.Len()), false, printer)

	case *types.Slice:
		if fp.length < 0 {
			return nil, fmt.Errorf("slice requires a scroll-size tag")
		}
		return buildSequencePlan(fp, ftype, ut.Elem(), fp.length, true, printer)

	default:
		return nil, fmt.Errorf("unsupported type: %v", ftype)
	}
}

func buildSequencePlan(fp *fieldPlan, seq, elem types.Type, length int, isSlice bool, printer *typePrinter) (*fieldPlan, error) {
	if fp.isPtr {
		return nil, fmt.Errorf("pointer to sequence is not supported")
	}
	fp.length = length
	fp.isSlice = isSlice

	basic, ok := elem.Underlying().(*types.Basic)
	if !ok {
		return nil, fmt.Errorf("unsupported element type: %v", elem)
	}
	info, ok := scalarInfo(basic.Kind())
	if !ok || basic.Kind() == types.String {
		return nil, fmt.Errorf("unsupported element type: %v", elem)
	}

	_, isNamedElem := elem.(*types.Named)
	if basic.Kind() == types.Uint8 && !isNamedElem {
		if isSlice {
			fp.kind = kindByteSlice
		} else {
			fp.kind = kindByteArray
		}
		return fp, nil
	}

	fp.kind = kindVector
	fp.typeName = printer.name(elem)
	fp.basic = basic.Kind()
	fp.width = info.width
	return fp, nil
}

type scalarTraits struct {
	width    int
	unsigned bool
	signed   bool
}

func scalarInfo(k types.BasicKind) (scalarTraits, bool) {
	switch k {
	case types.Bool:
		return scalarTraits{width: 1}, true
	case types.Uint8:
		return scalarTraits{width: 1, unsigned: true}, true
	case types.Uint16:
		return scalarTraits{width: 2, unsigned: true}, true
	case types.Uint32:
		return scalarTraits{width: 4, unsigned: true}, true
	case types.Uint64:
		return scalarTraits{width: 8, unsigned: true}, true
	case types.Int8:
		return scalarTraits{width: 1, signed: true}, true
	case types.Int16:
		return scalarTraits{width: 2, signed: true}, true
	case types.Int32:
		return scalarTraits{width: 4, signed: true}, true
	case types.Int64:
		return scalarTraits{width: 8, signed: true}, true
	case types.Float32:
		return scalarTraits{width: 4}, true
	case types.Float64:
		return scalarTraits{width: 8}, true
	case types.String:
		return scalarTraits{}, true
	}
	return scalarTraits{}, false
}

func parseEndianTag(tag reflect.StructTag) (string, error) {
	val := tag.Get("scroll-endian")
	switch strings.ToLower(val) {
	case "":
		return "", nil
	case "big", "be":
		return "scrollutils.BigEndian", nil
	case "little", "le":
		return "scrollutils.LittleEndian", nil
	case "native":
		return "scrollutils.NativeEndian", nil
	default:
		return "", fmt.Errorf("unknown scroll-endian value: %v", val)
	}
}

// parseSizeTag accepts literal sizes only. Spec expressions resolve against
// runtime spec values and cannot be compiled into static code.
func parseSizeTag(tag reflect.StructTag) ([]int, error) {
	val := tag.Get("scroll-size")
	if val == "" {
		return nil, nil
	}

	parts := strings.Split(val, ",")
	sizes := make([]int, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("scroll-size %q is not a literal size, run with runtime reflection instead", part)
		}
		if n < 0 {
			return nil, fmt.Errorf("scroll-size %q is negative", part)
		}
		sizes[i] = n
	}
	return sizes, nil
}
