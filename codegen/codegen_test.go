// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package codegen

import (
	"go/token"
	"go/types"
	"strings"
	"testing"
)

func testPackage() *types.Package {
	return types.NewPackage("example.com/demo", "demo")
}

func namedStruct(pkg *types.Package, name string, fields []*types.Var, tags []string) *types.Named {
	strct := types.NewStruct(fields, tags)
	return types.NewNamed(types.NewTypeName(token.NoPos, pkg, name, nil), strct, nil)
}

func headerType(pkg *types.Package) *types.Named {
	return namedStruct(pkg, "Header",
		[]*types.Var{
			types.NewField(token.NoPos, pkg, "Magic", types.Typ[types.Uint32], false),
			types.NewField(token.NoPos, pkg, "Flags", types.Typ[types.Uint16], false),
			types.NewField(token.NoPos, pkg, "Name", types.NewSlice(types.Typ[types.Uint8]), false),
		},
		[]string{
			`scroll-endian:"big"`,
			``,
			`scroll-size:"16"`,
		})
}

func TestGeneratorOptions(t *testing.T) {
	opts := Options{}
	WithNoSizeMethod()(&opts)
	if !opts.NoSizeMethod {
		t.Error("WithNoSizeMethod should set NoSizeMethod to true")
	}
}

func TestBuildFileErrors(t *testing.T) {
	pkg := testPackage()
	otherPkg := types.NewPackage("example.com/other", "other")

	t.Run("NoTypes", func(t *testing.T) {
		gen := NewGenerator()
		if err := gen.BuildFile("out.go"); err == nil {
			t.Error("expected error for empty type list")
		}
	})

	t.Run("UnnamedType", func(t *testing.T) {
		gen := NewGenerator()
		if err := gen.BuildFile("out.go", types.NewSlice(types.Typ[types.Uint8])); err == nil {
			t.Error("expected error for unnamed type")
		}
	})

	t.Run("MixedPackages", func(t *testing.T) {
		gen := NewGenerator()
		err := gen.BuildFile("out.go", headerType(pkg), headerType(otherPkg))
		if err == nil {
			t.Error("expected error for types from different packages")
		}
	})
}

func TestGenerateHeader(t *testing.T) {
	pkg := testPackage()
	gen := NewGenerator()
	if err := gen.BuildFile("header_scroll.go", headerType(pkg)); err != nil {
		t.Fatalf("BuildFile failed: %v", err)
	}

	results, err := gen.GenerateToMap()
	if err != nil {
		t.Fatalf("GenerateToMap failed: %v", err)
	}

	code, ok := results["header_scroll.go"]
	if !ok {
		t.Fatal("no code generated for header_scroll.go")
	}

	for _, want := range []string{
		"package demo",
		"func (t *Header) TryFromCtx(src []byte, offset int, ctx scroll.Endian) (int, error)",
		"func (t *Header) TryIntoCtx(dst []byte, offset int, ctx scroll.Endian) (int, error)",
		"func (t *Header) Size() int",
		"scrollutils.GetUint32(src, cur, scrollutils.BigEndian)",
		"scrollutils.GetUint16(src, cur, ctx)",
		"scrollutils.GetBytes(src, cur, 16)",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateNoSizeMethod(t *testing.T) {
	pkg := testPackage()
	gen := NewGenerator(WithNoSizeMethod())
	if err := gen.BuildFile("header_scroll.go", headerType(pkg)); err != nil {
		t.Fatalf("BuildFile failed: %v", err)
	}

	results, err := gen.GenerateToMap()
	if err != nil {
		t.Fatalf("GenerateToMap failed: %v", err)
	}

	if strings.Contains(results["header_scroll.go"], "func (t *Header) Size() int") {
		t.Error("Size method generated despite WithNoSizeMethod")
	}
}

func TestGenerateVarintAndString(t *testing.T) {
	pkg := testPackage()
	record := namedStruct(pkg, "Record",
		[]*types.Var{
			types.NewField(token.NoPos, pkg, "Id", types.Typ[types.Uint64], false),
			types.NewField(token.NoPos, pkg, "Delta", types.Typ[types.Int32], false),
			types.NewField(token.NoPos, pkg, "Tag", types.Typ[types.String], false),
		},
		[]string{
			`scroll-type:"uleb128"`,
			`scroll-type:"sleb128"`,
			`scroll-size:"8"`,
		})

	gen := NewGenerator()
	if err := gen.BuildFile("record_scroll.go", record); err != nil {
		t.Fatalf("BuildFile failed: %v", err)
	}

	results, err := gen.GenerateToMap()
	if err != nil {
		t.Fatalf("GenerateToMap failed: %v", err)
	}
	code := results["record_scroll.go"]

	for _, want := range []string{
		"scrollutils.DecodeUleb128(src, cur, 64)",
		"scrollutils.DecodeSleb128(src, cur, 32)",
		"scrollutils.AppendUleb128(buf[:0], uint64(t.Id))",
		"scrollutils.GetString(src, cur, 8)",
		"scrollutils.Uleb128Size(uint64(t.Id))",
		"scrollutils.Sleb128Size(int64(t.Delta))",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateRejectsSpecExpressions(t *testing.T) {
	pkg := testPackage()
	record := namedStruct(pkg, "Record",
		[]*types.Var{
			types.NewField(token.NoPos, pkg, "Data", types.NewSlice(types.Typ[types.Uint8]), false),
		},
		[]string{
			`scroll-size:"PAGE_SIZE*2"`,
		})

	gen := NewGenerator()
	if err := gen.BuildFile("record_scroll.go", record); err != nil {
		t.Fatalf("BuildFile failed: %v", err)
	}

	if _, err := gen.GenerateToMap(); err == nil {
		t.Error("expected error for spec expression in scroll-size tag")
	}
}

func TestGenerateRejectsUnsizedSlice(t *testing.T) {
	pkg := testPackage()
	record := namedStruct(pkg, "Record",
		[]*types.Var{
			types.NewField(token.NoPos, pkg, "Data", types.NewSlice(types.Typ[types.Uint8]), false),
		},
		[]string{``})

	gen := NewGenerator()
	if err := gen.BuildFile("record_scroll.go", record); err != nil {
		t.Fatalf("BuildFile failed: %v", err)
	}

	if _, err := gen.GenerateToMap(); err == nil {
		t.Error("expected error for slice without scroll-size tag")
	}
}
