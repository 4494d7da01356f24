// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package codegen

import (
	"fmt"
	"go/types"
	"strings"
)

// generateDecode emits a TryFromCtx method for the planned type.
func generateDecode(plan *typePlan, printer *typePrinter, w *strings.Builder) {
	fmt.Fprintf(w, "// TryFromCtx decodes a %s from src at offset.\n", plan.name)
	fmt.Fprintf(w, "func (t *%s) TryFromCtx(src []byte, offset int, ctx scroll.Endian) (int, error) {\n", plan.name)
	fmt.Fprintf(w, "\tcur := offset\n")

	for _, fp := range plan.fields {
		generateFieldDecode(fp, printer, w)
	}

	fmt.Fprintf(w, "\treturn cur - offset, nil\n")
	fmt.Fprintf(w, "}\n\n")
}

func generateFieldDecode(fp *fieldPlan, printer *typePrinter, w *strings.Builder) {
	endian := endianExpr(fp)

	switch fp.kind {
	case kindSkip:
		fmt.Fprintf(w, "\tif _, err := scrollutils.GetBytes(src, cur, %d); err != nil {\n\t\treturn 0, err\n\t}\n", fp.length)
		fmt.Fprintf(w, "\tcur += %d\n", fp.length)

	case kindScalar:
		fmt.Fprintf(w, "\t{\n")
		fmt.Fprintf(w, "\t\tv, err := %s\n", scalarGetCall(fp.basic, endian))
		fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
		fmt.Fprintf(w, "\t\tt.%s = %s\n", fp.name, scalarAssignExpr(fp.basic, fp.typeName, printer))
		fmt.Fprintf(w, "\t\tcur += %d\n", fp.width)
		fmt.Fprintf(w, "\t}\n")

	case kindUleb:
		fmt.Fprintf(w, "\t{\n")
		fmt.Fprintf(w, "\t\tv, n, err := scrollutils.DecodeUleb128(src, cur, %d)\n", fp.width*8)
		fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
		fmt.Fprintf(w, "\t\tt.%s = %s(v)\n", fp.name, fp.typeName)
		fmt.Fprintf(w, "\t\tcur += n\n")
		fmt.Fprintf(w, "\t}\n")

	case kindSleb:
		fmt.Fprintf(w, "\t{\n")
		fmt.Fprintf(w, "\t\tv, n, err := scrollutils.DecodeSleb128(src, cur, %d)\n", fp.width*8)
		fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
		fmt.Fprintf(w, "\t\tt.%s = %s(v)\n", fp.name, fp.typeName)
		fmt.Fprintf(w, "\t\tcur += n\n")
		fmt.Fprintf(w, "\t}\n")

	case kindByteArray:
		fmt.Fprintf(w, "\t{\n")
		fmt.Fprintf(w, "\t\tb, err := scrollutils.GetBytes(src, cur, %d)\n", fp.length)
		fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
		fmt.Fprintf(w, "\t\tcopy(t.%s[:], b)\n", fp.name)
		fmt.Fprintf(w, "\t\tcur += %d\n", fp.length)
		fmt.Fprintf(w, "\t}\n")

	case kindByteSlice:
		fmt.Fprintf(w, "\t{\n")
		fmt.Fprintf(w, "\t\tb, err := scrollutils.GetBytes(src, cur, %d)\n", fp.length)
		fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
		fmt.Fprintf(w, "\t\tt.%s = %s(b)\n", fp.name, fp.typeName)
		fmt.Fprintf(w, "\t\tcur += %d\n", fp.length)
		fmt.Fprintf(w, "\t}\n")

	case kindString:
		fmt.Fprintf(w, "\t{\n")
		fmt.Fprintf(w, "\t\tv, err := scrollutils.GetString(src, cur, %d)\n", fp.length)
		fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
		fmt.Fprintf(w, "\t\tt.%s = %s(v)\n", fp.name, fp.typeName)
		fmt.Fprintf(w, "\t\tcur += %d\n", fp.length)
		fmt.Fprintf(w, "\t}\n")

	case kindStruct:
		fmt.Fprintf(w, "\t{\n")
		if fp.isPtr {
			fmt.Fprintf(w, "\t\tif t.%s == nil {\n\t\t\tt.%s = new(%s)\n\t\t}\n", fp.name, fp.name, fp.typeName)
		}
		fmt.Fprintf(w, "\t\tn, err := t.%s.TryFromCtx(src, cur, %s)\n", fp.name, endian)
		fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
		fmt.Fprintf(w, "\t\tcur += n\n")
		fmt.Fprintf(w, "\t}\n")

	case kindVector:
		fmt.Fprintf(w, "\t{\n")
		if fp.isSlice {
			fmt.Fprintf(w, "\t\tt.%s = make([]%s, %d)\n", fp.name, fp.typeName, fp.length)
		}
		fmt.Fprintf(w, "\t\tfor i := 0; i < %d; i++ {\n", fp.length)
		fmt.Fprintf(w, "\t\t\tv, err := %s\n", scalarGetCall(fp.basic, endian))
		fmt.Fprintf(w, "\t\t\tif err != nil {\n\t\t\t\treturn 0, err\n\t\t\t}\n")
		fmt.Fprintf(w, "\t\t\tt.%s[i] = %s\n", fp.name, scalarAssignExpr(fp.basic, fp.typeName, printer))
		fmt.Fprintf(w, "\t\t\tcur += %d\n", fp.width)
		fmt.Fprintf(w, "\t\t}\n")
		fmt.Fprintf(w, "\t}\n")
	}
}

func endianExpr(fp *fieldPlan) string {
	if fp.endian != "" {
		return fp.endian
	}
	return "ctx"
}

// scalarGetCall returns the scrollutils read call for a scalar, yielding
// (v, err) with v in the scrollutils return type.
func scalarGetCall(basic types.BasicKind, endian string) string {
	switch basic {
	case types.Bool:
		return "scrollutils.GetBool(src, cur)"
	case types.Uint8, types.Int8:
		return "scrollutils.GetUint8(src, cur)"
	case types.Uint16, types.Int16:
		return fmt.Sprintf("scrollutils.GetUint16(src, cur, %s)", endian)
	case types.Uint32, types.Int32, types.Float32:
		return fmt.Sprintf("scrollutils.GetUint32(src, cur, %s)", endian)
	case types.Uint64, types.Int64, types.Float64:
		return fmt.Sprintf("scrollutils.GetUint64(src, cur, %s)", endian)
	}
	panic(fmt.Sprintf("no scalar getter for kind %d", basic))
}

// scalarAssignExpr converts the raw value v into the field's type.
func scalarAssignExpr(basic types.BasicKind, typeName string, printer *typePrinter) string {
	switch basic {
	case types.Float32:
		printer.addImport("math", "math")
		return fmt.Sprintf("%s(math.Float32frombits(v))", typeName)
	case types.Float64:
		printer.addImport("math", "math")
		return fmt.Sprintf("%s(math.Float64frombits(v))", typeName)
	default:
		return fmt.Sprintf("%s(v)", typeName)
	}
}
