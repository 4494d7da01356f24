// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package codegen

import (
	"fmt"
	"go/types"
	"strings"
)

// generateEncode emits a TryIntoCtx method for the planned type.
func generateEncode(plan *typePlan, printer *typePrinter, w *strings.Builder) {
	fmt.Fprintf(w, "// TryIntoCtx encodes the %s into dst at offset.\n", plan.name)
	fmt.Fprintf(w, "func (t *%s) TryIntoCtx(dst []byte, offset int, ctx scroll.Endian) (int, error) {\n", plan.name)
	fmt.Fprintf(w, "\tcur := offset\n")

	for _, fp := range plan.fields {
		generateFieldEncode(fp, printer, w)
	}

	fmt.Fprintf(w, "\treturn cur - offset, nil\n")
	fmt.Fprintf(w, "}\n\n")
}

func generateFieldEncode(fp *fieldPlan, printer *typePrinter, w *strings.Builder) {
	endian := endianExpr(fp)

	switch fp.kind {
	case kindSkip:
		fmt.Fprintf(w, "\tif err := scrollutils.ZeroBytes(dst, cur, %d); err != nil {\n\t\treturn 0, err\n\t}\n", fp.length)
		fmt.Fprintf(w, "\tcur += %d\n", fp.length)

	case kindScalar:
		valExpr := scalarValueExpr(fp.basic, fmt.Sprintf("t.%s", fp.name), printer)
		fmt.Fprintf(w, "\tif err := %s; err != nil {\n\t\treturn 0, err\n\t}\n", scalarPutCall(fp.basic, valExpr, endian))
		fmt.Fprintf(w, "\tcur += %d\n", fp.width)

	case kindUleb:
		fmt.Fprintf(w, "\t{\n")
		fmt.Fprintf(w, "\t\tvar buf [10]byte\n")
		fmt.Fprintf(w, "\t\tn, err := scrollutils.PutBytes(dst, cur, scrollutils.AppendUleb128(buf[:0], uint64(t.%s)))\n", fp.name)
		fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
		fmt.Fprintf(w, "\t\tcur += n\n")
		fmt.Fprintf(w, "\t}\n")

	case kindSleb:
		fmt.Fprintf(w, "\t{\n")
		fmt.Fprintf(w, "\t\tvar buf [10]byte\n")
		fmt.Fprintf(w, "\t\tn, err := scrollutils.PutBytes(dst, cur, scrollutils.AppendSleb128(buf[:0], int64(t.%s)))\n", fp.name)
		fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
		fmt.Fprintf(w, "\t\tcur += n\n")
		fmt.Fprintf(w, "\t}\n")

	case kindByteArray:
		fmt.Fprintf(w, "\tif _, err := scrollutils.PutBytes(dst, cur, t.%s[:]); err != nil {\n\t\treturn 0, err\n\t}\n", fp.name)
		fmt.Fprintf(w, "\tcur += %d\n", fp.length)

	case kindByteSlice:
		generatePaddedBytesEncode(fp, fmt.Sprintf("t.%s", fp.name), printer, w)

	case kindString:
		generatePaddedBytesEncode(fp, fmt.Sprintf("[]byte(t.%s)", fp.name), printer, w)

	case kindStruct:
		fmt.Fprintf(w, "\t{\n")
		if fp.isPtr {
			fmt.Fprintf(w, "\t\tf := t.%s\n", fp.name)
			fmt.Fprintf(w, "\t\tif f == nil {\n\t\t\tf = new(%s)\n\t\t}\n", fp.typeName)
			fmt.Fprintf(w, "\t\tn, err := f.TryIntoCtx(dst, cur, %s)\n", endian)
		} else {
			fmt.Fprintf(w, "\t\tn, err := t.%s.TryIntoCtx(dst, cur, %s)\n", fp.name, endian)
		}
		fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
		fmt.Fprintf(w, "\t\tcur += n\n")
		fmt.Fprintf(w, "\t}\n")

	case kindVector:
		fmt.Fprintf(w, "\t{\n")
		if fp.isSlice {
			printer.addImport("fmt", "fmt")
			fmt.Fprintf(w, "\t\tif len(t.%s) > %d {\n", fp.name, fp.length)
			fmt.Fprintf(w, "\t\t\treturn 0, fmt.Errorf(\"%%w: %s exceeds %d elements\", scrollutils.ErrBadInput)\n", fp.name, fp.length)
			fmt.Fprintf(w, "\t\t}\n")
			fmt.Fprintf(w, "\t\tfor i := 0; i < %d; i++ {\n", fp.length)
			fmt.Fprintf(w, "\t\t\tvar v %s\n", fp.typeName)
			fmt.Fprintf(w, "\t\t\tif i < len(t.%s) {\n\t\t\t\tv = t.%s[i]\n\t\t\t}\n", fp.name, fp.name)
			valExpr := scalarValueExpr(fp.basic, "v", printer)
			fmt.Fprintf(w, "\t\t\tif err := %s; err != nil {\n\t\t\t\treturn 0, err\n\t\t\t}\n", scalarPutCall(fp.basic, valExpr, endian))
		} else {
			fmt.Fprintf(w, "\t\tfor i := 0; i < %d; i++ {\n", fp.length)
			valExpr := scalarValueExpr(fp.basic, fmt.Sprintf("t.%s[i]", fp.name), printer)
			fmt.Fprintf(w, "\t\t\tif err := %s; err != nil {\n\t\t\t\treturn 0, err\n\t\t\t}\n", scalarPutCall(fp.basic, valExpr, endian))
		}
		fmt.Fprintf(w, "\t\t\tcur += %d\n", fp.width)
		fmt.Fprintf(w, "\t\t}\n")
		fmt.Fprintf(w, "\t}\n")
	}
}

// generatePaddedBytesEncode writes variable bytes into a fixed window,
// zero-padding short values and rejecting long ones.
func generatePaddedBytesEncode(fp *fieldPlan, valExpr string, printer *typePrinter, w *strings.Builder) {
	printer.addImport("fmt", "fmt")
	fmt.Fprintf(w, "\t{\n")
	fmt.Fprintf(w, "\t\tif len(t.%s) > %d {\n", fp.name, fp.length)
	fmt.Fprintf(w, "\t\t\treturn 0, fmt.Errorf(\"%%w: %s exceeds %d bytes\", scrollutils.ErrBadInput)\n", fp.name, fp.length)
	fmt.Fprintf(w, "\t\t}\n")
	fmt.Fprintf(w, "\t\tn, err := scrollutils.PutBytes(dst, cur, %s)\n", valExpr)
	fmt.Fprintf(w, "\t\tif err != nil {\n\t\t\treturn 0, err\n\t\t}\n")
	fmt.Fprintf(w, "\t\tif n < %d {\n", fp.length)
	fmt.Fprintf(w, "\t\t\tif err := scrollutils.ZeroBytes(dst, cur+n, %d-n); err != nil {\n\t\t\t\treturn 0, err\n\t\t\t}\n", fp.length)
	fmt.Fprintf(w, "\t\t}\n")
	fmt.Fprintf(w, "\t\tcur += %d\n", fp.length)
	fmt.Fprintf(w, "\t}\n")
}

// generateSize emits a Size method reporting the encoded byte count.
func generateSize(plan *typePlan, printer *typePrinter, w *strings.Builder) {
	static := 0
	dynamic := strings.Builder{}

	for _, fp := range plan.fields {
		switch fp.kind {
		case kindScalar:
			static += fp.width
		case kindSkip, kindByteArray, kindByteSlice, kindString:
			static += fp.length
		case kindVector:
			static += fp.length * fp.width
		case kindUleb:
			fmt.Fprintf(&dynamic, "\tsize += scrollutils.Uleb128Size(uint64(t.%s))\n", fp.name)
		case kindSleb:
			fmt.Fprintf(&dynamic, "\tsize += scrollutils.Sleb128Size(int64(t.%s))\n", fp.name)
		case kindStruct:
			if fp.isPtr {
				fmt.Fprintf(&dynamic, "\tif t.%s != nil {\n\t\tsize += t.%s.Size()\n\t} else {\n\t\tsize += (&%s{}).Size()\n\t}\n", fp.name, fp.name, fp.typeName)
			} else {
				fmt.Fprintf(&dynamic, "\tsize += t.%s.Size()\n", fp.name)
			}
		}
	}

	fmt.Fprintf(w, "// Size returns the number of bytes %s encodes to.\n", plan.name)
	fmt.Fprintf(w, "func (t *%s) Size() int {\n", plan.name)
	fmt.Fprintf(w, "\tsize := %d\n", static)
	w.WriteString(dynamic.String())
	fmt.Fprintf(w, "\treturn size\n")
	fmt.Fprintf(w, "}\n\n")
}

// scalarPutCall returns the scrollutils write call for a scalar value.
func scalarPutCall(basic types.BasicKind, valExpr, endian string) string {
	switch basic {
	case types.Bool:
		return fmt.Sprintf("scrollutils.PutBool(dst, cur, %s)", valExpr)
	case types.Uint8, types.Int8:
		return fmt.Sprintf("scrollutils.PutUint8(dst, cur, %s)", valExpr)
	case types.Uint16, types.Int16:
		return fmt.Sprintf("scrollutils.PutUint16(dst, cur, %s, %s)", valExpr, endian)
	case types.Uint32, types.Int32, types.Float32:
		return fmt.Sprintf("scrollutils.PutUint32(dst, cur, %s, %s)", valExpr, endian)
	case types.Uint64, types.Int64, types.Float64:
		return fmt.Sprintf("scrollutils.PutUint64(dst, cur, %s, %s)", valExpr, endian)
	}
	panic(fmt.Sprintf("no scalar putter for kind %d", basic))
}

// scalarValueExpr converts a field expression to the scrollutils value type.
func scalarValueExpr(basic types.BasicKind, expr string, printer *typePrinter) string {
	switch basic {
	case types.Bool:
		return fmt.Sprintf("bool(%s)", expr)
	case types.Uint8, types.Int8:
		return fmt.Sprintf("uint8(%s)", expr)
	case types.Uint16, types.Int16:
		return fmt.Sprintf("uint16(%s)", expr)
	case types.Uint32, types.Int32:
		return fmt.Sprintf("uint32(%s)", expr)
	case types.Uint64, types.Int64:
		return fmt.Sprintf("uint64(%s)", expr)
	case types.Float32:
		printer.addImport("math", "math")
		return fmt.Sprintf("math.Float32bits(float32(%s))", expr)
	case types.Float64:
		printer.addImport("math", "math")
		return fmt.Sprintf("math.Float64bits(float64(%s))", expr)
	}
	panic(fmt.Sprintf("no scalar value conversion for kind %d", basic))
}
