// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

// Package codegen generates TryFromCtx, TryIntoCtx and Size methods for
// struct types, replacing the runtime reflection walk with straight-line
// code. The generator works on go/types type information, so it plugs into
// golang.org/x/tools/go/packages loaders (see the scroll-gen command).
//
// Only statically sized layouts can be generated: fields whose scroll-size
// tag is a spec expression still need the runtime engine, and the parser
// rejects them with an error.
package codegen

import (
	"fmt"
	"go/format"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

// Options controls what the generator emits.
type Options struct {
	// NoSizeMethod suppresses the Size method on generated types.
	NoSizeMethod bool
}

type Option func(*Options)

func WithNoSizeMethod() Option {
	return func(o *Options) {
		o.NoSizeMethod = true
	}
}

// Generator collects file requests and renders them to Go source.
type Generator struct {
	requests []*fileRequest
	options  *Options
}

type fileRequest struct {
	fileName string
	types    []types.Type
	pkg      *types.Package
}

func NewGenerator(opts ...Option) *Generator {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return &Generator{
		options: options,
	}
}

// BuildFile registers a generation request for the given types. All types of
// a file must be named struct types from the same package.
func (g *Generator) BuildFile(fileName string, tps ...types.Type) error {
	if len(tps) == 0 {
		return fmt.Errorf("no types requested for file %s", fileName)
	}

	var pkg *types.Package
	for _, t := range tps {
		named, ok := t.(*types.Named)
		if !ok {
			return fmt.Errorf("type %s is not a named type", t.String())
		}
		tpkg := named.Obj().Pkg()
		if tpkg == nil {
			return fmt.Errorf("type %s has no package", named.Obj().Name())
		}
		if pkg == nil {
			pkg = tpkg
		} else if pkg != tpkg {
			return fmt.Errorf("type %s is from a different package than %s, cannot combine in a single file", named.Obj().Name(), pkg.Path())
		}
	}

	g.requests = append(g.requests, &fileRequest{
		fileName: fileName,
		types:    tps,
		pkg:      pkg,
	})
	return nil
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by scroll-gen (version {{.Version}}). DO NOT EDIT.

package {{.PackageName}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

{{.Code}}`))

type fileData struct {
	Version     string
	PackageName string
	Imports     []importData
	Code        string
}

type importData struct {
	Alias string
	Path  string
}

// GenerateToMap renders all requested files and returns them keyed by file
// name, without touching the filesystem.
func (g *Generator) GenerateToMap() (map[string]string, error) {
	if len(g.requests) == 0 {
		return nil, fmt.Errorf("no types requested for generation")
	}

	results := make(map[string]string)
	for _, req := range g.requests {
		code, err := g.generateFile(req)
		if err != nil {
			return nil, err
		}
		results[req.fileName] = code
	}
	return results, nil
}

// Generate renders all requested files and writes them to disk.
func (g *Generator) Generate() error {
	results, err := g.GenerateToMap()
	if err != nil {
		return err
	}

	for fileName, code := range results {
		dir := filepath.Dir(fileName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		if err := os.WriteFile(fileName, []byte(code), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", fileName, err)
		}
	}
	return nil
}

func (g *Generator) generateFile(req *fileRequest) (string, error) {
	printer := newTypePrinter(req.pkg)
	printer.addImport("github.com/m4b/scroll", "scroll")
	printer.addImport("github.com/m4b/scroll/scrollutils", "scrollutils")
	body := strings.Builder{}

	for _, t := range req.types {
		plan, err := buildTypePlan(t, printer)
		if err != nil {
			return "", fmt.Errorf("failed to analyze type %s: %w", t.String(), err)
		}

		generateDecode(plan, printer, &body)
		generateEncode(plan, printer, &body)
		if !g.options.NoSizeMethod {
			generateSize(plan, printer, &body)
		}
	}

	imports := make([]importData, 0, len(printer.imports))
	for path, alias := range printer.imports {
		if defaultAlias(path) == alias {
			alias = ""
		}
		imports = append(imports, importData{Alias: alias, Path: path})
	}
	sort.Slice(imports, func(i, j int) bool {
		return imports[i].Path < imports[j].Path
	})

	rendered := strings.Builder{}
	err := fileTemplate.Execute(&rendered, fileData{
		Version:     Version,
		PackageName: req.pkg.Name(),
		Imports:     imports,
		Code:        body.String(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", req.fileName, err)
	}

	formatted, err := format.Source([]byte(rendered.String()))
	if err != nil {
		return "", fmt.Errorf("generated code for %s does not parse: %w", req.fileName, err)
	}
	return string(formatted), nil
}

func defaultAlias(path string) string {
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		return path[idx+1:]
	}
	return path
}
