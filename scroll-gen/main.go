// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

// scroll-gen generates TryFromCtx/TryIntoCtx/Size methods for struct types,
// so hot paths can skip the runtime reflection engine.
//
// Usage:
//
//	scroll-gen -package ./pkg/types -types Header,Record -output pkg/types/types_scroll.go
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/m4b/scroll/codegen"
)

func main() {
	var (
		packagePath = flag.String("package", "", "Go package path to analyze")
		typeNames   = flag.String("types", "", "Comma-separated list of type names to generate code for")
		outputFile  = flag.String("output", "", "Output file path for generated code")
		noSize      = flag.Bool("nosize", false, "Do not generate Size methods")
		verbose     = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	if *packagePath == "" {
		log.Fatal("Package path is required (-package)")
	}
	if *typeNames == "" {
		log.Fatal("Type names are required (-types)")
	}
	if *outputFile == "" {
		log.Fatal("Output file is required (-output)")
	}

	if *verbose {
		log.Printf("Analyzing package: %s", *packagePath)
		log.Printf("Looking for types: %s", *typeNames)
		log.Printf("Output file: %s", *outputFile)
	}

	names := strings.Split(*typeNames, ",")
	for i, name := range names {
		names[i] = strings.TrimSpace(name)
	}

	foundTypes, err := codegen.LoadTypes(*packagePath, names...)
	if err != nil {
		log.Fatalf("Failed to load types: %v", err)
	}

	if *verbose {
		log.Printf("Successfully loaded %d types from %s", len(foundTypes), *packagePath)
	}

	var opts []codegen.Option
	if *noSize {
		opts = append(opts, codegen.WithNoSizeMethod())
	}

	gen := codegen.NewGenerator(opts...)
	if err := gen.BuildFile(*outputFile, foundTypes...); err != nil {
		log.Fatalf("Failed to build file request: %v", err)
	}

	if *verbose {
		log.Printf("Generating code...")
	}

	if err := gen.Generate(); err != nil {
		log.Fatalf("Failed to generate code: %v", err)
	}

	fmt.Printf("Generated scroll code for %d types in %s\n", len(foundTypes), *outputFile)
}
