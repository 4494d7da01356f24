// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package codegen

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// LoadTypes loads a Go package and resolves the named types in it, for
// passing to Generator.BuildFile. packagePath takes any pattern accepted by
// golang.org/x/tools/go/packages, such as "./pkg/types".
func LoadTypes(packagePath string, names ...string) ([]types.Type, error) {
	cfg := &packages.Config{
		Mode: packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax | packages.NeedName,
	}

	pkgs, err := packages.Load(cfg, packagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", packagePath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %s", packagePath)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package %s has errors: %v", packagePath, pkg.Errors[0])
	}

	found := make([]types.Type, 0, len(names))
	scope := pkg.Types.Scope()

	for _, name := range names {
		obj := scope.Lookup(name)
		if obj == nil {
			return nil, fmt.Errorf("type %s not found in package %s", name, packagePath)
		}
		typeObj, ok := obj.(*types.TypeName)
		if !ok {
			return nil, fmt.Errorf("object %s is not a type in package %s", name, packagePath)
		}
		found = append(found, typeObj.Type())
	}

	return found, nil
}
