// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package codegen

import (
	"runtime/debug"
)

// Version is the scroll library version used for code generation. It is
// stamped into the header of generated files so a stale file can be traced
// back to the library that produced it. During development it stays
// "unknown".
var Version = "unknown"

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range info.Deps {
			if dep.Path == "github.com/m4b/scroll" {
				Version = dep.Version
				break
			}
		}
	}
}
