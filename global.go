// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import "sync/atomic"

var globalScroll atomic.Pointer[Scroll]

func init() {
	globalScroll.Store(NewScroll(nil))
}

// GetGlobalScroll returns the package-global instance used by the generic
// access functions when they fall back to reflection. It has no
// specification values until SetGlobalSpecs is called. Safe for concurrent
// use from any number of goroutines.
func GetGlobalScroll() *Scroll {
	return globalScroll.Load()
}

// SetGlobalSpecs replaces the package-global instance with one carrying
// the given specification values. Reads already in flight keep the
// instance they started with.
func SetGlobalSpecs(specs map[string]any) {
	globalScroll.Store(NewScroll(specs))
}
