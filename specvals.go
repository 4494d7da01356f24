// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import (
	"fmt"

	"github.com/casbin/govaluate"
)

type cachedSpecValue struct {
	resolved bool
	value    uint64
}

// getSpecValue evaluates a `scroll-size` tag expression against the
// instance's specification values. Results are cached per expression; an
// expression referencing unknown names resolves to "not present" rather
// than an error so callers can fall back to defaults.
func (s *Scroll) getSpecValue(name string) (bool, uint64, error) {
	if cachedValue := s.specValueCache[name]; cachedValue != nil {
		return cachedValue.resolved, cachedValue.value, nil
	}

	cachedValue := &cachedSpecValue{}
	expression, err := govaluate.NewEvaluableExpression(name)
	if err != nil {
		return false, 0, fmt.Errorf("error parsing size expression: %v", err)
	}

	result, err := expression.Evaluate(s.evalParams)
	if err == nil {
		value, ok := result.(float64)
		if ok {
			cachedValue.resolved = true
			cachedValue.value = uint64(value)
			if float64(cachedValue.value) < value {
				// rounding issue - always round up to full bytes as we can't address partial bytes
				cachedValue.value++
			}
		}
	}

	s.specValueCache[name] = cachedValue
	return cachedValue.resolved, cachedValue.value, nil
}
