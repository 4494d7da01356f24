// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpecsFromYAML parses a flat YAML mapping of spec names to values, suitable
// for passing to NewScroll. Format presets shipped as YAML files (register
// layouts, protocol constants, size tables) load straight into the size
// expression engine this way.
//
//	specs, err := scroll.SpecsFromYAML(data)
//	s := scroll.NewScroll(specs)
func SpecsFromYAML(data []byte) (map[string]any, error) {
	specs := map[string]any{}
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed parsing spec yaml: %w", err)
	}
	return specs, nil
}

// SpecsFromYAMLFile reads and parses a YAML preset file.
func SpecsFromYAMLFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading spec yaml: %w", err)
	}
	return SpecsFromYAML(data)
}
