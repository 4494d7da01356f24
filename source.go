// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

// Source is the minimal contract a byte container must satisfy to be
// readable: it exposes its contents as one flat byte slice. A []byte
// already satisfies every entry point directly; Source adapts other
// containers (memory-mapped regions, pooled buffers) without copying.
//
// Values produced by zero-copy reads (byte and text slices) are views into
// the returned slice and must not outlive the container.
type Source interface {
	Bytes() []byte
}

// MutSource is satisfied by containers that additionally allow their
// contents to be mutated in place. Writes never resize the container;
// append/grow semantics are the container's own business.
type MutSource interface {
	Source
	MutBytes() []byte
}
