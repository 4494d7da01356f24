// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

import "io"

// Buffer is a simple in-memory byte container implementing Source and
// MutSource. It owns its backing slice; wrap an existing slice with
// NewBuffer or slurp a reader with BufferFrom.
type Buffer struct {
	data []byte
}

// NewBuffer wraps data in a Buffer without copying.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// NewBufferSize returns a zeroed Buffer of the given size.
func NewBufferSize(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// BufferFrom reads r to EOF into a new Buffer.
func BufferFrom(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Buffer{data: data}, nil
}

func (b *Buffer) Bytes() []byte {
	return b.data
}

func (b *Buffer) MutBytes() []byte {
	return b.data
}

func (b *Buffer) Len() int {
	return len(b.data)
}
