// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

// Gwrite writes a fixed-width value into dst at *offset using the default
// context and, on success, advances the offset by the number of bytes
// written. On failure the offset is left unchanged.
func Gwrite[T Fixed](dst []byte, offset *int, v T) error {
	return GwriteWith(dst, offset, v, NATIVE)
}

// GwriteWith writes a value into dst at *offset using the given context
// and advances the offset on success. Dispatch is identical to PwriteWith.
func GwriteWith[T any, C any](dst []byte, offset *int, v T, ctx C) error {
	n, err := PwriteWith(dst, *offset, v, ctx)
	if err != nil {
		return err
	}
	*offset += n
	return nil
}

// GwriteBytes copies v into dst at *offset and advances the offset on
// success.
func GwriteBytes(dst []byte, offset *int, v []byte) error {
	n, err := PwriteBytes(dst, *offset, v)
	if err != nil {
		return err
	}
	*offset += n
	return nil
}

// GwriteString copies the bytes of v into dst at *offset and advances the
// offset on success.
func GwriteString(dst []byte, offset *int, v string) error {
	n, err := PwriteString(dst, *offset, v)
	if err != nil {
		return err
	}
	*offset += n
	return nil
}
