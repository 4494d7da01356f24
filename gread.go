// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the scroll library.

package scroll

// Gread reads a fixed-width value from src at *offset using the default
// context and, on success, advances the offset by the number of bytes
// consumed. On failure the offset is left unchanged.
//
// The offset is caller-owned mutable state: each call observes the offset
// produced by the previous one, which makes this API a natural fit for
// walking a stream of records but unsafe for unsynchronized concurrent use
// on the same cursor.
func Gread[T Fixed](src []byte, offset *int) (T, error) {
	return GreadWith[T](src, offset, NATIVE)
}

// GreadWith reads a value from src at *offset using the given context and
// advances the offset on success. Dispatch is identical to PreadWith.
func GreadWith[T any, C any](src []byte, offset *int, ctx C) (T, error) {
	v, n, err := preadWith[T](src, *offset, ctx)
	if err != nil {
		return v, err
	}
	*offset += n
	return v, nil
}

// GreadBytes extracts a byte slice view at *offset and advances the offset
// by its length on success. A delimiter context does not consume the
// delimiter byte itself.
func GreadBytes(src []byte, offset *int, ctx StrCtx) ([]byte, error) {
	b, n, err := preadBytes(src, *offset, ctx)
	if err != nil {
		return nil, err
	}
	*offset += n
	return b, nil
}

// GreadString extracts a UTF-8 text view at *offset and advances the
// offset by its length on success.
func GreadString(src []byte, offset *int, ctx StrCtx) (string, error) {
	s, n, err := preadString(src, *offset, ctx)
	if err != nil {
		return "", err
	}
	*offset += n
	return s, nil
}
