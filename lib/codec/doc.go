// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration for on-disk state, such
// as the split-log archive index.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same index always produces the same bytes. Types that are also
// printed as JSON by the CLI carry only `json` struct tags;
// fxamacker/cbor falls back to them when `cbor` tags are absent.
//
//	err := codec.WriteFile(path, index)
//	err = codec.ReadFile(path, &index)
//
// WriteFile replaces the file atomically (temporary file, fsync,
// rename, directory fsync); readers never observe a partial write.
package codec
