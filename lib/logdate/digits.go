// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logdate

// Fixed-width decimal decoders. Each accepts exactly its width in
// ASCII digits: no sign, no padding, no partial result.

func decode1(b byte) (uint8, bool) {
	value := b - '0'
	return value, value < 10
}

func decode2(s string) (uint8, bool) {
	if len(s) != 2 {
		return 0, false
	}
	value, ok := ParseDigits(s)
	return uint8(value), ok
}

func decode4(s string) (uint16, bool) {
	if len(s) != 4 {
		return 0, false
	}
	value, ok := ParseDigits(s)
	return uint16(value), ok
}

// ParseDigits decodes s as an unsigned decimal number. s must be one
// to nine ASCII digits; every digit counts toward the width, so leading
// zeros are kept rather than trimmed.
func ParseDigits(s string) (int, bool) {
	if len(s) == 0 || len(s) > 9 {
		return 0, false
	}
	value := 0
	for i := 0; i < len(s); i++ {
		digit := s[i] - '0'
		if digit > 9 {
			return 0, false
		}
		value = value*10 + int(digit)
	}
	return value, true
}
