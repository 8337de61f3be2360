// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logdate

// Compare orders a and b by instant, returning -1, 0, or +1. It has
// the signature slices.SortFunc expects.
//
// For valid Dates Compare(a, b) == 0 exactly when a == b. Values built
// by hand without validation can share an instant while differing in
// fields (February 31 and March 3, or a wrong weekday).
func Compare(a, b Date) int {
	return a.Instant().Compare(b.Instant())
}

// Compare orders d relative to other by instant.
func (d Date) Compare(other Date) int {
	return Compare(d, other)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return Compare(d, other) < 0
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return Compare(d, other) > 0
}
