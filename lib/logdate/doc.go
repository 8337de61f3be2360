// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logdate implements the calendar timestamp used to stamp log
// lines and name rotated log archives.
//
// A [Date] is the decomposed UTC calendar form of an [Instant] (seconds
// and nanoseconds since 1970-01-01T00:00:00Z) in the proleptic
// Gregorian calendar, restricted to years 1970 through 9999:
//
//	date, err := logdate.FromInstant(logdate.Instant{Seconds: 784111777})
//	// date.String() == "1994-11-06 08:49:37.        0"
//
// The two directions are explicit functions, [FromInstant] and
// [Date.Instant]. A Date is valid when every field is in range and
// converting it to an Instant and back reproduces it field for field;
// that round trip is the only place month lengths, leap years, and
// weekdays are checked.
//
// [Parse] accepts the three legacy HTTP date layouts, tried in order:
//
//	Sun, 06 Nov 1994 08:49:37 GMT    IMF-fixdate
//	Sunday, 06-Nov-94 08:49:37 GMT   RFC 850 (two-digit year, 70 pivot)
//	Sun Nov  6 08:49:37 1994         asctime
//
// [Date.String] renders exactly one layout, "YYYY-MM-DD HH:MM:SS."
// followed by the nanosecond right-aligned in nine columns. Parse does
// not accept that layout.
//
// Dates are ordered by instant ([Compare]); == compares fields. The two
// agree for valid values.
//
// Every failure wraps [ErrInvalid]. Instants at or beyond
// 10000-01-01T00:00:00Z, before the epoch, or with a nanosecond
// remainder of a full second or more return [ErrOutOfRange] rather than
// panicking.
//
// All functions are pure and safe for concurrent use.
package logdate
