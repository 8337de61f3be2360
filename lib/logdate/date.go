// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logdate

import (
	"errors"
	"fmt"
	"time"

	"github.com/bureau-foundation/logdate/lib/clock"
)

// ErrInvalid is the single error kind for text that is not a supported
// date and for calendar values that do not denote a real date.
var ErrInvalid = errors.New("logdate: invalid date")

// ErrOutOfRange reports an instant outside [1970-01-01, 10000-01-01).
// It wraps ErrInvalid.
var ErrOutOfRange = fmt.Errorf("%w: outside 1970-01-01 through 9999-12-31", ErrInvalid)

// Date is a UTC calendar timestamp. The zero value is not valid; obtain
// Dates from FromInstant, FromTime, Now, New, or Parse.
type Date struct {
	// Nanosecond is the sub-second remainder, 0 through 999999999.
	Nanosecond uint32
	// Second is 0 through 59. There are no leap seconds.
	Second uint8
	// Minute is 0 through 59.
	Minute uint8
	// Hour is 0 through 23.
	Hour uint8
	// Day is the day of the month, 1 through 31.
	Day uint8
	// Month is 1 (January) through 12 (December).
	Month uint8
	// Year is 1970 through 9999.
	Year uint16
	// Weekday is 1 (Monday) through 7 (Sunday).
	Weekday uint8
}

// Instant is a point in time as whole seconds since
// 1970-01-01T00:00:00Z plus a nanosecond remainder. It is the
// interchange type with clocks and on-disk records.
type Instant struct {
	Seconds     int64  `json:"seconds"`
	Nanoseconds uint32 `json:"nanoseconds"`
}

// Compare returns -1, 0, or +1 as i is before, equal to, or after other.
func (i Instant) Compare(other Instant) int {
	switch {
	case i.Seconds < other.Seconds:
		return -1
	case i.Seconds > other.Seconds:
		return 1
	case i.Nanoseconds < other.Nanoseconds:
		return -1
	case i.Nanoseconds > other.Nanoseconds:
		return 1
	}
	return 0
}

// New returns the valid Date for the given fields with the weekday
// derived from the calendar. It fails with ErrInvalid when a field is
// out of range or the day does not exist in that month.
func New(year, month, day, hour, minute, second, nanosecond int) (Date, error) {
	if year < minYear || year > maxYear || month < 1 || month > 12 || day < 1 || day > 31 ||
		hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 ||
		nanosecond < 0 || nanosecond >= nanosecondsPerSecond {
		return Date{}, fmt.Errorf("%w: field out of range in %04d-%02d-%02d %02d:%02d:%02d.%09d",
			ErrInvalid, year, month, day, hour, minute, second, nanosecond)
	}
	date := Date{
		Nanosecond: uint32(nanosecond),
		Second:     uint8(second),
		Minute:     uint8(minute),
		Hour:       uint8(hour),
		Day:        uint8(day),
		Month:      uint8(month),
		Year:       uint16(year),
	}
	derived, err := FromInstant(date.Instant())
	if err != nil {
		return Date{}, err
	}
	date.Weekday = derived.Weekday
	if derived != date {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d does not exist", ErrInvalid, year, month, day)
	}
	return date, nil
}

// FromTime converts t to a Date. The location of t is ignored; the
// result is always UTC.
func FromTime(t time.Time) (Date, error) {
	return FromInstant(Instant{Seconds: t.Unix(), Nanoseconds: uint32(t.Nanosecond())})
}

// Now reads the current time from source.
func Now(source clock.Clock) (Date, error) {
	return FromTime(source.Now())
}

// Time returns d as a UTC time.Time.
func (d Date) Time() time.Time {
	instant := d.Instant()
	return time.Unix(instant.Seconds, int64(instant.Nanoseconds)).UTC()
}

// StdWeekday maps Weekday onto the standard library's Sunday-based
// numbering.
func (d Date) StdWeekday() time.Weekday {
	return time.Weekday(d.Weekday % 7)
}

// Valid reports whether d denotes a real date in the supported range
// with a consistent weekday.
func (d Date) Valid() bool {
	if d.Nanosecond >= nanosecondsPerSecond || d.Second >= 60 || d.Minute >= 60 || d.Hour >= 24 ||
		d.Day == 0 || d.Day >= 32 || d.Month == 0 || d.Month > 12 ||
		d.Year < minYear || d.Year > maxYear {
		return false
	}
	derived, err := FromInstant(d.Instant())
	return err == nil && derived == d
}

// IsLeapYear reports whether year has a February 29 in the proleptic
// Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
