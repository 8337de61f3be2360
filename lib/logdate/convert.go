// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logdate

import "fmt"

const (
	minYear = 1970
	maxYear = 9999

	nanosecondsPerSecond = 1_000_000_000
	secondsPerDay        = 86400

	// limitSeconds is 10000-01-01T00:00:00Z.
	limitSeconds = 253402300800

	// leapEpoch is 2000-03-01 in days since 1970-01-01. Counting
	// years from March puts February 29 at the end of a year, so the
	// cycle arithmetic never has to special-case it.
	leapEpoch = 11017

	daysPer400Years = 365*400 + 97
	daysPer100Years = 365*100 + 24
	daysPer4Years   = 365*4 + 1
)

// shiftedMonthDays lists month lengths starting from March. The final
// entry is February of the following calendar year.
var shiftedMonthDays = [12]int64{31, 30, 31, 30, 31, 31, 30, 31, 30, 31, 31, 29}

// daysBeforeMonth[m] is the day of a non-leap year on which month m
// begins, counting January 1 as day 0. Index 0 is unused.
var daysBeforeMonth = [13]int64{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// FromInstant converts an instant to its UTC calendar fields. It
// returns ErrOutOfRange for instants before the epoch, at or after
// 10000-01-01T00:00:00Z, or with a nanosecond remainder of one second
// or more.
func FromInstant(instant Instant) (Date, error) {
	if instant.Seconds < 0 || instant.Seconds >= limitSeconds {
		return Date{}, fmt.Errorf("%w: %d seconds since epoch", ErrOutOfRange, instant.Seconds)
	}
	if instant.Nanoseconds >= nanosecondsPerSecond {
		return Date{}, fmt.Errorf("%w: nanosecond remainder %d", ErrOutOfRange, instant.Nanoseconds)
	}

	days := instant.Seconds/secondsPerDay - leapEpoch
	secondsOfDay := instant.Seconds % secondsPerDay

	cycles400 := days / daysPer400Years
	remaining := days % daysPer400Years
	if remaining < 0 {
		remaining += daysPer400Years
		cycles400--
	}

	// The last century of a 400-year cycle, the last 4-year cycle of a
	// century, and the last year of a 4-year cycle each run one day
	// long; on that day the quotient overshoots by one.
	cycles100 := remaining / daysPer100Years
	if cycles100 == 4 {
		cycles100--
	}
	remaining -= cycles100 * daysPer100Years

	cycles4 := remaining / daysPer4Years
	if cycles4 == 25 {
		cycles4--
	}
	remaining -= cycles4 * daysPer4Years

	years := remaining / 365
	if years == 4 {
		years--
	}
	remaining -= years * 365

	year := 2000 + years + 4*cycles4 + 100*cycles100 + 400*cycles400

	var month int64
	for _, length := range shiftedMonthDays {
		month++
		if remaining < length {
			break
		}
		remaining -= length
	}
	day := remaining + 1

	// Shifted months 11 and 12 are January and February of the next
	// calendar year.
	if month+2 > 12 {
		year++
		month -= 10
	} else {
		month += 2
	}

	// 2000-03-01 was a Wednesday.
	weekday := (3 + days) % 7
	if weekday <= 0 {
		weekday += 7
	}

	return Date{
		Nanosecond: instant.Nanoseconds,
		Second:     uint8(secondsOfDay % 60),
		Minute:     uint8(secondsOfDay % 3600 / 60),
		Hour:       uint8(secondsOfDay / 3600),
		Day:        uint8(day),
		Month:      uint8(month),
		Year:       uint16(year),
		Weekday:    uint8(weekday),
	}, nil
}

// Instant converts d back to seconds and nanoseconds since the epoch.
// It is the exact inverse of FromInstant for every Date FromInstant
// returns. The Weekday field is ignored. For a Date that is not valid
// the result is unspecified, but Instant does not panic.
func (d Date) Instant() Instant {
	year := int64(d.Year)

	// Leap years in [1970, year), counted against anchors that share
	// residues with 1970: 1968 mod 4, 1900 mod 100, 1600 mod 400.
	prior := year - 1
	leapYears := (prior-1968)/4 - (prior-1900)/100 + (prior-1600)/400

	var yearDay int64
	if d.Month >= 1 && d.Month <= 12 {
		yearDay = daysBeforeMonth[d.Month]
	}
	yearDay += int64(d.Day) - 1
	if d.Month > 2 && IsLeapYear(int(d.Year)) {
		yearDay++
	}

	days := (year-minYear)*365 + leapYears + yearDay
	seconds := days*secondsPerDay + int64(d.Hour)*3600 + int64(d.Minute)*60 + int64(d.Second)
	return Instant{Seconds: seconds, Nanoseconds: d.Nanosecond}
}
