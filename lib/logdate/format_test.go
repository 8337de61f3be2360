// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logdate

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{valid1994, "1994-11-06 08:49:37.        0"},
		{Date{Nanosecond: 123, Second: 5, Minute: 4, Hour: 3, Day: 2, Month: 1, Year: 1970, Weekday: 5}, "1970-01-02 03:04:05.      123"},
		{Date{Nanosecond: 123456789, Second: 59, Minute: 59, Hour: 23, Day: 31, Month: 12, Year: 9999, Weekday: 5}, "9999-12-31 23:59:59.123456789"},
		{Date{Nanosecond: 100000000, Day: 29, Month: 2, Year: 2000, Weekday: 2}, "2000-02-29 00:00:00.100000000"},
	}
	for _, test := range tests {
		if got := test.date.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestStringUnvalidatedWidth(t *testing.T) {
	// Nanosecond fields wider than nine digits are printed in full.
	date := Date{Nanosecond: 4294967295, Day: 1, Month: 1, Year: 1970}
	if got, want := date.String(), "1970-01-01 00:00:00.4294967295"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAppendFormat(t *testing.T) {
	buffer := []byte("ts=")
	buffer = valid1994.AppendFormat(buffer)
	if got, want := string(buffer), "ts=1994-11-06 08:49:37.        0"; got != want {
		t.Errorf("AppendFormat = %q, want %q", got, want)
	}
}

func TestFormatIsNotParseable(t *testing.T) {
	date, err := Parse("Sun, 06 Nov 1994 08:49:37 GMT")
	if err != nil {
		t.Fatal(err)
	}
	text := date.String()
	if _, err := Parse(text); err == nil {
		t.Errorf("Parse(%q) succeeded; the canonical layout is output only", text)
	}
	for _, candidate := range layouts {
		if _, ok := candidate.parse(text); ok {
			t.Errorf("layout %s accepted %q", candidate.name, text)
		}
	}
}

func TestStringDoesNotAllocateBeyondResult(t *testing.T) {
	buffer := make([]byte, 0, 64)
	allocations := testing.AllocsPerRun(100, func() {
		buffer = valid1994.AppendFormat(buffer[:0])
	})
	if allocations != 0 {
		t.Errorf("AppendFormat allocated %.0f times per call, want 0", allocations)
	}
}
