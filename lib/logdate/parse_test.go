// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logdate

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseThreeLayoutsAgree(t *testing.T) {
	inputs := []string{
		"Sun, 06 Nov 1994 08:49:37 GMT",
		"Sunday, 06-Nov-94 08:49:37 GMT",
		"Sun Nov  6 08:49:37 1994",
	}
	var parsed []Date
	for _, input := range inputs {
		date, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if date != valid1994 {
			t.Errorf("Parse(%q) = %+v, want %+v", input, date, valid1994)
		}
		parsed = append(parsed, date)
	}
	for i := 1; i < len(parsed); i++ {
		if Compare(parsed[0], parsed[i]) != 0 {
			t.Errorf("Compare(%q, %q) != 0", inputs[0], inputs[i])
		}
	}
}

func TestParseRejects(t *testing.T) {
	inputs := map[string]string{
		"wrong weekday":                  "Mon, 06 Nov 1994 08:49:37 GMT",
		"wrong long weekday":             "Monday, 06-Nov-94 08:49:37 GMT",
		"wrong asctime weekday":          "Mon Nov  6 08:49:37 1994",
		"wrong zone":                     "Sun, 06 Nov 1994 08:49:37 EST",
		"wrong long zone":                "Sunday, 06-Nov-94 08:49:37 EST",
		"lowercase zone":                 "Sun, 06 Nov 1994 08:49:37 gmt",
		"lowercase month":                "Sun, 06 nov 1994 08:49:37 GMT",
		"missing comma":                  "Sun  06 Nov 1994 08:49:37 GMT",
		"dash instead of colon":          "Sun, 06 Nov 1994 08-49:37 GMT",
		"single digit fixdate day":       "Sun,  6 Nov 1994 08:49:37 GMT",
		"long weekday missing space":     "Sunday, 06-Nov-94X08:49:37 GMT",
		"long weekday with 4 digit year": "Sunday, 06-Nov-1994 08:49:37 GMT",
		"long weekday abbreviated":       "Sun, 06-Nov-94 08:49:37 GMT",
		"asctime zero day":               "Sun Nov  0 08:49:37 1994",
		"asctime letter day":             "Sun Nov  x 08:49:37 1994",
		"asctime with zone":              "Sun Nov  6 08:49:37 1994 GMT",
		"hour 24":                        "Sun, 06 Nov 1994 24:49:37 GMT",
		"second 60":                      "Sun, 06 Nov 1994 08:49:60 GMT",
		"april 31":                       "Sat, 31 Apr 1994 08:49:37 GMT",
		"february 29 2100":               "Mon, 29 Feb 2100 00:00:00 GMT",
		"before 1970":                    "Wed, 31 Dec 1969 23:59:59 GMT",
		"signed field":                   "Sun, +6 Nov 1994 08:49:37 GMT",
		"empty":                          "",
		"whitespace":                     "   \t ",
		"iso 8601":                       "1994-11-06T08:49:37Z",
		"canonical":                      "1994-11-06 08:49:37.        0",
		"non-ascii":                      "Sun, 06 Nov 1994 08:49:37 GMT\u00a0",
		"non-ascii inside":               "Sün, 06 Nov 1994 08:49:37 GMT",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			date, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) = %+v, want error", input, date)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse(%q) error = %v, does not wrap ErrInvalid", input, err)
			}
		})
	}
}

func TestParseAccepts(t *testing.T) {
	tests := []struct {
		input string
		want  Date
	}{
		{"  Sun, 06 Nov 1994 08:49:37 GMT\r\n", valid1994},
		{"\tSun Nov  6 08:49:37 1994 ", valid1994},
		{"Sun Nov 06 08:49:37 1994", valid1994},
		{"Tue, 29 Feb 2000 00:00:00 GMT", Date{Day: 29, Month: 2, Year: 2000, Weekday: 2}},
		{"Thu, 01 Jan 1970 00:00:00 GMT", Date{Day: 1, Month: 1, Year: 1970, Weekday: 4}},
		{"Fri, 31 Dec 9999 23:59:59 GMT", Date{Second: 59, Minute: 59, Hour: 23, Day: 31, Month: 12, Year: 9999, Weekday: 5}},
		{"Thursday, 01-Jan-70 00:00:00 GMT", Date{Day: 1, Month: 1, Year: 1970, Weekday: 4}},
		{"Tuesday, 31-Dec-69 23:59:59 GMT", Date{Second: 59, Minute: 59, Hour: 23, Day: 31, Month: 12, Year: 2069, Weekday: 2}},
		{"Saturday, 01-Jan-00 12:00:00 GMT", Date{Hour: 12, Day: 1, Month: 1, Year: 2000, Weekday: 6}},
		{"Wed Dec 31 23:59:59 1969", Date{}},
		{"Sun Feb 29 12:34:56 2004", Date{Second: 56, Minute: 34, Hour: 12, Day: 29, Month: 2, Year: 2004, Weekday: 7}},
	}
	for _, test := range tests {
		date, err := Parse(test.input)
		if test.want == (Date{}) {
			if err == nil {
				t.Errorf("Parse(%q) = %+v, want error", test.input, date)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", test.input, err)
			continue
		}
		if date != test.want {
			t.Errorf("Parse(%q) = %+v, want %+v", test.input, date, test.want)
		}
	}
}

// TestParseStandardLibraryRenderings formats instants spread across
// the range with the standard library in each layout and parses them
// back.
func TestParseStandardLibraryRenderings(t *testing.T) {
	const (
		fixdateLayout  = "Mon, 02 Jan 2006 15:04:05 GMT"
		rfc850Layout   = "Monday, 02-Jan-06 15:04:05 GMT"
		asctimeLayout  = time.ANSIC
		rfc850Boundary = 3155760000 // 2070-01-01
	)
	for seconds := int64(0); seconds < limitSeconds; seconds += 7_777_777 {
		reference := time.Unix(seconds, 0).UTC()
		want, err := FromTime(reference)
		if err != nil {
			t.Fatal(err)
		}
		renderings := []string{reference.Format(fixdateLayout), reference.Format(asctimeLayout)}
		if seconds < rfc850Boundary {
			renderings = append(renderings, reference.Format(rfc850Layout))
		}
		for _, text := range renderings {
			got, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse(%q): %v", text, err)
			}
			if got != want {
				t.Fatalf("Parse(%q) = %+v, want %+v", text, got, want)
			}
		}
	}
}

func TestParseErrorMessages(t *testing.T) {
	_, err := Parse("Mon, 06 Nov 1994 08:49:37 GMT")
	if err == nil || !strings.Contains(err.Error(), "IMF-fixdate") {
		t.Errorf("weekday mismatch error = %v, want it to name the matching layout", err)
	}
	_, err = Parse("yesterday")
	if err == nil || !strings.Contains(err.Error(), "matches no supported layout") {
		t.Errorf("unknown layout error = %v", err)
	}
	_, err = Parse("Sun, 06 Nov 1994 08:49:37 GMTé")
	if err == nil || !strings.Contains(err.Error(), "non-ASCII") {
		t.Errorf("non-ASCII error = %v", err)
	}
}
