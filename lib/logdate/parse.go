// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logdate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var longWeekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// layout is one accepted date grammar. parse reports false unless the
// text matches the grammar byte for byte; it does not check that the
// date exists.
type layout struct {
	name  string
	parse func(text string) (Date, bool)
}

// layouts are tried in order.
var layouts = []layout{
	{name: "IMF-fixdate", parse: parseFixdate},
	{name: "RFC 850", parse: parseLongWeekday},
	{name: "asctime", parse: parseAsctime},
}

// Parse reads a date in IMF-fixdate, RFC 850, or asctime layout.
// Surrounding whitespace is ignored. The text must be ASCII, and the
// date must exist with the stated weekday; otherwise the error wraps
// ErrInvalid.
func Parse(text string) (Date, error) {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return Date{}, fmt.Errorf("%w: non-ASCII byte at offset %d", ErrInvalid, i)
		}
	}
	trimmed := strings.TrimSpace(text)

	var rejected string
	for _, candidate := range layouts {
		date, ok := candidate.parse(trimmed)
		if !ok {
			continue
		}
		if date.Valid() {
			return date, nil
		}
		rejected = candidate.name
	}
	if rejected != "" {
		return Date{}, fmt.Errorf("%w: %q is %s but not a real date with that weekday", ErrInvalid, trimmed, rejected)
	}
	return Date{}, fmt.Errorf("%w: %q matches no supported layout", ErrInvalid, trimmed)
}

// fieldReader decodes numeric fields at fixed offsets and remembers
// whether any of them failed. Callers check the length first.
type fieldReader struct {
	text string
	ok   bool
}

func (r *fieldReader) two(start int) uint8 {
	value, ok := decode2(r.text[start : start+2])
	r.ok = r.ok && ok
	return value
}

func (r *fieldReader) four(start int) uint16 {
	value, ok := decode4(r.text[start : start+4])
	r.ok = r.ok && ok
	return value
}

// lookupName returns the 1-based position of name in names, or 0.
func lookupName(names []string, name string) uint8 {
	for i, candidate := range names {
		if candidate == name {
			return uint8(i + 1)
		}
	}
	return 0
}

// parseFixdate reads "Sun, 06 Nov 1994 08:49:37 GMT".
func parseFixdate(text string) (Date, bool) {
	if len(text) != 29 || text[3] != ',' || text[4] != ' ' || text[7] != ' ' || text[11] != ' ' ||
		text[16] != ' ' || text[19] != ':' || text[22] != ':' || text[25:] != " GMT" {
		return Date{}, false
	}
	weekday := lookupName(weekdayNames[:], text[0:3])
	month := lookupName(monthNames[:], text[8:11])
	if weekday == 0 || month == 0 {
		return Date{}, false
	}
	fields := fieldReader{text: text, ok: true}
	date := Date{
		Second:  fields.two(23),
		Minute:  fields.two(20),
		Hour:    fields.two(17),
		Day:     fields.two(5),
		Month:   month,
		Year:    fields.four(12),
		Weekday: weekday,
	}
	return date, fields.ok
}

// parseLongWeekday reads "Sunday, 06-Nov-94 08:49:37 GMT". Two-digit
// years below 70 are in the 2000s, the rest in the 1900s.
func parseLongWeekday(text string) (Date, bool) {
	if len(text) < 23 {
		return Date{}, false
	}
	var weekday uint8
	var rest string
	for i, name := range longWeekdayNames {
		if strings.HasPrefix(text, name) && strings.HasPrefix(text[len(name):], ", ") {
			weekday = uint8(i + 1)
			rest = text[len(name)+2:]
			break
		}
	}
	if weekday == 0 {
		return Date{}, false
	}

	// rest is "06-Nov-94 08:49:37 GMT".
	if len(rest) != 22 || rest[2] != '-' || rest[6] != '-' || rest[9] != ' ' ||
		rest[12] != ':' || rest[15] != ':' || rest[18:] != " GMT" {
		return Date{}, false
	}
	month := lookupName(monthNames[:], rest[3:6])
	if month == 0 {
		return Date{}, false
	}
	fields := fieldReader{text: rest, ok: true}
	year := uint16(fields.two(7))
	if year < 70 {
		year += 2000
	} else {
		year += 1900
	}
	date := Date{
		Second:  fields.two(16),
		Minute:  fields.two(13),
		Hour:    fields.two(10),
		Day:     fields.two(0),
		Month:   month,
		Year:    year,
		Weekday: weekday,
	}
	return date, fields.ok
}

// parseAsctime reads "Sun Nov  6 08:49:37 1994". A day below 10 may
// be written with a leading space instead of a zero.
func parseAsctime(text string) (Date, bool) {
	if len(text) != 24 || text[3] != ' ' || text[7] != ' ' || text[10] != ' ' ||
		text[13] != ':' || text[16] != ':' || text[19] != ' ' {
		return Date{}, false
	}
	weekday := lookupName(weekdayNames[:], text[0:3])
	month := lookupName(monthNames[:], text[4:7])
	if weekday == 0 || month == 0 {
		return Date{}, false
	}
	fields := fieldReader{text: text, ok: true}
	var day uint8
	if text[8] == ' ' {
		var ok bool
		day, ok = decode1(text[9])
		fields.ok = ok
	} else {
		day = fields.two(8)
	}
	date := Date{
		Second:  fields.two(17),
		Minute:  fields.two(14),
		Hour:    fields.two(11),
		Day:     day,
		Month:   month,
		Year:    fields.four(20),
		Weekday: weekday,
	}
	return date, fields.ok
}
