// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitlog

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/logdate/lib/logdate"
)

// stampLength is len("19941106T084937.000000000").
const stampLength = 25

// Stamp renders date as "YYYYMMDDTHHMMSS.NNNNNNNNN". Unlike
// logdate.Date.String it contains no spaces or colons and sorts
// lexically in time order.
func Stamp(date logdate.Date) string {
	return fmt.Sprintf("%04d%02d%02dT%02d%02d%02d.%09d",
		date.Year, date.Month, date.Day, date.Hour, date.Minute, date.Second, date.Nanosecond)
}

// ParseStamp reads a Stamp back into a valid Date.
func ParseStamp(stamp string) (logdate.Date, error) {
	if len(stamp) != stampLength || stamp[8] != 'T' || stamp[15] != '.' {
		return logdate.Date{}, fmt.Errorf("%w: %q is not a log archive stamp", logdate.ErrInvalid, stamp)
	}
	// Field offsets within "YYYYMMDDTHHMMSS.NNNNNNNNN".
	fields := [7][2]int{{0, 4}, {4, 6}, {6, 8}, {9, 11}, {11, 13}, {13, 15}, {16, 25}}
	var values [7]int
	for i, field := range fields {
		value, ok := logdate.ParseDigits(stamp[field[0]:field[1]])
		if !ok {
			return logdate.Date{}, fmt.Errorf("%w: %q is not a log archive stamp", logdate.ErrInvalid, stamp)
		}
		values[i] = value
	}
	return logdate.New(values[0], values[1], values[2], values[3], values[4], values[5], values[6])
}

// ArchiveName returns the file name for an archive of the log called
// prefix rotated at date and packed by packer.
func ArchiveName(prefix string, date logdate.Date, packer Packer) string {
	return prefix + "-" + Stamp(date) + ".log" + packer.Extension()
}

// ParseArchiveName extracts the rotation time and packer from an
// archive file name produced by ArchiveName. It reports false for any
// other name.
func ParseArchiveName(prefix, name string) (logdate.Date, Packer, bool) {
	rest, found := strings.CutPrefix(name, prefix+"-")
	if !found || len(rest) < stampLength+len(".log") {
		return logdate.Date{}, nil, false
	}
	date, err := ParseStamp(rest[:stampLength])
	if err != nil {
		return logdate.Date{}, nil, false
	}
	for _, packer := range []Packer{Plain, LZ4, Zstd} {
		if rest[stampLength:] == ".log"+packer.Extension() {
			return date, packer, true
		}
	}
	return logdate.Date{}, nil, false
}
