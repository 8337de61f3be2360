// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logdate

import "strconv"

// String returns d as "YYYY-MM-DD HH:MM:SS." followed by the
// nanosecond right-aligned and space-padded to nine columns, for
// example "1994-11-06 08:49:37.        0".
func (d Date) String() string {
	var buffer [32]byte
	return string(d.AppendFormat(buffer[:0]))
}

// AppendFormat appends the String form of d to b.
func (d Date) AppendFormat(b []byte) []byte {
	var prefix [20]byte
	put2 := func(offset int, value uint8) {
		prefix[offset] = '0' + value/10%10
		prefix[offset+1] = '0' + value%10
	}
	year := d.Year
	prefix[0] = byte('0' + year/1000%10)
	prefix[1] = byte('0' + year/100%10)
	prefix[2] = byte('0' + year/10%10)
	prefix[3] = byte('0' + year%10)
	prefix[4] = '-'
	put2(5, d.Month)
	prefix[7] = '-'
	put2(8, d.Day)
	prefix[10] = ' '
	put2(11, d.Hour)
	prefix[13] = ':'
	put2(14, d.Minute)
	prefix[16] = ':'
	put2(17, d.Second)
	prefix[19] = '.'
	b = append(b, prefix[:]...)

	var digits [10]byte
	nanosecond := strconv.AppendUint(digits[:0], uint64(d.Nanosecond), 10)
	for padding := 9 - len(nanosecond); padding > 0; padding-- {
		b = append(b, ' ')
	}
	return append(b, nanosecond...)
}
