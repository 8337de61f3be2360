// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the injectable time source that originates
// log timestamps.
//
// Production code accepts a Clock instead of calling time.Now or
// time.NewTicker directly. Real() is backed by the standard library;
// Fake() stands still until the test calls Advance, and fires tickers
// synchronously as their deadlines pass:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	writer, _ := splitlog.Open(splitlog.Options{Clock: c, ...})
//	c.Advance(time.Hour)
//
// Both implementations are safe for concurrent use.
package clock
