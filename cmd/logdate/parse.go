// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/logdate/cmd/logdate/cli"
	"github.com/bureau-foundation/logdate/lib/logdate"
)

// parsedDate is one entry of "parse --json" output.
type parsedDate struct {
	Input      string           `json:"input"`
	Date       string           `json:"date,omitempty"`
	Year       uint16           `json:"year,omitempty"`
	Month      uint8            `json:"month,omitempty"`
	Day        uint8            `json:"day,omitempty"`
	Hour       uint8            `json:"hour"`
	Minute     uint8            `json:"minute"`
	Second     uint8            `json:"second"`
	Nanosecond uint32           `json:"nanosecond"`
	Weekday    string           `json:"weekday,omitempty"`
	Instant    *logdate.Instant `json:"instant,omitempty"`
	Error      string           `json:"error,omitempty"`
}

func newParsedDate(input string, date logdate.Date) parsedDate {
	instant := date.Instant()
	return parsedDate{
		Input:      input,
		Date:       date.String(),
		Year:       date.Year,
		Month:      date.Month,
		Day:        date.Day,
		Hour:       date.Hour,
		Minute:     date.Minute,
		Second:     date.Second,
		Nanosecond: date.Nanosecond,
		Weekday:    date.StdWeekday().String(),
		Instant:    &instant,
	}
}

func (a *app) parseCommand() *cli.Command {
	var outputJSON bool
	return &cli.Command{
		Name:    "parse",
		Summary: "Parse HTTP dates into canonical form",
		Description: `Parse each argument as an IMF-fixdate, RFC 850, or asctime date and
print it in canonical form. Every argument is reported; the exit
status is 1 if any of them was rejected.`,
		Usage: "logdate parse [flags] TEXT...",
		Examples: []cli.Example{
			{Command: `logdate parse "Sunday, 06-Nov-94 08:49:37 GMT" "Sun Nov  6 08:49:37 1994"`},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("parse", pflag.ContinueOnError)
			flagSet.BoolVar(&outputJSON, "json", false, "output fields and instant as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("parse requires at least one date")
			}
			results := make([]parsedDate, 0, len(args))
			failed := 0
			for _, input := range args {
				date, err := logdate.Parse(input)
				if err != nil {
					failed++
					results = append(results, parsedDate{Input: input, Error: err.Error()})
					if !outputJSON {
						fmt.Fprintf(a.stderr, "%v\n", err)
					}
					continue
				}
				results = append(results, newParsedDate(input, date))
				if !outputJSON {
					fmt.Fprintln(a.stdout, date.String())
				}
			}
			if outputJSON {
				if err := cli.WriteJSON(a.stdout, results); err != nil {
					return err
				}
			}
			if failed > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
