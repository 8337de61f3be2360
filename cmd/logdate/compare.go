// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/logdate/cmd/logdate/cli"
	"github.com/bureau-foundation/logdate/lib/logdate"
)

func (a *app) compareCommand() *cli.Command {
	return &cli.Command{
		Name:    "compare",
		Summary: "Order two HTTP dates",
		Description: `Parse two dates and print "before", "equal", or "after" as the first
is earlier than, the same instant as, or later than the second. The
layouts may differ.`,
		Usage: "logdate compare A B",
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("compare takes exactly two dates")
			}
			first, err := logdate.Parse(args[0])
			if err != nil {
				return fmt.Errorf("first date: %w", err)
			}
			second, err := logdate.Parse(args[1])
			if err != nil {
				return fmt.Errorf("second date: %w", err)
			}
			switch logdate.Compare(first, second) {
			case -1:
				fmt.Fprintln(a.stdout, "before")
			case 0:
				fmt.Fprintln(a.stdout, "equal")
			default:
				fmt.Fprintln(a.stdout, "after")
			}
			return nil
		},
	}
}

type sortLine struct {
	text string
	date logdate.Date
}

func (a *app) sortCommand() *cli.Command {
	var canonical bool
	return &cli.Command{
		Name:    "sort",
		Summary: "Sort lines of HTTP dates read from stdin",
		Description: `Read one date per line from standard input and print the lines in
time order. Lines holding the same instant keep their input order.
Blank lines are skipped. Lines that do not parse are reported with
their line number and left out; the exit status is then 1.`,
		Usage: "logdate sort [--canonical] < FILE",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("sort", pflag.ContinueOnError)
			flagSet.BoolVar(&canonical, "canonical", false, "print the canonical form instead of the input text")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("sort reads standard input and takes no arguments")
			}
			var lines []sortLine
			rejected := 0
			scanner := bufio.NewScanner(a.stdin)
			for number := 1; scanner.Scan(); number++ {
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				date, err := logdate.Parse(text)
				if err != nil {
					rejected++
					fmt.Fprintf(a.stderr, "line %d: %v\n", number, err)
					continue
				}
				lines = append(lines, sortLine{text: text, date: date})
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading standard input: %w", err)
			}

			slices.SortStableFunc(lines, func(x, y sortLine) int {
				return logdate.Compare(x.date, y.date)
			})
			for _, line := range lines {
				if canonical {
					fmt.Fprintln(a.stdout, line.date.String())
				} else {
					fmt.Fprintln(a.stdout, line.text)
				}
			}
			if rejected > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
