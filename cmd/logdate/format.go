// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/logdate/cmd/logdate/cli"
	"github.com/bureau-foundation/logdate/lib/logdate"
)

func (a *app) formatCommand() *cli.Command {
	var nanoseconds uint32
	return &cli.Command{
		Name:    "format",
		Summary: "Format Unix seconds in canonical form",
		Usage:   "logdate format [--nanos N] SECONDS",
		Examples: []cli.Example{
			{Description: "The RFC 9110 example date", Command: "logdate format 784111777"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("format", pflag.ContinueOnError)
			flagSet.Uint32Var(&nanoseconds, "nanos", 0, "nanosecond remainder, below 1000000000")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("format takes exactly one argument, the seconds since 1970-01-01T00:00:00Z")
			}
			seconds, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("seconds: %w", err)
			}
			date, err := logdate.FromInstant(logdate.Instant{Seconds: seconds, Nanoseconds: nanoseconds})
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, date.String())
			return nil
		},
	}
}

func (a *app) nowCommand() *cli.Command {
	return &cli.Command{
		Name:    "now",
		Summary: "Print the current UTC time in canonical form",
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("now takes no arguments")
			}
			date, err := logdate.Now(a.clock)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, date.String())
			return nil
		},
	}
}
