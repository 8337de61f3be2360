// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/logdate/cmd/logdate/cli"
	"github.com/bureau-foundation/logdate/lib/clock"
	"github.com/bureau-foundation/logdate/lib/version"
)

// app holds the process streams and clock the commands run against.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	clock  clock.Clock
}

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name: "logdate",
		Description: `Parse, format, and compare log timestamps.

Dates are read in the three HTTP date layouts (IMF-fixdate, RFC 850,
asctime) and printed in the canonical log form
"YYYY-MM-DD HH:MM:SS.NNNNNNNNN" with the nanosecond space-padded.`,
		HelpOutput: a.stderr,
		Subcommands: []*cli.Command{
			a.parseCommand(),
			a.formatCommand(),
			a.nowCommand(),
			a.compareCommand(),
			a.sortCommand(),
			a.archivesCommand(),
			a.versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Parse an IMF-fixdate",
				Command:     `logdate parse "Sun, 06 Nov 1994 08:49:37 GMT"`,
			},
			{
				Description: "Sort a file of HTTP dates",
				Command:     "logdate sort < dates.txt",
			},
			{
				Description: "Check the archives written by logdate-relay",
				Command:     "logdate archives --dir /var/log/relay --verify",
			},
		},
	}
}

func (a *app) versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("version takes no arguments")
			}
			fmt.Fprintln(a.stdout, "logdate "+version.Full())
			return nil
		},
	}
}
