// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// logdate parses, formats, and compares the timestamps used in log
// output, and inspects the archive directories written by
// logdate-relay.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/logdate/lib/clock"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		// Commands that already reported their failures return an
		// ExitError. Don't print a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	application := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		clock:  clock.Real(),
	}
	return application.root().Execute(args)
}
