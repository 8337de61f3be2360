// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/bureau-foundation/logdate/cmd/logdate/cli"
	"github.com/bureau-foundation/logdate/lib/clock"
	"github.com/bureau-foundation/logdate/lib/splitlog"
	"github.com/bureau-foundation/logdate/lib/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, clock.Real()))
}

// run executes the child command and returns the relay's exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, source clock.Clock) int {
	settings, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "logdate-relay: %v\n", err)
		return 2
	}
	if settings.showVersion {
		fmt.Fprintln(stdout, "logdate-relay "+version.Info())
		return 0
	}

	logger, err := cli.NewCommandLogger(stderr, settings.logFormat, settings.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "logdate-relay: %v\n", err)
		return 2
	}
	logger = logger.With("command", settings.command[0])

	options := settings.splitLog
	options.Clock = source
	options.Logger = logger
	writer, err := splitlog.Open(options)
	if err != nil {
		fmt.Fprintf(stderr, "logdate-relay: %v\n", err)
		return 1
	}

	code := relay(settings, writer, stdin, stdout, stderr, source, logger)

	if err := writer.Close(); err != nil {
		logger.Error("closing split log failed", "error", err)
	}
	if settings.exitCodeFile != "" {
		if err := writeExitCode(settings.exitCodeFile, code); err != nil {
			logger.Error("writing exit code file failed", "path", settings.exitCodeFile, "error", err)
		}
	}
	return code
}

// relay starts the child, copies its output into writer until both
// streams close, and returns the child's exit code.
func relay(settings relaySettings, writer *splitlog.Writer, stdin io.Reader, stdout, stderr io.Writer, source clock.Clock, logger *slog.Logger) int {
	child := exec.Command(settings.command[0], settings.command[1:]...)
	child.Stdin = stdin
	childStdout, err := child.StdoutPipe()
	if err != nil {
		logger.Error("creating stdout pipe failed", "error", err)
		return 126
	}
	childStderr, err := child.StderrPipe()
	if err != nil {
		logger.Error("creating stderr pipe failed", "error", err)
		return 126
	}

	if err := child.Start(); err != nil {
		fmt.Fprintf(stderr, "logdate-relay: starting child: %v\n", err)
		return 126
	}

	// Forward signals to the child. The channel is buffered so that a
	// burst of signals is not dropped while one is being delivered.
	signals := make(chan os.Signal, 4)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	defer func() {
		signal.Stop(signals)
		close(signals)
	}()
	go forwardSignals(signals, child.Process)

	done := make(chan struct{})
	var rotation sync.WaitGroup
	if settings.rotateEvery > 0 {
		ticker := source.NewTicker(settings.rotateEvery)
		defer ticker.Stop()
		rotation.Add(1)
		go func() {
			defer rotation.Done()
			rotateOnTicks(ticker.C, writer, logger, done)
		}()
	}

	var copying sync.WaitGroup
	streams := []struct {
		name   string
		source io.Reader
		tee    io.Writer
	}{
		{"out", childStdout, stdout},
		{"err", childStderr, stderr},
	}
	for _, stream := range streams {
		stamper := &lineStamper{
			stream: stream.name,
			log:    writer,
			clock:  source,
			logger: logger,
		}
		if settings.tee {
			stamper.tee = stream.tee
		}
		copying.Add(1)
		go func() {
			defer copying.Done()
			if err := stamper.copy(stream.source); err != nil {
				logger.Error("relaying child output failed", "stream", stream.name, "error", err)
				// Keep the pipe drained so the child never blocks on a
				// full pipe buffer.
				io.Copy(io.Discard, stream.source)
			}
		}()
	}

	// The pipes must be drained before Wait closes them.
	copying.Wait()
	waitErr := child.Wait()
	close(done)
	rotation.Wait()

	return exitCode(waitErr, logger)
}

// exitCode maps the result of exec.Cmd.Wait to a process exit code.
func exitCode(waitErr error, logger *slog.Logger) int {
	if waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		logger.Error("waiting for child failed", "error", waitErr)
		return 1
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return exitErr.ExitCode()
}

// forwardSignals sends every signal read from signals to process until
// the channel is closed. Delivery errors are ignored: the child may
// already have exited.
func forwardSignals(signals <-chan os.Signal, process *os.Process) {
	for sig := range signals {
		if sysSig, ok := sig.(syscall.Signal); ok {
			_ = process.Signal(sysSig)
		}
	}
}

// writeExitCode atomically writes code and a newline to path.
func writeExitCode(path string, code int) error {
	temporaryPath := path + ".tmp"
	if err := os.WriteFile(temporaryPath, []byte(strconv.Itoa(code)+"\n"), 0644); err != nil {
		return err
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return err
	}
	return nil
}
