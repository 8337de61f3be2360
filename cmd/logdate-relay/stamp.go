// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bureau-foundation/logdate/lib/clock"
	"github.com/bureau-foundation/logdate/lib/logdate"
)

// readBufferSize bounds one record; longer lines are split.
const readBufferSize = 64 << 10

// lineStamper copies one output stream of the child into the log,
// one stamped record per line.
type lineStamper struct {
	stream string
	log    io.Writer
	tee    io.Writer
	clock  clock.Clock
	// logger reports records that could not be written. Nil discards.
	logger *slog.Logger
	record []byte
	// failing is set while writes to log fail, so that a run of
	// failures is reported once.
	failing bool
}

// copy reads source until EOF. A final line without a newline is
// still recorded. A record that cannot be written is dropped and the
// stream keeps going; only read errors end the copy.
func (s *lineStamper) copy(source io.Reader) error {
	reader := bufio.NewReaderSize(source, readBufferSize)
	for {
		chunk, err := reader.ReadSlice('\n')
		if len(chunk) > 0 {
			if s.tee != nil {
				// Losing the tee is not a reason to stop logging.
				s.tee.Write(chunk)
			}
			s.noteWrite(s.writeRecord(chunk))
		}
		switch {
		case err == nil, errors.Is(err, bufio.ErrBufferFull):
		case errors.Is(err, io.EOF):
			return nil
		default:
			return fmt.Errorf("reading %s: %w", s.stream, err)
		}
	}
}

// noteWrite logs the first failure in a run of failed writes and the
// recovery that ends it.
func (s *lineStamper) noteWrite(err error) {
	if s.logger == nil {
		return
	}
	switch {
	case err != nil && !s.failing:
		s.logger.Error("writing log record failed, dropping records until it recovers",
			"stream", s.stream,
			"error", err,
		)
	case err == nil && s.failing:
		s.logger.Info("writing log records again", "stream", s.stream)
	}
	s.failing = err != nil
}

// writeRecord writes "<stamp> <stream> <line>\n" in a single Write so
// that records from concurrent streams never interleave.
func (s *lineStamper) writeRecord(line []byte) error {
	line = bytes.TrimRight(line, "\r\n")
	date, err := logdate.Now(s.clock)
	if err != nil {
		return err
	}
	s.record = date.AppendFormat(s.record[:0])
	s.record = append(s.record, ' ')
	s.record = append(s.record, s.stream...)
	s.record = append(s.record, ' ')
	s.record = append(s.record, line...)
	s.record = append(s.record, '\n')
	_, err = s.log.Write(s.record)
	return err
}

// rotator is the part of splitlog.Writer the rotation loop needs.
type rotator interface {
	Rotate() error
}

// rotateOnTicks rotates target on every tick until done is closed.
func rotateOnTicks(ticks <-chan time.Time, target rotator, logger *slog.Logger, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticks:
			if err := target.Rotate(); err != nil {
				logger.Error("timed log rotation failed", "error", err)
			}
		}
	}
}
