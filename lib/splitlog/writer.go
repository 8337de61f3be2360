// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitlog

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/logdate/lib/clock"
	"github.com/bureau-foundation/logdate/lib/logdate"
)

// ErrClosed is returned by Write and Rotate after Close.
var ErrClosed = errors.New("splitlog: writer closed")

// DefaultPrefix names the log files when Options.Prefix is empty.
const DefaultPrefix = "log"

// Options configures a Writer.
type Options struct {
	// Directory holds the active file, the archives, and the index.
	// Created if missing.
	Directory string

	// Prefix is the base name of the log files. Default DefaultPrefix.
	Prefix string

	// MaxSize is the size in bytes at which the active file is
	// rotated before the next write. Zero disables size rotation.
	MaxSize int64

	// Keep is the number of archives retained. Zero keeps all.
	Keep int

	// Packer compresses archives. Default Plain.
	Packer Packer

	// Clock stamps rotations. Default clock.Real().
	Clock clock.Clock

	// Logger receives rotation and retention events. Default discards.
	Logger *slog.Logger
}

// Writer is an io.Writer over a rotating set of log files.
type Writer struct {
	options Options

	mu sync.Mutex
	// file is nil when a failed rotation could not reopen the active
	// file; the next Write or Rotate retries.
	file   *os.File
	size   int64
	opened logdate.Instant
	index  Index
	closed bool
}

// Open prepares directory, loads or recovers its index, and opens the
// active file for appending.
func Open(options Options) (*Writer, error) {
	if options.Directory == "" {
		return nil, fmt.Errorf("splitlog: directory is required")
	}
	if options.Prefix == "" {
		options.Prefix = DefaultPrefix
	}
	if strings.ContainsAny(options.Prefix, `/\`) || options.Prefix == "." || options.Prefix == ".." {
		return nil, fmt.Errorf("splitlog: prefix %q must be a plain file name", options.Prefix)
	}
	if options.MaxSize < 0 {
		return nil, fmt.Errorf("splitlog: negative max size %d", options.MaxSize)
	}
	if options.Keep < 0 {
		return nil, fmt.Errorf("splitlog: negative keep count %d", options.Keep)
	}
	if options.Packer == nil {
		options.Packer = Plain
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}

	if err := os.MkdirAll(options.Directory, 0755); err != nil {
		return nil, fmt.Errorf("splitlog: creating %s: %w", options.Directory, err)
	}
	index, err := ReadIndex(options.Directory, options.Prefix)
	if err != nil {
		return nil, err
	}

	writer := &Writer{options: options, index: index}
	if err := writer.openActive(); err != nil {
		return nil, err
	}
	return writer, nil
}

// ActivePath returns the path of the file currently being written.
func (w *Writer) ActivePath() string {
	return filepath.Join(w.options.Directory, w.options.Prefix+".log")
}

// Write appends p to the active file, rotating first when p would
// push a non-empty file past MaxSize. A failed rotation is logged and
// p is appended to the file that could not be rotated.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, ErrClosed
	}
	if w.file != nil && w.options.MaxSize > 0 && w.size > 0 && w.size+int64(len(p)) > w.options.MaxSize {
		if err := w.rotate(); err != nil {
			w.options.Logger.Error("rotating log failed, appending to active file",
				"path", w.ActivePath(),
				"size", w.size,
				"error", err,
			)
		}
	}
	if w.file == nil {
		if err := w.openActive(); err != nil {
			return 0, err
		}
	}
	written, err := w.file.Write(p)
	w.size += int64(written)
	if err != nil {
		return written, fmt.Errorf("splitlog: writing %s: %w", w.ActivePath(), err)
	}
	return written, nil
}

// Rotate archives the active file now. An empty active file is left
// in place.
func (w *Writer) Rotate() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.file == nil {
		if err := w.openActive(); err != nil {
			return err
		}
	}
	if w.size == 0 {
		return nil
	}
	return w.rotate()
}

// Archives returns a copy of the index entries, oldest first.
func (w *Writer) Archives() []Archive {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Archive(nil), w.index.Archives...)
}

// Close closes the active file. The file stays in place and is
// appended to by the next Open.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.file == nil {
		return nil
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("splitlog: closing %s: %w", w.ActivePath(), err)
	}
	return nil
}

// openActive must be called with mu held or before the Writer is
// shared.
func (w *Writer) openActive() error {
	path := w.ActivePath()
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("splitlog: opening %s: %w", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("splitlog: %w", err)
	}
	now, err := logdate.Now(w.options.Clock)
	if err != nil {
		file.Close()
		return fmt.Errorf("splitlog: reading clock: %w", err)
	}
	w.file = file
	w.size = info.Size()
	w.opened = now.Instant()
	return nil
}

// rotate must be called with mu held.
func (w *Writer) rotate() error {
	closedAt, err := logdate.Now(w.options.Clock)
	if err != nil {
		return fmt.Errorf("splitlog: reading clock: %w", err)
	}
	directory := w.options.Directory
	logger := w.options.Logger

	packer := w.options.Packer
	name := ArchiveName(w.options.Prefix, closedAt, packer)
	rawName := ArchiveName(w.options.Prefix, closedAt, Plain)
	for _, candidate := range []string{name, rawName} {
		if _, err := os.Stat(filepath.Join(directory, candidate)); err == nil {
			return fmt.Errorf("splitlog: archive %s already exists", candidate)
		}
	}

	closeErr := w.file.Close()
	w.file = nil
	if closeErr != nil {
		return errors.Join(fmt.Errorf("splitlog: closing %s: %w", w.ActivePath(), closeErr), w.openActive())
	}
	if err := os.Rename(w.ActivePath(), filepath.Join(directory, rawName)); err != nil {
		// Keep writing to the same file rather than losing output.
		return errors.Join(fmt.Errorf("splitlog: archiving %s: %w", w.ActivePath(), err), w.openActive())
	}

	// From here on the active file is gone: open a fresh one whatever
	// happens to the archive.
	archive := Archive{
		Name:   rawName,
		Opened: w.opened,
		Closed: closedAt.Instant(),
		Size:   w.size,
		Packer: Plain.Name(),
	}
	var archiveErr error
	if packer != Plain {
		digest, packedSize, err := packFile(directory, rawName, name, packer)
		if err != nil {
			logger.Error("packing log archive failed, keeping it unpacked",
				"archive", rawName,
				"packer", packer.Name(),
				"error", err,
			)
		} else {
			archive.Name = name
			archive.Packer = packer.Name()
			archive.Digest = digest
			archive.PackedSize = packedSize
		}
	}
	if archive.Digest == "" {
		digest, size, err := hashArchive(filepath.Join(directory, archive.Name))
		if err != nil {
			// Recorded without a digest; Verify reports it.
			archiveErr = fmt.Errorf("splitlog: archive %s recorded without digest: %w", archive.Name, err)
		} else {
			archive.Digest = digest
			archive.PackedSize = size
		}
	}

	w.index.Version = indexVersion
	w.index.Archives = append(w.index.Archives, archive)
	w.applyRetention()
	if err := writeIndex(directory, w.options.Prefix, w.index); err != nil {
		// ReadIndex merges archive names missing from the index, so the
		// next Open still finds this archive.
		logger.Error("writing log archive index failed", "directory", directory, "error", err)
	}
	logger.Info("rotated log",
		"archive", archive.Name,
		"size", archive.Size,
		"packed_size", archive.PackedSize,
		"closed", closedAt.String(),
	)
	return errors.Join(archiveErr, w.openActive())
}

// hashArchive is digestFile, replaceable in tests.
var hashArchive = digestFile

// packFile packs rawName into packedName, hashing the packed bytes as
// they are written, and removes rawName on success.
func packFile(directory, rawName, packedName string, packer Packer) (string, int64, error) {
	rawPath := filepath.Join(directory, rawName)
	packedPath := filepath.Join(directory, packedName)

	source, err := os.Open(rawPath)
	if err != nil {
		return "", 0, err
	}
	defer source.Close()

	destination, err := os.OpenFile(packedPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", 0, err
	}
	hasher := blake3.New()
	counter := &countingWriter{}
	if err := packer.Pack(io.MultiWriter(destination, hasher, counter), source); err != nil {
		destination.Close()
		os.Remove(packedPath)
		return "", 0, err
	}
	if err := destination.Sync(); err != nil {
		destination.Close()
		os.Remove(packedPath)
		return "", 0, err
	}
	if err := destination.Close(); err != nil {
		os.Remove(packedPath)
		return "", 0, err
	}
	if err := os.Remove(rawPath); err != nil {
		return "", 0, errors.Join(err, os.Remove(packedPath))
	}
	return hex.EncodeToString(hasher.Sum(nil)), counter.count, nil
}

// applyRetention must be called with mu held.
func (w *Writer) applyRetention() {
	keep := w.options.Keep
	archives := w.index.Archives
	if keep == 0 || len(archives) <= keep {
		return
	}
	expired := archives[:len(archives)-keep]
	for _, archive := range expired {
		err := os.Remove(filepath.Join(w.options.Directory, archive.Name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			w.options.Logger.Warn("removing expired log archive failed", "archive", archive.Name, "error", err)
			continue
		}
		w.options.Logger.Debug("removed expired log archive", "archive", archive.Name)
	}
	w.index.Archives = append([]Archive(nil), archives[len(archives)-keep:]...)
}

type countingWriter struct {
	count int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.count += int64(len(p))
	return len(p), nil
}
