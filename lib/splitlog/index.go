// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitlog

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/logdate/lib/codec"
	"github.com/bureau-foundation/logdate/lib/logdate"
)

// IndexName returns the file name of the archive index of the log
// called prefix. Each prefix has its own index so that several logs
// can share a directory.
func IndexName(prefix string) string {
	return prefix + ".index.cbor"
}

// indexVersion is bumped when Archive changes incompatibly.
const indexVersion = 1

// Index lists the archives of one log directory, oldest first.
type Index struct {
	Version  int       `json:"version"`
	Archives []Archive `json:"archives"`
}

// Archive describes one rotated log file.
type Archive struct {
	// Name is the file name within the log directory.
	Name string `json:"name"`

	// Opened is when the file became the active file. Zero for
	// archives recovered without an index.
	Opened logdate.Instant `json:"opened"`

	// Closed is the rotation time, also encoded in Name.
	Closed logdate.Instant `json:"closed"`

	// Size is the log byte count before packing, or -1 when the
	// archive was recovered without an index.
	Size int64 `json:"size"`

	// PackedSize is the size of the archive file.
	PackedSize int64 `json:"packed_size"`

	// Packer names the Packer that produced the file.
	Packer string `json:"packer"`

	// Digest is the hex BLAKE3-256 digest of the archive file.
	Digest string `json:"digest"`
}

// ReadIndex loads the index of the log called prefix in directory.
// Archives on disk that the index does not list, or all of them when
// the index file is missing, are added from their names with Size -1
// and a freshly computed digest.
func ReadIndex(directory, prefix string) (Index, error) {
	path := filepath.Join(directory, IndexName(prefix))
	var index Index
	err := codec.ReadFile(path, &index)
	switch {
	case errors.Is(err, os.ErrNotExist):
		index = Index{Version: indexVersion}
	case err != nil:
		return Index{}, err
	case index.Version != indexVersion:
		return Index{}, fmt.Errorf("splitlog: %s has version %d, want %d", path, index.Version, indexVersion)
	}
	return mergeArchives(directory, prefix, index)
}

// mergeArchives appends the archives found by name in directory that
// index does not already list.
func mergeArchives(directory, prefix string, index Index) (Index, error) {
	entries, err := os.ReadDir(directory)
	if errors.Is(err, os.ErrNotExist) {
		return index, nil
	}
	if err != nil {
		return Index{}, fmt.Errorf("splitlog: listing %s: %w", directory, err)
	}
	listed := make(map[string]bool, len(index.Archives))
	for _, archive := range index.Archives {
		listed[archive.Name] = true
	}
	added := false
	for _, entry := range entries {
		if !entry.Type().IsRegular() || listed[entry.Name()] {
			continue
		}
		closed, packer, ok := ParseArchiveName(prefix, entry.Name())
		if !ok {
			continue
		}
		digest, size, err := digestFile(filepath.Join(directory, entry.Name()))
		if err != nil {
			return Index{}, err
		}
		index.Archives = append(index.Archives, Archive{
			Name:       entry.Name(),
			Closed:     closed.Instant(),
			Size:       -1,
			PackedSize: size,
			Packer:     packer.Name(),
			Digest:     digest,
		})
		added = true
	}
	if added {
		slices.SortStableFunc(index.Archives, func(a, b Archive) int {
			return a.Closed.Compare(b.Closed)
		})
	}
	return index, nil
}

func writeIndex(directory, prefix string, index Index) error {
	return codec.WriteFile(filepath.Join(directory, IndexName(prefix)), index)
}
// digestFile returns the hex BLAKE3 digest and size of a file.
func digestFile(path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("splitlog: %w", err)
	}
	defer file.Close()
	hasher := blake3.New()
	size, err := io.Copy(hasher, file)
	if err != nil {
		return "", 0, fmt.Errorf("splitlog: hashing %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), size, nil
}

// Verify recomputes the digest of archive in directory and compares it
// with the index entry.
func Verify(directory string, archive Archive) error {
	digest, size, err := digestFile(filepath.Join(directory, archive.Name))
	if err != nil {
		return err
	}
	if size != archive.PackedSize {
		return fmt.Errorf("splitlog: %s is %d bytes, index says %d", archive.Name, size, archive.PackedSize)
	}
	if digest != archive.Digest {
		return fmt.Errorf("splitlog: %s digest %s does not match index %s", archive.Name, digest, archive.Digest)
	}
	return nil
}

// Unpack writes the original log content of archive to destination.
func Unpack(directory string, archive Archive, destination io.Writer) error {
	packer, err := PackerByName(archive.Packer)
	if err != nil {
		return err
	}
	file, err := os.Open(filepath.Join(directory, archive.Name))
	if err != nil {
		return fmt.Errorf("splitlog: %w", err)
	}
	defer file.Close()
	if err := packer.Unpack(destination, file); err != nil {
		return fmt.Errorf("splitlog: unpacking %s: %w", archive.Name, err)
	}
	return nil
}
