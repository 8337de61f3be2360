// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package splitlog

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Packer compresses a rotated log file into its archive form.
type Packer interface {
	// Name is the identifier stored in the index and accepted by
	// PackerByName.
	Name() string

	// Extension is appended to the archive file name, including the
	// leading dot. Empty for Plain.
	Extension() string

	// Pack reads the whole of source and writes the packed form to
	// destination.
	Pack(destination io.Writer, source io.Reader) error

	// Unpack reverses Pack.
	Unpack(destination io.Writer, source io.Reader) error
}

var (
	// Plain stores archives uncompressed.
	Plain Packer = plainPacker{}

	// LZ4 stores archives in the LZ4 frame format. Fast, modest ratio.
	LZ4 Packer = lz4Packer{}

	// Zstd stores archives as zstd frames. Better ratio on text logs.
	Zstd Packer = zstdPacker{}
)

// PackerByName returns the Packer named "none", "lz4", or "zstd". The
// empty string selects Plain.
func PackerByName(name string) (Packer, error) {
	switch name {
	case "", "none":
		return Plain, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return nil, fmt.Errorf("splitlog: unknown packer %q (want none, lz4, or zstd)", name)
	}
}

type plainPacker struct{}

func (plainPacker) Name() string      { return "none" }
func (plainPacker) Extension() string { return "" }

func (plainPacker) Pack(destination io.Writer, source io.Reader) error {
	_, err := io.Copy(destination, source)
	return err
}

func (plainPacker) Unpack(destination io.Writer, source io.Reader) error {
	_, err := io.Copy(destination, source)
	return err
}

type lz4Packer struct{}

func (lz4Packer) Name() string      { return "lz4" }
func (lz4Packer) Extension() string { return ".lz4" }

func (lz4Packer) Pack(destination io.Writer, source io.Reader) error {
	writer := lz4.NewWriter(destination)
	if _, err := io.Copy(writer, source); err != nil {
		writer.Close()
		return fmt.Errorf("lz4 compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("lz4 compress: %w", err)
	}
	return nil
}

func (lz4Packer) Unpack(destination io.Writer, source io.Reader) error {
	if _, err := io.Copy(destination, lz4.NewReader(source)); err != nil {
		return fmt.Errorf("lz4 decompress: %w", err)
	}
	return nil
}

type zstdPacker struct{}

func (zstdPacker) Name() string      { return "zstd" }
func (zstdPacker) Extension() string { return ".zst" }

func (zstdPacker) Pack(destination io.Writer, source io.Reader) error {
	encoder, err := zstd.NewWriter(destination, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("zstd compress: %w", err)
	}
	if _, err := io.Copy(encoder, source); err != nil {
		encoder.Close()
		return fmt.Errorf("zstd compress: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("zstd compress: %w", err)
	}
	return nil
}

func (zstdPacker) Unpack(destination io.Writer, source io.Reader) error {
	decoder, err := zstd.NewReader(source)
	if err != nil {
		return fmt.Errorf("zstd decompress: %w", err)
	}
	defer decoder.Close()
	if _, err := io.Copy(destination, decoder); err != nil {
		return fmt.Errorf("zstd decompress: %w", err)
	}
	return nil
}
