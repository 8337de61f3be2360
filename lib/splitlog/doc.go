// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package splitlog writes a log stream into size-limited files and
// archives each full file under a name derived from its rotation time.
//
// A directory managed by a Writer holds:
//
//	<prefix>.log                                 the active file
//	<prefix>-19941106T084937.000000000.log.lz4   archives, one per rotation
//	<prefix>.index.cbor                          the archive index
//
// The stamp in an archive name is the [logdate.Date] of the rotation in
// UTC with every field zero-padded, so names sort in time order.
// Archives are packed by a [Packer] (none, lz4, or zstd) and recorded
// in the [Index] with their byte counts and a BLAKE3 digest of the
// packed file. With Keep > 0 only the newest Keep archives are
// retained.
//
// Writer is safe for concurrent use; each Write lands whole in one
// file.
package splitlog
