// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// logdate-relay runs a command and writes every line of its output to a
// rotating split log, each line prefixed with the canonical UTC
// timestamp at which it was read and the stream it came from:
//
//	2026-02-18 10:30:00.  4519302 out listening on :8080
//	2026-02-18 10:30:01. 20004411 err warning: cache cold
//
// The child inherits stdin. Its stdout and stderr are piped through the
// relay; with --tee they are also copied to the relay's own stdout and
// stderr. Lines longer than the read buffer are split into several
// records.
//
// Rotation happens before a write would push the active file past
// --max-size, and on every --rotate-every tick. Archives are packed
// with --packer and pruned to the newest --keep. Settings come from the
// split_log section of the configuration file (--config or
// LOGDATE_CONFIG); flags override it.
//
// Signal forwarding: SIGINT, SIGTERM, SIGHUP, and SIGQUIT received by the
// relay are forwarded to the child. The relay exits with the child's
// exit code, 128 plus the signal number when the child was killed by a
// signal, or 126 when the child could not be started. With
// --exit-code-file the code is also written to that file atomically.
package main
