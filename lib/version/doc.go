// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the logdate binaries.
//
// Four package-level variables may be injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// Values left at their defaults are filled from the VCS stamps the Go
// toolchain embeds in module builds (see runtime/debug.BuildInfo).
// Build times are printed in logdate's canonical form.
package version
