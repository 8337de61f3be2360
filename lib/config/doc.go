// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the configuration shared by the logdate
// commands.
//
// Configuration comes from a single file named by either the
// LOGDATE_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no search path and no per-field
// environment override. Files ending in .json or .jsonc are read as
// JSON with comments; anything else is YAML.
//
// Path fields expand ${VAR} and ${VAR:-default} after loading. Sizes
// are written the way people write them ("64MiB", "500 kB") and
// converted with [SplitLogConfig.MaxSizeBytes].
//
// Key exports:
//
//   - [Config] -- log and split-log sections
//   - [Default] -- the values a file is merged over
//   - [Load] and [LoadFile] -- the two entry points
//   - [Config.SplitLogOptions] -- converts to [splitlog.Options]
package config
