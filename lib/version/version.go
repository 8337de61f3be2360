// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/bureau-foundation/logdate/lib/logdate"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/logdate/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build, RFC 3339.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

type buildInfo struct {
	commit string
	dirty  bool
	built  string
}

var (
	resolveOnce sync.Once
	resolved    buildInfo
)

func current() buildInfo {
	resolveOnce.Do(func() {
		resolved = resolve(GitCommit, GitDirty, BuildTime, readSettings())
	})
	return resolved
}

func readSettings() map[string]string {
	settings := make(map[string]string)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	return settings
}

// resolve merges the ldflags values with the toolchain's vcs.* build
// settings. Injected values win.
func resolve(commit, dirty, built string, settings map[string]string) buildInfo {
	info := buildInfo{commit: commit, dirty: dirty == "true", built: built}
	if info.commit == "unknown" {
		if revision := settings["vcs.revision"]; revision != "" {
			if len(revision) > 12 {
				revision = revision[:12]
			}
			info.commit = revision
			info.dirty = settings["vcs.modified"] == "true"
		}
	}
	if info.built == "unknown" && settings["vcs.time"] != "" {
		info.built = settings["vcs.time"]
	}
	if parsed, err := time.Parse(time.RFC3339, info.built); err == nil {
		if date, err := logdate.FromTime(parsed); err == nil {
			info.built = date.String()
		}
	}
	return info
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	info := current()
	dirty := ""
	if info.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, info.commit, dirty, info.built)
}

// Full returns Info plus the Go version and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}
