// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name                 string
		commit, dirty, built string
		settings             map[string]string
		want                 buildInfo
	}{
		{
			name:   "ldflags win",
			commit: "abc1234", dirty: "true", built: "2026-02-18T10:30:00Z",
			settings: map[string]string{"vcs.revision": "ffffffffffffffff", "vcs.time": "2020-01-01T00:00:00Z"},
			want:     buildInfo{commit: "abc1234", dirty: true, built: "2026-02-18 10:30:00.        0"},
		},
		{
			name:   "vcs fallback",
			commit: "unknown", dirty: "false", built: "unknown",
			settings: map[string]string{
				"vcs.revision": "0123456789abcdef0123",
				"vcs.modified": "true",
				"vcs.time":     "2026-01-01T00:00:00Z",
			},
			want: buildInfo{commit: "0123456789ab", dirty: true, built: "2026-01-01 00:00:00.        0"},
		},
		{
			name:   "nothing known",
			commit: "unknown", dirty: "false", built: "unknown",
			settings: map[string]string{},
			want:     buildInfo{commit: "unknown", built: "unknown"},
		},
		{
			name:   "unparseable build time kept verbatim",
			commit: "abc1234", dirty: "false", built: "yesterday",
			settings: map[string]string{},
			want:     buildInfo{commit: "abc1234", built: "yesterday"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := resolve(test.commit, test.dirty, test.built, test.settings)
			if got != test.want {
				t.Errorf("resolve = %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestInfoFormat(t *testing.T) {
	info := Info()
	if !strings.HasPrefix(info, Version+" (") || !strings.HasSuffix(info, ")") {
		t.Errorf("Info() = %q", info)
	}
	if !strings.Contains(Full(), "Platform: ") {
		t.Errorf("Full() = %q", Full())
	}
	if Short() != Version {
		t.Errorf("Short() = %q", Short())
	}
}
