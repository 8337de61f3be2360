// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/logdate/cmd/logdate/cli"
	"github.com/bureau-foundation/logdate/lib/clock"
	"github.com/bureau-foundation/logdate/lib/config"
	"github.com/bureau-foundation/logdate/lib/splitlog"
)

// fixedNow is 2026-02-18 10:30:00.000000250 UTC.
var fixedNow = time.Date(2026, 2, 18, 10, 30, 0, 250, time.UTC)

type result struct {
	stdout string
	stderr string
	err    error
}

func runLogdate(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	application := &app{
		stdin:  strings.NewReader(stdin),
		stdout: &stdout,
		stderr: &stderr,
		clock:  clock.Fake(fixedNow),
	}
	err := application.root().Execute(args)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func exitCode(err error) int {
	var exit *cli.ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	if err != nil {
		return -1
	}
	return 0
}

func TestParse(t *testing.T) {
	got := runLogdate(t, "", "parse",
		"Sun, 06 Nov 1994 08:49:37 GMT",
		"Sunday, 06-Nov-94 08:49:37 GMT",
		"Sun Nov  6 08:49:37 1994",
	)
	if got.err != nil {
		t.Fatalf("parse: %v\n%s", got.err, got.stderr)
	}
	want := strings.Repeat("1994-11-06 08:49:37.        0\n", 3)
	if got.stdout != want {
		t.Errorf("stdout = %q, want %q", got.stdout, want)
	}
}

func TestParseReportsEveryFailure(t *testing.T) {
	got := runLogdate(t, "", "parse",
		"Mon, 06 Nov 1994 08:49:37 GMT",
		"Sun, 06 Nov 1994 08:49:37 GMT",
		"yesterday",
	)
	if code := exitCode(got.err); code != 1 {
		t.Fatalf("exit code = %d (%v), want 1", code, got.err)
	}
	if got.stdout != "1994-11-06 08:49:37.        0\n" {
		t.Errorf("stdout = %q", got.stdout)
	}
	lines := strings.Split(strings.TrimSpace(got.stderr), "\n")
	if len(lines) != 2 {
		t.Fatalf("stderr has %d lines, want 2:\n%s", len(lines), got.stderr)
	}
	if !strings.Contains(lines[0], "IMF-fixdate") || !strings.Contains(lines[1], "no supported layout") {
		t.Errorf("stderr = %q", got.stderr)
	}
}

func TestParseJSON(t *testing.T) {
	got := runLogdate(t, "", "parse", "--json", "Sun, 06 Nov 1994 08:49:37 GMT", "nonsense")
	if code := exitCode(got.err); code != 1 {
		t.Fatalf("exit code = %d (%v), want 1", code, got.err)
	}
	var results []parsedDate
	if err := json.Unmarshal([]byte(got.stdout), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got.stdout)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	first := results[0]
	if first.Date != "1994-11-06 08:49:37.        0" || first.Weekday != "Sunday" || first.Year != 1994 {
		t.Errorf("first = %+v", first)
	}
	if first.Instant == nil || first.Instant.Seconds != 784111777 {
		t.Errorf("first.Instant = %+v, want 784111777 seconds", first.Instant)
	}
	if results[1].Error == "" || results[1].Instant != nil {
		t.Errorf("second = %+v, want an error and no instant", results[1])
	}
	if got.stderr != "" {
		t.Errorf("JSON mode wrote to stderr: %q", got.stderr)
	}
}

func TestParseRequiresArguments(t *testing.T) {
	if got := runLogdate(t, "", "parse"); got.err == nil {
		t.Error("parse without arguments succeeded")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"format", "0"}, "1970-01-01 00:00:00.        0\n"},
		{[]string{"format", "784111777"}, "1994-11-06 08:49:37.        0\n"},
		{[]string{"format", "--nanos", "123456789", "951782400"}, "2000-02-29 00:00:00.123456789\n"},
		{[]string{"format", "253402300799", "--nanos=7"}, "9999-12-31 23:59:59.        7\n"},
	}
	for _, test := range tests {
		got := runLogdate(t, "", test.args...)
		if got.err != nil {
			t.Errorf("%v: %v", test.args, got.err)
			continue
		}
		if got.stdout != test.want {
			t.Errorf("%v = %q, want %q", test.args, got.stdout, test.want)
		}
	}
}

func TestFormatRejects(t *testing.T) {
	for _, args := range [][]string{
		{"format"},
		{"format", "soon"},
		{"format", "-1"},
		{"format", "253402300800"},
		{"format", "--nanos", "1000000000", "0"},
		{"format", "1", "2"},
	} {
		if got := runLogdate(t, "", args...); got.err == nil {
			t.Errorf("%v succeeded with %q", args, got.stdout)
		}
	}
}

func TestNow(t *testing.T) {
	got := runLogdate(t, "", "now")
	if got.err != nil {
		t.Fatalf("now: %v", got.err)
	}
	if got.stdout != "2026-02-18 10:30:00.      250\n" {
		t.Errorf("stdout = %q", got.stdout)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"Sun, 06 Nov 1994 08:49:37 GMT", "Sun Nov  6 08:49:38 1994", "before"},
		{"Sunday, 06-Nov-94 08:49:37 GMT", "Sun Nov  6 08:49:37 1994", "equal"},
		{"Tue, 29 Feb 2000 00:00:00 GMT", "Sun, 06 Nov 1994 08:49:37 GMT", "after"},
	}
	for _, test := range tests {
		got := runLogdate(t, "", "compare", test.a, test.b)
		if got.err != nil {
			t.Errorf("compare %q %q: %v", test.a, test.b, got.err)
			continue
		}
		if strings.TrimSpace(got.stdout) != test.want {
			t.Errorf("compare %q %q = %q, want %q", test.a, test.b, got.stdout, test.want)
		}
	}

	got := runLogdate(t, "", "compare", "Sun, 06 Nov 1994 08:49:37 GMT", "garbage")
	if got.err == nil || !strings.Contains(got.err.Error(), "second date") {
		t.Errorf("compare with bad second date: %v", got.err)
	}
}

func TestSort(t *testing.T) {
	input := strings.Join([]string{
		"Tue, 29 Feb 2000 00:00:00 GMT",
		"Sun Nov  6 08:49:37 1994",
		"",
		"Thursday, 01-Jan-70 00:00:00 GMT",
		"Sun, 06 Nov 1994 08:49:37 GMT",
		"not a date",
	}, "\n") + "\n"

	got := runLogdate(t, input, "sort")
	if code := exitCode(got.err); code != 1 {
		t.Fatalf("exit code = %d (%v), want 1", code, got.err)
	}
	want := strings.Join([]string{
		"Thursday, 01-Jan-70 00:00:00 GMT",
		"Sun Nov  6 08:49:37 1994",
		"Sun, 06 Nov 1994 08:49:37 GMT",
		"Tue, 29 Feb 2000 00:00:00 GMT",
	}, "\n") + "\n"
	if got.stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", got.stdout, want)
	}
	if !strings.HasPrefix(got.stderr, "line 6: ") {
		t.Errorf("stderr = %q, want a report for line 6", got.stderr)
	}

	got = runLogdate(t, "Sun, 06 Nov 1994 08:49:37 GMT\nThu, 01 Jan 1970 00:00:00 GMT\n", "sort", "--canonical")
	if got.err != nil {
		t.Fatalf("sort --canonical: %v", got.err)
	}
	if got.stdout != "1970-01-01 00:00:00.        0\n1994-11-06 08:49:37.        0\n" {
		t.Errorf("canonical stdout = %q", got.stdout)
	}
}

func TestVersion(t *testing.T) {
	got := runLogdate(t, "", "version")
	if got.err != nil || !strings.HasPrefix(got.stdout, "logdate ") {
		t.Errorf("version = %q, %v", got.stdout, got.err)
	}
}

func TestUnknownCommandSuggests(t *testing.T) {
	got := runLogdate(t, "", "fromat", "0")
	if got.err == nil || !strings.Contains(got.err.Error(), `did you mean "format"`) {
		t.Errorf("error = %v", got.err)
	}
}

// makeArchives writes three rotated generations into a fresh directory.
func makeArchives(t *testing.T, packer splitlog.Packer) string {
	t.Helper()
	directory := t.TempDir()
	fake := clock.Fake(fixedNow)
	writer, err := splitlog.Open(splitlog.Options{Directory: directory, Prefix: "relay", Packer: packer, Clock: fake})
	if err != nil {
		t.Fatal(err)
	}
	defer writer.Close()
	for i := 0; i < 3; i++ {
		fmt.Fprintf(writer, "generation %d\n", i)
		fake.Advance(time.Minute)
		if err := writer.Rotate(); err != nil {
			t.Fatal(err)
		}
	}
	return directory
}

func TestArchives(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	directory := makeArchives(t, splitlog.Zstd)

	got := runLogdate(t, "", "archives", "--dir", directory, "--prefix", "relay", "--verify")
	if got.err != nil {
		t.Fatalf("archives: %v\n%s", got.err, got.stderr)
	}
	lines := strings.Split(strings.TrimSpace(got.stdout), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header and 3 archives:\n%s", len(lines), got.stdout)
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "STATUS") {
		t.Errorf("header = %q", lines[0])
	}
	for _, line := range lines[1:] {
		if !strings.Contains(line, ".log.zst") || !strings.HasSuffix(line, "ok") || !strings.Contains(line, "13 B") {
			t.Errorf("row = %q", line)
		}
	}
	if !strings.Contains(lines[1], "2026-02-18 10:31:00.      250") {
		t.Errorf("first row = %q, want the first rotation time", lines[1])
	}
}

func TestArchivesVerifyFailure(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	directory := makeArchives(t, splitlog.Plain)

	index, err := splitlog.ReadIndex(directory, "relay")
	if err != nil {
		t.Fatal(err)
	}
	tampered := filepath.Join(directory, index.Archives[1].Name)
	if err := os.WriteFile(tampered, []byte("generation X\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := runLogdate(t, "", "archives", "--dir", directory, "--prefix", "relay", "--verify", "--json")
	if code := exitCode(got.err); code != 1 {
		t.Fatalf("exit code = %d (%v), want 1", code, got.err)
	}
	var reports []archiveReport
	if err := json.Unmarshal([]byte(got.stdout), &reports); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got.stdout)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	for i, report := range reports {
		wantOK := i != 1
		if report.Verified == nil || *report.Verified != wantOK {
			t.Errorf("report %d verified = %v, want %v", i, report.Verified, wantOK)
		}
	}
	if reports[1].VerifyError == "" || reports[1].Name != index.Archives[1].Name {
		t.Errorf("report 1 = %+v", reports[1])
	}
	if !strings.Contains(got.stderr, "archive failed verification") {
		t.Errorf("stderr = %q, want a logged failure", got.stderr)
	}
}

func TestArchivesFromConfig(t *testing.T) {
	directory := makeArchives(t, splitlog.LZ4)
	configPath := filepath.Join(t.TempDir(), "logdate.yaml")
	content := fmt.Sprintf("log:\n  format: json\nsplit_log:\n  directory: %s\n  prefix: relay\n", directory)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvironmentVariable, configPath)

	got := runLogdate(t, "", "archives", "--json")
	if got.err != nil {
		t.Fatalf("archives: %v\n%s", got.err, got.stderr)
	}
	var reports []archiveReport
	if err := json.Unmarshal([]byte(got.stdout), &reports); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got.stdout)
	}
	if len(reports) != 3 || reports[0].Packer != "lz4" || reports[0].Size != 13 {
		t.Errorf("reports = %+v", reports)
	}
	if reports[0].Verified != nil {
		t.Error("verified set without --verify")
	}
}

func TestArchivesRecoveredIndex(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	directory := makeArchives(t, splitlog.Plain)
	if err := os.Remove(filepath.Join(directory, splitlog.IndexName("relay"))); err != nil {
		t.Fatal(err)
	}

	got := runLogdate(t, "", "archives", "--dir", directory, "--prefix", "relay")
	if got.err != nil {
		t.Fatalf("archives: %v", got.err)
	}
	if !strings.Contains(got.stderr, "archive index missing") {
		t.Errorf("stderr = %q, want a warning", got.stderr)
	}
	if strings.Count(got.stdout, "relay-") != 3 || !strings.Contains(got.stdout, "?") {
		t.Errorf("stdout = %q, want three recovered rows with unknown sizes", got.stdout)
	}
}

func TestArchivesRequiresDirectory(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	got := runLogdate(t, "", "archives")
	if got.err == nil || !strings.Contains(got.err.Error(), "--dir") {
		t.Errorf("error = %v", got.err)
	}
}

func TestArchivesEmptyDirectory(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	got := runLogdate(t, "", "archives", "--dir", t.TempDir())
	if got.err != nil || got.stdout != "no archives\n" {
		t.Errorf("archives = %q, %v", got.stdout, got.err)
	}
}
