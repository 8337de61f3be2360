// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/logdate/cmd/logdate/cli"
	"github.com/bureau-foundation/logdate/lib/config"
	"github.com/bureau-foundation/logdate/lib/logdate"
	"github.com/bureau-foundation/logdate/lib/splitlog"
)

// archiveReport is one entry of "archives --json" output.
type archiveReport struct {
	splitlog.Archive
	Verified    *bool  `json:"verified,omitempty"`
	VerifyError string `json:"verify_error,omitempty"`
}

type archivesParams struct {
	directory  string
	prefix     string
	configPath string
	outputJSON bool
	verify     bool
}

func (a *app) archivesCommand() *cli.Command {
	var params archivesParams
	return &cli.Command{
		Name:    "archives",
		Summary: "List the rotated archives of a split log",
		Description: `List the archives recorded in a split-log directory, oldest first.
When the index file is missing the list is rebuilt from the archive
file names. With --verify each archive's BLAKE3 digest is recomputed
and compared with the index; any mismatch makes the exit status 1.

The directory and prefix default to the split_log section of the
configuration file named by --config or LOGDATE_CONFIG.`,
		Usage: "logdate archives [--dir DIR] [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("archives", pflag.ContinueOnError)
			flagSet.StringVar(&params.directory, "dir", "", "split-log directory")
			flagSet.StringVar(&params.prefix, "prefix", "", "log file prefix (default from config, else \"log\")")
			flagSet.StringVar(&params.configPath, "config", "", "configuration file (default $LOGDATE_CONFIG)")
			flagSet.BoolVar(&params.outputJSON, "json", false, "output as JSON")
			flagSet.BoolVar(&params.verify, "verify", false, "recompute and check archive digests")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("archives takes no positional arguments (use --dir)")
			}
			return a.runArchives(params)
		},
	}
}

// archivesConfig resolves the configuration archives runs with. A
// missing configuration is fine when --dir is given.
func archivesConfig(params archivesParams) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case params.configPath != "":
		cfg, err = config.LoadFile(params.configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	case params.directory == "":
		return nil, fmt.Errorf("--dir is required when no configuration file is given")
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}
	if params.directory != "" {
		cfg.SplitLog.Directory = params.directory
	}
	if params.prefix != "" {
		cfg.SplitLog.Prefix = params.prefix
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (a *app) runArchives(params archivesParams) error {
	cfg, err := archivesConfig(params)
	if err != nil {
		return err
	}
	level, _ := cfg.Log.SlogLevel()
	logger, err := cli.NewCommandLogger(a.stderr, cfg.Log.Format, level)
	if err != nil {
		return err
	}
	directory, prefix := cfg.SplitLog.Directory, cfg.SplitLog.Prefix
	logger = logger.With("command", "archives", "directory", directory)

	if info, err := os.Stat(directory); err != nil {
		return fmt.Errorf("split-log directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("split-log directory: %s is not a directory", directory)
	}
	if _, err := os.Stat(filepath.Join(directory, splitlog.IndexName(prefix))); errors.Is(err, os.ErrNotExist) {
		logger.Warn("archive index missing, listing recovered from file names", "prefix", prefix)
	}

	index, err := splitlog.ReadIndex(directory, prefix)
	if err != nil {
		return err
	}

	reports := make([]archiveReport, len(index.Archives))
	failed := 0
	for i, archive := range index.Archives {
		reports[i].Archive = archive
		if !params.verify {
			continue
		}
		err := splitlog.Verify(directory, archive)
		verified := err == nil
		reports[i].Verified = &verified
		if err != nil {
			failed++
			reports[i].VerifyError = err.Error()
			logger.Error("archive failed verification", "archive", archive.Name, "error", err)
		}
	}

	if params.outputJSON {
		if err := cli.WriteJSON(a.stdout, reports); err != nil {
			return err
		}
	} else {
		a.printArchives(reports, params.verify)
	}
	if failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func (a *app) printArchives(reports []archiveReport, verified bool) {
	if len(reports) == 0 {
		fmt.Fprintln(a.stdout, "no archives")
		return
	}
	writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
	header := "NAME\tCLOSED\tSIZE\tPACKED\tPACKER"
	if verified {
		header += "\tSTATUS"
	}
	fmt.Fprintln(writer, header)
	for _, report := range reports {
		closed := "?"
		if date, err := logdate.FromInstant(report.Closed); err == nil {
			closed = date.String()
		}
		size := "?"
		if report.Size >= 0 {
			size = humanize.IBytes(uint64(report.Size))
		}
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s", report.Name, closed, size,
			humanize.IBytes(uint64(report.PackedSize)), report.Packer)
		if verified {
			status := "ok"
			if report.Verified != nil && !*report.Verified {
				status = "FAILED"
			}
			line += "\t" + status
		}
		fmt.Fprintln(writer, line)
	}
	writer.Flush()
}
