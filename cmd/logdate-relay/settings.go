// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/logdate/lib/config"
	"github.com/bureau-foundation/logdate/lib/splitlog"
)

const usage = "usage: logdate-relay [flags] [--] <command> [args...]"

// relaySettings is the resolved configuration of one relay run.
type relaySettings struct {
	command      []string
	splitLog     splitlog.Options
	rotateEvery  time.Duration
	tee          bool
	exitCodeFile string
	logFormat    string
	logLevel     slog.Level
	showVersion  bool
}

// parseArgs reads the relay's flags, which end at the first positional
// argument or at "--", loads the configuration file if one is named,
// and lets explicitly set flags override it.
func parseArgs(args []string) (relaySettings, error) {
	var (
		configPath   string
		directory    string
		prefix       string
		maxSize      string
		keep         int
		packer       string
		rotateEvery  string
		tee          bool
		exitCodeFile string
		showVersion  bool
	)
	flagSet := pflag.NewFlagSet("logdate-relay", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "configuration file (default $LOGDATE_CONFIG)")
	flagSet.StringVar(&directory, "dir", "", "split-log directory")
	flagSet.StringVar(&prefix, "prefix", "", "log file prefix")
	flagSet.StringVar(&maxSize, "max-size", "", `rotate before the active file exceeds this size ("64MiB")`)
	flagSet.IntVar(&keep, "keep", 0, "archives to retain, 0 for all")
	flagSet.StringVar(&packer, "packer", "", "archive compression: none, lz4, or zstd")
	flagSet.StringVar(&rotateEvery, "rotate-every", "", `also rotate on this interval ("1h")`)
	flagSet.BoolVar(&tee, "tee", false, "copy child output to the relay's own stdout and stderr")
	flagSet.StringVar(&exitCodeFile, "exit-code-file", "", "write the exit code to this file")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(args); err != nil {
		return relaySettings{}, fmt.Errorf("%w\n%s\n\nFlags:\n%s", err, usage, flagSet.FlagUsages())
	}
	if showVersion {
		return relaySettings{showVersion: true}, nil
	}
	if flagSet.Changed("exit-code-file") && exitCodeFile == "" {
		return relaySettings{}, fmt.Errorf("--exit-code-file requires a path")
	}

	command := flagSet.Args()
	if len(command) == 0 {
		return relaySettings{}, fmt.Errorf("no command specified\n%s", usage)
	}

	var cfg *config.Config
	var err error
	switch {
	case configPath != "":
		cfg, err = config.LoadFile(configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	case directory == "":
		return relaySettings{}, fmt.Errorf("--dir is required when no configuration file is given")
	default:
		cfg = config.Default()
	}
	if err != nil {
		return relaySettings{}, err
	}

	overrides := []struct {
		flag   string
		target *string
		value  string
	}{
		{"dir", &cfg.SplitLog.Directory, directory},
		{"prefix", &cfg.SplitLog.Prefix, prefix},
		{"max-size", &cfg.SplitLog.MaxSize, maxSize},
		{"packer", &cfg.SplitLog.Packer, packer},
		{"rotate-every", &cfg.SplitLog.RotateEvery, rotateEvery},
	}
	for _, override := range overrides {
		if flagSet.Changed(override.flag) {
			*override.target = override.value
		}
	}
	if flagSet.Changed("keep") {
		cfg.SplitLog.Keep = keep
	}
	if err := cfg.Validate(); err != nil {
		return relaySettings{}, fmt.Errorf("invalid configuration: %w", err)
	}

	options, err := cfg.SplitLogOptions()
	if err != nil {
		return relaySettings{}, err
	}
	interval, err := cfg.SplitLog.RotateInterval()
	if err != nil {
		return relaySettings{}, err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return relaySettings{}, err
	}
	return relaySettings{
		command:      command,
		splitLog:     options,
		rotateEvery:  interval,
		tee:          tee,
		exitCodeFile: exitCodeFile,
		logFormat:    cfg.Log.Format,
		logLevel:     level,
	}, nil
}
