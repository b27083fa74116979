// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/linetail/lib/clock"
	"github.com/bureau-foundation/linetail/lib/codec"
	"github.com/bureau-foundation/linetail/lib/config"
	"github.com/bureau-foundation/linetail/lib/linetail"
	"github.com/bureau-foundation/linetail/lib/process"
	"github.com/bureau-foundation/linetail/lib/version"
	"github.com/bureau-foundation/linetail/lib/watch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, clock.Real(), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		process.Fatal(err)
	}
}

// run executes one invocation. timeSource drives the background
// refresher and the follow poll.
func run(ctx context.Context, timeSource clock.Clock, args []string, stdout, stderr io.Writer) error {
	defaults := config.Default()

	var (
		configPath    string
		line          int
		from          int
		to            int
		cacheCapacity int
		refreshPeriod time.Duration
		follow        bool
		format        string
		logLevel      string
		showVersion   bool
	)

	flagSet := pflag.NewFlagSet("linetail", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "config file (default: $LINETAIL_CONFIG)")
	flagSet.IntVar(&line, "line", 0, "print one line; negative counts from the end")
	flagSet.IntVar(&from, "from", 0, "start of the range (position between lines)")
	flagSet.IntVar(&to, "to", -1, "end of the range; -1 is the end of the file")
	flagSet.IntVar(&cacheCapacity, "cache", defaults.CacheCapacity, "number of recent lines kept in memory")
	flagSet.DurationVar(&refreshPeriod, "refresh", 0, "background scan period in --follow mode (0 disables)")
	flagSet.BoolVar(&follow, "follow", false, "keep printing complete lines as the file grows")
	flagSet.StringVar(&format, "format", string(defaults.Format), "output format: text, json, cbor")
	flagSet.StringVar(&logLevel, "log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		version.Print(stdout, "linetail")
		return nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Flags given explicitly win over the config file.
	if flagSet.Changed("cache") {
		cfg.CacheCapacity = cacheCapacity
	}
	if flagSet.Changed("refresh") {
		cfg.RefreshPeriod = refreshPeriod.String()
	}
	if flagSet.Changed("format") {
		cfg.Format = config.Format(format)
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	positional := flagSet.Args()
	if len(positional) > 1 {
		return fmt.Errorf("expected one file argument, got %d", len(positional))
	}
	if len(positional) == 1 {
		cfg.File = positional[0]
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	selectsLine := flagSet.Changed("line")
	switch {
	case selectsLine && (flagSet.Changed("from") || flagSet.Changed("to")):
		return fmt.Errorf("--line cannot be combined with --from or --to")
	case follow && selectsLine:
		return fmt.Errorf("--line cannot be combined with --follow")
	case follow && flagSet.Changed("to"):
		return fmt.Errorf("--to cannot be combined with --follow")
	}

	// Validate has already parsed both.
	level, _ := cfg.Level()
	period, _ := cfg.RefreshDuration()
	logger := newLogger(stderr, level)

	if cfg.Format == config.FormatCBOR && isTerminal(stdout) {
		return fmt.Errorf("refusing to write CBOR to a terminal; redirect stdout or use --format json")
	}

	options := linetail.Options{
		CacheCapacity: cfg.CacheCapacity,
		Logger:        logger,
		Clock:         timeSource,
	}
	if follow {
		options.RefreshPeriod = period
	}

	accessor, err := linetail.Open(cfg.File, options)
	if err != nil {
		return err
	}
	defer accessor.Close()

	writer := newRecordWriter(stdout, cfg.Format, logger)

	switch {
	case selectsLine:
		return printLine(accessor, writer, line)
	case follow:
		changes, err := watch.Changes(ctx, accessor.Path(), logger)
		if err != nil {
			if period <= 0 {
				return err
			}
			logger.Warn("change notification unavailable, polling",
				"path", accessor.Path(), "period", period, "error", err)
			changes = nil
		}
		return followFile(ctx, accessor, writer, followOptions{
			From:    from,
			Changes: changes,
			Period:  period,
			Clock:   timeSource,
			Logger:  logger,
		})
	default:
		return printRange(accessor, writer, from, to)
	}
}

// loadConfig reads the config file named by --config or
// LINETAIL_CONFIG. With neither set the defaults apply.
func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		return config.LoadFile(path)
	case os.Getenv("LINETAIL_CONFIG") != "":
		return config.Load()
	default:
		return config.Default(), nil
	}
}

// printLine writes a single line. The accessor has no background
// refresher here, so the line count cannot change between calls.
func printLine(accessor *linetail.Accessor, writer recordWriter, index int) error {
	count := accessor.LineCount()
	text, err := accessor.Line(index, false)
	if err != nil {
		return err
	}
	position := index
	if position < 0 {
		position += count
	}
	return writer.emit(codec.Record{Line: position, Text: text})
}

// printRange writes the lines between two endpoints, numbering them
// in the order they are returned.
func printRange(accessor *linetail.Accessor, writer recordWriter, from, to int) error {
	count := accessor.LineCount()
	lines, err := accessor.Lines(from, to, false)
	if err != nil {
		return err
	}

	number, step := endpointPosition(from, count), 1
	if endpointPosition(to, count) < number {
		number, step = number-1, -1
	}
	for _, text := range lines {
		if err := writer.emit(codec.Record{Line: number, Text: text}); err != nil {
			return err
		}
		number += step
	}
	return nil
}

// endpointPosition rebases a range endpoint the way Accessor.Lines
// does: negative endpoints count back from one past the last line.
func endpointPosition(endpoint, count int) int {
	if endpoint < 0 {
		return endpoint + count + 1
	}
	return endpoint
}
