// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/linetail/lib/clock"
	"github.com/bureau-foundation/linetail/lib/codec"
	"github.com/bureau-foundation/linetail/lib/linetail"
)

// followOptions configures followFile.
type followOptions struct {
	// From is the first line to print. A value beyond the current end
	// waits for that line to appear; a negative value is rebased
	// against the current count.
	From int

	// Changes signals writes to the file. Nil when change
	// notification is unavailable.
	Changes <-chan struct{}

	// Period is the poll interval. Zero polls never, so Changes is
	// the only wake source.
	Period time.Duration

	Clock  clock.Clock
	Logger *slog.Logger
}

// followFile prints complete lines from options.From onward, then
// waits for the file to grow and prints each newly completed line,
// until ctx is done. Every wake rescans the file before printing.
//
// If Changes closes while ctx is still live, following continues on
// the poll period alone; with no period there is nothing left to wake
// the loop and followFile returns an error.
func followFile(ctx context.Context, accessor *linetail.Accessor, writer recordWriter, options followOptions) error {
	next := max(endpointPosition(options.From, accessor.LineCount()), 0)
	changes := options.Changes

	var poll <-chan time.Time
	for {
		if err := emitClosedLines(accessor, writer, &next); err != nil {
			return err
		}

		if poll == nil && options.Period > 0 {
			poll = options.Clock.After(options.Period)
		}

		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				if options.Period <= 0 {
					return fmt.Errorf("change notification for %s stopped and no --refresh period is set", accessor.Path())
				}
				options.Logger.Warn("change notification stopped, polling",
					"path", accessor.Path(), "period", options.Period)
				changes = nil
				continue
			}
		case <-poll:
			poll = nil
		}
		accessor.RefreshIndex()
	}
}

// emitClosedLines writes every line in [*next, closed) where closed is
// the number of lines that have their delimiter, and advances *next.
// Closed lines never change, so the range stays valid while the
// background refresher grows the index.
func emitClosedLines(accessor *linetail.Accessor, writer recordWriter, next *int) error {
	stats := accessor.Stats()
	closed := stats.Lines
	if stats.Open {
		closed--
	}
	if closed <= *next {
		return nil
	}

	lines, err := accessor.Lines(*next, closed, false)
	if err != nil {
		return err
	}
	for _, text := range lines {
		if err := writer.emit(codec.Record{Line: *next, Text: text}); err != nil {
			return err
		}
		*next++
	}
	return nil
}
