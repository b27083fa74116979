// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package linetail

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/bureau-foundation/linetail/lib/clock"
)

// Options configures an Accessor. The zero value is valid: no
// background refresh, no cache, discarded logs, real time.
type Options struct {
	// RefreshPeriod is the interval between background scans. Zero
	// disables the background refresher; scans then happen only on
	// RefreshIndex or reads with refresh=true.
	RefreshPeriod time.Duration

	// CacheCapacity is the number of most recent lines kept in
	// memory. Zero disables the cache and every read goes to disk.
	CacheCapacity int

	// Logger receives scan diagnostics. Nil discards them.
	Logger *slog.Logger

	// Clock drives the background refresher. Nil uses clock.Real().
	Clock clock.Clock
}

// Stats is a snapshot of an Accessor's scan state.
type Stats struct {
	// Lines is the number of indexed lines, including an open last
	// line.
	Lines int

	// Open is true when the last line has no delimiter yet, so its
	// content may still grow.
	Open bool

	// Offset is the scan cursor: bytes of the file consumed so far.
	Offset int64

	// Cached is the number of lines held in the recent-line cache.
	Cached int

	// Scans counts completed and failed scans, including the initial
	// scan performed by Open.
	Scans uint64

	// ScanFailures counts scans that stopped on a read or seek error.
	ScanFailures uint64
}

// Accessor serves line-numbered reads over one append-only file.
// Create one with Open and release it with Close.
type Accessor struct {
	path   string
	logger *slog.Logger
	clock  clock.Clock

	// mutex guards everything below, including the read position of
	// file, which is kept at state.cursor.Offset between operations.
	mutex  sync.Mutex
	file   io.ReadSeekCloser
	state  scanState
	buffer []byte
	closed bool
	// positionLost is set when the file's read position may no longer
	// match the cursor; the next scan seeks back before reading.
	positionLost bool
	scans        uint64
	scanFailures uint64

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Open opens path for reading, indexes its current contents, and
// starts the background refresher when options.RefreshPeriod is
// positive. It fails with *OpenError when the file cannot be opened.
func Open(path string, options Options) (*Accessor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	if info.IsDir() {
		file.Close()
		return nil, &OpenError{Path: path, Err: fmt.Errorf("is a directory")}
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeSource := options.Clock
	if timeSource == nil {
		timeSource = clock.Real()
	}

	accessor := &Accessor{
		path:   path,
		logger: logger,
		clock:  timeSource,
		file:   file,
		state:  newScanState(options.CacheCapacity),
		buffer: make([]byte, scanChunkSize),
	}

	accessor.RefreshIndex()

	if options.RefreshPeriod > 0 {
		accessor.startRefresher(options.RefreshPeriod)
	}
	return accessor, nil
}

// Path returns the path the Accessor was opened with.
func (accessor *Accessor) Path() string { return accessor.path }

// RefreshIndex scans bytes appended since the last scan. It never
// fails: errors are logged, counted in Stats, and retried by the next
// scan.
func (accessor *Accessor) RefreshIndex() {
	accessor.mutex.Lock()
	defer accessor.mutex.Unlock()
	accessor.scanLocked()
}

// Line returns line index, which is 0-based or negative from the end.
// With refresh set, the file is scanned first. Indexes outside
// [-LineCount, LineCount) fail with *RangeError.
func (accessor *Accessor) Line(index int, refresh bool) (string, error) {
	accessor.mutex.Lock()
	defer accessor.mutex.Unlock()

	if accessor.closed {
		return "", ErrClosed
	}
	if refresh {
		accessor.scanLocked()
	}

	count := accessor.state.index.count()
	position := index
	if position < 0 {
		position += count
	}
	if position < 0 || position >= count {
		return "", &RangeError{Index: index, Min: -count, Max: count}
	}
	return accessor.lineLocked(position)
}

// TryLine is Line with failures reported as ok == false. Range errors
// are expected and silent; read errors are logged.
func (accessor *Accessor) TryLine(index int, refresh bool) (line string, ok bool) {
	line, err := accessor.Line(index, refresh)
	if err != nil {
		if !IsRange(err) {
			accessor.logger.Warn("line read failed", "path", accessor.path, "index", index, "error", err)
		}
		return "", false
	}
	return line, true
}

// Lines returns the lines in the half-open range [from, to). Endpoints
// are positions between lines in [0, LineCount]; a negative endpoint e
// stands for e + LineCount + 1, so -1 is the end of the file. When
// to < from after rebasing, the lines of [to, from) are returned in
// descending order. With refresh set, the file is scanned first.
func (accessor *Accessor) Lines(from, to int, refresh bool) ([]string, error) {
	accessor.mutex.Lock()
	defer accessor.mutex.Unlock()

	if accessor.closed {
		return nil, ErrClosed
	}
	if refresh {
		accessor.scanLocked()
	}

	count := accessor.state.index.count()
	start, err := rebaseEndpoint(from, count)
	if err != nil {
		return nil, err
	}
	stop, err := rebaseEndpoint(to, count)
	if err != nil {
		return nil, err
	}

	descending := stop < start
	if descending {
		start, stop = stop, start
	}

	lines := make([]string, 0, stop-start)
	for position := start; position < stop; position++ {
		line, err := accessor.lineLocked(position)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if descending {
		slices.Reverse(lines)
	}
	return lines, nil
}

// TryLines is Lines with failures reported as a nil slice.
func (accessor *Accessor) TryLines(from, to int, refresh bool) []string {
	lines, err := accessor.Lines(from, to, refresh)
	if err != nil {
		if !IsRange(err) {
			accessor.logger.Warn("line range read failed", "path", accessor.path,
				"from", from, "to", to, "error", err)
		}
		return nil
	}
	return lines
}

// LineCount returns the number of indexed lines, including an open
// last line.
func (accessor *Accessor) LineCount() int {
	accessor.mutex.Lock()
	defer accessor.mutex.Unlock()
	return accessor.state.index.count()
}

// Stats returns a snapshot of the scan state.
func (accessor *Accessor) Stats() Stats {
	accessor.mutex.Lock()
	defer accessor.mutex.Unlock()
	return Stats{
		Lines:        accessor.state.index.count(),
		Open:         accessor.state.cursor.Open,
		Offset:       accessor.state.cursor.Offset,
		Cached:       accessor.state.cache.retained(),
		Scans:        accessor.scans,
		ScanFailures: accessor.scanFailures,
	}
}

// Close stops the background refresher, waiting for an in-flight scan
// to finish, and closes the file. Lines already cached are not
// reachable afterwards; reads return ErrClosed. Close is idempotent.
func (accessor *Accessor) Close() error {
	accessor.closeOnce.Do(func() {
		if accessor.cancel != nil {
			accessor.cancel()
			<-accessor.done
		}

		accessor.mutex.Lock()
		defer accessor.mutex.Unlock()
		accessor.closed = true
		accessor.closeErr = accessor.file.Close()
	})
	return accessor.closeErr
}

// rebaseEndpoint converts a range endpoint to a position in
// [0, count].
func rebaseEndpoint(endpoint, count int) (int, error) {
	position := endpoint
	if position < 0 {
		position += count + 1
	}
	if position < 0 || position > count {
		return 0, &RangeError{Index: endpoint, Min: -(count + 1), Max: count + 1, Endpoint: true}
	}
	return position, nil
}

// scanLocked runs one incremental scan. Must be called with mutex
// held.
func (accessor *Accessor) scanLocked() {
	if accessor.closed {
		return
	}
	accessor.scans++

	if accessor.positionLost {
		if _, err := accessor.file.Seek(accessor.state.cursor.Offset, io.SeekStart); err != nil {
			accessor.scanFailures++
			accessor.logger.Warn("scan skipped: cannot seek to cursor",
				"path", accessor.path, "offset", accessor.state.cursor.Offset, "error", err)
			return
		}
		accessor.positionLost = false
	}

	merged, err := accessor.state.scan(accessor.file, accessor.buffer)
	if err != nil {
		accessor.scanFailures++
		accessor.positionLost = true
		accessor.logger.Warn("scan failed",
			"path", accessor.path, "offset", accessor.state.cursor.Offset, "error", err)
		return
	}
	if merged > 0 {
		accessor.logger.Debug("scanned",
			"path", accessor.path,
			"bytes", merged,
			"offset", accessor.state.cursor.Offset,
			"lines", accessor.state.index.count(),
		)
	}
}

// lineLocked returns line position, 0 <= position < count, from the
// cache or from disk. Must be called with mutex held.
func (accessor *Accessor) lineLocked(position int) (string, error) {
	if line, ok := accessor.state.cache.peek(position); ok {
		return line, nil
	}
	start, end := accessor.state.index.span(position)
	line, err := accessor.readSpanLocked(start, end)
	if err != nil {
		return "", fmt.Errorf("reading line %d of %s: %w", position, accessor.path, err)
	}
	return line, nil
}

// readSpanLocked reads bytes [start, end) of the file without moving
// the scan position. The open last line is read only up to its
// provisional end, so disk reads agree with what the cache would have
// returned. Must be called with mutex held.
func (accessor *Accessor) readSpanLocked(start, end int64) (line string, err error) {
	held, err := acquirePosition(accessor.file)
	if err != nil {
		return "", err
	}
	defer func() {
		if releaseErr := held.release(); releaseErr != nil {
			accessor.positionLost = true
			if err == nil {
				err = releaseErr
			}
		}
	}()

	if _, err := accessor.file.Seek(start, io.SeekStart); err != nil {
		return "", err
	}
	content := make([]byte, end-start)
	if _, err := io.ReadFull(accessor.file, content); err != nil {
		return "", err
	}
	return string(content), nil
}
