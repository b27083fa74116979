// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package linetail provides random-access, line-numbered reads over a
// text file that another process is appending to, such as a live log.
//
// [Open] binds an [Accessor] to one file. The Accessor scans the file
// incrementally: each scan reads only the bytes appended since the
// previous one, starting at a [ScanCursor], and extends two structures
// in lockstep:
//
//   - a line offset index, one start offset per line plus a trailing
//     boundary. It grows for the life of the Accessor and is the
//     authority for locating any line on disk.
//   - a fixed-capacity ring of the most recently indexed line texts,
//     aligned with the tail of the index. Reads of recent lines are
//     served from memory; older lines are read back from the file.
//
// A scan that ends mid-line leaves the last line open. The next scan
// continues it in place instead of starting a new line, so a line
// written in several pieces is always reported as one line. Once its
// delimiter ('\n') is seen a line is closed and never changes again.
// Delimiters are stripped from returned text; nothing else is
// normalized, so a "\r\n" file yields lines ending in '\r'.
//
// # Indexing
//
// [Accessor.Line] accepts a 0-based index or a negative index counted
// from the end (-1 is the last line). [Accessor.Lines] takes a
// half-open range [from, to) whose endpoints are positions between
// lines: 0 is before the first line and the line count is after the
// last, so a negative endpoint e means e + count + 1 and Lines(0, -1)
// returns every line. A range with to < from returns its lines in
// descending order. Out-of-range requests fail with a [*RangeError];
// the Try variants report them as absent results instead.
//
// # Refreshing
//
// Reads see the index as of the latest scan. Scans run when
// [Accessor.RefreshIndex] is called, when a read passes refresh=true,
// and, if [Options].RefreshPeriod is positive, on a background
// goroutine that wakes on a fixed schedule (start + k*period) so scan
// time does not accumulate as drift. Scan failures are logged and
// counted in [Stats] but never returned: the next scan resumes from
// the last committed position.
//
// The file is assumed to be append-only. Truncation, rotation, or
// in-place rewrites are not detected.
//
// All Accessor methods are safe for concurrent use. One mutex guards
// the cursor, index, cache, and the file's read position.
package linetail
