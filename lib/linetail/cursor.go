// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package linetail

// ScanCursor marks where the next incremental scan resumes.
//
// Offset always equals the trailing entry of the line offset index:
// the start of the next line when the last line is closed, or the
// provisional end of the last line when it is open.
type ScanCursor struct {
	// Offset is the number of bytes consumed from the start of the
	// file.
	Offset int64

	// Open is true when the consumed bytes end mid-line, so the next
	// bytes read continue the last line.
	Open bool
}
