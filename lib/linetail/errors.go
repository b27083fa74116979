// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package linetail

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by reads on an Accessor after Close.
var ErrClosed = errors.New("linetail: accessor is closed")

// OpenError reports that the target file could not be opened for
// reading when the Accessor was created.
type OpenError struct {
	// Path is the file path passed to Open.
	Path string

	// Err is the underlying cause, usually an *fs.PathError.
	Err error
}

func (err *OpenError) Error() string {
	return fmt.Sprintf("linetail: opening %s: %v", err.Path, err.Err)
}

func (err *OpenError) Unwrap() error { return err.Err }

// RangeError reports a line index or range endpoint outside the valid
// bounds for the line count at the time of the call. The valid bounds
// are the half-open interval [Min, Max).
type RangeError struct {
	// Index is the value the caller passed, before negative rebasing.
	Index int

	// Min and Max bound the accepted values. For a line index over n
	// lines they are -n and n; for a range endpoint they are -(n+1)
	// and n+1.
	Min int
	Max int

	// Endpoint is true when Index was a range endpoint rather than a
	// line index.
	Endpoint bool
}

func (err *RangeError) Error() string {
	what := "line index"
	if err.Endpoint {
		what = "range endpoint"
	}
	return fmt.Sprintf("linetail: %s %d out of range [%d, %d)", what, err.Index, err.Min, err.Max)
}

// IsRange reports whether err is, or wraps, a *RangeError.
func IsRange(err error) bool {
	var rangeError *RangeError
	return errors.As(err, &rangeError)
}
