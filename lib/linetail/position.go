// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package linetail

import (
	"fmt"
	"io"
)

// heldPosition is a saved read position of a seekable file. Historical
// reads acquire one before seeking away from the scan cursor and
// release it with defer, so the position is restored on every return
// path, including failed reads.
type heldPosition struct {
	seeker io.Seeker
	saved  int64
}

func acquirePosition(seeker io.Seeker) (*heldPosition, error) {
	saved, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("saving read position: %w", err)
	}
	return &heldPosition{seeker: seeker, saved: saved}, nil
}

func (held *heldPosition) release() error {
	if _, err := held.seeker.Seek(held.saved, io.SeekStart); err != nil {
		return fmt.Errorf("restoring read position %d: %w", held.saved, err)
	}
	return nil
}
