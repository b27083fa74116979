// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package linetail

import (
	"bytes"
	"io"
)

// Delimiter separates lines. It is stripped from returned text.
const Delimiter = '\n'

// scanChunkSize is the read size for one scan step. Each chunk is
// merged into the index and cache before the next is read.
const scanChunkSize = 64 * 1024

// scanState is everything a scan mutates. A chunk boundary is handled
// exactly like a boundary between two scans, so the state is
// consistent after every apply call.
type scanState struct {
	cursor ScanCursor
	index  *lineIndex
	cache  *lineCache
}

func newScanState(cacheCapacity int) scanState {
	return scanState{
		index: newLineIndex(),
		cache: newLineCache(cacheCapacity),
	}
}

// scan reads from reader, which must be positioned at the cursor,
// until end of file, merging each chunk as it arrives. It returns the
// number of bytes merged. On a read error the chunks merged before it
// stay committed and the cursor reflects them.
func (state *scanState) scan(reader io.Reader, buffer []byte) (int64, error) {
	var merged int64
	for {
		n, err := reader.Read(buffer)
		if n > 0 {
			state.apply(buffer[:n])
			merged += int64(n)
		}
		if err == io.EOF {
			return merged, nil
		}
		if err != nil {
			return merged, err
		}
		if n == 0 {
			return merged, io.ErrNoProgress
		}
	}
}

// apply merges bytes that directly follow the cursor.
//
// The first segment continues the last line when the cursor is open.
// Every delimiter-terminated segment closes a line: the open one if
// there is one, otherwise a newly created one. A trailing segment
// without a delimiter becomes, or extends, the open last line; an
// empty trailing segment creates nothing.
func (state *scanState) apply(chunk []byte) {
	for len(chunk) > 0 {
		end := bytes.IndexByte(chunk, Delimiter)
		if end < 0 {
			state.cursor.Offset += int64(len(chunk))
			if state.cursor.Open {
				state.cache.appendToLast(chunk)
				state.index.extendOpen(state.cursor.Offset)
			} else {
				state.cache.pushNew(chunk)
				state.index.appendOpen(state.cursor.Offset)
				state.cursor.Open = true
			}
			return
		}

		state.cursor.Offset += int64(end + 1)
		if state.cursor.Open {
			state.cache.appendToLast(chunk[:end])
			state.index.closeOpen(state.cursor.Offset)
			state.cursor.Open = false
		} else {
			state.cache.pushNew(chunk[:end])
			state.index.appendClosed(state.cursor.Offset)
		}
		chunk = chunk[end+1:]
	}
}
