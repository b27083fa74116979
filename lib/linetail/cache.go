// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package linetail

// lineCache is a fixed-capacity ring of line texts aligned with the
// tail of the line index: after count lines have been pushed, slot
// (count-1) % capacity holds the most recent one and the ring covers
// lines count-min(capacity, count) through count-1.
//
// Slots are byte slices reused across wraps, so steady-state pushes do
// not allocate once each slot has grown to its typical line length.
// The cache has no lock of its own; the Accessor's mutex guards it.
type lineCache struct {
	slots [][]byte
	// count is the number of lines ever pushed. It keeps counting
	// when the capacity is zero so that it always matches the index.
	count int
}

func newLineCache(capacity int) *lineCache {
	if capacity < 0 {
		capacity = 0
	}
	return &lineCache{slots: make([][]byte, capacity)}
}

// pushNew stores text as a new line, evicting the oldest line when the
// ring is full. text is copied.
func (cache *lineCache) pushNew(text []byte) {
	if capacity := len(cache.slots); capacity > 0 {
		slot := cache.count % capacity
		cache.slots[slot] = append(cache.slots[slot][:0], text...)
	}
	cache.count++
}

// appendToLast extends the most recent line with text. text is copied.
func (cache *lineCache) appendToLast(text []byte) {
	capacity := len(cache.slots)
	if capacity == 0 || cache.count == 0 {
		return
	}
	slot := (cache.count - 1) % capacity
	cache.slots[slot] = append(cache.slots[slot], text...)
}

// peek returns the text of line index, where index is 0-based or
// negative from the end (-1 is the most recent line). The second
// result is false when the line is not retained, which is a cache miss
// rather than an error: the caller reads the line from the file.
func (cache *lineCache) peek(index int) (string, bool) {
	capacity := len(cache.slots)
	if capacity == 0 {
		return "", false
	}
	if index < 0 {
		index += cache.count
	}
	if index < 0 || index >= cache.count || index < cache.count-capacity {
		return "", false
	}
	return string(cache.slots[index%capacity]), true
}

// retained returns how many lines the ring currently holds.
func (cache *lineCache) retained() int {
	return min(len(cache.slots), cache.count)
}
