// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package linetail

// lineIndex maps line numbers to byte offsets. It holds count()+1
// non-decreasing boundaries: boundaries[i] is where line i starts, and
// the trailing boundary is either the start of the next (not yet
// written) line or, while open is set, the provisional end of the last
// line. Boundaries are only ever appended or, for the open trailing
// entry, moved forward.
type lineIndex struct {
	boundaries []int64
	open       bool
}

func newLineIndex() *lineIndex {
	return &lineIndex{boundaries: []int64{0}}
}

// count returns the number of lines, including an open last line.
func (index *lineIndex) count() int {
	return len(index.boundaries) - 1
}

// trailing returns the last boundary.
func (index *lineIndex) trailing() int64 {
	return index.boundaries[len(index.boundaries)-1]
}

// appendClosed records a complete line whose delimiter ends at next.
func (index *lineIndex) appendClosed(next int64) {
	index.boundaries = append(index.boundaries, next)
}

// appendOpen records a new line with no delimiter yet, whose content
// so far ends at end.
func (index *lineIndex) appendOpen(end int64) {
	index.boundaries = append(index.boundaries, end)
	index.open = true
}

// extendOpen moves the provisional end of the open last line.
func (index *lineIndex) extendOpen(end int64) {
	index.boundaries[len(index.boundaries)-1] = end
}

// closeOpen finalizes the open last line; next is the offset just
// past its delimiter.
func (index *lineIndex) closeOpen(next int64) {
	index.boundaries[len(index.boundaries)-1] = next
	index.open = false
}

// span returns the byte range [start, end) holding the content of line
// i, excluding its delimiter. The caller guarantees 0 <= i < count().
func (index *lineIndex) span(i int) (start, end int64) {
	start, end = index.boundaries[i], index.boundaries[i+1]
	if index.open && i == index.count()-1 {
		return start, end
	}
	return start, end - 1
}
