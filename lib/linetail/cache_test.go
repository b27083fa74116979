// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package linetail

import "testing"

func TestLineCachePushAndPeek(t *testing.T) {
	t.Parallel()
	cache := newLineCache(4)

	cache.pushNew([]byte("zero"))
	cache.pushNew([]byte("one"))

	for _, test := range []struct {
		index int
		want  string
	}{
		{0, "zero"},
		{1, "one"},
		{-1, "one"},
		{-2, "zero"},
	} {
		got, ok := cache.peek(test.index)
		if !ok || got != test.want {
			t.Errorf("peek(%d) = %q, %v; want %q, true", test.index, got, ok, test.want)
		}
	}

	for _, index := range []int{2, -3, 100, -100} {
		if got, ok := cache.peek(index); ok {
			t.Errorf("peek(%d) = %q, want miss", index, got)
		}
	}
}

func TestLineCacheEviction(t *testing.T) {
	t.Parallel()
	cache := newLineCache(3)
	for _, line := range []string{"a", "b", "c", "d", "e"} {
		cache.pushNew([]byte(line))
	}

	// Lines 0 and 1 were evicted by 3 and 4.
	for _, index := range []int{0, 1, -4, -5} {
		if got, ok := cache.peek(index); ok {
			t.Errorf("peek(%d) = %q, want miss after eviction", index, got)
		}
	}
	for index, want := range map[int]string{2: "c", 3: "d", 4: "e", -1: "e", -3: "c"} {
		got, ok := cache.peek(index)
		if !ok || got != want {
			t.Errorf("peek(%d) = %q, %v; want %q, true", index, got, ok, want)
		}
	}
	if cache.retained() != 3 {
		t.Errorf("retained() = %d, want 3", cache.retained())
	}
}

func TestLineCacheAppendToLast(t *testing.T) {
	t.Parallel()
	cache := newLineCache(2)

	cache.pushNew([]byte("one"))
	cache.appendToLast([]byte("ONE"))
	cache.appendToLast(nil)
	if got, _ := cache.peek(-1); got != "oneONE" {
		t.Fatalf("peek(-1) = %q, want %q", got, "oneONE")
	}
	if cache.count != 1 {
		t.Errorf("count = %d, want 1 (append must not add a line)", cache.count)
	}

	// Wrap around and append to a reused slot: the old content must
	// not leak into the new line.
	cache.pushNew([]byte("two"))
	cache.pushNew([]byte("3"))
	cache.appendToLast([]byte("33"))
	if got, _ := cache.peek(2); got != "333" {
		t.Errorf("peek(2) = %q, want %q", got, "333")
	}
	if got, _ := cache.peek(1); got != "two" {
		t.Errorf("peek(1) = %q, want %q", got, "two")
	}
}

func TestLineCachePushCopiesInput(t *testing.T) {
	t.Parallel()
	cache := newLineCache(2)
	buffer := []byte("first")
	cache.pushNew(buffer)
	copy(buffer, "XXXXX")

	if got, _ := cache.peek(0); got != "first" {
		t.Errorf("peek(0) = %q after caller reused its buffer, want %q", got, "first")
	}
}

func TestLineCacheZeroCapacity(t *testing.T) {
	t.Parallel()
	cache := newLineCache(0)
	cache.pushNew([]byte("a"))
	cache.appendToLast([]byte("b"))
	cache.pushNew([]byte("c"))

	for _, index := range []int{0, 1, -1} {
		if got, ok := cache.peek(index); ok {
			t.Errorf("peek(%d) = %q, want miss with zero capacity", index, got)
		}
	}
	if cache.count != 2 {
		t.Errorf("count = %d, want 2 (count tracks lines even without storage)", cache.count)
	}
	if cache.retained() != 0 {
		t.Errorf("retained() = %d, want 0", cache.retained())
	}
}
