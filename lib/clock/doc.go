// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for code that
// schedules work.
//
// Production code holds a Clock and calls it instead of time.Now,
// time.After, or time.Sleep. Real() is the standard library; Fake()
// is a deterministic clock that moves only when a test calls Advance.
//
// # Absolute Deadlines
//
// Periodic loops that must not drift sleep with [Clock.Until], which
// waits for a wall-clock deadline rather than a duration. Computing
// each deadline from the previous one (deadline += period) keeps the
// schedule fixed regardless of how long each iteration takes.
//
// # FakeClock Synchronization
//
// A goroutine calling After or Until on a FakeClock registers a
// pending waiter. Tests call WaitForTimers to block until the waiter
// exists, then Advance to fire it:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go loop(c)
//	c.WaitForTimers(1)
//	c.Advance(time.Second)
package clock
