// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package linetail

import (
	"context"
	"time"
)

// startRefresher launches the background scan loop. Close cancels it
// and waits on done.
func (accessor *Accessor) startRefresher(period time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	accessor.cancel = cancel
	accessor.done = make(chan struct{})
	go accessor.refreshLoop(ctx, period)
}

// refreshLoop scans, then sleeps until the next scheduled wake time.
// Wake times are start + k*period: each one is derived from the
// previous wake time, never from the time a scan finished. A scan that
// has started always runs to completion; cancellation is observed
// while sleeping.
func (accessor *Accessor) refreshLoop(ctx context.Context, period time.Duration) {
	defer close(accessor.done)

	accessor.logger.Debug("refresher started", "path", accessor.path, "period", period)
	next := accessor.clock.Now().Add(period)
	for {
		accessor.RefreshIndex()

		select {
		case <-ctx.Done():
			accessor.logger.Debug("refresher stopped", "path", accessor.path)
			return
		case <-accessor.clock.Until(next):
		}
		next = next.Add(period)
	}
}
