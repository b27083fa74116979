// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the time operations used by schedulers.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d
	// has elapsed. If d <= 0 the channel is ready immediately.
	After(d time.Duration) <-chan time.Time

	// Until returns a channel that receives the current time once the
	// clock reaches deadline. A deadline at or before Now is ready
	// immediately.
	Until(deadline time.Time) <-chan time.Time
}
