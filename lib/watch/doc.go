// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package watch reports writes to a single file.
//
// [Changes] watches the file's parent directory rather than the file
// itself, so the watch keeps working when the file is created after
// the watch starts or replaced by a rename. Events for other names in
// the directory are ignored. Signals are coalesced: a burst of writes
// produces at least one signal, and a receiver that falls behind sees
// one pending signal rather than a backlog.
package watch
