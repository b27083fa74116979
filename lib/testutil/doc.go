// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) so that individual
// tests do not need direct time.After calls. These are the only place
// in the test suite where real wall-clock timeouts are used.
//
// [NewLogFile] creates a file in the test's temporary directory and
// returns a [LogFile] for appending to it the way a live writer would:
// each Append is written and synced before it returns, so a reader in
// the same process observes it immediately.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no other internal dependencies.
package testutil
