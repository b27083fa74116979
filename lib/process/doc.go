// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the entrypoint error handler for the
// linetail binary. Fatal reports an error to stderr when the
// structured logger may not be initialized and exits with status 1.
package process
