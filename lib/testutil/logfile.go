// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// LogFile is an append-only file owned by a test.
type LogFile struct {
	t    testing.TB
	path string
	file *os.File
}

// NewLogFile creates an empty file named name in t.TempDir(), opened
// for appending. The file is closed when the test completes.
func NewLogFile(t testing.TB, name string) *LogFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("creating log file: %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })
	return &LogFile{t: t, path: path, file: file}
}

// Path returns the file's absolute path.
func (log *LogFile) Path() string { return log.path }

// Append writes text at the end of the file and syncs it.
func (log *LogFile) Append(text string) {
	log.t.Helper()
	if _, err := log.file.WriteString(text); err != nil {
		log.t.Fatalf("appending to %s: %v", log.path, err)
	}
	if err := log.file.Sync(); err != nil {
		log.t.Fatalf("syncing %s: %v", log.path, err)
	}
}

// Content returns the full current content of the file, read from
// scratch.
func (log *LogFile) Content() string {
	log.t.Helper()
	data, err := os.ReadFile(log.path)
	if err != nil {
		log.t.Fatalf("reading %s: %v", log.path, err)
	}
	return string(data)
}
