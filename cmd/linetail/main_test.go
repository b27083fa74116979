// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/linetail/lib/clock"
	"github.com/bureau-foundation/linetail/lib/codec"
	"github.com/bureau-foundation/linetail/lib/linetail"
	"github.com/bureau-foundation/linetail/lib/testutil"
)

// runCommand runs the command with LINETAIL_CONFIG cleared and returns
// its stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LINETAIL_CONFIG", "")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), clock.Real(), args, &stdout, &stderr)
	return stdout.String(), err
}

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing log: %v", err)
	}
	return path
}

func TestPrintsAllLinesByDefault(t *testing.T) {
	path := writeLog(t, "alpha\nbeta\ngamma")

	output, err := runCommand(t, path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := "alpha\nbeta\ngamma\n"; output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestPrintsSingleLine(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")

	tests := []struct {
		index string
		want  string
	}{
		{"0", `{"line":0,"text":"a"}`},
		{"2", `{"line":2,"text":"c"}`},
		{"-1", `{"line":2,"text":"c"}`},
		{"-3", `{"line":0,"text":"a"}`},
	}
	for _, test := range tests {
		output, err := runCommand(t, "--format", "json", "--line", test.index, path)
		if err != nil {
			t.Fatalf("--line %s: %v", test.index, err)
		}
		if got := strings.TrimSpace(output); got != test.want {
			t.Errorf("--line %s: got %s, want %s", test.index, got, test.want)
		}
	}
}

func TestDescendingRangeNumbering(t *testing.T) {
	path := writeLog(t, "a\nb\nc\nd\n")

	output, err := runCommand(t, "--format", "json", "--from", "3", "--to", "1", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := `{"line":2,"text":"c"}` + "\n" + `{"line":1,"text":"b"}` + "\n"
	if output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestNegativeRangeEndpoints(t *testing.T) {
	path := writeLog(t, "a\nb\nc\nd\n")

	// -3 is position 2 of 4 lines; -1 is the end.
	output, err := runCommand(t, "--from", "-3", "--to", "-1", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := "c\nd\n"; output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestCBOROutput(t *testing.T) {
	path := writeLog(t, "first\nsecond\n")

	output, err := runCommand(t, "--format", "cbor", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	decoder := codec.NewDecoder(strings.NewReader(output))
	for i, want := range []codec.Record{{Line: 0, Text: "first"}, {Line: 1, Text: "second"}} {
		var got codec.Record
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("decoding record %d: %v", i, err)
		}
		if got != want {
			t.Errorf("record %d: got %+v, want %+v", i, got, want)
		}
	}
	var extra codec.Record
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		t.Errorf("expected end of sequence, got record %+v (err %v)", extra, err)
	}
}

func TestLineOutOfRange(t *testing.T) {
	path := writeLog(t, "a\nb\n")

	_, err := runCommand(t, "--line", "2", path)
	if !linetail.IsRange(err) {
		t.Fatalf("expected range error, got %v", err)
	}
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	path := writeLog(t, "one\ntwo\n")
	configPath := filepath.Join(t.TempDir(), "linetail.yaml")
	configText := "file: " + path + "\nformat: json\ncache_capacity: 1\n"
	if err := os.WriteFile(configPath, []byte(configText), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	output, err := runCommand(t, "--config", configPath, "--line", "0")
	if err != nil {
		t.Fatalf("run with config: %v", err)
	}
	if want := `{"line":0,"text":"one"}`; strings.TrimSpace(output) != want {
		t.Errorf("config format: got %q, want %q", output, want)
	}

	output, err = runCommand(t, "--config", configPath, "--format", "text", "--line", "0")
	if err != nil {
		t.Fatalf("run with override: %v", err)
	}
	if want := "one\n"; output != want {
		t.Errorf("flag override: got %q, want %q", output, want)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	path := writeLog(t, "x\ny\n")
	configPath := filepath.Join(t.TempDir(), "linetail.jsonc")
	configText := "{\n  // env-selected\n  \"file\": \"" + path + "\",\n}\n"
	if err := os.WriteFile(configPath, []byte(configText), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("LINETAIL_CONFIG", configPath)

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), clock.Real(), []string{"--line", "-1"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if want := "y\n"; stdout.String() != want {
		t.Errorf("output = %q, want %q", stdout.String(), want)
	}
}

func TestInvalidArguments(t *testing.T) {
	path := writeLog(t, "a\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no file", nil, "file is required"},
		{"two files", []string{path, path}, "expected one file argument"},
		{"line and range", []string{"--line", "0", "--from", "0", path}, "--line cannot be combined"},
		{"follow and line", []string{"--follow", "--line", "0", path}, "--line cannot be combined with --follow"},
		{"follow and to", []string{"--follow", "--to", "1", path}, "--to cannot be combined"},
		{"bad format", []string{"--format", "xml", path}, "format must be one of"},
		{"missing file", []string{filepath.Join(t.TempDir(), "absent.log")}, "absent.log"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := runCommand(t, test.args...)
			if err == nil {
				t.Fatalf("expected error containing %q", test.wantErr)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), test.wantErr)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	output, err := runCommand(t, "--version")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(output, "linetail ") {
		t.Errorf("version output %q does not start with the binary name", output)
	}
}

func TestFollowPrintsCompletedLines(t *testing.T) {
	t.Setenv("LINETAIL_CONFIG", "")
	log := testutil.NewLogFile(t, "follow.log")
	log.Append("a\nb\npart")

	reader, writer := io.Pipe()
	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		var stderr bytes.Buffer
		done <- run(ctx, clock.Real(), []string{"--follow", log.Path()}, writer, &stderr)
		writer.Close()
	}()

	const timeout = 5 * time.Second
	for _, want := range []string{"a", "b"} {
		if got := testutil.RequireReceive(t, lines, timeout, "line %q", want); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}

	log.Append("ial\nc\n")
	for _, want := range []string{"partial", "c"} {
		if got := testutil.RequireReceive(t, lines, timeout, "line %q", want); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}

	cancel()
	if err := testutil.RequireReceive(t, done, timeout, "follow exit"); err != nil {
		t.Errorf("follow returned %v", err)
	}
}

func TestFollowStartsAtFrom(t *testing.T) {
	t.Setenv("LINETAIL_CONFIG", "")
	log := testutil.NewLogFile(t, "follow.log")
	log.Append("0\n1\n2\n3\n")

	reader, writer := io.Pipe()
	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		var stderr bytes.Buffer
		done <- run(ctx, clock.Real(), []string{"--follow", "--from", "-2", "--format", "json", log.Path()}, writer, &stderr)
		writer.Close()
	}()

	const timeout = 5 * time.Second
	want := `{"line":3,"text":"3"}`
	if got := testutil.RequireReceive(t, lines, timeout, "first followed line"); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	log.Append("4\n")
	want = `{"line":4,"text":"4"}`
	if got := testutil.RequireReceive(t, lines, timeout, "appended line"); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	cancel()
	if err := testutil.RequireReceive(t, done, timeout, "follow exit"); err != nil {
		t.Errorf("follow returned %v", err)
	}
}

func TestLoggerFormatFollowsTerminal(t *testing.T) {
	var buffer bytes.Buffer
	logger := newLogger(&buffer, slog.LevelInfo)
	logger.Info("scanned", "lines", 3)

	// A buffer is never a terminal, so records are JSON.
	if !strings.HasPrefix(buffer.String(), "{") || !strings.Contains(buffer.String(), `"lines":3`) {
		t.Errorf("expected a JSON record, got %q", buffer.String())
	}
}

func TestCBORRecordsLoggedAtDebug(t *testing.T) {
	t.Setenv("LINETAIL_CONFIG", "")
	path := writeLog(t, "ready\n")

	var stdout, stderr bytes.Buffer
	args := []string{"--format", "cbor", "--log-level", "debug", path}
	if err := run(context.Background(), clock.Real(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.Len() == 0 {
		t.Fatal("no CBOR output")
	}
	if !strings.Contains(stderr.String(), "cbor record") || !strings.Contains(stderr.String(), "ready") {
		t.Errorf("debug log %q missing the record's diagnostic notation", stderr.String())
	}
}
