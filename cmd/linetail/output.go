// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/bureau-foundation/linetail/lib/codec"
	"github.com/bureau-foundation/linetail/lib/config"
)

// recordWriter writes numbered lines in one output format.
type recordWriter interface {
	emit(record codec.Record) error
}

func newRecordWriter(w io.Writer, format config.Format, logger *slog.Logger) recordWriter {
	switch format {
	case config.FormatJSON:
		return jsonWriter{encoder: json.NewEncoder(w)}
	case config.FormatCBOR:
		return cborWriter{w: w, logger: logger}
	default:
		return textWriter{w: w}
	}
}

type textWriter struct {
	w io.Writer
}

func (writer textWriter) emit(record codec.Record) error {
	_, err := io.WriteString(writer.w, record.Text+"\n")
	return err
}

type jsonWriter struct {
	encoder *json.Encoder
}

func (writer jsonWriter) emit(record codec.Record) error {
	return writer.encoder.Encode(record)
}

// cborWriter writes a CBOR sequence. At debug level each record is
// also logged in diagnostic notation, since the binary output is not
// readable on its own.
type cborWriter struct {
	w      io.Writer
	logger *slog.Logger
}

func (writer cborWriter) emit(record codec.Record) error {
	data, err := codec.Marshal(record)
	if err != nil {
		return err
	}
	if writer.logger.Enabled(context.Background(), slog.LevelDebug) {
		if notation, err := codec.Diagnose(data); err == nil {
			writer.logger.Debug("cbor record", "line", record.Line, "notation", notation)
		}
	}
	_, err = writer.w.Write(data)
	return err
}
