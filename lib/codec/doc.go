// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides linetail's CBOR encoding configuration and the
// line record written by the command's machine-readable output formats.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same record always produces identical bytes, so CBOR output can be
// compared byte for byte across runs.
//
// Records are encoded one at a time with [Marshal] and concatenated
// into a CBOR sequence; [NewDecoder] reads such a sequence back, and
// [Diagnose] renders one record in diagnostic notation for logs.
//
// [Record] carries json tags. fxamacker/cbor v2 reads json tags as a
// fallback when cbor tags are absent, so one tag set names the fields in
// both the json and cbor output formats.
package codec
