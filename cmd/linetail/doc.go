// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Linetail prints numbered lines from a file that another process is
// appending to.
//
// Lines are 0-based. A single line is selected with --line; negative
// values count from the end, so --line -1 is the last line. A range is
// selected with --from and --to, which are positions between lines:
// --from 0 --to -1 (the default) prints every line, and --to before
// --from prints the range in descending order.
//
// With --follow, linetail prints every complete line from --from
// onward and then keeps printing new complete lines as the file grows,
// until interrupted. A trailing line without a newline is printed once
// its newline arrives.
//
// Output is text (one line per line), json (one {"line","text"} object
// per line) or cbor (a CBOR sequence of the same records).
//
// Settings come from a YAML or JSONC config file named by --config or
// LINETAIL_CONFIG; flags given on the command line override it.
package main
