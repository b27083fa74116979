// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the linetail
// command.
//
// Configuration is loaded from a single file specified by either the
// LINETAIL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks and no automatic file
// search. Files ending in .json or .jsonc are read as JSON with
// comments and trailing commas; anything else is YAML.
//
// Variable expansion is performed on the file path after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No environment
// variable overrides a config value.
//
// Key exports:
//
//   - [Config] -- target file, refresh period, cache size, log level,
//     output format
//   - [Default] -- a Config with the command's defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other internal packages.
package config
