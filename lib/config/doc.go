// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for gbdhash.
//
// Configuration comes from at most one file, named by either the
// GBDHASH_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. Without a file, [Default] applies.
//
// Files are YAML. Files ending in .json or .jsonc are also accepted:
// comments and trailing commas are stripped with tidwall/jsonc and the
// result is parsed as YAML, of which JSON is a subset.
//
// Variable expansion is performed on temp_dir after loading: ${HOME},
// ${TMPDIR} and ${VAR:-default} patterns are expanded. No environment
// variable overrides a config value directly.
//
// Key exports:
//
//   - [Config] -- pipeline, worker and logging settings
//   - [Default] -- the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.PipelineOptions] -- conversion to gbdhash.Options
package config
