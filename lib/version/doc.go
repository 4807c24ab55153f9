// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the gbdhash binary.
//
// [Version] and [GitCommit] are injected at build time with -ldflags -X.
// When they are not set, values recorded by the Go toolchain in the
// binary's build info are used instead, so "go install" builds still
// report the module version and VCS revision.
package version
