// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time:
//
//	go build -ldflags "-X github.com/bureau-foundation/gbdhash/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = ""

	// Version is the semantic version. This is set manually for releases.
	Version = ""
)

const (
	develVersion  = "0.1.0-dev"
	unknownCommit = "unknown"
)

// Info returns a one-line version string suitable for --version output,
// for example "0.1.0 (abc1234)".
func Info() string {
	return info(debug.ReadBuildInfo())
}

func info(build *debug.BuildInfo, ok bool) string {
	version, commit, dirty := Version, GitCommit, false
	if ok {
		if version == "" && build.Main.Version != "" && build.Main.Version != "(devel)" {
			version = build.Main.Version
		}
		for _, setting := range build.Settings {
			switch setting.Key {
			case "vcs.revision":
				if commit == "" {
					commit = shorten(setting.Value)
				}
			case "vcs.modified":
				dirty = setting.Value == "true"
			}
		}
	}
	if version == "" {
		version = develVersion
	}
	if commit == "" {
		commit = unknownCommit
	}
	if dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}

// Full returns Info plus the Go version and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func shorten(revision string) string {
	if len(revision) > 12 {
		return revision[:12]
	}
	return revision
}
