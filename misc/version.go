// Package misc keeps build time program identification.
package misc

import (
	"runtime/debug"
	"sync"
)

// Set with -ldflags "-X ckstyle/misc.version=... -X ckstyle/misc.githash=..."
var (
	version = ""
	githash = ""
)

const appName = "ckstyle"

var buildInfo = sync.OnceValue(func() *debug.BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return bi
})

func GetAppName() string {
	return appName
}

// GetVersion returns linked version, falls back to module version.
func GetVersion() string {
	if version != "" {
		return version
	}
	if bi := buildInfo(); bi != nil && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns linked commit hash, falls back to vcs stamp.
func GetGitHash() string {
	if githash != "" {
		return githash
	}
	if bi := buildInfo(); bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
