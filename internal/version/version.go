// Package version resolves the tool's own release version.
package version

import (
	"runtime/debug"
	"strings"
)

// Version is overridden at build time via -ldflags.
var Version = ""

// GetVersion returns the release version, falling back to the module
// build info for go-install builds.
func GetVersion() string {
	if Version != "" {
		return strings.TrimPrefix(Version, "v")
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return "0.0.0-dev"
}
