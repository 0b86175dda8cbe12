// Package version holds the heartlog build metadata and the revision of the
// log line layout this build writes.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.3.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// LogFormat is the revision of the trace and complexity line layout.
const LogFormat = 1

var segmentColors = []*color.Color{
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
	color.New(color.FgMagenta, color.Bold),
}

// Colored renders v with its major, minor and patch numbers coloured; a
// pre-release suffix stays plain. A v that is not MAJOR.MINOR.PATCH is
// returned unchanged, as is everything when color.NoColor is set.
func Colored(v string) string {
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if len(parts) != len(segmentColors) {
		return v
	}
	for _, p := range parts {
		if p == "" || strings.Trim(p, "0123456789") != "" {
			return v
		}
	}
	for i, p := range parts {
		parts[i] = segmentColors[i].Sprint(p)
	}
	out := strings.Join(parts, ".")
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}
