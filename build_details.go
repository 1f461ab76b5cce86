package apiformat

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/erraggy/apiformat.version=..." in release
// builds.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the release version, or "dev" for source builds.
func Version() string { return version }

// Commit returns the short git revision. Source builds fall back to the
// vcs.revision stamped by the Go toolchain.
func Commit() string {
	if commit != "unknown" {
		return commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or "unknown".
func BuildTime() string { return buildTime }

// GoVersion returns the Go runtime version.
func GoVersion() string { return runtime.Version() }

// UserAgent is sent with document URL fetches.
func UserAgent() string { return "apiformat/" + version }

// BuildInfo renders the build metadata printed by "apiformat version",
// one "Label: value" line each.
func BuildInfo() string {
	var b strings.Builder
	for _, row := range [][2]string{
		{"Version", Version()},
		{"Commit", Commit()},
		{"Build Time", BuildTime()},
		{"Go Version", GoVersion()},
	} {
		fmt.Fprintf(&b, "%s: %s\n", row[0], row[1])
	}
	return strings.TrimSuffix(b.String(), "\n")
}
