package version

import (
	"fmt"
	"runtime"
)

// Build metadata injected by goreleaser or makefile
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns a formatted version string
func GetVersion() string {
	if Version == "dev" {
		return "dev"
	}
	return Version
}

// GetVersionInfo returns detailed version information, used by `diary version`.
func GetVersionInfo() string {
	if Version == "dev" {
		return fmt.Sprintf("Diary dev (%s, %s)", runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("Diary %s (commit: %s, built: %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}

// GetShortVersion returns the label shown in the TUI header.
func GetShortVersion() string {
	if Version == "dev" {
		return "Diary dev"
	}
	return fmt.Sprintf("Diary %s", Version)
}
