package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Set with -ldflags "-X github.com/dendrascience/wordclass/version.Version=..."
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info contains version information
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Package string `json:"package"`
}

// String formats the version with a short commit and the build date when
// they are known.
func (i Info) String() string {
	if i.Commit == "unknown" || len(i.Commit) <= 7 {
		return i.Version
	}
	if i.Date != "unknown" {
		return fmt.Sprintf("%s (%s, built %s)", i.Version, i.Commit[:7], i.Date)
	}
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit[:7])
}

// buildSetting returns the VCS setting key recorded by the Go toolchain.
func buildSetting(key string) (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value, true
		}
	}
	return "", false
}

// GetVersion returns the version string, preferring the linker-injected value.
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "development"
}

// GetCommit returns the git commit hash, preferring the linker-injected value.
func GetCommit() string {
	if Commit != "unknown" && Commit != "" {
		return Commit
	}
	if v, ok := buildSetting("vcs.revision"); ok {
		return v
	}
	return "unknown"
}

// GetBuildDate returns the build date, preferring the linker-injected value.
func GetBuildDate() string {
	if Date != "unknown" && Date != "" {
		return Date
	}
	if v, ok := buildSetting("vcs.time"); ok {
		return v
	}
	return "unknown"
}

// GetInfo returns complete version information
func GetInfo() Info {
	return Info{
		Version: GetVersion(),
		Commit:  GetCommit(),
		Date:    GetBuildDate(),
		Package: "wordclass",
	}
}

// GetFullVersion returns a formatted version string with commit and date
func GetFullVersion() string {
	return GetInfo().String()
}
