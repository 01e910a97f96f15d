package app

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/heartmarshall/writemate-backend/internal/app.Version=1.4.0".
// Commit and BuildTime fall back to the VCS stamp of the binary.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion is reported at startup and by /health.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		commit, built = vcsStamp(info.Settings, commit, built)
	}
	return formatVersion(Version, commit, built)
}

// vcsStamp fills commit and built from the build settings when ldflags left
// them empty. A commit taken from a modified tree gets a -dirty suffix.
func vcsStamp(settings []debug.BuildSetting, commit, built string) (string, string) {
	var revision, vcsTime string
	modified := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			vcsTime = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if commit == "" && revision != "" {
		commit = revision[:min(len(revision), 12)]
		if modified {
			commit += "-dirty"
		}
	}
	if built == "" {
		built = vcsTime
	}
	return commit, built
}

func formatVersion(version, commit, built string) string {
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}
