// Package version exposes the build version of uad-tui.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/uad-ng/uad-tui/internal/version.Version=v1.2.3 \
//	                   -X github.com/uad-ng/uad-tui/internal/version.Commit=abc123"
//
// Unset values are filled from the module build info, then fall back to a
// dated dev version.
var (
	// Version is the semantic version of the running binary, e.g. "v1.2.3".
	Version = ""
	// Commit is the short git revision the binary was built from.
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		fillFromBuildInfo()
	}
	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func fillFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	// `go install module@vX.Y.Z` records a real module version.
	if Version == "" && semver.IsValid(info.Main.Version) {
		Version = info.Main.Version
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if settings["vcs.modified"] == "true" {
			rev += "-dirty"
		}
		Commit = rev
	}

	if Version == "" {
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

// IsRelease reports whether v is a tagged semantic version rather than a
// dev build. Only release builds are offered self-updates.
func IsRelease(v string) bool {
	return semver.IsValid(Canonical(v)) && semver.Prerelease(Canonical(v)) == ""
}

// Canonical normalises a tag such as "1.2.3" or "v1.2.3" to "v1.2.3".
// Non-semver input is returned unchanged.
func Canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		if semver.IsValid("v" + v) {
			return "v" + v
		}
	}
	return v
}

// Full returns the version including the commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
