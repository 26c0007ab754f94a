// Package version provides build version information and runtime metadata.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

var (
	// These are set via ldflags at build time
	Version = ""
	Commit  = ""
	Date    = ""

	once sync.Once
)

var readBuildInfo = debug.ReadBuildInfo

func ensureInitialized() {
	once.Do(func() {
		fillFromBuildInfo()
		if Version == "" {
			Version = "dev"
		}
		if Commit == "" {
			Commit = "unknown"
		}
		if Date == "" {
			Date = "unknown"
		}
	})
}

// fillFromBuildInfo reads module and VCS stamps embedded by go build for
// anything ldflags left empty.
func fillFromBuildInfo() {
	info, ok := readBuildInfo()
	if !ok {
		return
	}
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "" {
				Commit = s.Value
				if len(Commit) > 12 {
					Commit = Commit[:12]
				}
			}
		case "vcs.time":
			if Date == "" {
				Date = s.Value
			}
		}
	}
}

// Info returns a one-line description of the build.
func Info() string {
	ensureInitialized()
	return fmt.Sprintf("hackatime-wrapped %s (commit: %s, built: %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
