// Package version carries build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/faizmokh/sugarlog/internal/version.Version=v0.3.0"
package version

import (
	"fmt"
)

// These variables are populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the version followed by commit and build date when known.
func Info() string {
	if Commit == "none" && Date == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
