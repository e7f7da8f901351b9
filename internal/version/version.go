// Package version reports the build identity of the rpgdash binary.
package version

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/example/rpgdash/internal/version.Version=v0.3.0 \
//	  -X github.com/example/rpgdash/internal/version.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version line shown by rpgdash --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, shortCommit(), BuildTime)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
