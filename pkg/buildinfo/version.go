// Package buildinfo carries the version stamped into kinview binaries.
//
// Release builds inject all three variables via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/kinview/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/kinview/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/kinview/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Untagged builds report "dev".
package buildinfo

import "fmt"

var (
	// Version is the semantic version, "dev" when not stamped.
	Version = "dev"

	// Commit is the git commit SHA, "none" when not stamped.
	Commit = "none"

	// Date is the build timestamp, "unknown" when not stamped.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template used by the root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
