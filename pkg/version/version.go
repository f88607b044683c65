// Package version provides the spinne tool version.
package version

// Version is the spinne tool version.
// Can be overridden at build time with:
//   go build -ldflags "-X github.com/spinnegraph/spinne/pkg/version.Version=1.2.3"
var Version = "dev"
