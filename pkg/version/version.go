// Package version exposes the build version of booksmcp.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/booksmcp/booksmcp/pkg/version.Version=x.y.z"
var Version = "1.0.0"

// GetVersion returns the version of the running binary.
func GetVersion() string {
	return Version
}
