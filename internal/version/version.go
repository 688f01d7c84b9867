// Package version tracks the server release version.
package version

// Version is the current release. It is overridden at build time via
// -ldflags "-X github.com/studyzen/studyzen/internal/version.Version=...".
var Version = "0.3.0"

// DevVersion is the suffix appended in dev mode.
const DevVersion = "dev"

// GetCurrentVersion returns the effective version for the given run mode.
func GetCurrentVersion(mode string) string {
	if mode == "prod" {
		return Version
	}
	return Version + "-" + DevVersion
}
