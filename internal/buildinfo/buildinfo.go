// Package buildinfo carries version stamps injected with
// -ldflags "-X tally/internal/buildinfo.Version=...".
package buildinfo

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for UI/logging.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// Long returns version, commit and build date on one line.
func Long() string {
	return Short() + " (" + Commit + ", " + Date + ")"
}
