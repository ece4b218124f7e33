package version

// Application version information, overridden at build time via ldflags.
var (
	Version = "dev"
	Commit  = ""
)

// Full returns the version string shown to users, with the commit hash
// appended when one was baked in.
func Full() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
