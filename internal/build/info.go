// Package build carries build-time information injected via ldflags.
package build

// Info holds version metadata stamped into the binary at link time.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// RepoURL returns the project repository URL.
func RepoURL() string {
	return "https://github.com/skiff-browser/skiff"
}
