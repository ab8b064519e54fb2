// Package buildinfo holds version information set at link time:
//
//	-ldflags "-X github.com/SimplyPrint/messenger-tray/internal/buildinfo.Version=1.2.3"
package buildinfo

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// DisplayVersion returns Version with a "v" prefix for release numbers
// ("1.2.3" -> "v1.2.3"); dev builds are returned unchanged.
func DisplayVersion() string {
	v := Version
	if len(v) > 0 && v[0] >= '0' && v[0] <= '9' {
		return "v" + v
	}
	return v
}
