package version

import "runtime/debug"

var version = "dev"

// Version reports the module version from build info when built as a module,
// falling back to the string set at link time or via Set.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		return info.Main.Version
	}
	return version
}

// Set overrides the fallback version for local development builds.
func Set(v string) {
	if v != "" {
		version = v
	}
}
