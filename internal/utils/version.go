package utils

import (
	"runtime/debug"

	"golang.org/x/mod/semver"
)

// DevelVersion is reported when no release version is embedded
const DevelVersion = "devel"

// Version reports the generator version from build info: a canonical semantic
// version when the main module was built at a tagged release, otherwise a
// short VCS revision, otherwise "devel".
func Version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return DevelVersion
	}
	var revision string
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			revision = s.Value
			break
		}
	}
	return ResolveVersion(bi.Main.Version, revision)
}

// ResolveVersion picks the version to display from a module version and a
// VCS revision. Pseudo-versions fall back to the revision when one is known.
func ResolveVersion(moduleVersion, revision string) string {
	if semver.IsValid(moduleVersion) && semver.Prerelease(moduleVersion) == "" {
		return semver.Canonical(moduleVersion)
	}
	if len(revision) >= 12 {
		return revision[:12]
	}
	if revision != "" {
		return revision
	}
	if semver.IsValid(moduleVersion) {
		return moduleVersion
	}
	return DevelVersion
}
