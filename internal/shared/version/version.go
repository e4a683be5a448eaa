// Package version reports the build version of the binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is overridden at build time with
// -ldflags "-X github.com/bizblocks/bizblocks/internal/shared/version.Current=v1.2.3".
var Current = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether version is a valid semantic version, as opposed
// to a development build such as "dev".
func IsRelease(version string) bool {
	return semver.IsValid(Normalize(version))
}
