package entities

import "strings"

// Dependency sections of a package manifest, in the order they are
// processed. Section identity only affects where the rewritten value is
// written back, never the resolution logic.
const (
	SectionDependencies         = "dependencies"
	SectionDevDependencies      = "devDependencies"
	SectionPeerDependencies     = "peerDependencies"
	SectionOptionalDependencies = "optionalDependencies"
)

// KnownSections lists every dependency section the pinning engine visits.
func KnownSections() []string {
	return []string{
		SectionDependencies,
		SectionDevDependencies,
		SectionPeerDependencies,
		SectionOptionalDependencies,
	}
}

// DependencyEntry is one (name, declared range, section) tuple found in a
// manifest's dependency sections.
type DependencyEntry struct {
	Name    string
	Range   string
	Section string
}

// ResolvedPin records a successful pin: the dependency, its original range,
// and the exact version it was rewritten to.
type ResolvedPin struct {
	Name       string
	OldRange   string
	NewVersion string
}

// PinResult is the per-entry outcome of the pinning engine. Entries that
// were already pinned carry neither a pin nor an error and report
// Changed() == false.
type PinResult struct {
	Entry DependencyEntry
	Pin   *ResolvedPin
	Err   error
}

// Changed reports whether the entry's declared range was rewritten.
func (r PinResult) Changed() bool { return r.Pin != nil }

// LockedDependency is one lockfile entry: the exact resolved version plus
// any engine expectations the lockfile records for it.
type LockedDependency struct {
	Version string
	Engines map[string]string
}

// NamedLockedDependency pairs a lockfile entry with its dependency name.
type NamedLockedDependency struct {
	Name string
	LockedDependency
}

// Dist-tags commonly published alongside registry packages. A dependency
// declared against one resolves at install time, not through a range.
var distTags = map[string]struct{}{ //nolint:gochecknoglobals // fixed lookup table
	"latest":       {},
	"next":         {},
	"beta":         {},
	"alpha":        {},
	"canary":       {},
	"rc":           {},
	"experimental": {},
}

// IsRegistrySpecifier reports whether the declared range is a version
// constraint resolvable through a lockfile, as opposed to a local path,
// workspace link, dist-tag, or direct URL specifier.
func IsRegistrySpecifier(rng string) bool {
	for _, prefix := range []string{"file:", "link:", "workspace:", "git:", "git+", "github:", "npm:"} {
		if strings.HasPrefix(rng, prefix) {
			return false
		}
	}
	if _, isTag := distTags[strings.TrimSpace(rng)]; isTag {
		return false
	}
	return !strings.Contains(rng, "://")
}
