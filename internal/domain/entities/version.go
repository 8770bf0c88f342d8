package entities

import (
	"github.com/Masterminds/semver/v3"
)

// Version is a parsed semantic version (major.minor.patch plus optional
// pre-release and build metadata). Ordering follows semver precedence:
// numeric identifiers compare numerically, alphanumeric ones lexically,
// a pre-release orders strictly before the corresponding release, and
// build metadata is ignored.
type Version struct {
	parsed *semver.Version
	raw    string
}

// ParseVersion parses a strict semver string ("1.2.3", "1.2.3-beta.1+build").
// Operator prefixes and partial versions are rejected.
func ParseVersion(text string) (Version, error) {
	parsed, err := semver.StrictNewVersion(text)
	if err != nil {
		return Version{}, &ParseError{Kind: ParseKindVersion, Input: text, Err: err}
	}
	return Version{parsed: parsed, raw: text}, nil
}

// String returns the original version text.
func (v Version) String() string { return v.raw }

// IsZero reports whether the version is the unparsed zero value.
func (v Version) IsZero() bool { return v.parsed == nil }

// CompareVersions orders two versions by semver precedence.
// It returns -1, 0, or 1.
func CompareVersions(a, b Version) int {
	return a.parsed.Compare(b.parsed)
}
