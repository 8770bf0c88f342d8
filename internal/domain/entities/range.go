package entities

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Range is a parsed semver constraint expression: carets, tildes, exact
// versions, wildcards, comparator sets, and disjunctions ("||").
// A Range is immutable once parsed.
type Range struct {
	constraint *semver.Constraints
	exact      *semver.Version // non-nil when the range is a single bare version
	wildcard   bool
	raw        string
}

// ParseRange parses an npm-style range expression. The empty string and
// "*" are the wildcard range, satisfied by any valid version.
func ParseRange(text string) (Range, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		trimmed = "*"
	}

	constraint, err := semver.NewConstraint(trimmed)
	if err != nil {
		return Range{}, &ParseError{Kind: ParseKindRange, Input: text, Err: err}
	}

	// A range that is a bare version matches exactly one version, with
	// pre-release and build metadata taking part in the comparison.
	exact, exactErr := semver.StrictNewVersion(trimmed)
	if exactErr != nil {
		exact = nil
	}

	return Range{constraint: constraint, exact: exact, wildcard: trimmed == "*", raw: text}, nil
}

// String returns the original range text.
func (r Range) String() string { return r.raw }

// IsExact reports whether the range pins a single version.
func (r Range) IsExact() bool { return r.exact != nil }

// Satisfies reports whether the given version is accepted by the range.
func (r Range) Satisfies(v Version) bool {
	if r.wildcard {
		// The wildcard accepts every version, pre-releases included;
		// plain constraint checks would exclude those.
		return true
	}
	if r.exact != nil {
		// Exact ranges compare the full identity, build metadata included.
		return r.exact.Equal(v.parsed) && r.exact.Metadata() == v.parsed.Metadata()
	}
	return r.constraint.Check(v.parsed)
}
