package entities

import "fmt"

// ParseKind identifies what kind of text failed to parse.
type ParseKind string

const (
	ParseKindVersion  ParseKind = "version"
	ParseKindRange    ParseKind = "range"
	ParseKindDocument ParseKind = "document"
)

// ParseError reports malformed version, range, or document text.
// It always carries the offending input; callers must not guess a default.
type ParseError struct {
	Kind  ParseKind
	Input string
	Pos   int // byte offset in the source for document errors, -1 when unknown
	Err   error
}

func (e *ParseError) Error() string {
	if e.Kind == ParseKindDocument && e.Pos >= 0 {
		return fmt.Sprintf("invalid %s at offset %d: %v", e.Kind, e.Pos, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Kind, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewDocumentError builds a ParseError for document text at the given offset.
func NewDocumentError(pos int, err error) *ParseError {
	return &ParseError{Kind: ParseKindDocument, Pos: pos, Err: err}
}

// ResolveKind identifies why a dependency could not be pinned.
type ResolveKind string

const (
	// ResolveNotFound means the exact-version source has no entry for the
	// dependency.
	ResolveNotFound ResolveKind = "not found"

	// ResolveOutOfRange means the locked version does not satisfy the
	// declared range, which signals a lockfile/manifest inconsistency.
	ResolveOutOfRange ResolveKind = "out of range"
)

// ResolveError reports a per-dependency pinning failure. It never aborts
// sibling entries.
type ResolveError struct {
	Kind  ResolveKind
	Name  string
	Range string
	Found string // locked version, set for out-of-range failures
}

func (e *ResolveError) Error() string {
	if e.Kind == ResolveOutOfRange {
		return fmt.Sprintf(
			"dependency %q: locked version %s does not satisfy declared range %q",
			e.Name, e.Found, e.Range,
		)
	}
	return fmt.Sprintf("dependency %q: not found in the lockfile", e.Name)
}
