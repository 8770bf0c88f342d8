package repositories

import (
	"github.com/smarlhens/riri-node-tools/internal/manifest"
)

// ManifestRepository loads and persists manifest documents. Saves must be
// atomic: a failure mid-write never leaves a manifest truncated.
type ManifestRepository interface {
	Load(path string) (*manifest.Document, error)
	Save(path string, doc *manifest.Document) error
}

// LockRepository parses one lockfile layout into an exact-version source.
type LockRepository interface {
	// FileName returns the lockfile name this repository understands
	// (e.g. "package-lock.json").
	FileName() string

	// Load parses the lockfile at the given path.
	Load(path string) (VersionSource, error)
}
