package repositories

import (
	"context"
	"sort"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
)

// VersionSource is an exact-version source of truth: it maps a dependency
// name (and its declared range, which some lockfile layouts key by) to the
// one exact version actually installed or resolved. Implementations are
// built from a lockfile and are read-only after construction.
type VersionSource interface {
	// PackageManager returns the package manager the source was built from
	// (e.g. "npm", "yarn", "pnpm").
	PackageManager() string

	// Lookup returns the locked entry for a dependency, or false when the
	// lockfile has no entry for it.
	Lookup(name, declaredRange string) (entities.LockedDependency, bool)

	// Locked returns every locked dependency, ordered by name, for
	// cross-package engine checks.
	Locked() []entities.NamedLockedDependency
}

// ActualVersionSource reports the actual installed version of an engine
// (a runtime or package manager). Implementations may shell out to local
// binaries or serve fixed values from flags and config.
type ActualVersionSource interface {
	// Version returns the engine's actual version, or false when it cannot
	// be determined. Callers must treat unknown as "not satisfied", never
	// as compatible.
	Version(ctx context.Context, engine string) (string, bool)
}

// KeyFunc computes the lockfile key for a dependency name and its declared
// range; lock layouts differ in how entries are keyed.
type KeyFunc func(name, declaredRange string) string

// MapVersionSource is the in-memory VersionSource every lockfile parser
// produces, keeping the engine trivially testable with fixtures.
type MapVersionSource struct {
	manager string
	deps    map[string]entities.LockedDependency
	keyFn   KeyFunc
}

// NewMapVersionSource builds a VersionSource over a parsed dependency map.
// A nil key function keys entries by plain dependency name.
func NewMapVersionSource(
	manager string,
	deps map[string]entities.LockedDependency,
	keyFn KeyFunc,
) *MapVersionSource {
	if keyFn == nil {
		keyFn = func(name, _ string) string { return name }
	}
	return &MapVersionSource{manager: manager, deps: deps, keyFn: keyFn}
}

func (s *MapVersionSource) PackageManager() string { return s.manager }

func (s *MapVersionSource) Lookup(name, declaredRange string) (entities.LockedDependency, bool) {
	dep, ok := s.deps[s.keyFn(name, declaredRange)]
	return dep, ok
}

func (s *MapVersionSource) Locked() []entities.NamedLockedDependency {
	names := make([]string, 0, len(s.deps))
	for name := range s.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]entities.NamedLockedDependency, 0, len(names))
	for _, name := range names {
		result = append(result, entities.NamedLockedDependency{
			Name:             name,
			LockedDependency: s.deps[name],
		})
	}
	return result
}

// StaticActualVersions is an ActualVersionSource over a fixed map, used for
// --engine overrides, config entries, and tests.
type StaticActualVersions map[string]string

func (s StaticActualVersions) Version(_ context.Context, engine string) (string, bool) {
	version, ok := s[engine]
	return version, ok && version != ""
}

// ChainActualVersions queries several sources in order and returns the
// first known answer.
type ChainActualVersions []ActualVersionSource

func (c ChainActualVersions) Version(ctx context.Context, engine string) (string, bool) {
	for _, source := range c {
		if version, ok := source.Version(ctx, engine); ok {
			return version, true
		}
	}
	return "", false
}
