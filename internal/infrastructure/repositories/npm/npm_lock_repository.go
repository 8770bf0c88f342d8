// Package npm parses package-lock.json files (lockfile versions 1 to 3)
// into an exact-version source.
package npm

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
	"github.com/smarlhens/riri-node-tools/internal/domain/repositories"
)

const (
	// FileName is the npm lockfile name.
	FileName = "package-lock.json"

	packageManager = "npm"
	packagesPrefix = "node_modules/"
)

// LockRepository loads npm lockfiles.
type LockRepository struct{}

// NewLockRepository creates a new npm lock repository.
func NewLockRepository() *LockRepository {
	return &LockRepository{}
}

func (r *LockRepository) FileName() string { return FileName }

// lockFile mirrors the package-lock.json layout across versions: v1 keeps
// a "dependencies" tree, v2 carries both "packages" and "dependencies",
// v3 keeps only "packages".
type lockFile struct {
	LockfileVersion int                  `json:"lockfileVersion"`
	Dependencies    map[string]lockEntry `json:"dependencies"`
	Packages        map[string]lockEntry `json:"packages"`
}

type lockEntry struct {
	Version  string          `json:"version"`
	Resolved json.RawMessage `json:"resolved"`
	Link     bool            `json:"link"`
	Engines  json.RawMessage `json:"engines"`
}

// Load parses the lockfile at the given path.
func (r *LockRepository) Load(path string) (repositories.VersionSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile %q: %w", path, err)
	}

	var lock lockFile
	if unmarshalErr := json.Unmarshal(data, &lock); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse lockfile %q: %w", path, unmarshalErr)
	}

	switch lock.LockfileVersion {
	case 1:
		return repositories.NewMapVersionSource(
			packageManager, convertEntries(lock.Dependencies, ""), nil,
		), nil
	case 2:
		if lock.Packages != nil {
			return packagesSource(lock.Packages), nil
		}
		return repositories.NewMapVersionSource(
			packageManager, convertEntries(lock.Dependencies, ""), nil,
		), nil
	case 3:
		return packagesSource(lock.Packages), nil
	default:
		return nil, fmt.Errorf(
			"unsupported lockfile version %d in %q", lock.LockfileVersion, path,
		)
	}
}

func packagesSource(packages map[string]lockEntry) repositories.VersionSource {
	return repositories.NewMapVersionSource(
		packageManager, convertEntries(packages, packagesPrefix), nil,
	)
}

// convertEntries flattens the raw lock entries into a name-keyed map,
// following "link" and "resolved" indirections and dropping nested
// node_modules entries. For v2/v3 "packages" maps the prefix strips the
// leading "node_modules/" from each key.
func convertEntries(entries map[string]lockEntry, prefix string) map[string]entities.LockedDependency {
	deps := make(map[string]entities.LockedDependency, len(entries))

	for key, entry := range entries {
		if key == "" || strings.Contains(key, "/"+packagesPrefix) {
			continue // root entry or nested dependency
		}

		name := key
		if prefix != "" {
			if !strings.HasPrefix(key, prefix) {
				continue // e.g. workspace entries keyed by relative path
			}
			name = strings.TrimPrefix(key, prefix)
		}

		resolved, ok := resolveEntry(name, entry, entries)
		if !ok {
			continue
		}

		deps[name] = entities.LockedDependency{
			Version: resolved.Version,
			Engines: parseEngines(resolved.Engines),
		}
	}

	return deps
}

// resolveEntry follows an entry without a version to the entry its
// "resolved" field names, mirroring npm's link layout.
func resolveEntry(name string, entry lockEntry, entries map[string]lockEntry) (lockEntry, bool) {
	if entry.Version != "" {
		return entry, true
	}

	var target string
	if err := json.Unmarshal(entry.Resolved, &target); err != nil || target == "" {
		logger.Debugf("Dependency %s has no version and no resolution target.", name)
		return lockEntry{}, false
	}

	resolved, ok := entries[target]
	if !ok || resolved.Version == "" {
		logger.Debugf("Dependency %s is unresolved in the lockfile.", name)
		return lockEntry{}, false
	}
	return resolved, true
}

// parseEngines accepts both engine layouts found in npm lockfiles: the
// usual object form and the legacy array form (["node >=10"]).
func parseEngines(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	var object map[string]string
	if err := json.Unmarshal(raw, &object); err == nil {
		return object
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}

	engines := make(map[string]string, len(list))
	for _, item := range list {
		name, rng, found := strings.Cut(strings.TrimSpace(item), " ")
		if !found {
			continue
		}
		engines[strings.ToLower(name)] = strings.TrimSpace(rng)
	}
	if len(engines) == 0 {
		return nil
	}
	return engines
}
