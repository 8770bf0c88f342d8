// Package yarn parses yarn.lock files (berry, v2+) into an exact-version
// source. The classic v1 format is rejected with a clear error.
package yarn

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
	"github.com/smarlhens/riri-node-tools/internal/domain/repositories"
)

const (
	// FileName is the yarn lockfile name.
	FileName = "yarn.lock"

	packageManager = "yarn"

	v1Header    = "# yarn lockfile v1"
	metadataKey = "__metadata"
)

// LockRepository loads yarn lockfiles.
type LockRepository struct{}

// NewLockRepository creates a new yarn lock repository.
func NewLockRepository() *LockRepository {
	return &LockRepository{}
}

func (r *LockRepository) FileName() string { return FileName }

type lockEntry struct {
	Version string `yaml:"version"`
}

// Load parses the lockfile at the given path.
func (r *LockRepository) Load(path string) (repositories.VersionSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile %q: %w", path, err)
	}

	content := string(data)
	if strings.Contains(content, v1Header) {
		return nil, errors.New("yarn classic (v1) lockfiles are not supported")
	}
	if !strings.Contains(content, metadataKey) {
		return nil, errors.New("unrecognized yarn lockfile layout")
	}

	// Decode entries lazily: the __metadata block carries an integer
	// "version" field that must not be parsed as a dependency entry.
	var raw map[string]yaml.Node
	if unmarshalErr := yaml.Unmarshal(data, &raw); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse lockfile %q: %w", path, unmarshalErr)
	}

	source := &Source{
		exact:  make(map[string]entities.LockedDependency),
		byName: make(map[string][]entities.LockedDependency),
	}

	// Entry keys are descriptors ("lodash@npm:^4.17.20"), possibly several
	// joined by commas when one resolution satisfies multiple ranges.
	for key, node := range raw {
		if key == metadataKey {
			continue
		}

		var entry lockEntry
		if decodeErr := node.Decode(&entry); decodeErr != nil {
			return nil, fmt.Errorf("failed to parse lockfile entry %q: %w", key, decodeErr)
		}
		if entry.Version == "" {
			continue
		}
		for _, descriptor := range strings.Split(key, ",") {
			descriptor = strings.TrimSpace(descriptor)
			source.exact[descriptor] = entities.LockedDependency{Version: entry.Version}

			name := descriptorName(descriptor)
			if name != "" {
				source.byName[name] = append(
					source.byName[name],
					entities.LockedDependency{Version: entry.Version},
				)
			}
		}
	}

	return source, nil
}

// Source resolves dependencies against yarn descriptors: an exact
// "name@npm:range" match first, then the highest locked version recorded
// for the bare name.
type Source struct {
	exact  map[string]entities.LockedDependency
	byName map[string][]entities.LockedDependency
}

func (s *Source) PackageManager() string { return packageManager }

func (s *Source) Lookup(name, declaredRange string) (entities.LockedDependency, bool) {
	if dep, ok := s.exact[name+"@npm:"+declaredRange]; ok {
		return dep, true
	}

	candidates := s.byName[name]
	if len(candidates) == 0 {
		return entities.LockedDependency{}, false
	}
	return highestVersion(candidates), true
}

func (s *Source) Locked() []entities.NamedLockedDependency {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]entities.NamedLockedDependency, 0, len(names))
	for _, name := range names {
		result = append(result, entities.NamedLockedDependency{
			Name:             name,
			LockedDependency: highestVersion(s.byName[name]),
		})
	}
	return result
}

// descriptorName extracts the dependency name from a yarn descriptor.
// Scoped names keep their "@scope/" prefix.
func descriptorName(descriptor string) string {
	at := strings.LastIndex(descriptor, "@")
	if at <= 0 {
		return ""
	}
	return descriptor[:at]
}

// highestVersion picks the newest candidate by semver precedence, falling
// back to string comparison for non-semver versions.
func highestVersion(candidates []entities.LockedDependency) entities.LockedDependency {
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if isNewerVersion(best.Version, candidate.Version) {
			best = candidate
		}
	}
	return best
}

func isNewerVersion(current, candidate string) bool {
	v1 := normalizeVersion(current)
	v2 := normalizeVersion(candidate)

	if semver.IsValid(v1) && semver.IsValid(v2) {
		return semver.Compare(v2, v1) > 0
	}
	return candidate > current
}

// normalizeVersion ensures the version has a 'v' prefix for semver comparison.
func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
