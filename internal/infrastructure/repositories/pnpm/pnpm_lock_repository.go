// Package pnpm parses pnpm-lock.yaml files (lockfile versions 5.x and 6.x)
// into an exact-version source.
package pnpm

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
	"github.com/smarlhens/riri-node-tools/internal/domain/repositories"
)

const (
	// FileName is the pnpm lockfile name.
	FileName = "pnpm-lock.yaml"

	packageManager = "pnpm"
	rootImporter   = "."
)

// LockRepository loads pnpm lockfiles.
type LockRepository struct{}

// NewLockRepository creates a new pnpm lock repository.
func NewLockRepository() *LockRepository {
	return &LockRepository{}
}

func (r *LockRepository) FileName() string { return FileName }

type lockFile struct {
	// lockfileVersion is a YAML float in v5 ("5.4") and a string from
	// v6 onwards ("6.0"), so it cannot decode into a plain string.
	LockfileVersion lockfileVersion     `yaml:"lockfileVersion"`
	Importers       map[string]importer `yaml:"importers"`

	// Single-package lockfiles (no importers section) keep the
	// dependency maps at the top level.
	Dependencies         map[string]lockDependency `yaml:"dependencies"`
	DevDependencies      map[string]lockDependency `yaml:"devDependencies"`
	OptionalDependencies map[string]lockDependency `yaml:"optionalDependencies"`
}

type importer struct {
	Dependencies         map[string]lockDependency `yaml:"dependencies"`
	DevDependencies      map[string]lockDependency `yaml:"devDependencies"`
	OptionalDependencies map[string]lockDependency `yaml:"optionalDependencies"`
}

type lockfileVersion string

func (v *lockfileVersion) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("unexpected lockfileVersion node kind %d", value.Kind)
	}
	*v = lockfileVersion(value.Value)
	return nil
}

// lockDependency accepts both pnpm layouts: v5 keeps a bare version
// string, v6 an object with specifier and version fields.
type lockDependency struct {
	Version string
}

func (d *lockDependency) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		d.Version = value.Value
		return nil
	}

	var object struct {
		Version string `yaml:"version"`
	}
	if err := value.Decode(&object); err != nil {
		return err
	}
	d.Version = object.Version
	return nil
}

// Load parses the lockfile at the given path.
func (r *LockRepository) Load(path string) (repositories.VersionSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile %q: %w", path, err)
	}

	var lock lockFile
	if unmarshalErr := yaml.Unmarshal(data, &lock); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse lockfile %q: %w", path, unmarshalErr)
	}

	major, _, _ := strings.Cut(string(lock.LockfileVersion), ".")
	switch major {
	case "5", "6", "9":
	default:
		return nil, fmt.Errorf(
			"unsupported lockfile version %q in %q", lock.LockfileVersion, path,
		)
	}

	sections := []map[string]lockDependency{
		lock.Dependencies, lock.DevDependencies, lock.OptionalDependencies,
	}
	if root, ok := lock.Importers[rootImporter]; ok {
		sections = append(sections,
			root.Dependencies, root.DevDependencies, root.OptionalDependencies,
		)
	}

	deps := make(map[string]entities.LockedDependency)
	for _, section := range sections {
		for name, dep := range section {
			version := bareVersion(dep.Version)
			if version == "" {
				continue
			}
			deps[name] = entities.LockedDependency{Version: version}
		}
	}

	return repositories.NewMapVersionSource(packageManager, deps, nil), nil
}

// bareVersion strips the peer-dependency suffix pnpm appends to resolved
// versions ("1.2.3(react@18.2.0)" or the older "1.2.3_react@18.2.0").
func bareVersion(version string) string {
	if idx := strings.IndexAny(version, "(_"); idx >= 0 {
		return version[:idx]
	}
	return version
}
