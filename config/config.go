package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
)

// Config is the top-level configuration shared by npd and nce.
type Config struct {
	// Sections limits which dependency sections npd visits. Empty means
	// all of them.
	Sections []string `yaml:"sections"`

	// Strict makes npd abort on the first entry that fails to resolve.
	Strict bool `yaml:"strict"`

	// Workspaces includes workspace member manifests in every run.
	Workspaces bool `yaml:"workspaces"`

	// Engines pins the actual version assumed for an engine instead of
	// querying the local binary (e.g. node: "20.11.0" for CI images).
	Engines map[string]string `yaml:"engines"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{}
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if validateErr := validate(&cfg); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".riri.yaml",
		".riri.yml",
		"riri.yaml",
		"riri.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// validate checks for values that would silently do nothing.
func validate(cfg *Config) error {
	known := entities.KnownSections()
	for i, section := range cfg.Sections {
		if !slices.Contains(known, section) {
			return fmt.Errorf("sections[%d]: unknown section %q (known: %v)", i, section, known)
		}
	}

	for name, version := range cfg.Engines {
		if version == "" {
			return fmt.Errorf("engines.%s: version must not be empty", name)
		}
	}

	return nil
}
