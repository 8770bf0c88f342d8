package repositories

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/smarlhens/riri-node-tools/internal/manifest"
)

// ManifestFileRepository reads and writes manifest documents on disk.
type ManifestFileRepository struct{}

// NewManifestFileRepository creates a new manifest file repository.
func NewManifestFileRepository() *ManifestFileRepository {
	return &ManifestFileRepository{}
}

// Load parses the manifest at the given path, preserving its formatting.
func (r *ManifestFileRepository) Load(path string) (*manifest.Document, error) {
	format, err := manifest.DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	doc, err := manifest.Load(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	return doc, nil
}

// Save writes the document back atomically: the serialized bytes go to a
// temporary file in the same directory, which then replaces the original.
// A crash mid-write leaves the manifest untouched.
func (r *ManifestFileRepository) Save(path string, doc *manifest.Document) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %q: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(doc.Serialize()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write manifest %q: %w", path, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set mode on %q: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %q: %w", tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace manifest %q: %w", path, err)
	}
	return nil
}
