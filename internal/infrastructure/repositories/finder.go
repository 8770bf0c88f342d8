package repositories

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"
)

// ManifestFileName is the package manifest name every project carries.
const ManifestFileName = "package.json"

// Finder locates manifests and lockfiles on disk.
type Finder struct {
	registry *LockRegistry
}

// NewFinder creates a finder over the registered lockfile types.
func NewFinder(registry *LockRegistry) *Finder {
	return &Finder{registry: registry}
}

// FindManifest returns the manifest path inside the given directory.
func (f *Finder) FindManifest(dir string) (string, error) {
	path := filepath.Join(dir, ManifestFileName)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("no %s found in %q: %w", ManifestFileName, dir, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%q is a directory", path)
	}
	return path, nil
}

// FindLock walks up from the given directory and returns the path of the
// nearest lockfile of any registered type. When one directory holds
// several lockfile types, the most recently modified one wins, so a
// project migrated between package managers follows its live lockfile.
func (f *Finder) FindLock(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory %q: %w", dir, err)
	}

	for {
		if path, found := f.newestLockIn(current); found {
			return path, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no lockfile (%v) found above %q", f.registry.FileNames(), dir)
		}
		current = parent
	}
}

func (f *Finder) newestLockIn(dir string) (string, bool) {
	var (
		newest   string
		modified time.Time
	)

	for _, name := range f.registry.FileNames() {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if newest == "" || info.ModTime().After(modified) {
			newest = path
			modified = info.ModTime()
		}
	}

	if newest != "" {
		logger.Debugf("Using lockfile %s.", newest)
	}
	return newest, newest != ""
}
