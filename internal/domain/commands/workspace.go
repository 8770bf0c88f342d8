package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/smarlhens/riri-node-tools/internal/manifest"
	infraRepos "github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories"
)

// workspacePatterns extracts the workspace globs from a root manifest.
// Both layouts are accepted: a plain list and the object form with a
// "packages" list.
func workspacePatterns(doc *manifest.Document) []string {
	node, ok := doc.Root().Child("workspaces")
	if !ok {
		return nil
	}
	if node.Kind() == manifest.KindMapping {
		if node, ok = node.Child("packages"); !ok {
			return nil
		}
	}

	var patterns []string
	for _, item := range node.Items() {
		if pattern, isString := item.StringValue(); isString {
			patterns = append(patterns, pattern)
		}
	}
	return patterns
}

// expandWorkspaces returns the root directory followed by every workspace
// member directory holding a manifest, in glob order. Duplicate matches
// collapse to the first occurrence.
func expandWorkspaces(root string, patterns []string) ([]string, error) {
	dirs := []string{root}
	seen := map[string]bool{root: true}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid workspace pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, statErr := os.Stat(match)
			if statErr != nil || !info.IsDir() || seen[match] {
				continue
			}
			if _, statErr = os.Stat(filepath.Join(match, infraRepos.ManifestFileName)); statErr != nil {
				continue
			}
			seen[match] = true
			dirs = append(dirs, match)
		}
	}
	return dirs, nil
}

// workerLimit bounds the workspace worker pool.
func workerLimit() int { return runtime.GOMAXPROCS(0) }
