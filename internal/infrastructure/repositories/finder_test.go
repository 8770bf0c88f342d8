package repositories_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories"
	"github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories/npm"
	"github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories/pnpm"
	"github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories/yarn"
)

func newFinder() *repositories.Finder {
	registry := repositories.NewLockRegistry()
	registry.Register(npm.NewLockRepository())
	registry.Register(yarn.NewLockRepository())
	registry.Register(pnpm.NewLockRepository())
	return repositories.NewFinder(registry)
}

func touch(t *testing.T, path string, modified time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	require.NoError(t, os.Chtimes(path, modified, modified))
}

func TestFinder_FindManifest(t *testing.T) {
	t.Parallel()

	t.Run("should find the manifest in the directory", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o600))

		// when
		path, err := newFinder().FindManifest(dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "package.json"), path)
	})

	t.Run("should fail when no manifest exists", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()

		// when
		path, err := newFinder().FindManifest(dir)

		// then
		require.Error(t, err)
		assert.Empty(t, path)
	})
}

func TestFinder_FindLock(t *testing.T) {
	t.Parallel()

	t.Run("should find a lockfile next to the manifest", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		lock := filepath.Join(dir, npm.FileName)
		touch(t, lock, time.Now())

		// when
		path, err := newFinder().FindLock(dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, lock, path)
	})

	t.Run("should walk up to a parent directory", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		nested := filepath.Join(root, "packages", "app")
		require.NoError(t, os.MkdirAll(nested, 0o750))
		lock := filepath.Join(root, yarn.FileName)
		touch(t, lock, time.Now())

		// when
		path, err := newFinder().FindLock(nested)

		// then
		require.NoError(t, err)
		assert.Equal(t, lock, path)
	})

	t.Run("should prefer the most recently modified lockfile", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		now := time.Now()
		touch(t, filepath.Join(dir, npm.FileName), now.Add(-time.Hour))
		newest := filepath.Join(dir, pnpm.FileName)
		touch(t, newest, now)

		// when
		path, err := newFinder().FindLock(dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, newest, path)
	})

	t.Run("should not walk past a directory that has a lockfile", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		nested := filepath.Join(root, "app")
		require.NoError(t, os.MkdirAll(nested, 0o750))
		touch(t, filepath.Join(root, npm.FileName), time.Now())
		near := filepath.Join(nested, yarn.FileName)
		touch(t, near, time.Now().Add(-time.Hour))

		// when
		path, err := newFinder().FindLock(nested)

		// then
		require.NoError(t, err)
		assert.Equal(t, near, path)
	})

	t.Run("should fail when no lockfile exists", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()

		// when
		path, err := newFinder().FindLock(dir)

		// then
		require.Error(t, err)
		assert.Empty(t, path)
	})
}
