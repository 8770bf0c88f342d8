package yarn_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories/yarn"
)

const berryLock = `# This file is generated by running "yarn install" inside your project.
# Manual changes might be lost - proceed with caution!

__metadata:
  version: 6
  cacheKey: 8

"chalk@npm:^4.1.0, chalk@npm:^4.1.2":
  version: 4.1.2
  resolution: "chalk@npm:4.1.2"

"@types/node@npm:^18.0.0":
  version: 18.15.11
  resolution: "@types/node@npm:18.15.11"

"debug@npm:^3.0.0":
  version: 3.2.7
  resolution: "debug@npm:3.2.7"

"debug@npm:^4.3.0":
  version: 4.3.4
  resolution: "debug@npm:4.3.4"
`

func writeLock(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), yarn.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLockRepository_Load(t *testing.T) {
	t.Parallel()

	t.Run("should resolve an exact descriptor match", func(t *testing.T) {
		t.Parallel()

		// given
		repository := yarn.NewLockRepository()

		// when
		source, err := repository.Load(writeLock(t, berryLock))

		// then
		require.NoError(t, err)
		assert.Equal(t, "yarn", source.PackageManager())
		dep, found := source.Lookup("debug", "^3.0.0")
		require.True(t, found)
		assert.Equal(t, "3.2.7", dep.Version)
	})

	t.Run("should resolve comma-joined descriptors", func(t *testing.T) {
		t.Parallel()

		// given
		repository := yarn.NewLockRepository()

		// when
		source, err := repository.Load(writeLock(t, berryLock))

		// then
		require.NoError(t, err)
		dep, found := source.Lookup("chalk", "^4.1.0")
		require.True(t, found)
		assert.Equal(t, "4.1.2", dep.Version)
		dep, found = source.Lookup("chalk", "^4.1.2")
		require.True(t, found)
		assert.Equal(t, "4.1.2", dep.Version)
	})

	t.Run("should resolve scoped names", func(t *testing.T) {
		t.Parallel()

		// given
		repository := yarn.NewLockRepository()

		// when
		source, err := repository.Load(writeLock(t, berryLock))

		// then
		require.NoError(t, err)
		dep, found := source.Lookup("@types/node", "^18.0.0")
		require.True(t, found)
		assert.Equal(t, "18.15.11", dep.Version)
	})

	t.Run("should fall back to the highest locked version", func(t *testing.T) {
		t.Parallel()

		// given
		repository := yarn.NewLockRepository()

		// when
		source, err := repository.Load(writeLock(t, berryLock))

		// then
		require.NoError(t, err)

		// the declared range does not match any descriptor verbatim
		dep, found := source.Lookup("debug", "*")
		require.True(t, found)
		assert.Equal(t, "4.3.4", dep.Version)
	})

	t.Run("should list locked dependencies sorted by name", func(t *testing.T) {
		t.Parallel()

		// given
		repository := yarn.NewLockRepository()

		// when
		source, err := repository.Load(writeLock(t, berryLock))

		// then
		require.NoError(t, err)
		locked := source.Locked()
		require.Len(t, locked, 3)
		assert.Equal(t, "@types/node", locked[0].Name)
		assert.Equal(t, "chalk", locked[1].Name)
		assert.Equal(t, "debug", locked[2].Name)
		assert.Equal(t, "4.3.4", locked[2].Version)
	})

	t.Run("should reject a classic v1 lockfile", func(t *testing.T) {
		t.Parallel()

		// given
		repository := yarn.NewLockRepository()
		path := writeLock(t, `# yarn lockfile v1

chalk@^4.1.0:
  version "4.1.2"
`)

		// when
		source, err := repository.Load(path)

		// then
		require.Error(t, err)
		assert.Nil(t, source)
		assert.Contains(t, err.Error(), "not supported")
	})

	t.Run("should reject a lockfile without metadata", func(t *testing.T) {
		t.Parallel()

		// given
		repository := yarn.NewLockRepository()

		// when
		source, err := repository.Load(writeLock(t, "chalk: {}\n"))

		// then
		require.Error(t, err)
		assert.Nil(t, source)
	})
}
