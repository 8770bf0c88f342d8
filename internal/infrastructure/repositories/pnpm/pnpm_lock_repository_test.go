package pnpm_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories/pnpm"
)

func writeLock(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), pnpm.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLockRepository_Load(t *testing.T) {
	t.Parallel()

	t.Run("should resolve versions from a v5 lockfile", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeLock(t, `lockfileVersion: 5.4

specifiers:
  chalk: ^4.1.2
  ts-node: ^10.9.1

dependencies:
  chalk: 4.1.2

devDependencies:
  ts-node: 10.9.1_typescript@4.8.4
`)
		repository := pnpm.NewLockRepository()

		// when
		source, err := repository.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "pnpm", source.PackageManager())
		chalk, found := source.Lookup("chalk", "^4.1.2")
		require.True(t, found)
		assert.Equal(t, "4.1.2", chalk.Version)
		tsNode, found := source.Lookup("ts-node", "^10.9.1")
		require.True(t, found)
		assert.Equal(t, "10.9.1", tsNode.Version)
	})

	t.Run("should resolve versions from a v6 lockfile with importers", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeLock(t, `lockfileVersion: '6.0'

importers:

  .:
    dependencies:
      chalk:
        specifier: ^5.2.0
        version: 5.2.0
    devDependencies:
      ts-node:
        specifier: ^10.9.1
        version: 10.9.1(typescript@5.0.4)
`)
		repository := pnpm.NewLockRepository()

		// when
		source, err := repository.Load(path)

		// then
		require.NoError(t, err)
		chalk, found := source.Lookup("chalk", "^5.2.0")
		require.True(t, found)
		assert.Equal(t, "5.2.0", chalk.Version)
		tsNode, found := source.Lookup("ts-node", "^10.9.1")
		require.True(t, found)
		assert.Equal(t, "10.9.1", tsNode.Version)
	})

	t.Run("should report missing dependencies", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeLock(t, `lockfileVersion: '6.0'

importers:

  .:
    dependencies:
      chalk:
        specifier: ^5.2.0
        version: 5.2.0
`)
		repository := pnpm.NewLockRepository()

		// when
		source, err := repository.Load(path)

		// then
		require.NoError(t, err)
		_, found := source.Lookup("left-pad", "^1.3.0")
		assert.False(t, found)
	})

	t.Run("should fail on an unsupported lockfile version", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeLock(t, "lockfileVersion: '3'\n")
		repository := pnpm.NewLockRepository()

		// when
		source, err := repository.Load(path)

		// then
		require.Error(t, err)
		assert.Nil(t, source)
		assert.Contains(t, err.Error(), "unsupported lockfile version")
	})

	t.Run("should fail when the lockfile does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		repository := pnpm.NewLockRepository()

		// when
		source, err := repository.Load(filepath.Join(t.TempDir(), pnpm.FileName))

		// then
		require.Error(t, err)
		assert.Nil(t, source)
	})
}
