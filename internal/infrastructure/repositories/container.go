package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/smarlhens/riri-node-tools/internal/domain/repositories"
	"github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories/npm"
	"github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories/pnpm"
	"github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories/yarn"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register lock registry with all lockfile implementations
	if err := container.Provide(func() *LockRegistry {
		reg := NewLockRegistry()
		reg.Register(npm.NewLockRepository())
		reg.Register(yarn.NewLockRepository())
		reg.Register(pnpm.NewLockRepository())
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(NewFinder); err != nil {
		return err
	}

	if err := container.Provide(
		NewManifestFileRepository,
		dig.As(new(domainRepos.ManifestRepository)),
	); err != nil {
		return err
	}

	if err := container.Provide(
		NewRuntimeVersionRepository,
		dig.As(new(domainRepos.ActualVersionSource)),
	); err != nil {
		return err
	}

	return nil
}
