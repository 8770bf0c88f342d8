package repositories

import (
	"fmt"

	domainRepos "github.com/smarlhens/riri-node-tools/internal/domain/repositories"
)

// LockRegistry manages all registered lockfile implementations.
type LockRegistry struct {
	repositories []domainRepos.LockRepository
	byFileName   map[string]domainRepos.LockRepository
}

// NewLockRegistry creates an empty lock registry.
func NewLockRegistry() *LockRegistry {
	return &LockRegistry{
		byFileName: make(map[string]domainRepos.LockRepository),
	}
}

// Register adds a lock repository. Registration order is preserved and
// breaks modification-time ties during discovery.
func (r *LockRegistry) Register(repository domainRepos.LockRepository) {
	r.repositories = append(r.repositories, repository)
	r.byFileName[repository.FileName()] = repository
}

// ByFileName returns the repository handling the given lockfile name.
func (r *LockRegistry) ByFileName(name string) (domainRepos.LockRepository, error) {
	repository, ok := r.byFileName[name]
	if !ok {
		return nil, fmt.Errorf("unknown lockfile name: %q", name)
	}
	return repository, nil
}

// All returns the registered repositories in registration order.
func (r *LockRegistry) All() []domainRepos.LockRepository {
	return r.repositories
}

// FileNames returns the registered lockfile names in registration order.
func (r *LockRegistry) FileNames() []string {
	names := make([]string, 0, len(r.repositories))
	for _, repository := range r.repositories {
		names = append(names, repository.FileName())
	}
	return names
}
