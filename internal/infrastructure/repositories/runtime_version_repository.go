package repositories

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
)

const versionCommandTimeout = 15 * time.Second

// RuntimeVersionRepository reports the versions of locally installed
// engines by invoking their "--version" commands. Results are cached for
// the lifetime of the repository.
type RuntimeVersionRepository struct {
	mu    sync.Mutex
	cache map[string]cachedVersion
}

type cachedVersion struct {
	version string
	ok      bool
}

// NewRuntimeVersionRepository creates a new runtime version repository.
func NewRuntimeVersionRepository() *RuntimeVersionRepository {
	return &RuntimeVersionRepository{cache: make(map[string]cachedVersion)}
}

// Version returns the installed version of the given engine, without the
// leading "v". The second return is false when the engine is not on PATH
// or does not report a version.
func (r *RuntimeVersionRepository) Version(ctx context.Context, engine string) (string, bool) {
	r.mu.Lock()
	if cached, ok := r.cache[engine]; ok {
		r.mu.Unlock()
		return cached.version, cached.ok
	}
	r.mu.Unlock()

	version, ok := r.lookup(ctx, engine)

	r.mu.Lock()
	r.cache[engine] = cachedVersion{version: version, ok: ok}
	r.mu.Unlock()

	return version, ok
}

func (r *RuntimeVersionRepository) lookup(ctx context.Context, engine string) (string, bool) {
	command, known := versionCommand(engine)
	if !known {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, versionCommandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, command[0], command[1:]...).Output()
	if err != nil {
		logger.Debugf("Failed to read %s version: %v", engine, err)
		return "", false
	}

	version := strings.TrimSpace(string(out))
	version = strings.TrimPrefix(version, "v")
	if version == "" {
		return "", false
	}
	return version, true
}

func versionCommand(engine string) ([]string, bool) {
	switch engine {
	case entities.EngineNode:
		return []string{"node", "--version"}, true
	case entities.EngineNpm:
		return []string{"npm", "--version"}, true
	case entities.EngineYarn:
		return []string{"yarn", "--version"}, true
	case entities.EnginePnpm:
		return []string{"pnpm", "--version"}, true
	default:
		return nil, false
	}
}
