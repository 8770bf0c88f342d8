package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
	"github.com/smarlhens/riri-node-tools/internal/domain/repositories"
	infraRepos "github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories"
	"github.com/smarlhens/riri-node-tools/internal/manifest"
)

// CheckEngines is the interface for the check-engines command.
type CheckEngines interface {
	Execute(ctx context.Context, opts CheckEnginesOptions) ([]EnginesReport, error)
}

// CheckEnginesOptions holds runtime options for a single check run.
type CheckEnginesOptions struct {
	Dir        string            // project directory, "." by default
	Deps       bool              // also check locked dependencies' engine expectations
	Workspaces bool              // include workspace member manifests
	Overrides  map[string]string // engine versions supplied by flag or config
}

// EnginesReport is the ordered check outcome for one manifest (or, in
// dependency mode, for the lockfile).
type EnginesReport struct {
	ManifestPath string
	Results      []entities.EngineCheckResult
}

// Failures returns the results that are not satisfied. Results are never
// deduplicated: the same engine constrained twice is checked twice.
func (r EnginesReport) Failures() []entities.EngineCheckResult {
	var failed []entities.EngineCheckResult
	for _, result := range r.Results {
		if !result.Satisfied {
			failed = append(failed, result)
		}
	}
	return failed
}

// CheckEnginesCommand orchestrates the engine compatibility flow:
// collect declared constraints -> query actual versions -> compare.
type CheckEnginesCommand struct {
	finder    *infraRepos.Finder
	registry  *infraRepos.LockRegistry
	manifests repositories.ManifestRepository
	actuals   repositories.ActualVersionSource
}

// NewCheckEnginesCommand creates a new CheckEnginesCommand.
func NewCheckEnginesCommand(
	finder *infraRepos.Finder,
	registry *infraRepos.LockRegistry,
	manifests repositories.ManifestRepository,
	actuals repositories.ActualVersionSource,
) *CheckEnginesCommand {
	return &CheckEnginesCommand{
		finder:    finder,
		registry:  registry,
		manifests: manifests,
		actuals:   actuals,
	}
}

// Execute checks every manifest's engines section and, with Deps set, the
// engine expectations of every locked dependency. Reports keep manifest
// discovery order; the lockfile report comes last.
func (it *CheckEnginesCommand) Execute(
	ctx context.Context,
	opts CheckEnginesOptions,
) ([]EnginesReport, error) {
	actuals := it.actuals
	if len(opts.Overrides) > 0 {
		actuals = repositories.ChainActualVersions{
			repositories.StaticActualVersions(opts.Overrides),
			it.actuals,
		}
	}

	dirs, err := it.targetDirs(opts.Dir, opts.Workspaces)
	if err != nil {
		return nil, err
	}

	reports := make([]EnginesReport, len(dirs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workerLimit())

	for i, dir := range dirs {
		group.Go(func() error {
			report, checkErr := it.checkManifest(groupCtx, dir, actuals)
			if checkErr != nil {
				return checkErr
			}
			reports[i] = report
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}

	if opts.Deps {
		report, depsErr := it.checkLocked(ctx, opts.Dir, actuals)
		if depsErr != nil {
			return nil, depsErr
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (it *CheckEnginesCommand) checkManifest(
	ctx context.Context,
	dir string,
	actuals repositories.ActualVersionSource,
) (EnginesReport, error) {
	manifestPath, err := it.finder.FindManifest(dir)
	if err != nil {
		return EnginesReport{}, err
	}
	doc, err := it.manifests.Load(manifestPath)
	if err != nil {
		return EnginesReport{}, err
	}

	results, err := CheckDocumentEngines(ctx, doc, manifestPath, actuals)
	if err != nil {
		return EnginesReport{}, err
	}
	return EnginesReport{ManifestPath: manifestPath, Results: results}, nil
}

func (it *CheckEnginesCommand) checkLocked(
	ctx context.Context,
	dir string,
	actuals repositories.ActualVersionSource,
) (EnginesReport, error) {
	lockPath, err := it.finder.FindLock(dir)
	if err != nil {
		return EnginesReport{}, err
	}
	lockRepo, err := it.registry.ByFileName(filepath.Base(lockPath))
	if err != nil {
		return EnginesReport{}, err
	}
	source, err := lockRepo.Load(lockPath)
	if err != nil {
		return EnginesReport{}, err
	}

	results, err := CheckLockedEngines(ctx, source, actuals)
	if err != nil {
		return EnginesReport{}, err
	}
	return EnginesReport{ManifestPath: lockPath, Results: results}, nil
}

func (it *CheckEnginesCommand) targetDirs(dir string, workspaces bool) ([]string, error) {
	if !workspaces {
		return []string{dir}, nil
	}

	manifestPath, err := it.finder.FindManifest(dir)
	if err != nil {
		return nil, err
	}
	doc, err := it.manifests.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	return expandWorkspaces(dir, workspacePatterns(doc))
}

// CheckDocumentEngines checks the engines section of one manifest in
// declaration order. A manifest without an engines section produces no
// results; a malformed declared range fails the manifest.
func CheckDocumentEngines(
	ctx context.Context,
	doc *manifest.Document,
	manifestPath string,
	actuals repositories.ActualVersionSource,
) ([]entities.EngineCheckResult, error) {
	node, ok := doc.Section("engines")
	if !ok {
		return nil, nil
	}

	var results []entities.EngineCheckResult
	for _, name := range node.Keys() {
		child, _ := node.Child(name)
		raw, isString := child.StringValue()
		if !isString {
			return nil, &entities.ParseError{
				Kind:  entities.ParseKindDocument,
				Input: "engines." + name,
				Pos:   -1,
				Err:   errors.New("engine constraint must be a string"),
			}
		}

		constraint := entities.EngineConstraint{Name: name, Range: raw}
		actual, known := actuals.Version(ctx, name)

		result, err := CheckEngine(constraint, actual, known)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", manifestPath, err)
		}
		result.Manifest = manifestPath
		results = append(results, result)
	}
	return results, nil
}

// CheckLockedEngines checks the engine expectations recorded for every
// locked dependency, in dependency-name order. Third-party packages
// declare constraints of wildly varying quality, so a range that does not
// parse is reported against the dependency instead of failing the run.
func CheckLockedEngines(
	ctx context.Context,
	source repositories.VersionSource,
	actuals repositories.ActualVersionSource,
) ([]entities.EngineCheckResult, error) {
	var results []entities.EngineCheckResult
	for _, dep := range source.Locked() {
		if len(dep.Engines) == 0 {
			continue
		}

		names := make([]string, 0, len(dep.Engines))
		for name := range dep.Engines {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			constraint := entities.EngineConstraint{Name: name, Range: dep.Engines[name]}
			actual, known := actuals.Version(ctx, name)

			result, err := CheckEngine(constraint, actual, known)
			if err != nil {
				result = entities.EngineCheckResult{
					Constraint: constraint,
					Actual:     actual,
					Reason:     fmt.Sprintf("invalid constraint: %v", err),
				}
			}
			result.Dependency = dep.Name
			results = append(results, result)
		}
	}
	return results, nil
}
