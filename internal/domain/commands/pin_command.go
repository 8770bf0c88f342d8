package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
	"github.com/smarlhens/riri-node-tools/internal/domain/repositories"
	infraRepos "github.com/smarlhens/riri-node-tools/internal/infrastructure/repositories"
	"github.com/smarlhens/riri-node-tools/internal/manifest"
)

// Pin is the interface for the pin command.
type Pin interface {
	Execute(ctx context.Context, opts PinOptions) ([]PinReport, error)
}

// PinOptions holds runtime options for a single pin run.
type PinOptions struct {
	Dir        string   // project directory, "." by default
	Update     bool     // rewrite the manifest; otherwise report only
	Strict     bool     // abort on the first entry that fails to resolve
	Sections   []string // dependency sections to visit, all when empty
	Workspaces bool     // include workspace member manifests
}

// PinReport is the outcome for one manifest.
type PinReport struct {
	ManifestPath   string
	PackageManager string
	Results        []entities.PinResult
	Updated        bool // manifest rewritten on disk
}

// Pinned returns the entries whose declared range was rewritten.
func (r PinReport) Pinned() []entities.PinResult {
	var pinned []entities.PinResult
	for _, result := range r.Results {
		if result.Changed() {
			pinned = append(pinned, result)
		}
	}
	return pinned
}

// Failures returns the entries that could not be resolved.
func (r PinReport) Failures() []entities.PinResult {
	var failed []entities.PinResult
	for _, result := range r.Results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}

// PinCommand orchestrates the pin flow for one project:
// find manifest and lockfile -> resolve every entry -> rewrite in place.
type PinCommand struct {
	finder    *infraRepos.Finder
	registry  *infraRepos.LockRegistry
	manifests repositories.ManifestRepository
}

// NewPinCommand creates a new PinCommand.
func NewPinCommand(
	finder *infraRepos.Finder,
	registry *infraRepos.LockRegistry,
	manifests repositories.ManifestRepository,
) *PinCommand {
	return &PinCommand{finder: finder, registry: registry, manifests: manifests}
}

// Execute pins the project manifest and, in workspace mode, every member
// manifest. Reports keep manifest discovery order regardless of which
// worker finished first. Per-entry resolution failures live inside the
// reports; the returned error is reserved for infrastructure failures
// (and, under Strict, the first failing entry).
func (it *PinCommand) Execute(ctx context.Context, opts PinOptions) ([]PinReport, error) {
	dirs, err := it.targetDirs(opts.Dir, opts.Workspaces)
	if err != nil {
		return nil, err
	}

	reports := make([]PinReport, len(dirs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workerLimit())

	for i, dir := range dirs {
		group.Go(func() error {
			report, pinErr := it.pinManifest(groupCtx, dir, opts)
			if pinErr != nil {
				return pinErr
			}
			reports[i] = report
			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (it *PinCommand) pinManifest(ctx context.Context, dir string, opts PinOptions) (PinReport, error) {
	manifestPath, err := it.finder.FindManifest(dir)
	if err != nil {
		return PinReport{}, err
	}

	doc, err := it.manifests.Load(manifestPath)
	if err != nil {
		return PinReport{}, err
	}

	lockPath, err := it.finder.FindLock(dir)
	if err != nil {
		return PinReport{}, err
	}
	lockRepo, err := it.registry.ByFileName(filepath.Base(lockPath))
	if err != nil {
		return PinReport{}, err
	}
	source, err := lockRepo.Load(lockPath)
	if err != nil {
		return PinReport{}, err
	}

	results, err := PinDocument(doc, source, opts.Sections)
	if err != nil {
		return PinReport{}, fmt.Errorf("%s: %w", manifestPath, err)
	}

	report := PinReport{
		ManifestPath:   manifestPath,
		PackageManager: source.PackageManager(),
		Results:        results,
	}

	if opts.Strict {
		for _, result := range results {
			if result.Err != nil {
				return report, fmt.Errorf("%s: %w", manifestPath, result.Err)
			}
		}
	}

	if opts.Update && doc.Changed() {
		// An interrupt cancels pending writes, never a write in flight.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}
		if saveErr := it.manifests.Save(manifestPath, doc); saveErr != nil {
			return report, saveErr
		}
		report.Updated = true
	}

	return report, nil
}

// targetDirs returns the project directory and, in workspace mode, every
// member directory listed by the root manifest's workspace globs.
func (it *PinCommand) targetDirs(dir string, workspaces bool) ([]string, error) {
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

// PinDocument resolves every dependency entry of the document against the
// exact-version source and splices resolved versions into the document.
// Entries that fail to resolve are reported individually and never stop
// their siblings; a malformed declared range fails the whole manifest.
func PinDocument(
	doc *manifest.Document,
	source repositories.VersionSource,
	sections []string,
) ([]entities.PinResult, error) {
	if len(sections) == 0 {
		sections = entities.KnownSections()
	}

	var results []entities.PinResult
	for _, section := range sections {
		node, ok := doc.Section(section)
		if !ok {
			continue
		}

		for _, name := range node.Keys() {
			child, _ := node.Child(name)
			raw, isString := child.StringValue()
			if !isString {
				return nil, &entities.ParseError{
					Kind:  entities.ParseKindDocument,
					Input: section + "." + name,
					Pos:   -1,
					Err:   errors.New("dependency value must be a string"),
				}
			}

			entry := entities.DependencyEntry{Name: name, Range: raw, Section: section}

			if !entities.IsRegistrySpecifier(raw) {
				logger.Debugf("Skipping %s (%s): non-registry specifier %q.", name, section, raw)
				results = append(results, entities.PinResult{Entry: entry})
				continue
			}

			declared, err := entities.ParseRange(raw)
			if err != nil {
				return nil, err
			}

			version, err := ResolvePin(source, entry, declared)
			if err != nil {
				results = append(results, entities.PinResult{Entry: entry, Err: err})
				continue
			}

			pinned := version.String()
			if pinned == raw {
				results = append(results, entities.PinResult{Entry: entry})
				continue
			}

			if err = doc.SetString([]string{section, name}, pinned); err != nil {
				return nil, err
			}
			results = append(results, entities.PinResult{
				Entry: entry,
				Pin:   &entities.ResolvedPin{Name: name, OldRange: raw, NewVersion: pinned},
			})
		}
	}

	return results, nil
}
