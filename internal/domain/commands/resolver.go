package commands

import (
	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
	"github.com/smarlhens/riri-node-tools/internal/domain/repositories"
)

// ResolvePin resolves a dependency entry to the exact version the source
// locks it to. The declared range must already be parsed by the caller;
// malformed ranges are a manifest-level failure, not a resolution one.
func ResolvePin(
	source repositories.VersionSource,
	entry entities.DependencyEntry,
	declared entities.Range,
) (entities.Version, error) {
	locked, found := source.Lookup(entry.Name, entry.Range)
	if !found {
		return entities.Version{}, &entities.ResolveError{
			Kind:  entities.ResolveNotFound,
			Name:  entry.Name,
			Range: entry.Range,
		}
	}

	version, err := entities.ParseVersion(locked.Version)
	if err != nil {
		return entities.Version{}, err
	}

	if !declared.Satisfies(version) {
		return entities.Version{}, &entities.ResolveError{
			Kind:  entities.ResolveOutOfRange,
			Name:  entry.Name,
			Range: entry.Range,
			Found: locked.Version,
		}
	}

	return version, nil
}

// CheckEngine checks one engine constraint against an actual version. An
// unknown actual version is never compatible; an unparsable constraint or
// actual version surfaces as an error so the caller can fail the manifest.
func CheckEngine(
	constraint entities.EngineConstraint,
	actual string,
	actualKnown bool,
) (entities.EngineCheckResult, error) {
	result := entities.EngineCheckResult{Constraint: constraint, Actual: actual}

	declared, err := entities.ParseRange(constraint.Range)
	if err != nil {
		return entities.EngineCheckResult{}, err
	}

	if !actualKnown {
		result.Reason = entities.ReasonUnknownActualVersion
		return result, nil
	}

	version, err := entities.ParseVersion(actual)
	if err != nil {
		// A tool reporting something that is not a version is as good as
		// no answer at all.
		result.Reason = entities.ReasonUnknownActualVersion
		return result, nil
	}

	if declared.Satisfies(version) {
		result.Satisfied = true
		return result, nil
	}

	result.Reason = "version " + actual + " does not satisfy " + constraint.Range
	return result, nil
}
