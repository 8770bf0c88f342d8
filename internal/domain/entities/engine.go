package entities

// Well-known engine identifiers. Engine names are free-form strings; these
// are the ones the runtime version source knows how to query.
const (
	EngineNode = "node"
	EngineNpm  = "npm"
	EngineYarn = "yarn"
	EnginePnpm = "pnpm"
)

// Reasons attached to unsatisfied engine check results.
const (
	// ReasonUnknownActualVersion means the actual version of the engine
	// could not be determined, so compatibility must not be assumed.
	ReasonUnknownActualVersion = "actual version unknown"
)

// EngineConstraint is one declared engine requirement: the engine name and
// its declared range.
type EngineConstraint struct {
	Name  string
	Range string
}

// EngineCheckResult is the outcome of checking one engine constraint from
// one manifest (or one locked dependency, in cross-package mode).
type EngineCheckResult struct {
	Manifest   string // manifest path, or "" for lockfile-derived constraints
	Dependency string // set only for constraints coming from locked dependencies
	Constraint EngineConstraint
	Actual     string // actual version, empty when unknown
	Satisfied  bool
	Reason     string // empty when satisfied
}
