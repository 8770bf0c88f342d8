//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
)

// DependencyEntryBuilder helps create test dependency entries with a fluent interface.
type DependencyEntryBuilder struct {
	*testkit.BaseBuilder
	name    string
	rng     string
	section string
}

// NewDependencyEntryBuilder creates a new entry builder with sensible defaults.
func NewDependencyEntryBuilder() *DependencyEntryBuilder {
	return &DependencyEntryBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "chalk",
		rng:         "^4.1.0",
		section:     entities.SectionDependencies,
	}
}

// WithName sets the dependency name.
func (b *DependencyEntryBuilder) WithName(name string) *DependencyEntryBuilder {
	b.name = name
	return b
}

// WithRange sets the declared range.
func (b *DependencyEntryBuilder) WithRange(rng string) *DependencyEntryBuilder {
	b.rng = rng
	return b
}

// WithSection sets the manifest section.
func (b *DependencyEntryBuilder) WithSection(section string) *DependencyEntryBuilder {
	b.section = section
	return b
}

// Build creates the entry (satisfies testkit.Builder interface).
func (b *DependencyEntryBuilder) Build() interface{} {
	return b.BuildEntry()
}

// BuildEntry creates the entry with a concrete return type.
func (b *DependencyEntryBuilder) BuildEntry() entities.DependencyEntry {
	return entities.DependencyEntry{
		Name:    b.name,
		Range:   b.rng,
		Section: b.section,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyEntryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "chalk"
	b.rng = "^4.1.0"
	b.section = entities.SectionDependencies
	return b
}

// Clone creates a deep copy of the DependencyEntryBuilder.
func (b *DependencyEntryBuilder) Clone() testkit.Builder {
	return &DependencyEntryBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		rng:         b.rng,
		section:     b.section,
	}
}
