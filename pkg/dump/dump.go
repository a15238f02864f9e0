// Package dump turns the records of an integrative model into mmCIF
// categories.
//
// # Dumpers
//
// Each [Dumper] owns the records of one category group. Dumping is two
// phased: the orchestrator calls Finalize on every dumper, in a fixed
// order, and only then calls Dump on every dumper in the same order.
// Finalize resolves values that depend on records registered by later
// calls, such as starting model names; Dump only reads resolved state.
//
// Dumpers see orchestrator state through the read-only [System] view
// passed at construction.
package dump

import (
	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/ihm"
	"github.com/matzehuels/ihmcif/pkg/metadata"
)

// Dumper writes one group of categories.
type Dumper interface {
	// Finalize resolves cross-record values once population is complete.
	Finalize() error

	// Dump writes the dumper's categories.
	Dump(w *cif.Writer) error

	// Categories lists the categories written, in order.
	Categories() []string

	// References lists the categories whose identifiers appear in the rows
	// this dumper writes.
	References() []string
}

// System is the read-only view of orchestrator state available to dumpers.
type System interface {
	EntryID() string

	// Entity returns the entity of a component.
	Entity(component string) (*ihm.Entity, bool)
	Entities() []*ihm.Entity

	// Sequence returns the sequence registered for a component.
	Sequence(component string) (string, bool)

	// Chain returns the chain identifier of a modeled component.
	Chain(component string) (string, bool)

	// ChainEntity returns the entity of the component modeled as chain.
	ChainEntity(chain string) (*ihm.Entity, bool)

	ModeledComponents() []string
	ModeledAssembly() *ihm.Assembly
	Metadata() []metadata.Item

	// Locate returns the repository location of a local input file.
	Locate(path string) ihm.RepoLocation
}

// base provides the default no-op Finalize.
type base struct{}

func (base) Finalize() error { return nil }

// orUnknown renders an empty string as unknown.
func orUnknown(s string) any {
	if s == "" {
		return cif.Unknown
	}
	return s
}

// orOmitted renders an empty string as omitted.
func orOmitted(s string) any {
	if s == "" {
		return cif.Omitted
	}
	return s
}

// chainOf returns the chain of a component, or omitted for components that
// are not modeled.
func chainOf(sys System, component string) any {
	if c, ok := sys.Chain(component); ok {
		return c
	}
	return cif.Omitted
}
