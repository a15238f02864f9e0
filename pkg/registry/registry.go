// Package registry deduplicates records and assigns their identifiers.
//
// [Entities] maps components to entities by exact sequence. [Datasets]
// collapses structurally equal datasets to the first registered instance
// and snapshots the registered datasets into groups. Identifiers are
// assigned on first registration and never change.
package registry

import "github.com/matzehuels/ihmcif/pkg/ihm"

// Entities maps component names to entities, sharing one entity between
// components with byte-equal sequences.
type Entities struct {
	bySequence  map[string]*ihm.Entity
	byComponent map[string]*ihm.Entity
	entities    []*ihm.Entity
}

// NewEntities returns an empty entity registry.
func NewEntities() *Entities {
	return &Entities{
		bySequence:  make(map[string]*ihm.Entity),
		byComponent: make(map[string]*ihm.Entity),
	}
}

// Add associates component with the entity for sequence, creating the
// entity with the next ID and component as its description if the sequence
// is new.
func (r *Entities) Add(component, sequence string) *ihm.Entity {
	e, ok := r.bySequence[sequence]
	if !ok {
		e = &ihm.Entity{ID: len(r.entities) + 1, Sequence: sequence, Description: component}
		r.entities = append(r.entities, e)
		r.bySequence[sequence] = e
	}
	r.byComponent[component] = e
	return e
}

// Get returns the entity of a component.
func (r *Entities) Get(component string) (*ihm.Entity, bool) {
	e, ok := r.byComponent[component]
	return e, ok
}

// All returns all entities in ID order.
func (r *Entities) All() []*ihm.Entity {
	return r.entities
}

// Datasets deduplicates datasets by structural key.
type Datasets struct {
	byKey    map[ihm.DatasetKey]*ihm.Dataset
	datasets []*ihm.Dataset
	groups   map[int]*ihm.DatasetGroup
	ordered  []*ihm.DatasetGroup
}

// NewDatasets returns an empty dataset registry.
func NewDatasets() *Datasets {
	return &Datasets{
		byKey:  make(map[ihm.DatasetKey]*ihm.Dataset),
		groups: make(map[int]*ihm.DatasetGroup),
	}
}

// Add registers d and returns the canonical dataset. If a dataset with an
// equal key was registered before, d is discarded and the earlier dataset is
// returned; callers must use the returned dataset for all references.
// Datasets with AllowDuplicates set are always registered.
func (r *Datasets) Add(d *ihm.Dataset) *ihm.Dataset {
	key := d.Key()
	if !d.AllowDuplicates {
		if existing, ok := r.byKey[key]; ok {
			return existing
		}
	}
	r.datasets = append(r.datasets, d)
	d.ID = len(r.datasets)
	if !d.AllowDuplicates {
		r.byKey[key] = d
	}
	return d
}

// AllGroup returns a group of all datasets registered so far. Repeated calls
// without new registrations return the same group.
func (r *Datasets) AllGroup() *ihm.DatasetGroup {
	n := len(r.datasets)
	if g, ok := r.groups[n]; ok {
		return g
	}
	g := &ihm.DatasetGroup{
		ID:       len(r.ordered) + 1,
		Datasets: append([]*ihm.Dataset(nil), r.datasets...),
	}
	r.groups[n] = g
	r.ordered = append(r.ordered, g)
	return g
}

// Groups returns all groups in ID order.
func (r *Datasets) Groups() []*ihm.DatasetGroup {
	return r.ordered
}

// All returns all registered datasets in ID order.
func (r *Datasets) All() []*ihm.Dataset {
	return r.datasets
}

// Len returns the number of registered datasets.
func (r *Datasets) Len() int {
	return len(r.datasets)
}
