package dump

import (
	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/ihm"
)

// Aggregator collects the representation fragments of each component,
// merging a fragment into the one added just before it when
// [ihm.Fragment.Combine] allows. Only the previous fragment is considered,
// so fragments must be added in ascending residue order to merge.
type Aggregator struct {
	order     []string
	fragments map[string][]*ihm.Fragment
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{fragments: make(map[string][]*ihm.Fragment)}
}

// Add records f. The aggregator keeps its own copy, so merging never
// modifies the caller's fragment.
func (a *Aggregator) Add(f *ihm.Fragment) {
	list, ok := a.fragments[f.Component]
	if !ok {
		a.order = append(a.order, f.Component)
	}
	if n := len(list); n > 0 && list[n-1].Combine(f) {
		return
	}
	c := *f
	a.fragments[f.Component] = append(list, &c)
}

// Components returns the components in first-insertion order.
func (a *Aggregator) Components() []string { return a.order }

// Fragments returns the merged fragments of a component.
func (a *Aggregator) Fragments(component string) []*ihm.Fragment {
	return a.fragments[component]
}

// ModelRepresentation writes _ihm_model_representation from the fragments
// collected by its aggregator.
type ModelRepresentation struct {
	base
	sys System
	agg *Aggregator
}

func NewModelRepresentation(sys System) *ModelRepresentation {
	return &ModelRepresentation{sys: sys, agg: NewAggregator()}
}

// Aggregator returns the fragment aggregator.
func (d *ModelRepresentation) Aggregator() *Aggregator { return d.agg }

// AddFragment records a representation fragment.
func (d *ModelRepresentation) AddFragment(f *ihm.Fragment) { d.agg.Add(f) }

func (d *ModelRepresentation) Categories() []string { return []string{"_ihm_model_representation"} }
func (d *ModelRepresentation) References() []string {
	return []string{"_entity", "_struct_asym", "_ihm_starting_model_details"}
}

// Finalize checks that every represented component has an entity.
func (d *ModelRepresentation) Finalize() error {
	for _, comp := range d.agg.Components() {
		if _, ok := d.sys.Entity(comp); !ok {
			return missingSequence(comp)
		}
	}
	return nil
}

func (d *ModelRepresentation) Dump(w *cif.Writer) error {
	w.WriteLoop("_ihm_model_representation", []string{
		"ordinal_id", "representation_id", "segment_id", "entity_id",
		"entity_description", "entity_asym_id", "seq_id_begin", "seq_id_end",
		"model_object_primitive", "starting_model_id", "model_mode",
		"model_granularity", "model_object_count",
	}, func(l *cif.Loop) {
		for _, comp := range d.agg.Components() {
			e, _ := d.sys.Entity(comp)
			for _, f := range d.agg.Fragments(comp) {
				startingModel, count := any(cif.Omitted), any(cif.Omitted)
				if f.Kind == ihm.FragmentPDB && f.Model != nil {
					startingModel = f.Model.Name
				}
				if f.Kind == ihm.FragmentBeads {
					count = f.Count
				}
				n := l.Rows() + 1
				l.Write(cif.Row{
					"ordinal_id":             n,
					"representation_id":      1,
					"segment_id":             n,
					"entity_id":              e.ID,
					"entity_description":     e.Description,
					"entity_asym_id":         chainOf(d.sys, comp),
					"seq_id_begin":           f.Start,
					"seq_id_end":             f.End,
					"model_object_primitive": f.Primitive(),
					"starting_model_id":      startingModel,
					"model_mode":             f.Mode(),
					"model_granularity":      f.Granularity(),
					"model_object_count":     count,
				})
			}
		}
	})
	return w.Err()
}
