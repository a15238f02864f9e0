package dump

import (
	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/errors"
	"github.com/matzehuels/ihmcif/pkg/ihm"
)

func missingSequence(component string) error {
	return errors.New(errors.ErrCodeInvalidReference, "component %q has no sequence", component)
}

// Assembly writes _ihm_struct_assembly.
type Assembly struct {
	base
	sys        System
	assemblies []*ihm.Assembly
}

func NewAssembly(sys System) *Assembly { return &Assembly{sys: sys} }

// Add registers an assembly and assigns its ID.
func (d *Assembly) Add(a *ihm.Assembly) {
	d.assemblies = append(d.assemblies, a)
	a.ID = len(d.assemblies)
}

// All returns the registered assemblies in ID order.
func (d *Assembly) All() []*ihm.Assembly { return d.assemblies }

func (d *Assembly) Categories() []string { return []string{"_ihm_struct_assembly"} }
func (d *Assembly) References() []string { return []string{"_entity", "_struct_asym"} }

// Finalize checks that every component of every assembly has a sequence.
func (d *Assembly) Finalize() error {
	for _, a := range d.assemblies {
		for _, c := range a.Components {
			if _, ok := d.sys.Sequence(c); !ok {
				return errors.Wrap(errors.ErrCodeInvalidReference, missingSequence(c), "assembly %d", a.ID)
			}
		}
	}
	return nil
}

func (d *Assembly) Dump(w *cif.Writer) error {
	w.WriteLoop("_ihm_struct_assembly", []string{
		"ordinal_id", "assembly_id", "entity_description", "entity_id",
		"asym_id", "seq_id_begin", "seq_id_end",
	}, func(l *cif.Loop) {
		for _, a := range d.assemblies {
			for _, c := range a.Components {
				e, _ := d.sys.Entity(c)
				seq, _ := d.sys.Sequence(c)
				l.Write(cif.Row{
					"ordinal_id":         l.Rows() + 1,
					"assembly_id":        a.ID,
					"entity_description": e.Description,
					"entity_id":          e.ID,
					"asym_id":            chainOf(d.sys, c),
					"seq_id_begin":       1,
					"seq_id_end":         len(seq),
				})
			}
		}
	})
	return w.Err()
}
