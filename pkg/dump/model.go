package dump

import (
	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/errors"
	"github.com/matzehuels/ihmcif/pkg/ihm"
)

// Model writes _ihm_model_list, _atom_site and _ihm_sphere_obj_site. It also
// owns the model groups, since groups are only referenced through models.
type Model struct {
	base
	sys    System
	groups []*ihm.ModelGroup
	models []*ihm.Model
}

func NewModel(sys System) *Model { return &Model{sys: sys} }

// AddGroup registers a model group and assigns its ID.
func (d *Model) AddGroup(g *ihm.ModelGroup) {
	d.groups = append(d.groups, g)
	g.ID = len(d.groups)
}

// Add registers a model and assigns its ID.
func (d *Model) Add(m *ihm.Model) {
	d.models = append(d.models, m)
	m.ID = len(d.models)
}

// All returns the registered models in ID order.
func (d *Model) All() []*ihm.Model { return d.models }

func (d *Model) Categories() []string {
	return []string{"_ihm_model_list", "_atom_site", "_ihm_sphere_obj_site"}
}
func (d *Model) References() []string {
	return []string{
		"_entity", "_chem_comp", "_struct_asym", "_ihm_struct_assembly",
		"_ihm_modeling_protocol",
	}
}

// Finalize checks that every model has a group and protocol and that every
// site lies on a modeled chain.
func (d *Model) Finalize() error {
	for _, m := range d.models {
		if m.Group == nil || m.Protocol == nil || m.Assembly == nil {
			return errors.New(errors.ErrCodeInvalidReference, "model %d has no group, protocol or assembly", m.ID)
		}
		for _, sites := range [][]ihm.Site{m.Atoms, m.Spheres} {
			for _, s := range sites {
				if _, ok := d.sys.ChainEntity(s.Chain); !ok {
					return errors.New(errors.ErrCodeInvalidReference, "model %d: chain %q is not modeled", m.ID, s.Chain)
				}
			}
		}
	}
	return nil
}

func (d *Model) Dump(w *cif.Writer) error {
	w.WriteLoop("_ihm_model_list", []string{
		"ordinal_id", "model_id", "model_group_id", "model_group_name",
		"assembly_id", "protocol_id",
	}, func(l *cif.Loop) {
		for _, m := range d.models {
			l.Write(cif.Row{
				"ordinal_id":       l.Rows() + 1,
				"model_id":         m.ID,
				"model_group_id":   m.Group.ID,
				"model_group_name": m.Group.Name,
				"assembly_id":      m.Assembly.ID,
				"protocol_id":      m.Protocol.ID,
			})
		}
	})

	w.WriteLoop("_atom_site", []string{
		"id", "label_atom_id", "label_comp_id", "label_seq_id",
		"label_asym_id", "Cartn_x", "Cartn_y", "Cartn_z", "label_entity_id",
		"model_id",
	}, func(l *cif.Loop) {
		for _, m := range d.models {
			for _, a := range m.Atoms {
				e, _ := d.sys.ChainEntity(a.Chain)
				l.Write(cif.Row{
					"id":              l.Rows() + 1,
					"label_atom_id":   a.AtomName,
					"label_comp_id":   a.ResidueName,
					"label_seq_id":    a.ResidueIndex,
					"label_asym_id":   a.Chain,
					"Cartn_x":         a.X - m.Center[0],
					"Cartn_y":         a.Y - m.Center[1],
					"Cartn_z":         a.Z - m.Center[2],
					"label_entity_id": e.ID,
					"model_id":        m.ID,
				})
			}
		}
	})

	w.WriteLoop("_ihm_sphere_obj_site", []string{
		"ordinal_id", "entity_id", "seq_id_begin", "seq_id_end", "asym_id",
		"Cartn_x", "Cartn_y", "Cartn_z", "object_radius", "model_id",
	}, func(l *cif.Loop) {
		for _, m := range d.models {
			for _, s := range m.Spheres {
				e, _ := d.sys.ChainEntity(s.Chain)
				begin, end := s.SeqRange()
				l.Write(cif.Row{
					"ordinal_id":    l.Rows() + 1,
					"entity_id":     e.ID,
					"seq_id_begin":  begin,
					"seq_id_end":    end,
					"asym_id":       s.Chain,
					"Cartn_x":       s.X - m.Center[0],
					"Cartn_y":       s.Y - m.Center[1],
					"Cartn_z":       s.Z - m.Center[2],
					"object_radius": s.Radius,
					"model_id":      m.ID,
				})
			}
		}
	})
	return w.Err()
}
