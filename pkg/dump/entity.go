package dump

import (
	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/ihm"
)

// ChemComp writes _chem_comp: every residue type used by any entity.
type ChemComp struct {
	base
	sys System
}

func NewChemComp(sys System) *ChemComp { return &ChemComp{sys: sys} }

func (d *ChemComp) Categories() []string { return []string{"_chem_comp"} }
func (d *ChemComp) References() []string { return nil }

func (d *ChemComp) Dump(w *cif.Writer) error {
	seen := make(map[string]bool)
	w.WriteLoop("_chem_comp", []string{"id", "type"}, func(l *cif.Loop) {
		for _, e := range d.sys.Entities() {
			for i := 0; i < len(e.Sequence); i++ {
				name := ihm.ResidueName(e.Sequence[i])
				if seen[name] {
					continue
				}
				seen[name] = true
				typ := "other"
				if ihm.IsStandardResidue(name) {
					typ = "L-peptide linking"
				}
				l.Write(cif.Row{"id": name, "type": typ})
			}
		}
	})
	return w.Err()
}

// Entity writes _entity.
type Entity struct {
	base
	sys System
}

func NewEntity(sys System) *Entity { return &Entity{sys: sys} }

func (d *Entity) Categories() []string { return []string{"_entity"} }
func (d *Entity) References() []string { return nil }

func (d *Entity) Dump(w *cif.Writer) error {
	w.WriteLoop("_entity", []string{
		"id", "type", "src_method", "pdbx_description", "formula_weight",
		"pdbx_number_of_molecules", "details",
	}, func(l *cif.Loop) {
		for _, e := range d.sys.Entities() {
			l.Write(cif.Row{
				"id":                       e.ID,
				"type":                     "polymer",
				"src_method":               "man",
				"pdbx_description":         e.Description,
				"formula_weight":           cif.Unknown,
				"pdbx_number_of_molecules": 1,
				"details":                  cif.Unknown,
			})
		}
	})
	return w.Err()
}

// EntityPoly writes _entity_poly.
type EntityPoly struct {
	base
	sys System
}

func NewEntityPoly(sys System) *EntityPoly { return &EntityPoly{sys: sys} }

func (d *EntityPoly) Categories() []string { return []string{"_entity_poly"} }
func (d *EntityPoly) References() []string { return []string{"_entity"} }

func (d *EntityPoly) Dump(w *cif.Writer) error {
	w.WriteLoop("_entity_poly", []string{
		"entity_id", "type", "nstd_linkage", "nstd_monomer", "pdbx_strand_id",
		"pdbx_seq_one_letter_code", "pdbx_seq_one_letter_code_can",
	}, func(l *cif.Loop) {
		for _, e := range d.sys.Entities() {
			l.Write(cif.Row{
				"entity_id":                    e.ID,
				"type":                         "polypeptide(L)",
				"nstd_linkage":                 "no",
				"nstd_monomer":                 "no",
				"pdbx_strand_id":               chainOf(d.sys, e.Description),
				"pdbx_seq_one_letter_code":     e.Sequence,
				"pdbx_seq_one_letter_code_can": e.Sequence,
			})
		}
	})
	return w.Err()
}

// EntityPolySeq writes _entity_poly_seq, one row per residue.
type EntityPolySeq struct {
	base
	sys System
}

func NewEntityPolySeq(sys System) *EntityPolySeq { return &EntityPolySeq{sys: sys} }

func (d *EntityPolySeq) Categories() []string { return []string{"_entity_poly_seq"} }
func (d *EntityPolySeq) References() []string { return []string{"_entity", "_chem_comp"} }

func (d *EntityPolySeq) Dump(w *cif.Writer) error {
	w.WriteLoop("_entity_poly_seq", []string{"entity_id", "num", "mon_id", "hetero"}, func(l *cif.Loop) {
		for _, e := range d.sys.Entities() {
			for i := 0; i < len(e.Sequence); i++ {
				l.Write(cif.Row{
					"entity_id": e.ID,
					"num":       i + 1,
					"mon_id":    ihm.ResidueName(e.Sequence[i]),
					"hetero":    cif.Omitted,
				})
			}
		}
	})
	return w.Err()
}

// StructAsym writes _struct_asym, one row per modeled component.
type StructAsym struct {
	base
	sys System
}

func NewStructAsym(sys System) *StructAsym { return &StructAsym{sys: sys} }

func (d *StructAsym) Categories() []string { return []string{"_struct_asym"} }
func (d *StructAsym) References() []string { return []string{"_entity"} }

// Finalize checks that every modeled component has an entity.
func (d *StructAsym) Finalize() error {
	for _, c := range d.sys.ModeledComponents() {
		if _, ok := d.sys.Entity(c); !ok {
			return missingSequence(c)
		}
	}
	return nil
}

func (d *StructAsym) Dump(w *cif.Writer) error {
	w.WriteLoop("_struct_asym", []string{"id", "entity_id", "details"}, func(l *cif.Loop) {
		for _, c := range d.sys.ModeledComponents() {
			e, _ := d.sys.Entity(c)
			l.Write(cif.Row{"id": chainOf(d.sys, c), "entity_id": e.ID, "details": c})
		}
	})
	return w.Err()
}
