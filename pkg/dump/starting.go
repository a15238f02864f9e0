package dump

import (
	"fmt"
	"strings"

	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/errors"
	"github.com/matzehuels/ihmcif/pkg/ihm"
	"github.com/matzehuels/ihmcif/pkg/provenance"
	"github.com/matzehuels/ihmcif/pkg/registry"
)

const startingModelComment = "Input models are classified as experimental " +
	"structures or comparative models from their file headers. Templates " +
	"of comparative models are only listed when the modeling program " +
	"recorded them, so some may need to be added by hand below."

// ReadFunc reads a whole input file.
type ReadFunc func(path string) ([]byte, error)

// StartingModels writes _ihm_starting_model_details and
// _ihm_starting_model_coord. Consecutive PDB fragments of a component that
// come from the same file share one starting model.
type StartingModels struct {
	sys      System
	datasets *registry.Datasets
	software *Software
	read     ReadFunc

	order  []string
	models map[string][]*ihm.StartingModel
}

func NewStartingModels(sys System, datasets *registry.Datasets, software *Software, read ReadFunc) *StartingModels {
	return &StartingModels{
		sys:      sys,
		datasets: datasets,
		software: software,
		read:     read,
		models:   make(map[string][]*ihm.StartingModel),
	}
}

// AddFragment attaches a PDB fragment to the current starting model of its
// component, or starts a new one when the fragment comes from a different
// file. A new starting model requires reading and classifying the file; if
// the read fails a *errors.RecordError is returned and nothing is
// registered.
func (d *StartingModels) AddFragment(f *ihm.Fragment) (*ihm.StartingModel, error) {
	list := d.models[f.Component]
	if n := len(list); n > 0 && list[n-1].File == f.File {
		m := list[n-1]
		m.Fragments = append(m.Fragments, f)
		f.Model = m
		return m, nil
	}

	data, err := d.read(f.File)
	if err != nil {
		return nil, &errors.RecordError{
			Record: fmt.Sprintf("starting model for %s", f.Component),
			File:   f.File,
			Err:    err,
		}
	}

	m := &ihm.StartingModel{
		Component: f.Component,
		File:      f.File,
		Chain:     f.Chain,
		Fragments: []*ihm.Fragment{f},
	}
	d.classify(m, provenance.Classify(data))
	f.Model = m

	if len(list) == 0 {
		d.order = append(d.order, f.Component)
	}
	d.models[f.Component] = append(list, m)
	return m, nil
}

func (d *StartingModels) classify(m *ihm.StartingModel, r provenance.Result) {
	if r.Kind == provenance.KindExperimental {
		helices := make([]ihm.Helix, 0, len(r.Helices))
		for _, h := range r.Helices {
			helices = append(helices, ihm.Helix{
				StartResidue: h.StartResidue,
				StartChain:   h.StartChain,
				StartNumber:  h.StartNumber,
				EndResidue:   h.EndResidue,
				EndChain:     h.EndChain,
				EndNumber:    h.EndNumber,
			})
		}
		m.Sources = []ihm.Source{ihm.PDBSource{DBCode: r.DBCode, Chain: m.Chain, Helices: helices}}
		m.Dataset = d.datasets.Add(ihm.NewPDBDataset(r.DBCode, r.Version, r.Details))
		return
	}

	if r.Modeller != nil {
		d.software.SetModeller(r.Modeller.Version, r.Modeller.Date)
	}
	m.Dataset = d.datasets.Add(ihm.NewComparativeModelDataset(d.sys.Locate(m.File)))
	for _, t := range r.Templates {
		m.Sources = append(m.Sources, ihm.TemplateSource{
			DBCode:   t.DBCode,
			Chain:    t.Chain,
			Begin:    t.Begin,
			End:      t.End,
			Identity: t.Identity,
		})
	}
	if len(m.Sources) == 0 {
		m.Sources = []ihm.Source{ihm.UnknownSource{}}
	}
}

// All returns the starting models grouped by component, in insertion order.
func (d *StartingModels) All() []*ihm.StartingModel {
	var all []*ihm.StartingModel
	for _, comp := range d.order {
		all = append(all, d.models[comp]...)
	}
	return all
}

func (d *StartingModels) Categories() []string {
	return []string{"_ihm_starting_model_details", "_ihm_starting_model_coord"}
}
func (d *StartingModels) References() []string {
	return []string{"_entity", "_struct_asym", "_ihm_dataset_list"}
}

// Finalize names each starting model after its component and position, and
// computes the residue span of its fragments.
func (d *StartingModels) Finalize() error {
	for _, comp := range d.order {
		if _, ok := d.sys.Entity(comp); !ok {
			return missingSequence(comp)
		}
		for i, m := range d.models[comp] {
			m.Name = fmt.Sprintf("%s-m%d", comp, i+1)
			m.SeqBegin, m.SeqEnd = m.Span()
		}
	}
	return nil
}

func (d *StartingModels) Dump(w *cif.Writer) error {
	models := d.All()
	if len(models) > 0 {
		w.WriteComment(startingModelComment)
	}
	d.dumpDetails(w, models)
	d.dumpCoords(w, models)
	return w.Err()
}

func (d *StartingModels) dumpDetails(w *cif.Writer, models []*ihm.StartingModel) {
	w.WriteLoop("_ihm_starting_model_details", []string{
		"ordinal_id", "entity_id", "entity_description", "asym_id",
		"seq_id_begin", "seq_id_end", "starting_model_source",
		"starting_model_db_name", "starting_model_db_code",
		"starting_model_db_pdb_auth_asym_id",
		"starting_model_sequence_identity", "starting_model_id",
		"dataset_list_id",
	}, func(l *cif.Loop) {
		for _, m := range models {
			e, _ := d.sys.Entity(m.Component)
			for _, src := range m.Sources {
				begin, end := src.SeqRange(m)
				row := cif.Row{
					"ordinal_id":         l.Rows() + 1,
					"entity_id":          e.ID,
					"entity_description": e.Description,
					"asym_id":            chainOf(d.sys, m.Component),
					"seq_id_begin":       begin,
					"seq_id_end":         end,
					"starting_model_id":  m.Name,
					"dataset_list_id":    datasetID(m.Dataset),
				}
				switch s := src.(type) {
				case ihm.PDBSource:
					row["starting_model_source"] = "experimental model"
					row["starting_model_db_name"] = "PDB"
					row["starting_model_db_code"] = orUnknown(s.DBCode)
					row["starting_model_db_pdb_auth_asym_id"] = orUnknown(s.Chain)
					row["starting_model_sequence_identity"] = 100.0
				case ihm.TemplateSource:
					row["starting_model_source"] = "comparative model"
					row["starting_model_db_name"] = "PDB"
					row["starting_model_db_code"] = orUnknown(s.DBCode)
					row["starting_model_db_pdb_auth_asym_id"] = orUnknown(s.Chain)
					row["starting_model_sequence_identity"] = s.Identity
				case ihm.UnknownSource:
					row["starting_model_source"] = cif.Unknown
					row["starting_model_db_name"] = cif.Unknown
					row["starting_model_db_code"] = cif.Unknown
					row["starting_model_db_pdb_auth_asym_id"] = cif.Unknown
					row["starting_model_sequence_identity"] = cif.Unknown
				}
				l.Write(row)
			}
		}
	})
}

func (d *StartingModels) dumpCoords(w *cif.Writer, models []*ihm.StartingModel) {
	w.WriteLoop("_ihm_starting_model_coord", []string{
		"starting_model_id", "group_PDB", "id", "type_symbol", "atom_id",
		"comp_id", "entity_id", "asym_id", "seq_id", "Cartn_x", "Cartn_y",
		"Cartn_z", "B_iso_or_equiv", "ordinal_id",
	}, func(l *cif.Loop) {
		for _, m := range models {
			e, _ := d.sys.Entity(m.Component)
			for _, f := range m.Fragments {
				for _, a := range f.Atoms {
					if a.ResidueIndex < f.Start || a.ResidueIndex > f.End {
						continue
					}
					group, name := "ATOM", a.Name
					if rest, ok := strings.CutPrefix(name, "HET:"); ok {
						group, name = "HETATM", rest
					}
					l.Write(cif.Row{
						"starting_model_id": m.Name,
						"group_PDB":         group,
						"id":                a.Serial,
						"type_symbol":       orUnknown(a.Element),
						"atom_id":           name,
						"comp_id":           a.ResidueName,
						"entity_id":         e.ID,
						"asym_id":           chainOf(d.sys, m.Component),
						"seq_id":            a.ResidueIndex,
						"Cartn_x":           a.X,
						"Cartn_y":           a.Y,
						"Cartn_z":           a.Z,
						"B_iso_or_equiv":    a.BFactor,
						"ordinal_id":        l.Rows() + 1,
					})
				}
			}
		}
	})
}
