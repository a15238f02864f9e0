package dump

import (
	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/errors"
	"github.com/matzehuels/ihmcif/pkg/ihm"
)

// CrossLink writes _ihm_cross_link_list and _ihm_cross_link_restraint.
type CrossLink struct {
	base
	sys          System
	experimental []*ihm.ExperimentalCrossLink
	restraints   []*ihm.CrossLink
}

func NewCrossLink(sys System) *CrossLink { return &CrossLink{sys: sys} }

// AddExperimental registers an experimental cross-link and assigns its ID.
func (d *CrossLink) AddExperimental(xl *ihm.ExperimentalCrossLink) {
	d.experimental = append(d.experimental, xl)
	xl.ID = len(d.experimental)
}

// Add registers a cross-link restraint and assigns its ID.
func (d *CrossLink) Add(xl *ihm.CrossLink) {
	d.restraints = append(d.restraints, xl)
	xl.ID = len(d.restraints)
}

func (d *CrossLink) Categories() []string {
	return []string{"_ihm_cross_link_list", "_ihm_cross_link_restraint"}
}
func (d *CrossLink) References() []string {
	return []string{"_entity", "_chem_comp", "_struct_asym", "_ihm_dataset_list"}
}

// site resolves one end of an experimental cross-link.
type site struct {
	entity  *ihm.Entity
	residue string
}

func (d *CrossLink) site(component string, index int) (site, error) {
	e, ok := d.sys.Entity(component)
	if !ok {
		return site{}, missingSequence(component)
	}
	res, ok := ihm.ResidueAt(e.Sequence, index)
	if !ok {
		return site{}, errors.New(errors.ErrCodeInvalidReference,
			"cross-link residue %d outside %q (length %d)", index, component, len(e.Sequence))
	}
	return site{entity: e, residue: res}, nil
}

// Finalize checks that every cross-link endpoint resolves to a residue.
func (d *CrossLink) Finalize() error {
	for _, xl := range d.experimental {
		if _, err := d.site(xl.Component1, xl.Residue1); err != nil {
			return err
		}
		if _, err := d.site(xl.Component2, xl.Residue2); err != nil {
			return err
		}
	}
	return nil
}

func (d *CrossLink) Dump(w *cif.Writer) error {
	w.WriteLoop("_ihm_cross_link_list", []string{
		"id", "group_id", "entity_description_1", "entity_id_1", "seq_id_1",
		"comp_id_1", "entity_description_2", "entity_id_2", "seq_id_2",
		"comp_id_2", "type", "dataset_list_id",
	}, func(l *cif.Loop) {
		for _, xl := range d.experimental {
			s1, _ := d.site(xl.Component1, xl.Residue1)
			s2, _ := d.site(xl.Component2, xl.Residue2)
			l.Write(cif.Row{
				"id":                   xl.ID,
				"group_id":             xl.ID,
				"entity_description_1": s1.entity.Description,
				"entity_id_1":          s1.entity.ID,
				"seq_id_1":             xl.Residue1,
				"comp_id_1":            s1.residue,
				"entity_description_2": s2.entity.Description,
				"entity_id_2":          s2.entity.ID,
				"seq_id_2":             xl.Residue2,
				"comp_id_2":            s2.residue,
				"type":                 xl.Label,
				"dataset_list_id":      datasetID(xl.Dataset),
			})
		}
	})

	w.WriteLoop("_ihm_cross_link_restraint", []string{
		"id", "group_id", "entity_id_1", "asym_id_1", "seq_id_1", "comp_id_1",
		"entity_id_2", "asym_id_2", "seq_id_2", "comp_id_2", "type",
		"conditional_crosslink_flag", "model_granularity",
		"distance_threshold", "psi", "sigma_1", "sigma_2",
	}, func(l *cif.Loop) {
		for _, xl := range d.restraints {
			ex := xl.Experimental
			s1, _ := d.site(ex.Component1, ex.Residue1)
			s2, _ := d.site(ex.Component2, ex.Residue2)
			l.Write(cif.Row{
				"id":                         xl.ID,
				"group_id":                   ex.ID,
				"entity_id_1":                s1.entity.ID,
				"asym_id_1":                  chainOf(d.sys, particleComponent(xl.Particle1, ex.Component1)),
				"seq_id_1":                   ex.Residue1,
				"comp_id_1":                  s1.residue,
				"entity_id_2":                s2.entity.ID,
				"asym_id_2":                  chainOf(d.sys, particleComponent(xl.Particle2, ex.Component2)),
				"seq_id_2":                   ex.Residue2,
				"comp_id_2":                  s2.residue,
				"type":                       ex.Label,
				"conditional_crosslink_flag": "ALL",
				"model_granularity":          xl.Granularity(),
				"distance_threshold":         ex.Length,
				"psi":                        xl.Psi,
				"sigma_1":                    xl.Sigma1,
				"sigma_2":                    xl.Sigma2,
			})
		}
	})
	return w.Err()
}

func particleComponent(p ihm.Particle, fallback string) string {
	if p.Component != "" {
		return p.Component
	}
	return fallback
}

func datasetID(d *ihm.Dataset) any {
	if d == nil {
		return cif.Unknown
	}
	return d.ID
}

// EM2D writes _ihm_2dem_class_average_restraint.
type EM2D struct {
	base
	sys        System
	restraints []*ihm.EM2DRestraint
}

func NewEM2D(sys System) *EM2D { return &EM2D{sys: sys} }

// Add registers a restraint and assigns its ID.
func (d *EM2D) Add(r *ihm.EM2DRestraint) {
	d.restraints = append(d.restraints, r)
	r.ID = len(d.restraints)
}

func (d *EM2D) Categories() []string { return []string{"_ihm_2dem_class_average_restraint"} }
func (d *EM2D) References() []string { return []string{"_ihm_dataset_list", "_ihm_struct_assembly"} }

func (d *EM2D) Dump(w *cif.Writer) error {
	w.WriteLoop("_ihm_2dem_class_average_restraint", []string{
		"id", "dataset_list_id", "number_raw_micrographs",
		"raw_micrographs_dataset_list_id", "pixel_size_width",
		"pixel_size_height", "image_resolution", "image_segment_flag",
		"number_of_projections", "struct_assembly_id", "details",
	}, func(l *cif.Loop) {
		for _, r := range d.restraints {
			number, micrographs := any(cif.Unknown), any(cif.Unknown)
			if r.Micrographs != nil {
				number, micrographs = r.Micrographs.Micrographs, r.Micrographs.ID
			}
			l.Write(cif.Row{
				"id":                              r.ID,
				"dataset_list_id":                 datasetID(r.Dataset),
				"number_raw_micrographs":          number,
				"raw_micrographs_dataset_list_id": micrographs,
				"pixel_size_width":                r.PixelSize,
				"pixel_size_height":               r.PixelSize,
				"image_resolution":                r.ImageResolution,
				"image_segment_flag":              false,
				"number_of_projections":           r.Projections,
				"struct_assembly_id":              d.sys.ModeledAssembly().ID,
			})
		}
	})
	return w.Err()
}

// EM3D writes _ihm_3dem_restraint.
type EM3D struct {
	base
	restraints []*ihm.EM3DRestraint
}

func NewEM3D() *EM3D { return &EM3D{} }

// Add registers a restraint and assigns its ID.
func (d *EM3D) Add(r *ihm.EM3DRestraint) {
	d.restraints = append(d.restraints, r)
	r.ID = len(d.restraints)
}

func (d *EM3D) Categories() []string { return []string{"_ihm_3dem_restraint"} }
func (d *EM3D) References() []string { return []string{"_ihm_dataset_list"} }

func (d *EM3D) Dump(w *cif.Writer) error {
	w.WriteLoop("_ihm_3dem_restraint", []string{
		"id", "dataset_list_id", "fitting_method", "number_of_gaussians",
	}, func(l *cif.Loop) {
		for _, r := range d.restraints {
			l.Write(cif.Row{
				"id":                  r.ID,
				"dataset_list_id":     datasetID(r.Dataset),
				"fitting_method":      r.FittingMethod(),
				"number_of_gaussians": r.NumGaussians,
			})
		}
	})
	return w.Err()
}
