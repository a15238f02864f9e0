package export

import (
	"github.com/matzehuels/ihmcif/pkg/ihm"
	"github.com/matzehuels/ihmcif/pkg/metadata"
)

// CrossLinkDataset registers the cross-linking data file at path and returns
// the canonical dataset for it.
func (o *Output) CrossLinkDataset(path string) *ihm.Dataset {
	return o.datasets.Add(ihm.NewCXMSDataset(o.Locate(path)))
}

// AddExperimentalCrossLink adds an observed cross-link between residue r1 of
// c1 and residue r2 of c2. Cross-links touching a component that is not
// modeled, or a residue outside its sequence, are dropped: nil is returned
// and the export continues.
func (o *Output) AddExperimentalCrossLink(r1 int, c1 string, r2 int, c2 string, label string, length float64, d *ihm.Dataset) *ihm.ExperimentalCrossLink {
	for _, end := range []struct {
		comp    string
		residue int
	}{{c1, r1}, {c2, r2}} {
		if err := o.modeledComponent(end.comp); err != nil {
			o.logger.Debug("dropped cross-link", "label", label, "err", err)
			return nil
		}
		seq, _ := o.Sequence(end.comp)
		if _, ok := ihm.ResidueAt(seq, end.residue); !ok {
			o.logger.Debug("dropped cross-link", "label", label,
				"component", end.comp, "residue", end.residue)
			return nil
		}
	}
	xl := &ihm.ExperimentalCrossLink{
		Component1: c1,
		Residue1:   r1,
		Component2: c2,
		Residue2:   r2,
		Label:      label,
		Length:     length,
		Dataset:    d,
	}
	o.crossLink.AddExperimental(xl)
	return xl
}

// AddCrossLink adds a restraint realizing ex between two model particles.
// It returns nil if ex is nil, so that the result of a dropped
// [Output.AddExperimentalCrossLink] can be passed through.
func (o *Output) AddCrossLink(ex *ihm.ExperimentalCrossLink, p1, p2 ihm.Particle, sigma1, sigma2, psi float64) *ihm.CrossLink {
	if ex == nil {
		return nil
	}
	xl := &ihm.CrossLink{
		Experimental: ex,
		Particle1:    p1,
		Particle2:    p2,
		Sigma1:       sigma1,
		Sigma2:       sigma2,
		Psi:          psi,
	}
	o.crossLink.Add(xl)
	return xl
}

// Micrographs describes the raw micrographs class averages were computed
// from.
type Micrographs struct {
	Number int

	// Metadata locates the micrographs, ahead of the output's own metadata.
	Metadata []metadata.Item
}

// EM2DRestraint is a set of 2D class averages used as restraints, one
// restraint per image.
type EM2DRestraint struct {
	Images          []string
	Resolution      float64
	PixelSize       float64
	ImageResolution float64
	Projections     int
	Micrographs     *Micrographs
}

// AddEM2DRestraint adds one restraint per class average image.
func (o *Output) AddEM2DRestraint(r EM2DRestraint) []*ihm.EM2DRestraint {
	var micrographs *ihm.Dataset
	if r.Micrographs != nil {
		loc := locate("", append(append([]metadata.Item(nil), r.Micrographs.Metadata...), o.meta...))
		micrographs = o.datasets.Add(ihm.NewEMMicrographsDataset(r.Micrographs.Number, loc))
	}
	var out []*ihm.EM2DRestraint
	for _, image := range r.Images {
		rr := &ihm.EM2DRestraint{
			Dataset:         o.datasets.Add(ihm.NewEM2DClassDataset(o.Locate(image))),
			Micrographs:     micrographs,
			Resolution:      r.Resolution,
			PixelSize:       r.PixelSize,
			ImageResolution: r.ImageResolution,
			Projections:     r.Projections,
		}
		o.em2d.Add(rr)
		out = append(out, rr)
	}
	return out
}

// AddEM3DRestraint adds a density map restraint fit with numGaussians
// Gaussians. Every call registers its own EMDB dataset, even for the same
// map, since the dataset identifies the restraint.
func (o *Output) AddEM3DRestraint(emdb string, numGaussians int) *ihm.EM3DRestraint {
	r := &ihm.EM3DRestraint{
		Dataset:      o.datasets.Add(ihm.NewEMDBDataset(emdb, true)),
		NumGaussians: numGaussians,
	}
	o.em3d.Add(r)
	return r
}
