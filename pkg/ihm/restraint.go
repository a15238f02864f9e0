package ihm

// ExperimentalCrossLink is a cross-link as observed in an experiment,
// between residue Residue1 of Component1 and Residue2 of Component2.
type ExperimentalCrossLink struct {
	ID         int
	Component1 string
	Residue1   int
	Component2 string
	Residue2   int
	Label      string
	Length     float64
	Dataset    *Dataset
}

// Particle is one end of a cross-link restraint as applied to the model.
type Particle struct {
	Component string

	// ByResidue is true when the particle represents a single residue or
	// atom rather than a coarse-grained bead.
	ByResidue bool
}

// CrossLink is a restraint realizing an experimental cross-link between two
// model particles. Several CrossLinks may share one ExperimentalCrossLink
// when the experiment is ambiguous.
type CrossLink struct {
	ID           int
	Experimental *ExperimentalCrossLink
	Particle1    Particle
	Particle2    Particle
	Sigma1       float64
	Sigma2       float64
	Psi          float64
}

// Granularity returns the model_granularity of the restraint.
func (c *CrossLink) Granularity() string {
	if c.Particle1.ByResidue && c.Particle2.ByResidue {
		return "by-residue"
	}
	return "by-feature"
}

// EM2DRestraint fits the model to one 2D class average.
type EM2DRestraint struct {
	ID              int
	Dataset         *Dataset
	Micrographs     *Dataset // Optional raw micrographs dataset
	Resolution      float64
	PixelSize       float64
	ImageResolution float64
	Projections     int
}

// EM3DRestraint fits the model to a 3D density map.
type EM3DRestraint struct {
	ID           int
	Dataset      *Dataset
	NumGaussians int
}

// FittingMethod returns the method used to fit the density map.
func (*EM3DRestraint) FittingMethod() string { return "Gaussian mixture models" }
