package ihm

// ReplicaExchange describes a replica exchange sampling run.
type ReplicaExchange struct {
	MonteCarlo bool // Monte Carlo moves, otherwise molecular dynamics
	Frames     int  // Number of output frames
}

// Protocol is one sampling step that produced models.
type Protocol struct {
	ID           int
	StepMethod   string
	NumModelsEnd int
	DatasetGroup *DatasetGroup
}

// NewReplicaExchangeProtocol returns an unregistered protocol for rex.
func NewReplicaExchangeProtocol(rex ReplicaExchange) *Protocol {
	p := &Protocol{StepMethod: "Replica exchange molecular dynamics", NumModelsEnd: rex.Frames}
	if rex.MonteCarlo {
		p.StepMethod = "Replica exchange monte carlo"
	}
	return p
}

// ModelGroup is a named set of models.
type ModelGroup struct {
	ID   int
	Name string
}

// Site is one coordinate row supplied by the coordinate collaborator: an
// atom when AtomName is set, otherwise a coarse-grained sphere.
type Site struct {
	X, Y, Z      float64
	AtomName     string
	ResidueName  string
	Chain        string
	ResidueIndex int

	// Residues lists the residues a sphere covers; empty means the single
	// residue ResidueIndex.
	Residues []int
	Radius   float64
}

// IsAtom reports whether the site is an atom.
func (s Site) IsAtom() bool { return s.AtomName != "" }

// SeqRange returns the first and last residue the site covers.
func (s Site) SeqRange() (int, int) {
	if len(s.Residues) == 0 {
		return s.ResidueIndex, s.ResidueIndex
	}
	return s.Residues[0], s.Residues[len(s.Residues)-1]
}

// Model is one deposited structure.
type Model struct {
	ID       int
	Group    *ModelGroup
	Protocol *Protocol
	Assembly *Assembly
	Atoms    []Site
	Spheres  []Site

	// Center is subtracted from every coordinate on output.
	Center [3]float64
}

// NewModel splits sites into atoms and spheres.
func NewModel(sites []Site) *Model {
	m := &Model{}
	for _, s := range sites {
		if s.IsAtom() {
			m.Atoms = append(m.Atoms, s)
		} else {
			m.Spheres = append(m.Spheres, s)
		}
	}
	return m
}

// Recenter sets Center to the mean of all site coordinates.
func (m *Model) Recenter() {
	n := len(m.Atoms) + len(m.Spheres)
	if n == 0 {
		m.Center = [3]float64{}
		return
	}
	var c [3]float64
	for _, sites := range [][]Site{m.Atoms, m.Spheres} {
		for _, s := range sites {
			c[0] += s.X
			c[1] += s.Y
			c[2] += s.Z
		}
	}
	for i := range c {
		c[i] /= float64(n)
	}
	m.Center = c
}

// PostProcess is an analysis step applied to sampled models.
type PostProcess struct {
	ID             int
	Type           string
	Feature        string
	NumModelsBegin int
	NumModelsEnd   int
}

// Ensemble is a cluster of models produced by a post-processing step.
type Ensemble struct {
	ID           int
	Name         string
	PostProcess  *PostProcess
	Group        *ModelGroup
	NumModels    int
	NumDeposited int

	// Precision is nil when unknown.
	Precision *float64
}
