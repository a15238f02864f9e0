package io

import (
	"github.com/matzehuels/ihmcif/pkg/ihm"
)

// Fragment kinds.
const (
	KindPDB   = "pdb"
	KindBeads = "beads"
)

// Job is a decoded export job.
type Job struct {
	EntryID    string         `json:"entry_id,omitempty"`
	Components []Component    `json:"components"`
	Fragments  []Fragment     `json:"fragments,omitempty"`
	CrossLinks []CrossLinkSet `json:"cross_links,omitempty"`
	EM2D       []EM2D         `json:"em2d,omitempty"`
	EM3D       []EM3D         `json:"em3d,omitempty"`
	Protocols  []Protocol     `json:"protocols,omitempty"`
	Models     []Model        `json:"models,omitempty"`
	Analysis   *Analysis      `json:"analysis,omitempty"`
}

// Component is a named subunit of the system.
type Component struct {
	Name     string `json:"name"`
	Modeled  bool   `json:"modeled"`
	Sequence string `json:"sequence,omitempty"`
}

// Fragment is a residue range of a component with its representation.
// PDB fields apply to kind "pdb", Count to kind "beads".
type Fragment struct {
	Kind      string `json:"kind"`
	Component string `json:"component"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Rigid     bool   `json:"rigid,omitempty"`

	Offset int    `json:"offset,omitempty"`
	PDB    string `json:"pdb,omitempty"`
	Chain  string `json:"chain,omitempty"`
	Atoms  []Atom `json:"atoms,omitempty"`

	Count int `json:"count,omitempty"`
}

// Atom is one atom of a starting model.
type Atom struct {
	Serial      int     `json:"serial"`
	Element     string  `json:"element"`
	Name        string  `json:"name"`
	ResidueName string  `json:"residue_name"`
	Seq         int     `json:"seq"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	BFactor     float64 `json:"b_factor"`
}

// CrossLinkSet is the cross-links read from one data file.
type CrossLinkSet struct {
	File  string      `json:"file"`
	Links []CrossLink `json:"links"`
}

// CrossLink is one observed cross-link and the restraints realizing it.
type CrossLink struct {
	Sites      [2]LinkSite `json:"sites"`
	Label      string      `json:"label"`
	Length     float64     `json:"length"`
	Restraints []Restraint `json:"restraints,omitempty"`
}

// LinkSite is one cross-linked residue.
type LinkSite struct {
	Component string `json:"component"`
	Residue   int    `json:"residue"`
}

// Restraint applies a cross-link between two model particles, one per site.
type Restraint struct {
	ByResidue [2]bool    `json:"by_residue"`
	Sigma     [2]float64 `json:"sigma"`
	Psi       float64    `json:"psi"`
}

// EM2D is a set of class averages used as restraints.
type EM2D struct {
	Images          []string     `json:"images"`
	Resolution      float64      `json:"resolution"`
	PixelSize       float64      `json:"pixel_size"`
	ImageResolution float64      `json:"image_resolution"`
	Projections     int          `json:"projections"`
	Micrographs     *Micrographs `json:"micrographs,omitempty"`
}

// Micrographs are the raw micrographs behind class averages, optionally
// located in a repository.
type Micrographs struct {
	Number int    `json:"number"`
	DOI    string `json:"doi,omitempty"`
	Path   string `json:"path,omitempty"`
}

// EM3D is a density map restraint.
type EM3D struct {
	EMDB      string `json:"emdb"`
	Gaussians int    `json:"gaussians"`
}

// Protocol is one replica exchange sampling step.
type Protocol struct {
	MonteCarlo bool `json:"monte_carlo"`
	Frames     int  `json:"frames"`
}

// Model is one output model. An empty group puts it in the default group.
type Model struct {
	Group string `json:"group,omitempty"`
	Sites []Site `json:"sites"`
}

// Site is one atom or sphere of a model.
type Site struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	Atom        string  `json:"atom,omitempty"`
	ResidueName string  `json:"residue_name,omitempty"`
	Chain       string  `json:"chain"`
	Seq         int     `json:"seq"`
	Residues    []int   `json:"residues,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
}

// Analysis is the clustering of the last protocol's models.
type Analysis struct {
	OutputDir       string           `json:"output_dir"`
	Clusters        int              `json:"clusters"`
	Deposit         int              `json:"deposit,omitempty"`
	Representatives []Representative `json:"representatives,omitempty"`
}

// Representative is a deposited model of a cluster. Cluster is 1-based; the
// n-th representative listed for a cluster is its n-th deposited model.
type Representative struct {
	Cluster int    `json:"cluster"`
	Sites   []Site `json:"sites"`
}

func (a Atom) starting() ihm.StartingAtom {
	return ihm.StartingAtom{
		Serial:       a.Serial,
		Element:      a.Element,
		Name:         a.Name,
		ResidueName:  a.ResidueName,
		ResidueIndex: a.Seq,
		X:            a.X,
		Y:            a.Y,
		Z:            a.Z,
		BFactor:      a.BFactor,
	}
}

func (s Site) site() ihm.Site {
	return ihm.Site{
		X:            s.X,
		Y:            s.Y,
		Z:            s.Z,
		AtomName:     s.Atom,
		ResidueName:  s.ResidueName,
		Chain:        s.Chain,
		ResidueIndex: s.Seq,
		Residues:     s.Residues,
		Radius:       s.Radius,
	}
}

func sites(in []Site) []ihm.Site {
	out := make([]ihm.Site, len(in))
	for i, s := range in {
		out[i] = s.site()
	}
	return out
}
