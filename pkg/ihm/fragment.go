package ihm

// FragmentKind distinguishes how part of a component is represented.
type FragmentKind int

const (
	// FragmentPDB is represented by residues read from a coordinate file.
	FragmentPDB FragmentKind = iota + 1
	// FragmentBeads is represented by coarse-grained beads.
	FragmentBeads
)

// Fragment is a contiguous residue range of one component with a single
// representation.
type Fragment struct {
	Kind      FragmentKind
	Component string
	Start     int
	End       int
	Rigid     bool

	// PDB fragments.
	Offset int
	File   string
	Chain  string
	Atoms  []StartingAtom
	Model  *StartingModel

	// Bead fragments.
	Count int
}

// Primitive returns the model_object_primitive of the fragment.
func (f *Fragment) Primitive() string { return "sphere" }

// Granularity returns the model_granularity of the fragment.
func (f *Fragment) Granularity() string {
	if f.Kind == FragmentPDB {
		return "by-residue"
	}
	return "by-feature"
}

// Mode returns the model_mode of the fragment.
func (f *Fragment) Mode() string {
	if f.Rigid {
		return "rigid"
	}
	return "flexible"
}

// Combine extends f to cover next when next directly follows f and can be
// described by the same row: same kind, same mode, and for PDB fragments the
// same starting model. It reports whether next was absorbed.
func (f *Fragment) Combine(next *Fragment) bool {
	if next.Kind != f.Kind || next.Component != f.Component ||
		next.Rigid != f.Rigid || next.Start != f.End+1 {
		return false
	}
	if f.Kind == FragmentPDB && (next.Model != f.Model || next.File != f.File || next.Chain != f.Chain) {
		return false
	}
	f.End = next.End
	f.Count += next.Count
	return true
}

// StartingAtom is one atom of a starting model, as read by the coordinate
// collaborator. Atom names prefixed with "HET:" are hetero atoms.
type StartingAtom struct {
	Serial       int
	Element      string
	Name         string
	ResidueName  string
	ResidueIndex int
	X, Y, Z      float64
	BFactor      float64
}

// StartingModel is an input coordinate file used for one component.
type StartingModel struct {
	Component string
	File      string
	Chain     string
	Fragments []*Fragment
	Sources   []Source
	Dataset   *Dataset

	// Set when the model is finalized.
	Name     string
	SeqBegin int
	SeqEnd   int
}

// Span returns the residue range covered by the model's fragments, in
// component numbering.
func (m *StartingModel) Span() (begin, end int) {
	for i, f := range m.Fragments {
		b, e := f.Start+f.Offset, f.End+f.Offset
		if i == 0 || b < begin {
			begin = b
		}
		if i == 0 || e > end {
			end = e
		}
	}
	return begin, end
}

// Source is where part of a starting model came from: a [PDBSource], a
// [TemplateSource] or an [UnknownSource].
type Source interface {
	// SeqRange returns the residues of the model this source covers.
	SeqRange(m *StartingModel) (begin, end int)
	isSource()
}

// PDBSource is an experimental structure used directly as a starting model.
type PDBSource struct {
	DBCode  string
	Chain   string
	Helices []Helix
}

// SeqRange implements [Source]. The structure is assumed to cover the
// whole model.
func (PDBSource) SeqRange(m *StartingModel) (int, int) { return m.SeqBegin, m.SeqEnd }
func (PDBSource) isSource()                            {}

// TemplateSource is a template of a comparative starting model.
type TemplateSource struct {
	DBCode   string // Empty when the template is not a PDB entry
	Chain    string
	Begin    int
	End      int
	Identity float64
}

// SeqRange implements [Source]. The template range is clipped to the model.
func (s TemplateSource) SeqRange(m *StartingModel) (int, int) {
	return max(m.SeqBegin, s.Begin), min(m.SeqEnd, s.End)
}
func (TemplateSource) isSource() {}

// UnknownSource is a starting model of unknown origin.
type UnknownSource struct{}

// SeqRange implements [Source].
func (UnknownSource) SeqRange(m *StartingModel) (int, int) { return m.SeqBegin, m.SeqEnd }
func (UnknownSource) isSource()                            {}

// Helix is a helix inherited from an experimental starting model.
type Helix struct {
	StartResidue string
	StartChain   string
	StartNumber  int
	EndResidue   string
	EndChain     string
	EndNumber    int
}
