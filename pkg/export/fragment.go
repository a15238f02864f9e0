package export

import (
	"github.com/matzehuels/ihmcif/pkg/errors"
	"github.com/matzehuels/ihmcif/pkg/ihm"
)

// PDBFragment is a residue range of a component taken from a coordinate
// file.
type PDBFragment struct {
	Component string
	Start     int
	End       int
	Offset    int    // Added to file residue numbers to get component numbering
	File      string // Coordinate file the residues were read from
	Chain     string // Chain within File
	Rigid     bool
	Atoms     []ihm.StartingAtom
}

// BeadFragment is a residue range of a component represented by Count
// coarse-grained beads.
type BeadFragment struct {
	Component string
	Start     int
	End       int
	Count     int
	Rigid     bool
}

func checkRange(component string, start, end int) error {
	if start < 1 || end < start {
		return errors.New(errors.ErrCodeInvalidInput, "component %q: invalid residue range %d-%d", component, start, end)
	}
	return nil
}

// AddPDBFragment adds a fragment represented by atomic coordinates and
// returns its starting model. Fragments from a file not seen before for the
// component start a new starting model, whose file is read and classified;
// if the read fails a *errors.RecordError is returned and nothing is
// registered.
func (o *Output) AddPDBFragment(p PDBFragment) (*ihm.StartingModel, error) {
	if err := o.modeledComponent(p.Component); err != nil {
		return nil, err
	}
	if err := checkRange(p.Component, p.Start, p.End); err != nil {
		return nil, err
	}
	f := &ihm.Fragment{
		Kind:      ihm.FragmentPDB,
		Component: p.Component,
		Start:     p.Start,
		End:       p.End,
		Rigid:     p.Rigid,
		Offset:    p.Offset,
		File:      p.File,
		Chain:     p.Chain,
		Atoms:     p.Atoms,
	}
	m, err := o.starting.AddFragment(f)
	if err != nil {
		return nil, err
	}
	o.repr.AddFragment(f)
	o.logger.Debug("added pdb fragment",
		"component", p.Component,
		"residues", [2]int{p.Start, p.End},
		"file", p.File,
		"source", m.Dataset.Kind.DataType())
	return m, nil
}

// AddBeadFragment adds a fragment represented by beads.
func (o *Output) AddBeadFragment(b BeadFragment) error {
	if err := o.modeledComponent(b.Component); err != nil {
		return err
	}
	if err := checkRange(b.Component, b.Start, b.End); err != nil {
		return err
	}
	if b.Count < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "component %q: bead count must be positive", b.Component)
	}
	o.repr.AddFragment(&ihm.Fragment{
		Kind:      ihm.FragmentBeads,
		Component: b.Component,
		Start:     b.Start,
		End:       b.End,
		Rigid:     b.Rigid,
		Count:     b.Count,
	})
	return nil
}
