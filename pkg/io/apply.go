package io

import (
	stderrors "errors"

	"github.com/matzehuels/ihmcif/pkg/errors"
	"github.com/matzehuels/ihmcif/pkg/export"
	"github.com/matzehuels/ihmcif/pkg/ihm"
	"github.com/matzehuels/ihmcif/pkg/metadata"
)

// Apply adds the job to out: components and sequences first, then
// fragments, restraints, protocols, models and the analysis.
//
// Records that fail only because an input file could not be read are
// skipped and returned in skipped; the remaining records are still added.
// Any other error stops Apply and is returned as err.
func (j *Job) Apply(out *export.Output) (skipped []error, err error) {
	skip := func(err error) error {
		var rerr *errors.RecordError
		if stderrors.As(err, &rerr) {
			skipped = append(skipped, err)
			return nil
		}
		return err
	}

	for _, c := range j.Components {
		out.AddComponent(c.Name, c.Modeled)
	}
	for _, c := range j.Components {
		if c.Sequence == "" {
			continue
		}
		if _, err := out.AddComponentSequence(c.Name, c.Sequence); err != nil {
			return skipped, err
		}
	}

	for i, f := range j.Fragments {
		if err := skip(j.applyFragment(out, f)); err != nil {
			return skipped, errors.Wrap(errors.GetCode(err), err, "fragment %d (%s)", i+1, f.Component)
		}
	}

	for _, set := range j.CrossLinks {
		d := out.CrossLinkDataset(set.File)
		for _, l := range set.Links {
			ex := out.AddExperimentalCrossLink(
				l.Sites[0].Residue, l.Sites[0].Component,
				l.Sites[1].Residue, l.Sites[1].Component,
				l.Label, l.Length, d)
			for _, r := range l.Restraints {
				out.AddCrossLink(ex,
					ihm.Particle{Component: l.Sites[0].Component, ByResidue: r.ByResidue[0]},
					ihm.Particle{Component: l.Sites[1].Component, ByResidue: r.ByResidue[1]},
					r.Sigma[0], r.Sigma[1], r.Psi)
			}
		}
	}

	for _, r := range j.EM2D {
		out.AddEM2DRestraint(r.restraint())
	}
	for _, r := range j.EM3D {
		out.AddEM3DRestraint(r.EMDB, r.Gaussians)
	}

	for _, p := range j.Protocols {
		out.AddReplicaExchange(ihm.ReplicaExchange{MonteCarlo: p.MonteCarlo, Frames: p.Frames})
	}

	groups := make(map[string]*ihm.ModelGroup)
	for i, m := range j.Models {
		var group *ihm.ModelGroup
		if m.Group != "" {
			if group = groups[m.Group]; group == nil {
				group = out.AddModelGroup(m.Group)
				groups[m.Group] = group
			}
		}
		if _, err := out.AddModel(sites(m.Sites), group); err != nil {
			return skipped, errors.Wrap(errors.GetCode(err), err, "model %d", i+1)
		}
	}

	if a := j.Analysis; a != nil {
		_, err := out.AddReplicaExchangeAnalysis(a.analysis(), export.ModelLoaderFunc(a.load))
		if err := skip(err); err != nil {
			return skipped, errors.Wrap(errors.GetCode(err), err, "analysis")
		}
	}
	return skipped, nil
}

func (j *Job) applyFragment(out *export.Output, f Fragment) error {
	if f.Kind == KindBeads {
		return out.AddBeadFragment(export.BeadFragment{
			Component: f.Component,
			Start:     f.Start,
			End:       f.End,
			Count:     f.Count,
			Rigid:     f.Rigid,
		})
	}
	atoms := make([]ihm.StartingAtom, len(f.Atoms))
	for i, a := range f.Atoms {
		atoms[i] = a.starting()
	}
	_, err := out.AddPDBFragment(export.PDBFragment{
		Component: f.Component,
		Start:     f.Start,
		End:       f.End,
		Offset:    f.Offset,
		File:      f.PDB,
		Chain:     f.Chain,
		Rigid:     f.Rigid,
		Atoms:     atoms,
	})
	return err
}

func (r EM2D) restraint() export.EM2DRestraint {
	out := export.EM2DRestraint{
		Images:          r.Images,
		Resolution:      r.Resolution,
		PixelSize:       r.PixelSize,
		ImageResolution: r.ImageResolution,
		Projections:     r.Projections,
	}
	if m := r.Micrographs; m != nil {
		out.Micrographs = &export.Micrographs{Number: m.Number}
		if m.Path != "" {
			out.Micrographs.Metadata = []metadata.Item{metadata.RepositoryFile{DOI: m.DOI, Path: m.Path}}
		}
	}
	return out
}

func (a *Analysis) analysis() export.ReplicaExchangeAnalysis {
	return export.ReplicaExchangeAnalysis{
		OutputDir: a.OutputDir,
		Clusters:  a.Clusters,
		Deposit:   a.Deposit,
	}
}

// load returns the n-th representative listed for the 0-based cluster.
func (a *Analysis) load(cluster, n int) ([]ihm.Site, error) {
	for _, r := range a.Representatives {
		if r.Cluster != cluster+1 {
			continue
		}
		if n == 0 {
			return sites(r.Sites), nil
		}
		n--
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "cluster %d has too few representatives", cluster+1)
}

// InputFiles returns the files whose content the export reads: starting
// model coordinate files and analysis results, in job order without
// duplicates. Analysis precision files may legitimately be missing.
func (j *Job) InputFiles() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, f := range j.Fragments {
		if f.Kind == KindPDB {
			add(f.PDB)
		}
	}
	if j.Analysis != nil {
		for _, p := range j.Analysis.analysis().Files() {
			add(p)
		}
	}
	return out
}
