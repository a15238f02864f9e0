package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/ihmcif/pkg/errors"
)

// ReadJob decodes a JSON job from r and validates it.
//
// ReadJob returns an error if:
//   - The JSON is malformed or has unknown fields
//   - A component name or sequence is invalid, or a name is declared twice
//   - A fragment has an unknown kind or names an undeclared component
//   - A path or chain identifier is invalid
//
// Validation errors carry the code of the failed check and name the item,
// for example "component 2 (Nup85)". Paths are returned as written; see
// [ImportJob] for resolution against a directory. ReadJob does not close r.
func ReadJob(r io.Reader) (*Job, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var j Job
	if err := dec.Decode(&j); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode job")
	}
	if err := j.validate(); err != nil {
		return nil, err
	}
	return &j, nil
}

// ImportJob reads the JSON job file at path. Relative paths inside the job
// are resolved against the directory containing it.
func ImportJob(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "open %s", path)
	}
	defer f.Close()

	j, err := ReadJob(f)
	if err != nil {
		return nil, err
	}
	j.resolve(filepath.Dir(path))
	return j, nil
}

func (j *Job) validate() error {
	declared := make(map[string]bool, len(j.Components))
	for i, c := range j.Components {
		if err := errors.ValidateComponentName(c.Name); err != nil {
			return item(err, "component %d", i+1)
		}
		if declared[c.Name] {
			return errors.New(errors.ErrCodeInvalidName, "component %d (%s): declared twice", i+1, c.Name)
		}
		declared[c.Name] = true
		if c.Sequence == "" {
			continue
		}
		if err := errors.ValidateSequence(c.Sequence); err != nil {
			return item(err, "component %d (%s)", i+1, c.Name)
		}
	}

	for i, f := range j.Fragments {
		if !declared[f.Component] {
			return errors.New(errors.ErrCodeInvalidReference, "fragment %d: unknown component %q", i+1, f.Component)
		}
		switch f.Kind {
		case KindPDB:
			if err := errors.ValidatePath(f.PDB); err != nil {
				return item(err, "fragment %d (%s)", i+1, f.Component)
			}
			if err := errors.ValidateChainID(f.Chain); err != nil {
				return item(err, "fragment %d (%s)", i+1, f.Component)
			}
		case KindBeads:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "fragment %d (%s): unknown kind %q", i+1, f.Component, f.Kind)
		}
	}

	for i, set := range j.CrossLinks {
		if err := errors.ValidatePath(set.File); err != nil {
			return item(err, "cross-link file %d", i+1)
		}
	}

	for i, r := range j.EM2D {
		for _, image := range r.Images {
			if err := errors.ValidatePath(image); err != nil {
				return item(err, "em2d restraint %d", i+1)
			}
		}
	}

	for i, m := range j.Models {
		if err := validateSites(m.Sites); err != nil {
			return item(err, "model %d", i+1)
		}
	}

	if a := j.Analysis; a != nil {
		if err := errors.ValidatePath(a.OutputDir); err != nil {
			return item(err, "analysis")
		}
		if a.Clusters < 0 || a.Deposit < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "analysis: negative cluster or deposit count")
		}
		for i, r := range a.Representatives {
			if r.Cluster < 1 || r.Cluster > a.Clusters {
				return errors.New(errors.ErrCodeInvalidInput, "representative %d: no cluster %d", i+1, r.Cluster)
			}
			if err := validateSites(r.Sites); err != nil {
				return item(err, "representative %d", i+1)
			}
		}
	}
	return nil
}

func validateSites(sites []Site) error {
	for i, s := range sites {
		if err := errors.ValidateChainID(s.Chain); err != nil {
			return item(err, "site %d", i+1)
		}
	}
	return nil
}

// item wraps a validation error with the name of the offending item,
// keeping its code.
func item(err error, format string, args ...any) error {
	return errors.Wrap(errors.GetCode(err), err, format, args...)
}

func (j *Job) resolve(dir string) {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i := range j.Fragments {
		j.Fragments[i].PDB = join(j.Fragments[i].PDB)
	}
	for i := range j.CrossLinks {
		j.CrossLinks[i].File = join(j.CrossLinks[i].File)
	}
	for i := range j.EM2D {
		for k := range j.EM2D[i].Images {
			j.EM2D[i].Images[k] = join(j.EM2D[i].Images[k])
		}
	}
	if j.Analysis != nil {
		j.Analysis.OutputDir = join(j.Analysis.OutputDir)
	}
}
