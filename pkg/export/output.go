// Package export assembles an integrative model and writes it as an mmCIF
// document with IHM categories.
//
// An [Output] is populated through its Add methods: components and their
// sequences first, then representation fragments, restraints, sampling
// protocols and models. [Output.Flush] then finalizes every record and
// writes the whole document in one go:
//
//	out := export.New(export.Options{EntryID: "nup84"})
//	out.AddComponent("Nup84", true)
//	if _, err := out.AddComponentSequence("Nup84", seq); err != nil {
//	    return err
//	}
//	...
//	if err := out.Flush(w); err != nil {
//	    return err
//	}
//
// Identifiers are assigned when records are added and never change.
// Equal datasets and sequences are shared, so the pointer returned by an
// Add method is the one later references must use.
//
// Output is not safe for concurrent use.
package export

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/dump"
	"github.com/matzehuels/ihmcif/pkg/errors"
	"github.com/matzehuels/ihmcif/pkg/ihm"
	"github.com/matzehuels/ihmcif/pkg/metadata"
	"github.com/matzehuels/ihmcif/pkg/registry"
)

// DefaultEntryID is the entry ID used when none is configured.
const DefaultEntryID = "model"

// Options configures an [Output].
type Options struct {
	// EntryID names the data block. Defaults to DefaultEntryID.
	EntryID string

	// LineLength and MultiLineLength override the writer's line budgets.
	LineLength      int
	MultiLineLength int

	// Software is listed first in _software.
	Software []metadata.Software

	// ReadFile reads starting model and analysis files. Defaults to
	// os.ReadFile.
	ReadFile func(path string) ([]byte, error)

	// Logger receives debug output. Defaults to a discarding logger.
	Logger *log.Logger
}

// Output collects the records of one model and writes them.
type Output struct {
	opts   Options
	logger *log.Logger

	entities  *registry.Entities
	datasets  *registry.Datasets
	known     map[string]bool
	chains    map[string]string
	byChain   map[string]string
	modeled   []string
	complete  *ihm.Assembly
	modeledAs *ihm.Assembly
	meta      []metadata.Item

	defaultGroup *ihm.ModelGroup
	blocks       []cif.Block

	entry         *dump.Entry
	auditAuthor   *dump.AuditAuthor
	software      *dump.Software
	citation      *dump.Citation
	chemComp      *dump.ChemComp
	entity        *dump.Entity
	entityPoly    *dump.EntityPoly
	entityPolySeq *dump.EntityPolySeq
	structAsym    *dump.StructAsym
	assembly      *dump.Assembly
	repr          *dump.ModelRepresentation
	dataset       *dump.Dataset
	crossLink     *dump.CrossLink
	em2d          *dump.EM2D
	em3d          *dump.EM3D
	starting      *dump.StartingModels
	structConf    *dump.StructConf
	protocol      *dump.ModelProtocol
	postProcess   *dump.PostProcess
	ensemble      *dump.Ensemble
	model         *dump.Model
}

// New returns an empty Output. The complete assembly is registered
// immediately and gets ID 1.
func New(opts Options) *Output {
	if opts.EntryID == "" {
		opts.EntryID = DefaultEntryID
	}
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o := &Output{
		opts:     opts,
		logger:   logger,
		entities: registry.NewEntities(),
		datasets: registry.NewDatasets(),
		known:    make(map[string]bool),
		chains:   make(map[string]string),
		byChain:  make(map[string]string),
	}

	o.entry = dump.NewEntry(o)
	o.auditAuthor = dump.NewAuditAuthor(o)
	o.software = dump.NewSoftware(o, opts.Software)
	o.citation = dump.NewCitation(o)
	o.chemComp = dump.NewChemComp(o)
	o.entity = dump.NewEntity(o)
	o.entityPoly = dump.NewEntityPoly(o)
	o.entityPolySeq = dump.NewEntityPolySeq(o)
	o.structAsym = dump.NewStructAsym(o)
	o.assembly = dump.NewAssembly(o)
	o.repr = dump.NewModelRepresentation(o)
	o.dataset = dump.NewDataset(o.datasets)
	o.crossLink = dump.NewCrossLink(o)
	o.em2d = dump.NewEM2D(o)
	o.em3d = dump.NewEM3D()
	o.starting = dump.NewStartingModels(o, o.datasets, o.software, opts.ReadFile)
	o.structConf = dump.NewStructConf(o, o.repr.Aggregator())
	o.protocol = dump.NewModelProtocol(o, o.datasets)
	o.postProcess = dump.NewPostProcess()
	o.ensemble = dump.NewEnsemble()
	o.model = dump.NewModel(o)

	o.complete = &ihm.Assembly{}
	o.assembly.Add(o.complete)
	o.modeledAs = o.complete
	return o
}

// Dumpers returns the dumpers in output order. Entry is always first.
func (o *Output) Dumpers() []dump.Dumper {
	return []dump.Dumper{
		o.entry,
		o.auditAuthor,
		o.software,
		o.citation,
		o.chemComp,
		o.entity,
		o.entityPoly,
		o.entityPolySeq,
		o.structAsym,
		o.assembly,
		o.repr,
		o.dataset,
		o.crossLink,
		o.em2d,
		o.em3d,
		o.starting,
		o.structConf,
		o.protocol,
		o.postProcess,
		o.ensemble,
		o.model,
	}
}

// AddComponent registers a component. Modeled components get the next chain
// ID and join the modeled assembly. The first non-modeled component splits
// the modeled assembly from the complete one. Adding a known component again
// has no effect.
func (o *Output) AddComponent(name string, modeled bool) {
	if o.known[name] {
		return
	}
	o.known[name] = true
	if modeled {
		chain := ihm.ChainID(len(o.modeled))
		o.modeled = append(o.modeled, name)
		o.chains[name] = chain
		o.byChain[chain] = name
		if o.modeledAs != o.complete {
			o.modeledAs.Components = append(o.modeledAs.Components, name)
		}
	} else if o.modeledAs == o.complete {
		o.modeledAs = o.complete.Clone()
		o.assembly.Add(o.modeledAs)
	}
	o.complete.Components = append(o.complete.Components, name)
}

// AddComponentSequence sets the sequence of a known component and returns
// its entity, which is shared with every component of equal sequence.
func (o *Output) AddComponentSequence(name, seq string) (*ihm.Entity, error) {
	if !o.known[name] {
		return nil, errors.New(errors.ErrCodeInvalidReference, "unknown component %q", name)
	}
	if err := errors.ValidateSequence(seq); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSequence, err, "component %q", name)
	}
	return o.entities.Add(name, seq), nil
}

// AddMetadata attaches software, citations and repositories. Repository
// items are consulted in order when locating input files.
func (o *Output) AddMetadata(items ...metadata.Item) {
	o.meta = append(o.meta, items...)
}

// Blocks returns the blocks written by the last successful Flush.
func (o *Output) Blocks() []cif.Block { return o.blocks }

// Software returns the _software rows, including MODELLER if a MODELLER
// starting model was added.
func (o *Output) Software() []metadata.Software { return o.software.All() }

// Datasets returns the registered datasets in ID order.
func (o *Output) Datasets() []*ihm.Dataset { return o.datasets.All() }

func (o *Output) EntryID() string { return o.opts.EntryID }

func (o *Output) Entity(component string) (*ihm.Entity, bool) {
	return o.entities.Get(component)
}

func (o *Output) Entities() []*ihm.Entity { return o.entities.All() }

func (o *Output) Sequence(component string) (string, bool) {
	e, ok := o.entities.Get(component)
	if !ok {
		return "", false
	}
	return e.Sequence, true
}

func (o *Output) Chain(component string) (string, bool) {
	c, ok := o.chains[component]
	return c, ok
}

func (o *Output) ChainEntity(chain string) (*ihm.Entity, bool) {
	comp, ok := o.byChain[chain]
	if !ok {
		return nil, false
	}
	return o.entities.Get(comp)
}

func (o *Output) ModeledComponents() []string     { return o.modeled }
func (o *Output) ModeledAssembly() *ihm.Assembly { return o.modeledAs }
func (o *Output) Metadata() []metadata.Item      { return o.meta }

// Locate returns the deposited location of a local file: the first
// repository file in the metadata, else the path relative to the first
// repository, else the local path itself.
func (o *Output) Locate(path string) ihm.RepoLocation {
	return locate(path, o.meta)
}

func locate(path string, items []metadata.Item) ihm.RepoLocation {
	for _, m := range items {
		switch m := m.(type) {
		case metadata.RepositoryFile:
			return ihm.RepoLocation{DOI: m.DOI, Path: m.Path}
		case metadata.Repository:
			f := m.Path(path)
			return ihm.RepoLocation{DOI: f.DOI, Path: f.Path}
		}
	}
	return ihm.RepoLocation{Path: path}
}

// modeledComponent returns an error unless name is a modeled component with
// a sequence.
func (o *Output) modeledComponent(name string) error {
	if _, ok := o.chains[name]; !ok {
		return errors.New(errors.ErrCodeInvalidReference, "component %q is not modeled", name)
	}
	if _, ok := o.entities.Get(name); !ok {
		return errors.New(errors.ErrCodeInvalidReference, "component %q has no sequence", name)
	}
	return nil
}
