package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/matzehuels/ihmcif/pkg/errors"
	"github.com/matzehuels/ihmcif/pkg/ihm"
)

// DefaultModelGroup names the group of models added without one.
const DefaultModelGroup = "All models"

// AddReplicaExchange adds a replica exchange sampling step. Every dataset
// registered so far is recorded as its input.
func (o *Output) AddReplicaExchange(rex ihm.ReplicaExchange) *ihm.Protocol {
	p := ihm.NewReplicaExchangeProtocol(rex)
	o.protocol.Add(p)
	return p
}

// AddModelGroup adds a named group of models.
func (o *Output) AddModelGroup(name string) *ihm.ModelGroup {
	g := &ihm.ModelGroup{Name: name}
	o.model.AddGroup(g)
	return g
}

// AddModel adds a model of the modeled assembly produced by the most recent
// protocol. Coordinates are written relative to the centroid of all sites.
// A nil group puts the model in the default group, created on first use.
func (o *Output) AddModel(sites []ihm.Site, group *ihm.ModelGroup) (*ihm.Model, error) {
	m, err := o.addModel(sites, group)
	if err != nil {
		return nil, err
	}
	m.Recenter()
	return m, nil
}

func (o *Output) addModel(sites []ihm.Site, group *ihm.ModelGroup) (*ihm.Model, error) {
	protocol := o.protocol.Last()
	if protocol == nil {
		return nil, errors.New(errors.ErrCodeInvalidReference, "model added before any protocol")
	}
	for _, s := range sites {
		if _, ok := o.ChainEntity(s.Chain); !ok {
			return nil, errors.New(errors.ErrCodeInvalidReference, "site on chain %q of no modeled component", s.Chain)
		}
	}
	if group == nil {
		if o.defaultGroup == nil {
			o.defaultGroup = o.AddModelGroup(DefaultModelGroup)
		}
		group = o.defaultGroup
	}
	m := ihm.NewModel(sites)
	m.Group = group
	m.Protocol = protocol
	m.Assembly = o.modeledAs
	o.model.Add(m)
	return m, nil
}

// AddEnsemble registers an ensemble and returns it with its ID assigned.
func (o *Output) AddEnsemble(e *ihm.Ensemble) *ihm.Ensemble {
	o.ensemble.Add(e)
	return e
}

// ReplicaExchangeAnalysis locates the clustering results of a replica
// exchange run. Cluster i lives in OutputDir/cluster.i.
type ReplicaExchangeAnalysis struct {
	OutputDir string
	Clusters  int

	// Deposit is the number of models deposited per cluster. Defaults to 1.
	Deposit int
}

func (a ReplicaExchangeAnalysis) statFile(cluster int) string {
	return filepath.Join(a.OutputDir, fmt.Sprintf("cluster.%d", cluster), "stat.out")
}

func (a ReplicaExchangeAnalysis) precisionFile(cluster int) string {
	return filepath.Join(a.OutputDir, fmt.Sprintf("precision.%d.%d.out", cluster, cluster))
}

// Files returns the result files the analysis reads, stat file first for
// each cluster. Precision files need not exist.
func (a ReplicaExchangeAnalysis) Files() []string {
	var out []string
	for i := 0; i < a.Clusters; i++ {
		out = append(out, a.statFile(i), a.precisionFile(i))
	}
	return out
}

// ModelLoader supplies the coordinates of the n-th deposited model of a
// cluster.
type ModelLoader interface {
	LoadModel(cluster, n int) ([]ihm.Site, error)
}

// ModelLoaderFunc adapts a function to [ModelLoader].
type ModelLoaderFunc func(cluster, n int) ([]ihm.Site, error)

// LoadModel implements [ModelLoader].
func (f ModelLoaderFunc) LoadModel(cluster, n int) ([]ihm.Site, error) { return f(cluster, n) }

// AddReplicaExchangeAnalysis adds the clustering of the last protocol's
// models: one post-processing step, then per cluster a model group, an
// ensemble and the representative models supplied by load. Representative
// coordinates are written as loaded.
func (o *Output) AddReplicaExchangeAnalysis(a ReplicaExchangeAnalysis, load ModelLoader) (*ihm.PostProcess, error) {
	protocol := o.protocol.Last()
	if protocol == nil {
		return nil, errors.New(errors.ErrCodeInvalidReference, "analysis added before any protocol")
	}
	if a.Clusters < 0 || a.Deposit < 0 {
		return nil, &errors.RecordError{
			Record: "replica exchange analysis",
			Err:    errors.New(errors.ErrCodeInvalidInput, "negative counts: %d clusters, %d deposited", a.Clusters, a.Deposit),
		}
	}
	if a.Deposit == 0 {
		a.Deposit = 1
	}

	sizes := make([]int, a.Clusters)
	total := 0
	for i := range sizes {
		path := a.statFile(i)
		data, err := o.opts.ReadFile(path)
		if err != nil {
			return nil, &errors.RecordError{Record: fmt.Sprintf("cluster %d", i+1), File: path, Err: err}
		}
		sizes[i] = countLines(data)
		total += sizes[i]
	}

	pp := &ihm.PostProcess{
		Type:           "cluster",
		Feature:        "RMSD",
		NumModelsBegin: protocol.NumModelsEnd,
		NumModelsEnd:   total,
	}
	o.postProcess.Add(pp)

	for i, size := range sizes {
		group := o.AddModelGroup(fmt.Sprintf("Cluster %d", i+1))
		deposit := min(a.Deposit, size)
		e := o.AddEnsemble(&ihm.Ensemble{
			Name:         group.Name,
			PostProcess:  pp,
			Group:        group,
			NumModels:    size,
			NumDeposited: deposit,
			Precision:    o.precision(a, i),
		})
		for n := 0; n < deposit; n++ {
			sites, err := load.LoadModel(i, n)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeFileRead, err, "load model %d of %s", n+1, e.Name)
			}
			if _, err := o.addModel(sites, group); err != nil {
				return nil, err
			}
		}
		o.logger.Debug("added cluster", "name", e.Name, "models", size, "deposited", deposit)
	}
	return pp, nil
}

// precision reads the average centroid distance of a cluster, or nil when
// the precision file is missing or does not mention the cluster.
func (o *Output) precision(a ReplicaExchangeAnalysis, cluster int) *float64 {
	data, err := o.opts.ReadFile(a.precisionFile(cluster))
	if err != nil {
		return nil
	}
	re := regexp.MustCompile(fmt.Sprintf(`^All .*/cluster\.%d/ average centroid distance ([\d.]+)`, cluster))
	for _, line := range bytes.Split(data, []byte("\n")) {
		m := re.FindSubmatch(line)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(string(m[1]), 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

// countLines counts lines, including a final line without a newline.
func countLines(data []byte) int {
	n := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}
