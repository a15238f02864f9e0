package dump

import (
	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/ihm"
	"github.com/matzehuels/ihmcif/pkg/registry"
)

// ModelProtocol writes _ihm_modeling_protocol. All steps belong to a single
// protocol; each step starts from the models the previous step ended with.
type ModelProtocol struct {
	base
	sys       System
	datasets  *registry.Datasets
	protocols []*ihm.Protocol
}

func NewModelProtocol(sys System, datasets *registry.Datasets) *ModelProtocol {
	return &ModelProtocol{sys: sys, datasets: datasets}
}

// Add registers a protocol step, assigns its ID, and records every dataset
// registered so far as its input.
func (d *ModelProtocol) Add(p *ihm.Protocol) {
	d.protocols = append(d.protocols, p)
	p.ID = len(d.protocols)
	p.DatasetGroup = d.datasets.AllGroup()
}

// Last returns the most recently added protocol, or nil.
func (d *ModelProtocol) Last() *ihm.Protocol {
	if len(d.protocols) == 0 {
		return nil
	}
	return d.protocols[len(d.protocols)-1]
}

func (d *ModelProtocol) Categories() []string { return []string{"_ihm_modeling_protocol"} }
func (d *ModelProtocol) References() []string {
	return []string{"_ihm_struct_assembly", "_ihm_dataset_list"}
}

func (d *ModelProtocol) Dump(w *cif.Writer) error {
	w.WriteLoop("_ihm_modeling_protocol", []string{
		"ordinal_id", "protocol_id", "step_id", "struct_assembly_id",
		"dataset_group_id", "struct_assembly_description", "protocol_name",
		"step_name", "step_method", "num_models_begin", "num_models_end",
		"multi_scale_flag", "multi_state_flag", "time_ordered_flag",
	}, func(l *cif.Loop) {
		begin := 0
		for _, p := range d.protocols {
			l.Write(cif.Row{
				"ordinal_id":         l.Rows() + 1,
				"protocol_id":        1,
				"step_id":            p.ID,
				"struct_assembly_id": d.sys.ModeledAssembly().ID,
				"dataset_group_id":   p.DatasetGroup.ID,
				"step_name":          "Sampling",
				"step_method":        p.StepMethod,
				"num_models_begin":   begin,
				"num_models_end":     p.NumModelsEnd,
				"multi_scale_flag":   true,
				"multi_state_flag":   false,
				"time_ordered_flag":  false,
			})
			begin = p.NumModelsEnd
		}
	})
	return w.Err()
}

// PostProcess writes _ihm_modeling_post_process.
type PostProcess struct {
	base
	steps []*ihm.PostProcess
}

func NewPostProcess() *PostProcess { return &PostProcess{} }

// Add registers a post-processing step and assigns its ID.
func (d *PostProcess) Add(p *ihm.PostProcess) {
	d.steps = append(d.steps, p)
	p.ID = len(d.steps)
}

func (d *PostProcess) Categories() []string { return []string{"_ihm_modeling_post_process"} }
func (d *PostProcess) References() []string { return []string{"_ihm_modeling_protocol"} }

func (d *PostProcess) Dump(w *cif.Writer) error {
	w.WriteLoop("_ihm_modeling_post_process", []string{
		"id", "protocol_id", "analysis_id", "step_id", "type", "feature",
		"num_models_begin", "num_models_end",
	}, func(l *cif.Loop) {
		for _, p := range d.steps {
			l.Write(cif.Row{
				"id":               p.ID,
				"protocol_id":      1,
				"analysis_id":      1,
				"step_id":          p.ID,
				"type":             p.Type,
				"feature":          p.Feature,
				"num_models_begin": p.NumModelsBegin,
				"num_models_end":   p.NumModelsEnd,
			})
		}
	})
	return w.Err()
}

// Ensemble writes _ihm_ensemble_info.
type Ensemble struct {
	base
	ensembles []*ihm.Ensemble
}

func NewEnsemble() *Ensemble { return &Ensemble{} }

// Add registers an ensemble and assigns its ID.
func (d *Ensemble) Add(e *ihm.Ensemble) {
	d.ensembles = append(d.ensembles, e)
	e.ID = len(d.ensembles)
}

func (d *Ensemble) Categories() []string { return []string{"_ihm_ensemble_info"} }
func (d *Ensemble) References() []string {
	return []string{"_ihm_modeling_post_process", "_ihm_model_list"}
}

func (d *Ensemble) Dump(w *cif.Writer) error {
	w.WriteLoop("_ihm_ensemble_info", []string{
		"ensemble_id", "ensemble_name", "post_process_id", "model_group_id",
		"ensemble_clustering_method", "ensemble_clustering_feature",
		"num_ensemble_models", "num_ensemble_models_deposited",
		"ensemble_precision_value",
	}, func(l *cif.Loop) {
		for _, e := range d.ensembles {
			postProcess, group, feature := any(cif.Omitted), any(cif.Omitted), any(cif.Omitted)
			if e.PostProcess != nil {
				postProcess, feature = e.PostProcess.ID, e.PostProcess.Feature
			}
			if e.Group != nil {
				group = e.Group.ID
			}
			precision := any(cif.Unknown)
			if e.Precision != nil {
				precision = *e.Precision
			}
			l.Write(cif.Row{
				"ensemble_id":                   e.ID,
				"ensemble_name":                 e.Name,
				"post_process_id":               postProcess,
				"model_group_id":                group,
				"ensemble_clustering_feature":   feature,
				"num_ensemble_models":           e.NumModels,
				"num_ensemble_models_deposited": e.NumDeposited,
				"ensemble_precision_value":      precision,
			})
		}
	})
	return w.Err()
}
