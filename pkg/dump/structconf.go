package dump

import (
	"fmt"

	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/ihm"
)

// StructConf writes _struct_conf_type and _struct_conf. Rigid PDB fragments
// whose starting model is a single experimental structure inherit that
// structure's helices, clipped to the fragment.
type StructConf struct {
	base
	sys System
	agg *Aggregator
}

func NewStructConf(sys System, agg *Aggregator) *StructConf {
	return &StructConf{sys: sys, agg: agg}
}

func (d *StructConf) Categories() []string { return []string{"_struct_conf_type", "_struct_conf"} }
func (d *StructConf) References() []string { return []string{"_chem_comp", "_struct_asym"} }

type helixSpan struct {
	helix      ihm.Helix
	begin, end int
	chain      any
}

// helices returns every inherited helix, in fragment order.
func (d *StructConf) helices() []helixSpan {
	var out []helixSpan
	for _, comp := range d.agg.Components() {
		for _, f := range d.agg.Fragments(comp) {
			if !f.Rigid || f.Kind != ihm.FragmentPDB || f.Model == nil || len(f.Model.Sources) != 1 {
				continue
			}
			src, ok := f.Model.Sources[0].(ihm.PDBSource)
			if !ok {
				continue
			}
			for _, h := range src.Helices {
				if h.StartChain != src.Chain || h.EndChain != src.Chain ||
					h.StartNumber < f.Start || h.EndNumber > f.End {
					continue
				}
				out = append(out, helixSpan{
					helix: h,
					begin: max(f.Start, h.StartNumber),
					end:   min(f.End, h.EndNumber),
					chain: chainOf(d.sys, comp),
				})
			}
		}
	}
	return out
}

func (d *StructConf) Dump(w *cif.Writer) error {
	helices := d.helices()
	if len(helices) == 0 {
		return w.Err()
	}
	w.WriteCategory("_struct_conf_type", []string{"id", "criteria", "reference"}, cif.Row{
		"id":        "HELX_P",
		"criteria":  cif.Unknown,
		"reference": cif.Unknown,
	})
	// Helix ids from the source files may collide across files, so they are
	// renumbered.
	w.WriteLoop("_struct_conf", []string{
		"id", "conf_type_id", "beg_label_comp_id", "beg_label_asym_id",
		"beg_label_seq_id", "end_label_comp_id", "end_label_asym_id",
		"end_label_seq_id",
	}, func(l *cif.Loop) {
		for i, h := range helices {
			l.Write(cif.Row{
				"id":                fmt.Sprintf("HELX_P%d", i+1),
				"conf_type_id":      "HELX_P",
				"beg_label_comp_id": h.helix.StartResidue,
				"beg_label_asym_id": h.chain,
				"beg_label_seq_id":  h.begin,
				"end_label_comp_id": h.helix.EndResidue,
				"end_label_asym_id": h.chain,
				"end_label_seq_id":  h.end,
			})
		}
	})
	return w.Err()
}
