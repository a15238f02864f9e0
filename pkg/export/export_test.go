package export

import (
	"bytes"
	stderrors "errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/ihmcif/pkg/errors"
	"github.com/matzehuels/ihmcif/pkg/ihm"
	"github.com/matzehuels/ihmcif/pkg/metadata"
)

// record places each value at its column of a fixed-width PDB line.
func record(fields map[int]string) string {
	line := []byte(strings.Repeat(" ", 80))
	for col, v := range fields {
		copy(line[col:], v)
	}
	return strings.TrimRight(string(line), " ")
}

var experimentalPDB = strings.Join([]string{
	record(map[int]string{0: "HEADER", 10: "TRANSCRIPTION", 50: "29-JUL-14", 62: "4UUU"}),
	"TITLE     TEST STRUCTURE",
	record(map[int]string{
		0: "HELIX", 15: "MET", 19: "A", 21: "   1", 27: "LYS", 31: "A", 33: "   2", 38: " 1", 71: "    2",
	}),
}, "\n") + "\n"

func files(m map[string]string) func(string) ([]byte, error) {
	return func(path string) ([]byte, error) {
		s, ok := m[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return []byte(s), nil
	}
}

func TestFlushGolden(t *testing.T) {
	out := New(Options{EntryID: "test"})
	out.AddComponent("Rpb1", true)
	if _, err := out.AddComponentSequence("Rpb1", "MK"); err != nil {
		t.Fatal(err)
	}
	if err := out.AddBeadFragment(BeadFragment{Component: "Rpb1", Start: 1, End: 2, Count: 1}); err != nil {
		t.Fatal(err)
	}
	out.AddReplicaExchange(ihm.ReplicaExchange{MonteCarlo: true, Frames: 10})
	site := ihm.Site{X: 1, Y: 2, Z: 3, ResidueName: "MET", Chain: "A", ResidueIndex: 1, Radius: 2}
	if _, err := out.AddModel([]ihm.Site{site}, nil); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := out.Flush(&buf); err != nil {
		t.Fatal(err)
	}

	want := `data_test
_entry.id test
#
loop_
_chem_comp.id
_chem_comp.type
MET 'L-peptide linking'
LYS 'L-peptide linking'
#
#
loop_
_entity.id
_entity.type
_entity.src_method
_entity.pdbx_description
_entity.formula_weight
_entity.pdbx_number_of_molecules
_entity.details
1 polymer man Rpb1 ? 1 ?
#
#
loop_
_entity_poly.entity_id
_entity_poly.type
_entity_poly.nstd_linkage
_entity_poly.nstd_monomer
_entity_poly.pdbx_strand_id
_entity_poly.pdbx_seq_one_letter_code
_entity_poly.pdbx_seq_one_letter_code_can
1 polypeptide(L) no no A MK MK
#
#
loop_
_entity_poly_seq.entity_id
_entity_poly_seq.num
_entity_poly_seq.mon_id
_entity_poly_seq.hetero
1 1 MET .
1 2 LYS .
#
#
loop_
_struct_asym.id
_struct_asym.entity_id
_struct_asym.details
A 1 Rpb1
#
#
loop_
_ihm_struct_assembly.ordinal_id
_ihm_struct_assembly.assembly_id
_ihm_struct_assembly.entity_description
_ihm_struct_assembly.entity_id
_ihm_struct_assembly.asym_id
_ihm_struct_assembly.seq_id_begin
_ihm_struct_assembly.seq_id_end
1 1 Rpb1 1 A 1 2
#
#
loop_
_ihm_model_representation.ordinal_id
_ihm_model_representation.representation_id
_ihm_model_representation.segment_id
_ihm_model_representation.entity_id
_ihm_model_representation.entity_description
_ihm_model_representation.entity_asym_id
_ihm_model_representation.seq_id_begin
_ihm_model_representation.seq_id_end
_ihm_model_representation.model_object_primitive
_ihm_model_representation.starting_model_id
_ihm_model_representation.model_mode
_ihm_model_representation.model_granularity
_ihm_model_representation.model_object_count
1 1 1 1 Rpb1 A 1 2 sphere . flexible by-feature 1
#
#
loop_
_ihm_modeling_protocol.ordinal_id
_ihm_modeling_protocol.protocol_id
_ihm_modeling_protocol.step_id
_ihm_modeling_protocol.struct_assembly_id
_ihm_modeling_protocol.dataset_group_id
_ihm_modeling_protocol.struct_assembly_description
_ihm_modeling_protocol.protocol_name
_ihm_modeling_protocol.step_name
_ihm_modeling_protocol.step_method
_ihm_modeling_protocol.num_models_begin
_ihm_modeling_protocol.num_models_end
_ihm_modeling_protocol.multi_scale_flag
_ihm_modeling_protocol.multi_state_flag
_ihm_modeling_protocol.time_ordered_flag
1 1 1 1 1 . . Sampling 'Replica exchange monte carlo' 0 10 YES NO NO
#
#
loop_
_ihm_model_list.ordinal_id
_ihm_model_list.model_id
_ihm_model_list.model_group_id
_ihm_model_list.model_group_name
_ihm_model_list.assembly_id
_ihm_model_list.protocol_id
1 1 1 'All models' 1 1
#
#
loop_
_ihm_sphere_obj_site.ordinal_id
_ihm_sphere_obj_site.entity_id
_ihm_sphere_obj_site.seq_id_begin
_ihm_sphere_obj_site.seq_id_end
_ihm_sphere_obj_site.asym_id
_ihm_sphere_obj_site.Cartn_x
_ihm_sphere_obj_site.Cartn_y
_ihm_sphere_obj_site.Cartn_z
_ihm_sphere_obj_site.object_radius
_ihm_sphere_obj_site.model_id
1 1 1 1 A 0.000 0.000 0.000 2.000 1
#
`
	if got := buf.String(); got != want {
		t.Errorf("Flush() output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// populate builds an output that exercises every category.
func populate(t *testing.T) *Output {
	t.Helper()
	out := New(Options{
		EntryID:  "full",
		Software: []metadata.Software{{Name: "IMP", Version: "2.8.0"}},
		ReadFile: files(map[string]string{
			"a.pdb":                  experimentalPDB,
			"out/cluster.0/stat.out": "a\nb\nc\n",
			"out/precision.0.0.out":  "All out/cluster.0/ average centroid distance 12.5\n",
		}),
	})
	out.AddMetadata(
		metadata.Citation{Title: "Test", Authors: []string{"Smith J", "Jones K"}},
		metadata.Repository{DOI: "10.5281/zenodo.1", Root: "."},
	)
	out.AddComponent("Rpb1", true)
	out.AddComponent("Rpb2", false)
	if _, err := out.AddComponentSequence("Rpb1", "MKLV"); err != nil {
		t.Fatal(err)
	}
	if _, err := out.AddComponentSequence("Rpb2", "GG"); err != nil {
		t.Fatal(err)
	}

	_, err := out.AddPDBFragment(PDBFragment{
		Component: "Rpb1", Start: 1, End: 2, File: "a.pdb", Chain: "A", Rigid: true,
		Atoms: []ihm.StartingAtom{{Serial: 1, Element: "N", Name: "N", ResidueName: "MET", ResidueIndex: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := out.AddBeadFragment(BeadFragment{Component: "Rpb1", Start: 3, End: 4, Count: 1}); err != nil {
		t.Fatal(err)
	}

	xl := out.AddExperimentalCrossLink(1, "Rpb1", 4, "Rpb1", "DSS", 21, out.CrossLinkDataset("xl.csv"))
	out.AddCrossLink(xl, ihm.Particle{Component: "Rpb1", ByResidue: true}, ihm.Particle{Component: "Rpb1"}, 1, 2, 0.05)
	out.AddEM2DRestraint(EM2DRestraint{Images: []string{"class1.pgm"}, PixelSize: 2.2, ImageResolution: 35, Projections: 10000})
	out.AddEM3DRestraint("EMD-1234", 100)

	out.AddReplicaExchange(ihm.ReplicaExchange{Frames: 1000})
	_, err = out.AddReplicaExchangeAnalysis(ReplicaExchangeAnalysis{OutputDir: "out", Clusters: 1},
		ModelLoaderFunc(func(cluster, n int) ([]ihm.Site, error) {
			return []ihm.Site{
				{X: 1, AtomName: "CA", ResidueName: "MET", Chain: "A", ResidueIndex: 1},
				{X: 2, ResidueName: "LEU", Chain: "A", ResidueIndex: 3, Residues: []int{3, 4}, Radius: 3},
			}, nil
		}))
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestFlushCategoryOrder(t *testing.T) {
	out := populate(t)
	var buf bytes.Buffer
	if err := out.Flush(&buf); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"_entry",
		"_audit_author",
		"_software",
		"_citation",
		"_citation_author",
		"_chem_comp",
		"_entity",
		"_entity_poly",
		"_entity_poly_seq",
		"_struct_asym",
		"_ihm_struct_assembly",
		"_ihm_model_representation",
		"_ihm_dataset_list",
		"_ihm_dataset_other",
		"_ihm_dataset_related_db_reference",
		"_ihm_cross_link_list",
		"_ihm_cross_link_restraint",
		"_ihm_2dem_class_average_restraint",
		"_ihm_3dem_restraint",
		"_ihm_starting_model_details",
		"_ihm_starting_model_coord",
		"_struct_conf_type",
		"_struct_conf",
		"_ihm_modeling_protocol",
		"_ihm_modeling_post_process",
		"_ihm_ensemble_info",
		"_ihm_model_list",
		"_atom_site",
		"_ihm_sphere_obj_site",
	}
	blocks := out.Blocks()
	var got []string
	for _, b := range blocks {
		got = append(got, b.Name)
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("block order:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	// Every block also appears in the document, in the same order.
	doc := buf.String()
	last := -1
	for _, name := range want {
		i := strings.Index(doc, name+".")
		if i < last {
			t.Errorf("%s written before a preceding category", name)
		}
		last = i
	}
}

func TestFlushDocumentRows(t *testing.T) {
	out := populate(t)
	var buf bytes.Buffer
	if err := out.Flush(&buf); err != nil {
		t.Fatal(err)
	}
	doc := buf.String()

	for _, want := range []string{
		// The modeled assembly is split off by the non-modeled Rpb2.
		"1 1 Rpb1 1 A 1 4\n2 1 Rpb2 2 . 1 2\n3 2 Rpb1 1 A 1 4\n",
		"1 1 1 1 Rpb1 A 1 2 sphere Rpb1-m1 rigid by-residue .\n",
		"HELX_P1 HELX_P MET A 1 LYS A 2\n",
		"1 2 'CX-MS data' 10.5281/zenodo.1 xl.csv\n",
		"1 1 1 1 cluster RMSD 1000 3\n",
		"1 'Cluster 1' 1 1 . RMSD 3 1 12.500\n",
		"1 1 1 'Cluster 1' 2 1\n",
		// Models from an analysis are not recentered.
		"1 CA MET 1 A 1.000 0.000 0.000 1 1\n",
		"1 1 3 4 A 2.000 0.000 0.000 3.000 1\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestAddComponentAssemblies(t *testing.T) {
	out := New(Options{})
	out.AddComponent("A", true)
	if out.ModeledAssembly() != out.complete {
		t.Fatal("modeled and complete assembly should be shared until a non-modeled component")
	}
	out.AddComponent("B", false)
	out.AddComponent("C", true)
	out.AddComponent("A", true)

	if got := strings.Join(out.complete.Components, ","); got != "A,B,C" {
		t.Errorf("complete assembly = %s, want A,B,C", got)
	}
	modeled := out.ModeledAssembly()
	if got := strings.Join(modeled.Components, ","); got != "A,C" {
		t.Errorf("modeled assembly = %s, want A,C", got)
	}
	if out.complete.ID != 1 || modeled.ID != 2 {
		t.Errorf("assembly IDs = %d, %d, want 1, 2", out.complete.ID, modeled.ID)
	}
	if c, _ := out.Chain("C"); c != "B" {
		t.Errorf("Chain(C) = %q, want B", c)
	}
	if _, ok := out.Chain("B"); ok {
		t.Error("non-modeled component should have no chain")
	}
}

func TestAddComponentSequence(t *testing.T) {
	out := New(Options{})
	out.AddComponent("A", true)
	out.AddComponent("B", true)

	e1, err := out.AddComponentSequence("A", "MKV")
	if err != nil {
		t.Fatal(err)
	}
	e2, err := out.AddComponentSequence("B", "MKV")
	if err != nil {
		t.Fatal(err)
	}
	if e1 != e2 || e1.Description != "A" {
		t.Errorf("equal sequences should share an entity: %+v %+v", e1, e2)
	}

	if _, err := out.AddComponentSequence("Z", "MKV"); !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Errorf("unknown component: err = %v", err)
	}
	if _, err := out.AddComponentSequence("A", "mk1"); !errors.Is(err, errors.ErrCodeInvalidSequence) {
		t.Errorf("invalid sequence: err = %v", err)
	}
}

func TestDatasetDedup(t *testing.T) {
	out := New(Options{})
	d1 := out.CrossLinkDataset("xl.csv")
	d2 := out.CrossLinkDataset("xl.csv")
	d3 := out.CrossLinkDataset("other.csv")
	if d1 != d2 || d1.ID != 1 || d3.ID != 2 {
		t.Errorf("cross-link datasets: %d %d %d", d1.ID, d2.ID, d3.ID)
	}

	r1 := out.AddEM3DRestraint("EMD-1", 10)
	r2 := out.AddEM3DRestraint("EMD-1", 20)
	if r1.Dataset == r2.Dataset || r2.Dataset.ID != 4 {
		t.Errorf("EMDB datasets should not be shared: %d %d", r1.Dataset.ID, r2.Dataset.ID)
	}
	if n := len(out.Datasets()); n != 4 {
		t.Errorf("registered %d datasets, want 4", n)
	}
}

func TestAddExperimentalCrossLinkDropped(t *testing.T) {
	out := New(Options{})
	out.AddComponent("A", true)
	out.AddComponent("B", false)
	for name, seq := range map[string]string{"A": "MKV", "B": "MKV"} {
		if _, err := out.AddComponentSequence(name, seq); err != nil {
			t.Fatal(err)
		}
	}
	d := out.CrossLinkDataset("xl.csv")

	tests := []struct {
		name   string
		r1, r2 int
		c1, c2 string
	}{
		{"non-modeled component", 1, 2, "A", "B"},
		{"unknown component", 1, 2, "Z", "A"},
		{"residue out of range", 1, 4, "A", "A"},
		{"residue zero", 0, 1, "A", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xl := out.AddExperimentalCrossLink(tt.r1, tt.c1, tt.r2, tt.c2, "DSS", 21, d)
			if xl != nil {
				t.Fatalf("cross-link %+v should be dropped", xl)
			}
			if out.AddCrossLink(xl, ihm.Particle{}, ihm.Particle{}, 1, 1, 0.1) != nil {
				t.Error("AddCrossLink(nil) should return nil")
			}
		})
	}

	xl := out.AddExperimentalCrossLink(1, "A", 3, "A", "DSS", 21, d)
	if xl == nil || xl.ID != 1 {
		t.Fatalf("valid cross-link = %+v", xl)
	}
}

func TestAddPDBFragmentReadError(t *testing.T) {
	out := New(Options{ReadFile: files(nil)})
	out.AddComponent("A", true)
	if _, err := out.AddComponentSequence("A", "MKV"); err != nil {
		t.Fatal(err)
	}

	_, err := out.AddPDBFragment(PDBFragment{Component: "A", Start: 1, End: 3, File: "missing.pdb", Chain: "A"})
	var rerr *errors.RecordError
	if !stderrors.As(err, &rerr) || rerr.File != "missing.pdb" {
		t.Fatalf("err = %v, want *RecordError for missing.pdb", err)
	}
	if len(out.Datasets()) != 0 {
		t.Error("failed fragment should register no dataset")
	}

	var buf bytes.Buffer
	if err := out.Flush(&buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "_ihm_model_representation") {
		t.Error("failed fragment should not be represented")
	}
}

func TestAddFragmentUnknownComponent(t *testing.T) {
	out := New(Options{})
	if err := out.AddBeadFragment(BeadFragment{Component: "A", Start: 1, End: 2, Count: 1}); !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Errorf("err = %v, want INVALID_REFERENCE", err)
	}
	out.AddComponent("A", true)
	if _, err := out.AddComponentSequence("A", "MK"); err != nil {
		t.Fatal(err)
	}
	if err := out.AddBeadFragment(BeadFragment{Component: "A", Start: 2, End: 1, Count: 1}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestAddModel(t *testing.T) {
	out := New(Options{})
	out.AddComponent("A", true)
	if _, err := out.AddComponentSequence("A", "MK"); err != nil {
		t.Fatal(err)
	}
	site := ihm.Site{X: 2, Y: 4, Z: 6, AtomName: "CA", Chain: "A", ResidueIndex: 1}

	if _, err := out.AddModel([]ihm.Site{site}, nil); !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Errorf("model before protocol: err = %v", err)
	}
	out.AddReplicaExchange(ihm.ReplicaExchange{Frames: 5})

	bad := site
	bad.Chain = "Q"
	if _, err := out.AddModel([]ihm.Site{bad}, nil); !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Errorf("unknown chain: err = %v", err)
	}

	m1, err := out.AddModel([]ihm.Site{site}, nil)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := out.AddModel([]ihm.Site{site}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m1.Group != m2.Group || m1.Group.Name != DefaultModelGroup {
		t.Errorf("models should share the default group: %+v %+v", m1.Group, m2.Group)
	}
	if m1.Center != [3]float64{2, 4, 6} {
		t.Errorf("Center = %v", m1.Center)
	}
	if m2.ID != 2 {
		t.Errorf("m2.ID = %d, want 2", m2.ID)
	}
}

func TestReplicaExchangeAnalysis(t *testing.T) {
	out := New(Options{ReadFile: files(map[string]string{
		"run/cluster.0/stat.out": "1\n2\n3\n4",
		"run/cluster.1/stat.out": "1\n2\n",
		"run/precision.1.1.out":  "All run/cluster.0/ average centroid distance 9.0\n",
	})})
	out.AddComponent("A", true)
	if _, err := out.AddComponentSequence("A", "MK"); err != nil {
		t.Fatal(err)
	}
	loader := ModelLoaderFunc(func(cluster, n int) ([]ihm.Site, error) {
		return []ihm.Site{{X: 5, AtomName: "CA", ResidueName: "MET", Chain: "A", ResidueIndex: 1}}, nil
	})
	a := ReplicaExchangeAnalysis{OutputDir: "run", Clusters: 2}

	if _, err := out.AddReplicaExchangeAnalysis(a, loader); err == nil {
		t.Fatal("analysis before protocol should fail")
	}
	out.AddReplicaExchange(ihm.ReplicaExchange{Frames: 100})

	pp, err := out.AddReplicaExchangeAnalysis(a, loader)
	if err != nil {
		t.Fatal(err)
	}
	if pp.NumModelsBegin != 100 || pp.NumModelsEnd != 6 {
		t.Errorf("post process = %+v, want 100 -> 6", pp)
	}

	var buf bytes.Buffer
	if err := out.Flush(&buf); err != nil {
		t.Fatal(err)
	}
	doc := buf.String()
	for _, want := range []string{
		"1 'Cluster 1' 1 1 . RMSD 4 1 ?\n",
		// The precision file of cluster 1 only mentions cluster 0.
		"2 'Cluster 2' 1 2 . RMSD 2 1 ?\n",
		"1 CA MET 1 A 5.000 0.000 0.000 1 1\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q\n%s", want, doc)
		}
	}
}

func TestReplicaExchangeAnalysisMissingStats(t *testing.T) {
	out := New(Options{ReadFile: files(nil)})
	out.AddReplicaExchange(ihm.ReplicaExchange{Frames: 100})
	_, err := out.AddReplicaExchangeAnalysis(ReplicaExchangeAnalysis{OutputDir: "run", Clusters: 1}, nil)
	if !errors.Is(err, errors.ErrCodeFileRead) {
		t.Errorf("err = %v, want FILE_READ", err)
	}
}

func TestReplicaExchangeAnalysisNegativeCounts(t *testing.T) {
	tests := []struct {
		name string
		a    ReplicaExchangeAnalysis
	}{
		{"clusters", ReplicaExchangeAnalysis{OutputDir: "run", Clusters: -1}},
		{"deposit", ReplicaExchangeAnalysis{OutputDir: "run", Clusters: 1, Deposit: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := New(Options{ReadFile: files(map[string]string{"run/cluster.0/stat.out": "1\n"})})
			out.AddReplicaExchange(ihm.ReplicaExchange{Frames: 100})
			pp, err := out.AddReplicaExchangeAnalysis(tt.a, nil)
			if pp != nil {
				t.Error("post-process returned for invalid analysis")
			}
			var rerr *errors.RecordError
			if !stderrors.As(err, &rerr) {
				t.Fatalf("err = %v, want *RecordError", err)
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name  string
		items []metadata.Item
		want  ihm.RepoLocation
	}{
		{"no metadata", nil, ihm.RepoLocation{Path: "data/xl.csv"}},
		{
			"repository",
			[]metadata.Item{metadata.Repository{DOI: "10.1/x", Root: "data"}},
			ihm.RepoLocation{DOI: "10.1/x", Path: "xl.csv"},
		},
		{
			"repository file first",
			[]metadata.Item{
				metadata.Citation{Title: "t"},
				metadata.RepositoryFile{DOI: "10.1/y", Path: "all.zip"},
				metadata.Repository{DOI: "10.1/x", Root: "data"},
			},
			ihm.RepoLocation{DOI: "10.1/y", Path: "all.zip"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := New(Options{})
			out.AddMetadata(tt.items...)
			if got := out.Locate("data/xl.csv"); got != tt.want {
				t.Errorf("Locate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFlushNoPartialOutput(t *testing.T) {
	out := New(Options{})
	out.AddComponent("A", true)

	var buf bytes.Buffer
	err := out.Flush(&buf)
	if !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Fatalf("err = %v, want INVALID_REFERENCE", err)
	}
	if buf.Len() != 0 {
		t.Errorf("failed Flush wrote %q", buf.String())
	}
}

func TestModellerSoftware(t *testing.T) {
	modeller := "EXPDTA    THEORETICAL MODEL, MODELLER 9.18 2017/02/14 22:39:11\n" +
		"REMARK   6 TEMPLATE: 3jroC 33:C - 424:C MODELS 1:A - 404:A AT 30%\n"
	out := New(Options{ReadFile: files(map[string]string{"m.pdb": modeller})})
	out.AddComponent("A", true)
	if _, err := out.AddComponentSequence("A", strings.Repeat("M", 400)); err != nil {
		t.Fatal(err)
	}
	m, err := out.AddPDBFragment(PDBFragment{Component: "A", Start: 1, End: 400, File: "m.pdb", Chain: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if m.Dataset.Kind != ihm.DatasetComparativeModel || m.Dataset.Location != (ihm.RepoLocation{Path: "m.pdb"}) {
		t.Errorf("dataset = %+v", m.Dataset)
	}
	sw := out.Software()
	if len(sw) != 1 || sw[0].Name != "MODELLER" || sw[0].Version != "9.18" {
		t.Errorf("Software() = %+v", sw)
	}

	var buf bytes.Buffer
	if err := out.Flush(&buf); err != nil {
		t.Fatal(err)
	}
	if want := "1 1 A A 1 400 'comparative model' PDB 3JRO C 30.000 A-m1 1\n"; !strings.Contains(buf.String(), want) {
		t.Errorf("document missing %q", want)
	}
}

// loopRows returns the rows of a loop category in doc, keyed by column.
// Values must be unquoted tokens.
func loopRows(t *testing.T, doc, category string) []map[string]string {
	t.Helper()
	lines := strings.Split(doc, "\n")
	for i := 0; i < len(lines); i++ {
		if lines[i] != "loop_" || i+1 >= len(lines) || !strings.HasPrefix(lines[i+1], category+".") {
			continue
		}
		var keys []string
		j := i + 1
		for ; j < len(lines) && strings.HasPrefix(lines[j], category+"."); j++ {
			keys = append(keys, strings.TrimPrefix(lines[j], category+"."))
		}
		var rows []map[string]string
		for ; j < len(lines) && lines[j] != "#"; j++ {
			fields := strings.Fields(lines[j])
			if len(fields) != len(keys) {
				t.Fatalf("%s row %q has %d values, want %d", category, lines[j], len(fields), len(keys))
			}
			row := make(map[string]string, len(keys))
			for k, key := range keys {
				row[key] = fields[k]
			}
			rows = append(rows, row)
		}
		return rows
	}
	t.Fatalf("no %s loop in document", category)
	return nil
}

func TestFlushSingleComponent(t *testing.T) {
	const seq = "MKVLAAGIVG"
	names := []string{"MET", "LYS", "VAL", "LEU", "ALA", "ALA", "GLY", "ILE", "VAL", "GLY"}

	out := New(Options{ReadFile: files(map[string]string{"rpb1.pdb": "REMARK test\n"})})
	out.AddComponent("Rpb1", true)
	if _, err := out.AddComponentSequence("Rpb1", seq); err != nil {
		t.Fatal(err)
	}
	if _, err := out.AddPDBFragment(PDBFragment{
		Component: "Rpb1", Start: 1, End: 10, File: "rpb1.pdb", Chain: "A", Rigid: true,
	}); err != nil {
		t.Fatal(err)
	}
	out.AddReplicaExchange(ihm.ReplicaExchange{Frames: 1})
	sites := make([]ihm.Site, len(seq))
	for i := range sites {
		sites[i] = ihm.Site{
			X: float64(i), AtomName: "CA", ResidueName: names[i], Chain: "A", ResidueIndex: i + 1,
		}
	}
	if _, err := out.AddModel(sites, nil); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := out.Flush(&buf); err != nil {
		t.Fatal(err)
	}
	doc := buf.String()

	entities := loopRows(t, doc, "_entity")
	if len(entities) != 1 || entities[0]["id"] != "1" {
		t.Errorf("entities = %v, want one with id 1", entities)
	}

	assembly := loopRows(t, doc, "_ihm_struct_assembly")
	if len(assembly) != 1 {
		t.Fatalf("got %d assembly rows, want 1", len(assembly))
	}
	if a := assembly[0]; a["entity_id"] != "1" || a["seq_id_begin"] != "1" || a["seq_id_end"] != "10" {
		t.Errorf("assembly row = %v, want entity 1 residues 1-10", a)
	}

	repr := loopRows(t, doc, "_ihm_model_representation")
	if len(repr) != 1 {
		t.Fatalf("got %d representation rows, want 1", len(repr))
	}
	if r := repr[0]; r["entity_id"] != "1" || r["seq_id_begin"] != "1" || r["seq_id_end"] != "10" {
		t.Errorf("representation row = %v", r)
	}

	atoms := loopRows(t, doc, "_atom_site")
	if len(atoms) != 10 {
		t.Fatalf("got %d atom rows, want 10", len(atoms))
	}
	for i, a := range atoms {
		if a["label_entity_id"] != "1" {
			t.Errorf("atom %d entity = %s, want 1", i+1, a["label_entity_id"])
		}
		if want := strconv.Itoa(i + 1); a["label_seq_id"] != want {
			t.Errorf("atom %d seq_id = %s, want %s", i+1, a["label_seq_id"], want)
		}
		if a["label_comp_id"] != names[i] {
			t.Errorf("atom %d comp_id = %s, want %s", i+1, a["label_comp_id"], names[i])
		}
	}
}
