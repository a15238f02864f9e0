package io

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/ihmcif/pkg/errors"
	"github.com/matzehuels/ihmcif/pkg/export"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "job.json"), minimalJob)
	writeFile(t, filepath.Join(dir, "out", "cluster.0", "stat.out"), "a\nb\nc\n")

	j, err := ImportJob(filepath.Join(dir, "job.json"))
	if err != nil {
		t.Fatal(err)
	}
	j.Models = []Model{
		{Group: "Sampled", Sites: []Site{{X: 1, Chain: "A", Seq: 1, Radius: 2}}},
		{Group: "Sampled", Sites: []Site{{X: 3, Chain: "A", Seq: 1, Radius: 2}}},
	}

	out := export.New(export.Options{EntryID: j.EntryID})
	skipped, err := j.Apply(out)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// rpb1.pdb does not exist: its fragment is skipped, the rest is kept.
	if len(skipped) != 1 {
		t.Fatalf("skipped = %v, want one record", skipped)
	}
	var rerr *errors.RecordError
	if !stderrors.As(skipped[0], &rerr) || rerr.File != filepath.Join(dir, "rpb1.pdb") {
		t.Errorf("skipped[0] = %v, want record error for rpb1.pdb", skipped[0])
	}

	var buf bytes.Buffer
	if err := out.Flush(&buf); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	doc := buf.String()
	for _, want := range []string{
		"_entry.id test",
		"_ihm_cross_link_list.",
		"_ihm_cross_link_restraint.",
		"_ihm_modeling_protocol.",
		"_ihm_ensemble_info.",
		"Sampled",
		"Cluster 1",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if strings.Contains(doc, "_ihm_starting_model_details.") {
		t.Error("skipped fragment still produced a starting model")
	}
}

func TestApplyModelBeforeProtocol(t *testing.T) {
	j := &Job{
		Components: []Component{{Name: "A", Modeled: true, Sequence: "MK"}},
		Models:     []Model{{Sites: []Site{{Chain: "A", Seq: 1, Radius: 1}}}},
	}
	_, err := j.Apply(export.New(export.Options{}))
	if !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Fatalf("err = %v, want %v", err, errors.ErrCodeInvalidReference)
	}
	if !strings.Contains(err.Error(), "model 1") {
		t.Errorf("error %q does not name the model", err)
	}
}

func TestAnalysisLoad(t *testing.T) {
	a := &Analysis{
		Clusters: 2,
		Representatives: []Representative{
			{Cluster: 2, Sites: []Site{{Chain: "A", Seq: 1}}},
			{Cluster: 1, Sites: []Site{{Chain: "A", Seq: 2}}},
			{Cluster: 2, Sites: []Site{{Chain: "A", Seq: 3}}},
		},
	}
	tests := []struct {
		cluster, n int
		wantSeq    int
	}{
		{0, 0, 2},
		{1, 0, 1},
		{1, 1, 3},
	}
	for _, tt := range tests {
		s, err := a.load(tt.cluster, tt.n)
		if err != nil {
			t.Fatalf("load(%d, %d): %v", tt.cluster, tt.n, err)
		}
		if s[0].ResidueIndex != tt.wantSeq {
			t.Errorf("load(%d, %d) seq = %d, want %d", tt.cluster, tt.n, s[0].ResidueIndex, tt.wantSeq)
		}
	}
	if _, err := a.load(0, 1); err == nil {
		t.Error("expected error for missing representative")
	}
}
