package registry

import (
	"testing"

	"github.com/matzehuels/ihmcif/pkg/ihm"
)

func TestEntitiesAdd(t *testing.T) {
	r := NewEntities()

	a := r.Add("Rpb1", "MELVK")
	b := r.Add("Rpb1.copy", "MELVK")
	c := r.Add("Rpb2", "MELVKS")

	if a != b || a.ID != 1 {
		t.Errorf("equal sequences got entities %d and %d, want shared id 1", a.ID, b.ID)
	}
	if c.ID != 2 {
		t.Errorf("new sequence got id %d, want 2", c.ID)
	}
	if a.Description != "Rpb1" {
		t.Errorf("Description = %q, want first component", a.Description)
	}

	if e, ok := r.Get("Rpb1.copy"); !ok || e != a {
		t.Errorf("Get(Rpb1.copy) = %v, %v", e, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) found an entity")
	}
	if n := len(r.All()); n != 2 {
		t.Errorf("All() has %d entities, want 2", n)
	}
}

func TestEntitiesSequenceEquality(t *testing.T) {
	seqs := []string{"AAA", "AAA", "AAB", "aaa", "AAA ", "AAB"}
	r := NewEntities()
	ids := make([]int, len(seqs))
	for i, s := range seqs {
		ids[i] = r.Add(string(rune('a'+i)), s).ID
	}
	for i := range seqs {
		for j := range seqs {
			if (seqs[i] == seqs[j]) != (ids[i] == ids[j]) {
				t.Errorf("seq %q id %d vs seq %q id %d", seqs[i], ids[i], seqs[j], ids[j])
			}
		}
	}
}

func TestDatasetsAdd(t *testing.T) {
	r := NewDatasets()

	d1 := ihm.NewCXMSDataset(ihm.RepoLocation{Path: "xl.csv"})
	d2 := ihm.NewCXMSDataset(ihm.RepoLocation{Path: "xl.csv"})

	got1 := r.Add(d1)
	got2 := r.Add(d2)
	if got1 != d1 || got2 != d1 {
		t.Error("duplicate dataset was not collapsed to the first instance")
	}
	if got2.ID != 1 {
		t.Errorf("ID = %d, want 1", got2.ID)
	}
	if d2.ID != 0 {
		t.Errorf("discarded dataset was numbered %d", d2.ID)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestDatasetsAllowDuplicates(t *testing.T) {
	r := NewDatasets()

	d1 := r.Add(ihm.NewEMDBDataset("EMD-1883", true))
	d2 := r.Add(ihm.NewEMDBDataset("EMD-1883", true))
	if d1 == d2 || d1.ID != 1 || d2.ID != 2 {
		t.Errorf("got ids %d and %d, want distinct 1 and 2", d1.ID, d2.ID)
	}

	// A deduplicating dataset with the same key is still registered once.
	d3 := r.Add(ihm.NewEMDBDataset("EMD-1883", false))
	d4 := r.Add(ihm.NewEMDBDataset("EMD-1883", false))
	if d3 != d4 || d3.ID != 3 {
		t.Errorf("got ids %d and %d, want shared 3", d3.ID, d4.ID)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestDatasetsAllGroup(t *testing.T) {
	r := NewDatasets()
	r.Add(ihm.NewCXMSDataset(ihm.RepoLocation{Path: "a"}))

	g1 := r.AllGroup()
	g2 := r.AllGroup()
	if g1 != g2 || g1.ID != 1 {
		t.Fatalf("repeated AllGroup() gave groups %d and %d, want shared 1", g1.ID, g2.ID)
	}

	// A duplicate does not change the count, so the memo still holds.
	r.Add(ihm.NewCXMSDataset(ihm.RepoLocation{Path: "a"}))
	if g := r.AllGroup(); g != g1 {
		t.Errorf("AllGroup() after duplicate = group %d, want 1", g.ID)
	}

	r.Add(ihm.NewCXMSDataset(ihm.RepoLocation{Path: "b"}))
	g3 := r.AllGroup()
	if g3 == g1 || g3.ID != 2 || len(g3.Datasets) != 2 {
		t.Errorf("AllGroup() after growth = group %d with %d datasets, want group 2 with 2", g3.ID, len(g3.Datasets))
	}
	if g1.ID != 1 || len(g1.Datasets) != 1 {
		t.Errorf("earlier group changed: id %d with %d datasets", g1.ID, len(g1.Datasets))
	}

	groups := r.Groups()
	if len(groups) != 2 || groups[0] != g1 || groups[1] != g3 {
		t.Errorf("Groups() = %v", groups)
	}
}
