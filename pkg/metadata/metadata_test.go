package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/ihmcif/pkg/errors"
)

const sample = `
[[software]]
name = "Integrative Modeling Platform (IMP)"
classification = "integrative model building"
description = "integrative model building"
version = "2.8.0"
url = "https://integrativemodeling.org"

[[software]]
name = "Phyre2"
classification = "protein homology modeling"
type = "server"

[[citation]]
title = "Structural characterization by cross-linking"
journal = "Mol Cell Proteomics"
volume = "13"
pages = ["2927", "2943"]
year = 2014
pmid = "25161197"
doi = "10.1074/mcp.M114.041673"
authors = ["Shi Y", "Fernandez-Martinez J"]

[[repository]]
doi = "10.5281/zenodo.46266"
root = "/data/nup84"

[[repository_file]]
doi = "10.5281/zenodo.58025"
path = "foo.spd"
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(m.Software) != 2 {
		t.Fatalf("got %d software, want 2", len(m.Software))
	}
	if m.Software[0].Type != "program" {
		t.Errorf("default Type = %q, want program", m.Software[0].Type)
	}
	if m.Software[1].Type != "server" {
		t.Errorf("Type = %q, want server", m.Software[1].Type)
	}

	if len(m.Citations) != 1 {
		t.Fatalf("got %d citations, want 1", len(m.Citations))
	}
	c := m.Citations[0]
	if c.Year != 2014 || len(c.Pages) != 2 || len(c.Authors) != 2 {
		t.Errorf("citation = %+v", c)
	}

	items := m.Items()
	if len(items) != 5 {
		t.Fatalf("Items() returned %d items, want 5", len(items))
	}
	if _, ok := items[3].(RepositoryFile); !ok {
		t.Errorf("items[3] = %T, want RepositoryFile", items[3])
	}
	if _, ok := items[4].(Repository); !ok {
		t.Errorf("items[4] = %T, want Repository", items[4])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[[software]\nname = 1"},
		{"unknown key", "[[software]]\nname = \"x\"\ncolour = \"red\""},
		{"unnamed software", "[[software]]\nversion = \"1\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("Parse() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(m.Repositories) != 1 {
		t.Errorf("got %d repositories, want 1", len(m.Repositories))
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRepositoryPath(t *testing.T) {
	tests := []struct {
		name string
		repo Repository
		path string
		want RepositoryFile
	}{
		{
			name: "under root",
			repo: Repository{DOI: "10.5281/zenodo.1", Root: "/data/nup84"},
			path: "/data/nup84/xl/dss.csv",
			want: RepositoryFile{DOI: "10.5281/zenodo.1", Path: "xl/dss.csv"},
		},
		{
			name: "outside root",
			repo: Repository{DOI: "10.5281/zenodo.1", Root: "/data/nup84"},
			path: "/data/other.csv",
			want: RepositoryFile{DOI: "10.5281/zenodo.1", Path: "../other.csv"},
		},
		{
			name: "no root",
			repo: Repository{DOI: "10.5281/zenodo.1"},
			path: "xl/dss.csv",
			want: RepositoryFile{DOI: "10.5281/zenodo.1", Path: "xl/dss.csv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.repo.Path(tt.path); got != tt.want {
				t.Errorf("Path(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}
