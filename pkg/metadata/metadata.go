// Package metadata describes software, citations and deposition
// repositories attached to an exported model.
//
// Metadata is usually loaded from a TOML file:
//
//	[[software]]
//	name = "Integrative Modeling Platform (IMP)"
//	classification = "integrative model building"
//	version = "2.8.0"
//	url = "https://integrativemodeling.org"
//
//	[[citation]]
//	title = "Structural characterization by cross-linking ..."
//	journal = "Mol Cell Proteomics"
//	volume = "13"
//	pages = ["2927", "2943"]
//	year = 2014
//	pmid = "25161197"
//	doi = "10.1074/mcp.M114.041673"
//	authors = ["Shi Y", "Fernandez-Martinez J"]
//
//	[[repository]]
//	doi = "10.5281/zenodo.46266"
//	root = ".."
package metadata

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ihmcif/pkg/errors"
)

// Item is one piece of metadata: a [Software], [Citation], [Repository] or
// [RepositoryFile].
type Item interface {
	isItem()
}

// Software is a program used in the modeling.
type Software struct {
	Name           string `toml:"name" json:"name"`
	Classification string `toml:"classification" json:"classification"`
	Description    string `toml:"description" json:"description"`
	Version        string `toml:"version" json:"version"`
	Type           string `toml:"type" json:"type"`
	URL            string `toml:"url" json:"url"`
}

// Citation is a publication describing the modeling.
type Citation struct {
	Title   string   `toml:"title" json:"title"`
	Journal string   `toml:"journal" json:"journal"`
	Volume  string   `toml:"volume" json:"volume"`
	Pages   []string `toml:"pages" json:"pages"` // first and optional last page
	Year    int      `toml:"year" json:"year"`
	PMID    string   `toml:"pmid" json:"pmid"`
	DOI     string   `toml:"doi" json:"doi"`
	Authors []string `toml:"authors" json:"authors"`
}

// Repository is a deposition of the modeling files, such as a Zenodo
// record. Root is the local directory corresponding to the top of the
// repository.
type Repository struct {
	DOI  string `toml:"doi" json:"doi"`
	Root string `toml:"root" json:"root"`
	URL  string `toml:"url" json:"url"`
}

// Path returns the repository file for a local path.
func (r Repository) Path(path string) RepositoryFile {
	rel := path
	if r.Root != "" {
		if p, err := filepath.Rel(r.Root, path); err == nil {
			rel = p
		}
	}
	return RepositoryFile{DOI: r.DOI, Path: filepath.ToSlash(rel)}
}

// RepositoryFile is a single file within a repository.
type RepositoryFile struct {
	DOI  string `toml:"doi" json:"doi"`
	Path string `toml:"path" json:"path"`
}

func (Software) isItem()       {}
func (Citation) isItem()       {}
func (Repository) isItem()     {}
func (RepositoryFile) isItem() {}

// Metadata is the content of a metadata file.
type Metadata struct {
	Software     []Software       `toml:"software"`
	Citations    []Citation       `toml:"citation"`
	Repositories []Repository     `toml:"repository"`
	Files        []RepositoryFile `toml:"repository_file"`
}

// Parse decodes a TOML metadata document.
func Parse(data []byte) (*Metadata, error) {
	var m Metadata
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse metadata")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown metadata key %q", undecoded[0].String())
	}
	for i := range m.Software {
		if m.Software[i].Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "software %d has no name", i+1)
		}
		if m.Software[i].Type == "" {
			m.Software[i].Type = "program"
		}
	}
	return &m, nil
}

// Load reads and decodes a TOML metadata file.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "metadata file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "metadata file %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "metadata file %s", path)
	}
	return m, nil
}

// Items returns the metadata as a list. Repository files come before
// repositories so that an explicit file takes precedence when locations
// are resolved.
func (m *Metadata) Items() []Item {
	var items []Item
	for _, s := range m.Software {
		items = append(items, s)
	}
	for _, c := range m.Citations {
		items = append(items, c)
	}
	for _, f := range m.Files {
		items = append(items, f)
	}
	for _, r := range m.Repositories {
		items = append(items, r)
	}
	return items
}
