package dump

import (
	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/metadata"
)

// Entry writes the data block header and _entry. It must be first.
type Entry struct {
	base
	sys System
}

// NewEntry returns the entry dumper.
func NewEntry(sys System) *Entry { return &Entry{sys: sys} }

func (d *Entry) Categories() []string { return []string{"_entry"} }
func (d *Entry) References() []string { return nil }

func (d *Entry) Dump(w *cif.Writer) error {
	w.WriteHeader(d.sys.EntryID())
	w.WriteCategory("_entry", []string{"id"}, cif.Row{"id": d.sys.EntryID()})
	return w.Err()
}

// citations returns the citations in the system metadata.
func citations(sys System) []metadata.Citation {
	var out []metadata.Citation
	for _, m := range sys.Metadata() {
		if c, ok := m.(metadata.Citation); ok {
			out = append(out, c)
		}
	}
	return out
}

// AuditAuthor writes _audit_author: the unique authors of all citations,
// in order of first appearance.
type AuditAuthor struct {
	base
	sys System
}

// NewAuditAuthor returns the audit author dumper.
func NewAuditAuthor(sys System) *AuditAuthor { return &AuditAuthor{sys: sys} }

func (d *AuditAuthor) Categories() []string { return []string{"_audit_author"} }
func (d *AuditAuthor) References() []string { return nil }

func (d *AuditAuthor) Dump(w *cif.Writer) error {
	seen := make(map[string]bool)
	w.WriteLoop("_audit_author", []string{"name", "pdbx_ordinal"}, func(l *cif.Loop) {
		for _, c := range citations(d.sys) {
			for _, a := range c.Authors {
				if seen[a] {
					continue
				}
				seen[a] = true
				l.Write(cif.Row{"name": a, "pdbx_ordinal": l.Rows() + 1})
			}
		}
	})
	return w.Err()
}

// Citation writes _citation and _citation_author.
type Citation struct {
	base
	sys System
}

// NewCitation returns the citation dumper.
func NewCitation(sys System) *Citation { return &Citation{sys: sys} }

func (d *Citation) Categories() []string { return []string{"_citation", "_citation_author"} }
func (d *Citation) References() []string { return nil }

func (d *Citation) Dump(w *cif.Writer) error {
	cites := citations(d.sys)
	w.WriteLoop("_citation", []string{
		"id", "title", "journal_abbrev", "journal_volume", "page_first",
		"page_last", "year", "pdbx_database_id_PubMed", "pdbx_database_id_DOI",
	}, func(l *cif.Loop) {
		for i, c := range cites {
			first, last := any(cif.Unknown), any(cif.Omitted)
			if len(c.Pages) > 0 {
				first = c.Pages[0]
			}
			if len(c.Pages) > 1 {
				last = c.Pages[1]
			}
			year := any(cif.Unknown)
			if c.Year != 0 {
				year = c.Year
			}
			l.Write(cif.Row{
				"id":                      i + 1,
				"title":                   orUnknown(c.Title),
				"journal_abbrev":          orUnknown(c.Journal),
				"journal_volume":          orUnknown(c.Volume),
				"page_first":              first,
				"page_last":               last,
				"year":                    year,
				"pdbx_database_id_PubMed": orUnknown(c.PMID),
				"pdbx_database_id_DOI":    orUnknown(c.DOI),
			})
		}
	})
	w.WriteLoop("_citation_author", []string{"citation_id", "name", "ordinal"}, func(l *cif.Loop) {
		for i, c := range cites {
			for _, a := range c.Authors {
				l.Write(cif.Row{"citation_id": i + 1, "name": a, "ordinal": l.Rows() + 1})
			}
		}
	})
	return w.Err()
}

// Software writes _software: the configured software, MODELLER when a
// MODELLER model was used, then any software in the system metadata.
type Software struct {
	base
	sys      System
	software []metadata.Software
	modeller *metadata.Software
}

// NewSoftware returns the software dumper with a fixed initial list.
func NewSoftware(sys System, software []metadata.Software) *Software {
	return &Software{sys: sys, software: software}
}

// SetModeller records that a MODELLER model was used. Only the first call
// has an effect.
func (d *Software) SetModeller(version, date string) {
	if d.modeller != nil {
		return
	}
	d.modeller = &metadata.Software{
		Name:           "MODELLER",
		Classification: "comparative modeling",
		Description:    "Comparative modeling by satisfaction of spatial restraints, build " + date,
		Version:        version,
		Type:           "program",
		URL:            "https://salilab.org/modeller/",
	}
}

// All returns the software list in output order.
func (d *Software) All() []metadata.Software {
	all := append([]metadata.Software(nil), d.software...)
	if d.modeller != nil {
		all = append(all, *d.modeller)
	}
	for _, m := range d.sys.Metadata() {
		if s, ok := m.(metadata.Software); ok {
			all = append(all, s)
		}
	}
	return all
}

func (d *Software) Categories() []string { return []string{"_software"} }
func (d *Software) References() []string { return nil }

func (d *Software) Dump(w *cif.Writer) error {
	w.WriteLoop("_software", []string{
		"pdbx_ordinal", "name", "classification", "version", "type", "location",
	}, func(l *cif.Loop) {
		for _, s := range d.All() {
			typ := s.Type
			if typ == "" {
				typ = "program"
			}
			l.Write(cif.Row{
				"pdbx_ordinal":   l.Rows() + 1,
				"name":           s.Name,
				"classification": orUnknown(s.Classification),
				"version":        orUnknown(s.Version),
				"type":           typ,
				"location":       orUnknown(s.URL),
			})
		}
	})
	return w.Err()
}
