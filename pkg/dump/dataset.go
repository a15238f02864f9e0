package dump

import (
	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/ihm"
	"github.com/matzehuels/ihmcif/pkg/registry"
)

// Dataset writes _ihm_dataset_list and the location categories of every
// registered dataset.
type Dataset struct {
	base
	datasets *registry.Datasets
}

func NewDataset(datasets *registry.Datasets) *Dataset {
	return &Dataset{datasets: datasets}
}

func (d *Dataset) Categories() []string {
	return []string{"_ihm_dataset_list", "_ihm_dataset_other", "_ihm_dataset_related_db_reference"}
}
func (d *Dataset) References() []string { return nil }

// Finalize snapshots all datasets into a group, so that every dataset is
// listed even if no protocol used it.
func (d *Dataset) Finalize() error {
	d.datasets.AllGroup()
	return nil
}

func (d *Dataset) Dump(w *cif.Writer) error {
	w.WriteLoop("_ihm_dataset_list", []string{
		"ordinal_id", "id", "group_id", "data_type", "database_hosted",
	}, func(l *cif.Loop) {
		for _, g := range d.datasets.Groups() {
			for _, ds := range g.Datasets {
				l.Write(cif.Row{
					"ordinal_id":      l.Rows() + 1,
					"id":              ds.ID,
					"group_id":        g.ID,
					"data_type":       ds.Kind.DataType(),
					"database_hosted": ds.Location.DatabaseHosted(),
				})
			}
		}
	})

	w.WriteLoop("_ihm_dataset_other", []string{
		"id", "dataset_list_id", "data_type", "doi", "content_filename",
	}, func(l *cif.Loop) {
		for _, ds := range d.datasets.All() {
			loc, ok := ds.Location.(ihm.RepoLocation)
			if !ok {
				continue
			}
			l.Write(cif.Row{
				"id":               l.Rows() + 1,
				"dataset_list_id":  ds.ID,
				"data_type":        ds.Kind.DataType(),
				"doi":              orUnknown(loc.DOI),
				"content_filename": orUnknown(loc.Path),
			})
		}
	})

	w.WriteLoop("_ihm_dataset_related_db_reference", []string{
		"id", "dataset_list_id", "db_name", "access_code", "version",
		"data_type", "details",
	}, func(l *cif.Loop) {
		for _, ds := range d.datasets.All() {
			loc, ok := ds.Location.(ihm.DBLocation)
			if !ok {
				continue
			}
			l.Write(cif.Row{
				"id":              l.Rows() + 1,
				"dataset_list_id": ds.ID,
				"db_name":         loc.DBName,
				"access_code":     orUnknown(loc.AccessCode),
				"version":         orUnknown(loc.Version),
				"data_type":       ds.Kind.DataType(),
				"details":         orUnknown(loc.Details),
			})
		}
	})
	return w.Err()
}
