package ihm

import "fmt"

// DatasetKind is the type of data a dataset points to.
type DatasetKind int

const (
	DatasetCXMS DatasetKind = iota + 1
	DatasetEMMicrographs
	DatasetEM2DClass
	DatasetComparativeModel
	DatasetExperimentalModel
	DatasetEMVolume
)

// DataType returns the _ihm_dataset_list.data_type value for the kind.
func (k DatasetKind) DataType() string {
	switch k {
	case DatasetCXMS:
		return "CX-MS data"
	case DatasetEMMicrographs:
		return "EM raw micrographs"
	case DatasetEM2DClass:
		return "2DEM class average"
	case DatasetComparativeModel:
		return "Comparative model"
	case DatasetExperimentalModel:
		return "Experimental model"
	case DatasetEMVolume:
		return "3DEM volume"
	default:
		return ""
	}
}

// Location is where a dataset is stored: a [RepoLocation] or a [DBLocation].
type Location interface {
	// DatabaseHosted reports whether the data lives in an official database.
	DatabaseHosted() bool
	locationKey() locationKey
}

type locationKey struct {
	db      bool
	a, b, c string
}

// RepoLocation points to a file in a repository. Empty fields are unknown.
type RepoLocation struct {
	DOI  string
	Path string
}

// DatabaseHosted implements [Location].
func (RepoLocation) DatabaseHosted() bool { return false }

func (l RepoLocation) locationKey() locationKey {
	return locationKey{a: l.DOI, b: l.Path}
}

// DBLocation points to an entry in an official database such as PDB or EMDB.
type DBLocation struct {
	DBName     string
	AccessCode string
	Version    string

	// Details is display only and does not affect equality.
	Details string
}

// DatabaseHosted implements [Location].
func (DBLocation) DatabaseHosted() bool { return true }

func (l DBLocation) locationKey() locationKey {
	return locationKey{db: true, a: l.DBName, b: l.AccessCode, c: l.Version}
}

// Dataset is a pointer to experimental or computational input data.
type Dataset struct {
	ID       int
	Kind     DatasetKind
	Location Location

	// Micrographs is the number of raw micrographs (DatasetEMMicrographs).
	Micrographs int

	// AllowDuplicates exempts the dataset from deduplication, so that every
	// registration gets its own ID.
	AllowDuplicates bool
}

// DatasetKey is the structural equality key of a dataset.
type DatasetKey struct {
	kind        DatasetKind
	loc         locationKey
	micrographs int
}

// Key returns the structural equality key of d. It panics if d has no
// location or an unknown kind, since such a dataset cannot be compared.
func (d *Dataset) Key() DatasetKey {
	if d.Kind.DataType() == "" {
		panic(fmt.Sprintf("ihm: dataset has unknown kind %d", d.Kind))
	}
	if d.Location == nil {
		panic(fmt.Sprintf("ihm: %s dataset has no location", d.Kind.DataType()))
	}
	k := DatasetKey{kind: d.Kind, loc: d.Location.locationKey()}
	if d.Kind == DatasetEMMicrographs {
		k.micrographs = d.Micrographs
	}
	return k
}

// NewCXMSDataset returns a cross-linking mass spectrometry dataset.
func NewCXMSDataset(loc RepoLocation) *Dataset {
	return &Dataset{Kind: DatasetCXMS, Location: loc}
}

// NewEMMicrographsDataset returns a raw micrographs dataset.
func NewEMMicrographsDataset(number int, loc RepoLocation) *Dataset {
	return &Dataset{Kind: DatasetEMMicrographs, Location: loc, Micrographs: number}
}

// NewEM2DClassDataset returns a 2D class average dataset.
func NewEM2DClassDataset(loc RepoLocation) *Dataset {
	return &Dataset{Kind: DatasetEM2DClass, Location: loc}
}

// NewComparativeModelDataset returns a comparative model dataset.
func NewComparativeModelDataset(loc RepoLocation) *Dataset {
	return &Dataset{Kind: DatasetComparativeModel, Location: loc}
}

// NewPDBDataset returns an experimental structure deposited in the PDB.
func NewPDBDataset(code, version, details string) *Dataset {
	return &Dataset{
		Kind:     DatasetExperimentalModel,
		Location: DBLocation{DBName: "PDB", AccessCode: code, Version: version, Details: details},
	}
}

// NewEMDBDataset returns an EM density map deposited in EMDB.
func NewEMDBDataset(code string, allowDuplicates bool) *Dataset {
	return &Dataset{
		Kind:            DatasetEMVolume,
		Location:        DBLocation{DBName: "EMDB", AccessCode: code},
		AllowDuplicates: allowDuplicates,
	}
}

// DatasetGroup is an immutable snapshot of registered datasets.
type DatasetGroup struct {
	ID       int
	Datasets []*Dataset
}
