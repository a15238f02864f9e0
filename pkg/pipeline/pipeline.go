// Package pipeline runs an export from files on disk to an mmCIF document.
//
// This package is the single entry point the CLI uses. It keeps the
// exporter itself free of file discovery, caching and instrumentation.
//
// # Stages
//
//  1. Load: read the JSON job and the TOML metadata files
//  2. Export: replay the job against an [export.Output] and flush it
//
// Between the stages the runner looks the document up in the cache, keyed
// by the content of the job, the metadata and every input file the job
// names. A hit skips the export stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    JobPath:       "job.json",
//	    MetadataPaths: []string{"metadata.toml"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Document)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/errors"
)

// Default values shared by the CLI and library callers.
const (
	DefaultLineLength      = cif.DefaultLineLength
	DefaultMultiLineLength = cif.DefaultMultiLineLength

	// DefaultTTL is how long a cached document stays valid. Entries are
	// content-addressed, so expiry only bounds the cache size.
	DefaultTTL = 30 * 24 * time.Hour

	// minLineLength leaves room for the longest column name plus a value.
	minLineLength = 40
)

// Options configures one export run.
type Options struct {
	JobPath       string   `json:"job_path"`
	MetadataPaths []string `json:"metadata_paths,omitempty"`

	// EntryID overrides the job's entry_id.
	EntryID string `json:"entry_id,omitempty"`

	LineLength      int `json:"line_length,omitempty"`
	MultiLineLength int `json:"multi_line_length,omitempty"`

	// Refresh bypasses cache reads. The fresh document is still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the outcome of a run.
type Result struct {
	Document []byte
	Blocks   []cif.Block

	// Skipped lists records dropped because an input file could not be
	// read.
	Skipped []string

	CacheHit bool
	Stats    Stats
}

// Stats contains run timings and sizes.
type Stats struct {
	Components int
	Datasets   int
	LoadTime   time.Duration
	ExportTime time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.JobPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "job path is required")
	}
	if o.LineLength == 0 {
		o.LineLength = DefaultLineLength
	}
	if o.MultiLineLength == 0 {
		o.MultiLineLength = DefaultMultiLineLength
	}
	if o.LineLength < minLineLength {
		return errors.New(errors.ErrCodeInvalidInput, "line length %d is below the minimum of %d", o.LineLength, minLineLength)
	}
	if o.MultiLineLength < 1 || o.MultiLineLength > o.LineLength {
		return errors.New(errors.ErrCodeInvalidInput,
			"multi-line length must be between 1 and the line length (%d)", o.LineLength)
	}
	if o.EntryID != "" {
		if err := errors.ValidateComponentName(o.EntryID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "entry id")
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// String summarizes the options for logs.
func (o *Options) String() string {
	return fmt.Sprintf("job=%s metadata=%v entry=%q", o.JobPath, o.MetadataPaths, o.EntryID)
}
