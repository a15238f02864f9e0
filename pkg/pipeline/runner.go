package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ihmcif/pkg/buildinfo"
	"github.com/matzehuels/ihmcif/pkg/cache"
	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/export"
	"github.com/matzehuels/ihmcif/pkg/io"
	"github.com/matzehuels/ihmcif/pkg/metadata"
	"github.com/matzehuels/ihmcif/pkg/observability"
)

// cacheKeyType labels document entries in cache hooks.
const cacheKeyType = "document"

// Software describes this exporter in the _software category of every
// document it writes.
func Software() metadata.Software {
	return metadata.Software{
		Name:           "ihmcif",
		Classification: "model deposition",
		Description:    "Integrative model export to mmCIF/IHM",
		Version:        buildinfo.Version,
		Type:           "program",
		URL:            "https://github.com/matzehuels/ihmcif",
	}
}

// Runner executes exports with caching.
//
// The Runner holds no per-run state; one Runner may serve several runs in
// sequence.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses the default charmbracelet logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// loaded is the output of the load stage.
type loaded struct {
	job      *io.Job
	metadata []*metadata.Metadata
}

// Execute runs load → cache lookup → export.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	opts.Logger.Debug("starting export", "options", opts.String())

	loadStart := time.Now()
	in, err := r.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Components = len(in.job.Components)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entryID := opts.EntryID
	if entryID == "" {
		entryID = in.job.EntryID
	}
	key := cache.DocumentKey(inputs(opts, in.job), cache.DocumentKeyOpts{
		Version:         buildinfo.Version,
		EntryID:         entryID,
		LineLength:      opts.LineLength,
		MultiLineLength: opts.MultiLineLength,
	})

	if !opts.Refresh {
		if c, ok := r.cached(ctx, key); ok {
			opts.Logger.Debug("document cache hit", "entry", entryID)
			result.Document = c.Document
			result.Blocks = c.Blocks
			result.Skipped = c.Skipped
			result.Stats.Datasets = c.Datasets
			result.CacheHit = true
			return result, nil
		}
	}

	exportStart := time.Now()
	observability.Pipeline().OnExportStart(ctx, entryID)
	doc, err := r.export(ctx, opts, entryID, in, result)
	result.Stats.ExportTime = time.Since(exportStart)
	observability.Pipeline().OnExportComplete(ctx, entryID, len(result.Blocks), result.Stats.ExportTime, err)
	if err != nil {
		return nil, err
	}
	result.Document = doc

	r.store(ctx, key, result)
	return result, nil
}

func (r *Runner) load(ctx context.Context, opts Options) (*loaded, error) {
	observability.Pipeline().OnLoadStart(ctx, opts.JobPath)
	start := time.Now()

	in, err := r.loadFiles(opts)
	components := 0
	if in != nil {
		components = len(in.job.Components)
	}
	observability.Pipeline().OnLoadComplete(ctx, opts.JobPath, components, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("loaded job",
		"path", opts.JobPath,
		"components", components,
		"fragments", len(in.job.Fragments),
		"metadata", len(in.metadata),
		"duration", time.Since(start))
	return in, nil
}

func (r *Runner) loadFiles(opts Options) (*loaded, error) {
	job, err := io.ImportJob(opts.JobPath)
	if err != nil {
		return nil, err
	}
	in := &loaded{job: job}
	for _, path := range opts.MetadataPaths {
		m, err := metadata.Load(path)
		if err != nil {
			return nil, err
		}
		in.metadata = append(in.metadata, m)
	}
	return in, nil
}

func (r *Runner) export(ctx context.Context, opts Options, entryID string, in *loaded, result *Result) ([]byte, error) {
	software := []metadata.Software{Software()}
	var items []metadata.Item
	for _, m := range in.metadata {
		software = append(software, m.Software...)
		items = append(items, m.Items()...)
	}

	out := export.New(export.Options{
		EntryID:         entryID,
		LineLength:      opts.LineLength,
		MultiLineLength: opts.MultiLineLength,
		Software:        software,
		Logger:          opts.Logger,
	})
	out.AddMetadata(items...)

	skipped, err := in.job.Apply(out)
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		opts.Logger.Warn("skipped record", "err", s)
		result.Skipped = append(result.Skipped, s.Error())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := out.Flush(&buf); err != nil {
		return nil, err
	}
	result.Blocks = out.Blocks()
	result.Stats.Datasets = len(out.Datasets())
	return buf.Bytes(), nil
}

// cachedDocument is the cache entry of one document.
type cachedDocument struct {
	Document []byte      `json:"document"`
	Blocks   []cif.Block `json:"blocks"`
	Skipped  []string    `json:"skipped,omitempty"`
	Datasets int         `json:"datasets"`
}

func (r *Runner) cached(ctx context.Context, key string) (*cachedDocument, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var c cachedDocument
	if err := json.Unmarshal(data, &c); err != nil {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &c, true
}

func (r *Runner) store(ctx context.Context, key string, result *Result) {
	data, err := json.Marshal(cachedDocument{
		Document: result.Document,
		Blocks:   result.Blocks,
		Skipped:  result.Skipped,
		Datasets: result.Stats.Datasets,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// inputs lists every file the document depends on, with content hashes.
// Unreadable files hash to the empty string.
func inputs(opts Options, job *io.Job) []cache.Input {
	paths := append([]string{opts.JobPath}, opts.MetadataPaths...)
	paths = append(paths, job.InputFiles()...)

	out := make([]cache.Input, len(paths))
	for i, p := range paths {
		out[i] = cache.Input{Path: p}
		if data, err := os.ReadFile(p); err == nil {
			out[i].Hash = cache.Hash(data)
		}
	}
	return out
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
