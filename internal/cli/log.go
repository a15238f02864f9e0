// Package cli implements the ihmcif command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - export: Write the mmCIF document for a job
//   - classify: Report how coordinate files would be classified as starting models
//   - schema: Draw the reference graph between the categories of a document
//   - cache: Manage the document cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one line per written category and the pipeline and cache
// events.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that writes to
// w and filters messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond, e.g.
// "Exported 29 categories (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, jobPath string) {
	h.logger.Debug("loading job", "path", jobPath)
}

func (h *logHooks) OnLoadComplete(_ context.Context, jobPath string, components int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", jobPath, "err", err)
		return
	}
	h.logger.Debug("load complete", "path", jobPath, "components", components, "duration", d)
}

func (h *logHooks) OnExportStart(_ context.Context, entryID string) {
	h.logger.Debug("exporting", "entry", entryID)
}

func (h *logHooks) OnExportComplete(_ context.Context, entryID string, blocks int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "entry", entryID, "err", err)
		return
	}
	h.logger.Debug("export complete", "entry", entryID, "categories", blocks, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
