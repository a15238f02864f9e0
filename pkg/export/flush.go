package export

import (
	"bytes"
	"io"
	"time"

	"github.com/matzehuels/ihmcif/pkg/cif"
	"github.com/matzehuels/ihmcif/pkg/dump"
	"github.com/matzehuels/ihmcif/pkg/errors"
)

// Flush finalizes every record and writes the document to w. Nothing is
// written if any dumper fails. Flush must be called once, after all records
// have been added.
func (o *Output) Flush(w io.Writer) error {
	dumpers := o.Dumpers()
	for _, d := range dumpers {
		if err := d.Finalize(); err != nil {
			return wrapDumper("finalize", d, err)
		}
	}

	var buf bytes.Buffer
	cw := cif.NewWriter(&buf,
		cif.WithLineLength(o.opts.LineLength),
		cif.WithMultiLineLength(o.opts.MultiLineLength))
	for _, d := range dumpers {
		start := time.Now()
		before := len(cw.Blocks())
		if err := d.Dump(cw); err != nil {
			return wrapDumper("dump", d, err)
		}
		for _, b := range cw.Blocks()[before:] {
			o.logger.Debug("wrote category", "name", b.Name, "rows", b.Rows, "duration", time.Since(start))
		}
	}
	if err := cw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write document")
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write document")
	}
	o.blocks = cw.Blocks()
	return nil
}

func wrapDumper(stage string, d dump.Dumper, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "%s %s", stage, d.Categories()[0])
}
