package cif

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Default line budgets.
const (
	DefaultLineLength      = 80
	DefaultMultiLineLength = 70
	commentWidth           = 78
)

// ErrUnknownColumn is recorded when a row names a key its block did not declare.
var ErrUnknownColumn = errors.New("cif: unknown column")

// Block describes one emitted category or loop block.
type Block struct {
	Name string // Category name, e.g. "_ihm_dataset_list"
	Rows int    // Rows written (1 for a category block)
	Loop bool   // Whether the block was written as a loop
}

// Option configures a [Writer].
type Option func(*Writer)

// WithLineLength sets the row width budget.
func WithLineLength(n int) Option {
	return func(w *Writer) {
		if n > 0 {
			w.lineLen = n
		}
	}
}

// WithMultiLineLength sets the string length above which values are folded
// into text blocks, and the width of each folded line.
func WithMultiLineLength(n int) Option {
	return func(w *Writer) {
		if n > 0 {
			w.multiLineLen = n
		}
	}
}

// Writer emits mmCIF blocks to an underlying stream.
//
// Write errors are sticky: after the first failure every further call is a
// no-op and [Writer.Err] reports the failure. Writer is not safe for
// concurrent use.
type Writer struct {
	out          *bufio.Writer
	lineLen      int
	multiLineLen int
	blocks       []Block
	err          error
}

// NewWriter returns a Writer that buffers output to w.
// Call [Writer.Flush] once the document is complete.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	cw := &Writer{
		out:          bufio.NewWriter(w),
		lineLen:      DefaultLineLength,
		multiLineLen: DefaultMultiLineLength,
	}
	for _, opt := range opts {
		opt(cw)
	}
	return cw
}

// WriteHeader starts a data block named after the entry.
func (w *Writer) WriteHeader(entryID string) {
	w.writeString("data_" + entryID + "\n")
}

// WriteComment writes text as "# " comment lines wrapped at 78 characters.
func (w *Writer) WriteComment(text string) {
	for _, line := range wrap(text, commentWidth) {
		w.writeString("# " + line + "\n")
	}
}

// WriteCategory writes a single-record category block with the given keys,
// in order. Keys missing from row render as omitted.
func (w *Writer) WriteCategory(name string, keys []string, row Row) {
	if !w.checkColumns(name, keys, row) {
		return
	}
	for _, k := range keys {
		v := row[k]
		if s, ok := v.(string); ok && w.folds(s) {
			w.writeString(name + "." + k + "\n")
			w.writeFold(s)
			continue
		}
		w.writeString(name + "." + k + " " + format(v) + "\n")
	}
	w.blocks = append(w.blocks, Block{Name: name, Rows: 1})
}

// WriteLoop writes a loop block. fn is called with a [Loop] that writes one
// row per call; the loop header is written before the first row and the
// closing marker only if at least one row was written, so a loop without
// rows leaves no trace in the output.
func (w *Writer) WriteLoop(name string, keys []string, fn func(l *Loop)) {
	l := &Loop{w: w, name: name, keys: keys}
	fn(l)
	if l.rows > 0 {
		w.writeString("#\n")
		w.blocks = append(w.blocks, Block{Name: name, Rows: l.rows, Loop: true})
	}
}

// Blocks returns the blocks written so far, in order.
func (w *Writer) Blocks() []Block {
	return w.blocks
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Flush writes buffered output and returns the first error encountered.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.out.Flush(); err != nil {
		w.err = err
	}
	return w.err
}

// Loop writes the rows of one loop block.
type Loop struct {
	w    *Writer
	name string
	keys []string
	rows int
}

// Write writes one row. Values are emitted in the loop's declared column
// order regardless of map order; missing keys render as omitted.
func (l *Loop) Write(row Row) {
	w := l.w
	if !w.checkColumns(l.name, l.keys, row) {
		return
	}
	if l.rows == 0 {
		var b strings.Builder
		b.WriteString("#\nloop_\n")
		for _, k := range l.keys {
			b.WriteString(l.name + "." + k + "\n")
		}
		w.writeString(b.String())
	}
	lw := lineWriter{w: w, lineStart: true}
	for _, k := range l.keys {
		lw.write(row[k])
	}
	if !lw.lineStart {
		w.writeString("\n")
	}
	l.rows++
}

// Rows returns the number of rows written so far.
func (l *Loop) Rows() int {
	return l.rows
}

// lineWriter tracks the current column of a row being written.
type lineWriter struct {
	w         *Writer
	column    int
	lineStart bool
}

func (lw *lineWriter) write(v any) {
	if s, ok := v.(string); ok && lw.w.folds(s) {
		if !lw.lineStart {
			lw.w.writeString("\n")
		}
		lw.w.writeFold(s)
		lw.column = 0
		lw.lineStart = true
		return
	}
	tok := format(v)
	n := utf8.RuneCountInString(tok)
	if !lw.lineStart {
		if lw.column+n+1 > lw.w.lineLen {
			lw.w.writeString("\n")
			lw.column = 0
		} else {
			lw.w.writeString(" ")
			lw.column++
		}
	}
	lw.w.writeString(tok)
	lw.column += n
	lw.lineStart = false
}

// folds reports whether s is written as a text block.
func (w *Writer) folds(s string) bool {
	return utf8.RuneCountInString(s) > w.multiLineLen || textBlock(s)
}

// writeFold writes s as a text block. Strings without line breaks are cut
// into lines of at most multiLineLen characters; concatenating the interior
// lines reproduces s. No interior line starts with ";", which would close
// the block early.
func (w *Writer) writeFold(s string) {
	var b strings.Builder
	switch {
	case strings.Contains(s, "\n;"):
		// Line prefix protocol: each line carries textPrefix, which readers
		// strip.
		b.WriteString(";" + textPrefix + "\\\n")
		for _, line := range strings.Split(s, "\n") {
			b.WriteString(textPrefix + line + "\n")
		}
	case strings.ContainsAny(s, "\n\r"):
		b.WriteString(";")
		b.WriteString(s)
		b.WriteString("\n")
	default:
		b.WriteString(";")
		runes := []rune(s)
		for i := 0; i < len(runes); {
			end := foldEnd(runes, i, w.multiLineLen)
			b.WriteString(string(runes[i:end]))
			b.WriteString("\n")
			i = end
		}
	}
	b.WriteString(";\n")
	w.writeString(b.String())
}

// textPrefix marks the lines of a text block holding a line that starts
// with a semicolon.
const textPrefix = ">"

// foldEnd returns the end of the chunk starting at i. The chunk is
// shortened so the next one does not start with ";". A run of semicolons
// too long to break before is kept whole on one line instead.
func foldEnd(runes []rune, i, width int) int {
	end := min(i+width, len(runes))
	if end == len(runes) || runes[end] != ';' {
		return end
	}
	for e := end - 1; e > i; e-- {
		if runes[e] != ';' {
			return e
		}
	}
	for end < len(runes) && runes[end] == ';' {
		end++
	}
	return end
}

func (w *Writer) checkColumns(name string, keys []string, row Row) bool {
	if w.err != nil {
		return false
	}
	for k := range row {
		found := false
		for _, d := range keys {
			if d == k {
				found = true
				break
			}
		}
		if !found {
			w.err = fmt.Errorf("%w: %s.%s", ErrUnknownColumn, name, k)
			return false
		}
	}
	return true
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.out.WriteString(s); err != nil {
		w.err = err
	}
}

// wrap splits text into lines of at most width characters, breaking at
// whitespace. Words longer than width are cut.
func wrap(text string, width int) []string {
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(text) {
		wr := []rune(word)
		for len(wr) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(wr[:width]))
			wr = wr[width:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, wr...)
		case len(cur)+1+len(wr) <= width:
			cur = append(cur, ' ')
			cur = append(cur, wr...)
		default:
			lines = append(lines, string(cur))
			cur = append([]rune(nil), wr...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
