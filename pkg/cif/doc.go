// Package cif writes mmCIF documents.
//
// # Overview
//
// A document is a "data_" header followed by category blocks and loop
// blocks. A category block is a set of "_category.key value" lines; a loop
// block declares its columns once and then writes one row per record:
//
//	#
//	loop_
//	_entity.id
//	_entity.type
//	1 polymer
//	2 polymer
//	#
//
// # Values
//
// [Writer] renders Go values with fixed rules so that output is byte
// reproducible:
//
//   - nil and [Omitted] render as ".", [Unknown] as "?"
//   - bool renders as YES or NO
//   - floats render with three decimals
//   - strings with whitespace or quote marks are quoted
//   - strings longer than the multi-line threshold are folded into a
//     semicolon-delimited text block; a value with a line starting with
//     ";" has every line prefixed with ">" (the CIF 2.0 text prefix)
//
// Rows wrap onto a new line once the line-length budget would be exceeded;
// a single value is never split across lines.
//
// # Usage
//
//	w := cif.NewWriter(os.Stdout)
//	w.WriteHeader("model")
//	w.WriteLoop("_entity", []string{"id", "type"}, func(l *cif.Loop) {
//	    l.Write(cif.Row{"id": 1, "type": "polymer"})
//	})
//	if err := w.Flush(); err != nil {
//	    return err
//	}
package cif
