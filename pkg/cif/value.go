package cif

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholder is a reserved token standing in for a missing value.
type Placeholder string

const (
	// Omitted marks a field that does not apply to the record.
	Omitted Placeholder = "."
	// Unknown marks a field that applies but whose value is not known.
	Unknown Placeholder = "?"
)

// Row maps column keys to values for one category or loop row.
type Row map[string]any

// reservedWords cannot appear unquoted as values.
var reservedWords = []string{"data_", "loop_", "save_", "global_", "stop_"}

// textBlock reports whether s can only be written as a text block.
func textBlock(s string) bool {
	return strings.ContainsAny(s, "\n\r") ||
		(strings.ContainsRune(s, '\'') && strings.ContainsRune(s, '"'))
}

// format renders a non-folded value as a single token.
func format(v any) string {
	switch v := v.(type) {
	case nil:
		return string(Omitted)
	case Placeholder:
		return string(v)
	case string:
		return quote(v)
	case bool:
		if v {
			return "YES"
		}
		return "NO"
	case float64:
		return strconv.FormatFloat(v, 'f', 3, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', 3, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case fmt.Stringer:
		return quote(v.String())
	default:
		return quote(fmt.Sprint(v))
	}
}

// quote returns s as a bare token when that is unambiguous, and in
// quoted-literal form otherwise.
func quote(s string) string {
	if !needsQuote(s) {
		return s
	}
	if strings.ContainsRune(s, '\'') {
		return `"` + s + `"`
	}
	return "'" + s + "'"
}

func needsQuote(s string) bool {
	if s == "" || s == "." || s == "?" {
		return true
	}
	if strings.ContainsAny(s, " \t'\"") {
		return true
	}
	switch s[0] {
	case '_', '#', '$', ';', '[', ']':
		return true
	}
	lower := strings.ToLower(s)
	for _, w := range reservedWords {
		if strings.HasPrefix(lower, w) {
			return true
		}
	}
	return false
}
