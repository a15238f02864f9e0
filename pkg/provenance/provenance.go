// Package provenance classifies the coordinate files used as starting models.
//
// [Classify] inspects the header of a PDB-format file and decides whether it
// is an experimental structure deposited in the PDB, a comparative model
// built with MODELLER, or a model of unknown origin. Classification is best
// effort: headers that do not match a recognized pattern degrade to
// [KindUnknown] and malformed records are skipped, so Classify never fails.
package provenance

import (
	"bufio"
	"bytes"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Kind is the classified origin of a coordinate file.
type Kind int

const (
	// KindUnknown is a model whose origin could not be determined.
	KindUnknown Kind = iota
	// KindExperimental is an experimental structure with a PDB header.
	KindExperimental
	// KindComparative is a comparative model with template annotations.
	KindComparative
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindExperimental:
		return "experimental"
	case KindComparative:
		return "comparative"
	default:
		return "unknown"
	}
}

const (
	headerPrefix   = "HEADER"
	modellerPrefix = "EXPDTA    THEORETICAL MODEL, MODELLER"
	modellerColumn = 38
)

var templateRe = regexp.MustCompile(`^REMARK   6 TEMPLATE: (\S+) .* MODELS (\S+):\S+ - (\S+):\S+ AT (\S+)%`)

// Helix is a HELIX record from an experimental structure.
type Helix struct {
	ID           string
	StartResidue string
	StartChain   string
	StartNumber  int
	EndResidue   string
	EndChain     string
	EndNumber    int
	Class        int
	Length       int
}

// Template is a structure used as a template for a comparative model.
type Template struct {
	Code     string  // Template code as written in the file, e.g. "3jroC"
	DBCode   string  // PDB accession, empty when Code is not a PDB code
	Chain    string  // Template chain, empty when Code is not a PDB code
	Begin    int     // First model residue covered by the template
	End      int     // Last model residue covered by the template
	Identity float64 // Percent sequence identity
}

// Modeller identifies the MODELLER build that produced a comparative model.
type Modeller struct {
	Version string
	Date    string
}

// Result is the outcome of classifying one file.
type Result struct {
	Kind Kind

	// Experimental structures.
	DBCode  string
	Version string
	Details string
	Helices []Helix

	// Comparative models, sorted by (Begin, End).
	Templates []Template

	// Set whenever the file was written by MODELLER, even if it carries no
	// template annotations.
	Modeller *Modeller
}

// Classify inspects the header of a PDB-format file.
func Classify(data []byte) Result {
	lines := splitLines(data)
	if len(lines) == 0 {
		return Result{Kind: KindUnknown}
	}
	first := lines[0]
	switch {
	case strings.HasPrefix(first, headerPrefix):
		return classifyExperimental(first, lines[1:])
	case strings.HasPrefix(first, modellerPrefix):
		return classifyModeller(first, lines)
	default:
		return Result{Kind: KindUnknown}
	}
}

func classifyExperimental(first string, rest []string) Result {
	r := Result{
		Kind:    KindExperimental,
		Version: strings.TrimSpace(cols(first, 50, 59)),
		DBCode:  strings.TrimSpace(cols(first, 62, 66)),
	}
	var details strings.Builder
	for _, line := range rest {
		switch {
		case strings.HasPrefix(line, "TITLE"):
			details.WriteString(strings.TrimRight(cols(line, 10, len(line)), " \t"))
		case strings.HasPrefix(line, "HELIX"):
			if h, ok := parseHelix(line); ok {
				r.Helices = append(r.Helices, h)
			}
		}
	}
	r.Details = details.String()
	return r
}

func classifyModeller(first string, lines []string) Result {
	r := Result{Kind: KindUnknown}
	version, date, _ := strings.Cut(strings.TrimSpace(cols(first, modellerColumn, len(first))), " ")
	r.Modeller = &Modeller{Version: version, Date: strings.TrimSpace(date)}

	for _, line := range lines {
		if strings.HasPrefix(line, "ATOM") {
			break
		}
		if t, ok := parseTemplate(line); ok {
			r.Templates = append(r.Templates, t)
		}
	}
	sort.SliceStable(r.Templates, func(i, j int) bool {
		a, b := r.Templates[i], r.Templates[j]
		if a.Begin != b.Begin {
			return a.Begin < b.Begin
		}
		return a.End < b.End
	})
	if len(r.Templates) > 0 {
		r.Kind = KindComparative
	}
	return r
}

func parseTemplate(line string) (Template, bool) {
	m := templateRe.FindStringSubmatch(line)
	if m == nil {
		return Template{}, false
	}
	begin, err1 := strconv.Atoi(m[2])
	end, err2 := strconv.Atoi(m[3])
	identity, err3 := strconv.ParseFloat(m[4], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return Template{}, false
	}
	t := Template{Code: m[1], Begin: begin, End: end, Identity: identity}
	if len(t.Code) == 5 {
		t.DBCode = strings.ToUpper(t.Code[:4])
		t.Chain = t.Code[4:]
	}
	return t, true
}

// parseHelix reads a HELIX record by its fixed columns.
func parseHelix(line string) (Helix, bool) {
	if len(line) < 40 {
		return Helix{}, false
	}
	h := Helix{
		ID:           strings.TrimSpace(cols(line, 11, 14)),
		StartResidue: strings.TrimSpace(cols(line, 14, 18)),
		StartChain:   cols(line, 19, 20),
		EndResidue:   strings.TrimSpace(cols(line, 27, 30)),
		EndChain:     cols(line, 31, 32),
	}
	var err error
	ints := []struct {
		dst        *int
		start, end int
	}{
		{&h.StartNumber, 21, 25},
		{&h.EndNumber, 33, 37},
		{&h.Class, 38, 40},
		{&h.Length, 71, 76},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.Atoi(strings.TrimSpace(cols(line, f.start, f.end))); err != nil {
			return Helix{}, false
		}
	}
	return h, true
}

// cols returns line[start:end], clipped to the line length.
func cols(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	return line[start:min(end, len(line))]
}

func splitLines(data []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines
}
