package ihm

// residueNames maps one-letter amino acid codes to residue names.
var residueNames = map[byte]string{
	'A': "ALA", 'C': "CYS", 'D': "ASP", 'E': "GLU", 'F': "PHE",
	'G': "GLY", 'H': "HIS", 'I': "ILE", 'K': "LYS", 'L': "LEU",
	'M': "MET", 'N': "ASN", 'P': "PRO", 'Q': "GLN", 'R': "ARG",
	'S': "SER", 'T': "THR", 'V': "VAL", 'W': "TRP", 'Y': "TYR",
	'U': "SEC", 'O': "PYL",
}

// ResidueName returns the residue name for a one-letter code, or "UNK".
func ResidueName(code byte) string {
	if name, ok := residueNames[code]; ok {
		return name
	}
	return "UNK"
}

// ResidueAt returns the residue name of the 1-based residue index in seq,
// and false if the index is out of range.
func ResidueAt(seq string, index int) (string, bool) {
	if index < 1 || index > len(seq) {
		return "", false
	}
	return ResidueName(seq[index-1]), true
}

// IsStandardResidue reports whether name is one of the 20 standard amino
// acids.
func IsStandardResidue(name string) bool {
	switch name {
	case "ALA", "CYS", "ASP", "GLU", "PHE", "GLY", "HIS", "ILE", "LYS", "LEU",
		"MET", "ASN", "PRO", "GLN", "ARG", "SER", "THR", "VAL", "TRP", "TYR":
		return true
	}
	return false
}

const chainAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ChainID returns the chain identifier of the n-th modeled component
// (0-based): A-Z, a-z, 0-9, then AA, AB and so on.
func ChainID(n int) string {
	const size = len(chainAlphabet)
	width, block := 1, size
	for n >= block {
		n -= block
		width++
		block *= size
	}
	id := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		id[i] = chainAlphabet[n%size]
		n /= size
	}
	return string(id)
}
