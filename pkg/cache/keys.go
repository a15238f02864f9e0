package cache

// DocumentKeyOpts are the writer settings and tool version a document
// depends on besides its inputs.
type DocumentKeyOpts struct {
	Version         string `json:"version"`
	EntryID         string `json:"entry_id"`
	LineLength      int    `json:"line_length"`
	MultiLineLength int    `json:"multi_line_length"`
}

// Input is one file an export depends on. A missing file has an empty
// Hash, so that creating it later changes the key.
type Input struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
}

// DocumentKey returns the cache key of a rendered document. Input order is
// significant.
func DocumentKey(inputs []Input, opts DocumentKeyOpts) string {
	return hashKey("document", inputs, opts)
}
