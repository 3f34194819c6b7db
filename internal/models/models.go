package models

// Record is a URL read from an input file together with its position in that file.
type Record struct {
	Index int // Zero-based position among the decoded records
	Line  int // One-based line number in the source file
	URL   URL
}

// Rendered is a record after the renderer stage has computed its hash and debug string.
type Rendered struct {
	Index int
	URL   URL
	Hash  uint64
	Text  string
}
