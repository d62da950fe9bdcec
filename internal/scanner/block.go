package scanner

import "iter"

// Block is one documentation comment located in a source file.
type Block struct {
	// Path is the source file the block came from. Locators leave it empty;
	// ingestion stamps it before the block is normalized.
	Path     string
	Language Language

	// Text is the comment content between the documentation delimiters.
	// For line-comment runs the doc prefix is removed from every line.
	Text string

	// Start and End are byte offsets of the raw comment, End exclusive.
	Start int
	End   int
	// Line and EndLine are 1-based.
	Line    int
	EndLine int

	// Declaration is the name of the declaration the block documents,
	// empty when no declaration follows it.
	Declaration string

	// Truncated marks a block whose closing delimiter was never found;
	// its text runs to end of file.
	Truncated bool
}

// Locator turns source text into documentation blocks.
type Locator interface {
	// Locate yields every documentation block in text, in source order.
	// Each call starts a fresh scan.
	Locate(text string, lang Language) iter.Seq[Block]
}
