package glossary

import (
	"strings"

	"github.com/mvp-joe/ubidoc/internal/scanner"
)

// Row is a table row: an entry plus its precomputed search text.
type Row struct {
	Entry
	// SearchBlob is the lower-cased, tab-separated term, context,
	// description and source file.
	SearchBlob string
}

// Projection is the five columns handed to presentation layers.
type Projection struct {
	Term           string           `json:"term"`
	Context        string           `json:"context"`
	Description    string           `json:"description"`
	SourceFile     string           `json:"sourceFile"`
	SourceLanguage scanner.Language `json:"sourceLanguage"`
}

// Table is an immutable, ordered glossary.
type Table struct {
	rows     []Row
	contexts []string
}

// Build creates a table from deduplicated entries, keeping their order.
func Build(entries []Entry) *Table {
	t := &Table{rows: make([]Row, len(entries))}
	seen := map[string]bool{}
	for i, e := range entries {
		t.rows[i] = Row{Entry: e, SearchBlob: searchBlob(e)}
		if !seen[e.Context] {
			seen[e.Context] = true
			t.contexts = append(t.contexts, e.Context)
		}
	}
	return t
}

func searchBlob(e Entry) string {
	return strings.ToLower(strings.Join([]string{e.Term, e.Context, e.Description, e.SourceFile}, "\t"))
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// All returns a copy of the rows in table order.
func (t *Table) All() []Row {
	if t == nil {
		return nil
	}
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Contexts returns the distinct contexts in order of first appearance.
func (t *Table) Contexts() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.contexts))
	copy(out, t.contexts)
	return out
}

// Rows returns the presentation projection of every row.
func (t *Table) Rows() []Projection {
	if t == nil {
		return nil
	}
	return Project(t.rows)
}

// Project maps rows onto their presentation columns.
func Project(rows []Row) []Projection {
	out := make([]Projection, len(rows))
	for i, r := range rows {
		out[i] = r.Project()
	}
	return out
}

// Project returns the row's presentation columns.
func (r Row) Project() Projection {
	return Projection{
		Term:           r.Term,
		Context:        r.Context,
		Description:    r.Description,
		SourceFile:     r.SourceFile,
		SourceLanguage: r.SourceLanguage,
	}
}
