package glossary

import "strings"

// Query is one filter request.
type Query struct {
	// Keyword is matched case-insensitively as a substring of the row's
	// search text. Surrounding whitespace is ignored; empty matches all.
	Keyword string
	// Context, when non-empty, must equal the row's context exactly.
	Context string
}

// Matcher evaluates a query against rows. The keyword is normalized once.
type Matcher struct {
	keyword string
	context string
}

// NewMatcher prepares q for repeated evaluation.
func NewMatcher(q Query) Matcher {
	return Matcher{
		keyword: strings.ToLower(strings.TrimSpace(q.Keyword)),
		context: q.Context,
	}
}

// Match reports whether r is visible under the query.
func (m Matcher) Match(r Row) bool {
	if m.context != "" && r.Context != m.context {
		return false
	}
	return strings.Contains(r.SearchBlob, m.keyword)
}

// Filter returns the rows matching keyword and context, in table order.
func Filter(t *Table, keyword, context string) []Row {
	m := NewMatcher(Query{Keyword: keyword, Context: context})
	var out []Row
	for i := 0; i < t.Len(); i++ {
		if r := t.rows[i]; m.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Visibility returns one visibility decision per row, in table order.
// Rows are never removed, so positions stay stable.
func Visibility(t *Table, keyword, context string) []bool {
	m := NewMatcher(Query{Keyword: keyword, Context: context})
	out := make([]bool, t.Len())
	for i := range out {
		out[i] = m.Match(t.rows[i])
	}
	return out
}
