package glossary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Filter and Visibility:
// - Empty keyword and context return every row in table order
// - Context filter is exact and case-sensitive
// - Keyword matches case-insensitively across term, context, description and file
// - Keyword surrounding whitespace is ignored
// - Keyword and context are combined with AND
// - Visibility returns one decision per row without removing rows
// - Filtering never mutates the table

func filterTable() *Table {
	return Build([]Entry{
		{Term: "ubiquitous langage kt", Context: "context kt", Description: "description kt", SourceFile: "sample.kt"},
		{Term: "Order", Context: "E-commerce", Description: "Placed by Bob.", SourceFile: "java/Order.java"},
		{Term: "Sample2", Context: NoContext, Description: "タグ無しのコメント", SourceFile: "sample.php"},
		{Term: "Invoice", Context: "Context KT", Description: "upper-case context", SourceFile: "billing.kt"},
	})
}

func terms(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Term)
	}
	return out
}

func TestFilter_EmptyQueryMatchesAll(t *testing.T) {
	t.Parallel()

	table := filterTable()
	assert.Equal(t, table.All(), Filter(table, "", ""))
}

func TestFilter_ContextExact(t *testing.T) {
	t.Parallel()

	rows := Filter(filterTable(), "", "context kt")

	assert.Equal(t, []string{"ubiquitous langage kt"}, terms(rows))
	for _, r := range rows {
		assert.Equal(t, "context kt", r.Context)
	}
}

func TestFilter_KeywordCaseInsensitive(t *testing.T) {
	t.Parallel()

	table := filterTable()

	assert.Equal(t, []string{"Order"}, terms(Filter(table, "BOB", "")))
	assert.Equal(t, []string{"Order"}, terms(Filter(table, "  bob\t", "")))
	assert.Equal(t, []string{"Order"}, terms(Filter(table, "java/ORDER", "")))
	assert.Equal(t, []string{"Sample2"}, terms(Filter(table, "(none)", "")))
	assert.Equal(t, []string{"Sample2"}, terms(Filter(table, "タグ無し", "")))
	assert.Equal(t, []string{"ubiquitous langage kt", "Invoice"}, terms(Filter(table, "context kt", "")))
	assert.Empty(t, Filter(table, "nothing matches", ""))
}

func TestFilter_AndSemantics(t *testing.T) {
	t.Parallel()

	table := filterTable()

	assert.Equal(t, []string{"Invoice"}, terms(Filter(table, "upper", "Context KT")))
	assert.Empty(t, Filter(table, "bob", "context kt"))
}

func TestVisibility(t *testing.T) {
	t.Parallel()

	table := filterTable()
	before := table.All()

	assert.Equal(t, []bool{true, true, true, true}, Visibility(table, "", ""))
	assert.Equal(t, []bool{false, true, false, false}, Visibility(table, "bob", ""))
	assert.Equal(t, []bool{true, false, false, true}, Visibility(table, "kt", ""))
	assert.Equal(t, []bool{true, false, false, false}, Visibility(table, "kt", "context kt"))

	assert.Equal(t, before, table.All())
}

func TestMatcher_MatchesFilter(t *testing.T) {
	t.Parallel()

	table := filterTable()
	m := NewMatcher(Query{Keyword: "KT"})

	var got []Row
	for _, r := range table.All() {
		if m.Match(r) {
			got = append(got, r)
		}
	}
	assert.Equal(t, Filter(table, "KT", ""), got)
}
