package glossary

import (
	"context"
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultSearchLimit caps ranked results when no limit is given.
const DefaultSearchLimit = 10

// termBoost weighs a word found in the term above the same word in a
// description or path.
const termBoost = 3.0

// SearchOptions narrows a ranked search.
type SearchOptions struct {
	Limit int
	// Context restricts hits to one exact context value.
	Context string
}

// SearchHit is one ranked row.
type SearchHit struct {
	Row   Row     `json:"row"`
	Score float64 `json:"score"`
}

// SearchIndex is a ranked full-text index over one table. It complements
// Filter: Filter answers the substring contract, SearchIndex answers
// relevance queries using bleve's query string syntax.
type SearchIndex struct {
	table *Table
	index bleve.Index
}

// NewSearchIndex indexes every row of t in memory.
func NewSearchIndex(ctx context.Context, t *Table) (*SearchIndex, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	if err := indexRows(ctx, index, t); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index rows: %w", err)
	}
	return &SearchIndex{table: t, index: index}, nil
}

func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	text := bleve.NewTextFieldMapping()
	text.Analyzer = "standard"
	text.Store = false
	text.IncludeTermVectors = true

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"
	keyword.Store = false
	keyword.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("term", text)
	doc.AddFieldMappingsAt("description", text)
	doc.AddFieldMappingsAt("source_file", text)
	doc.AddFieldMappingsAt("context", keyword)
	doc.AddFieldMappingsAt("language", keyword)

	indexMapping.DefaultMapping = doc
	// Unfielded words search the composite of term, description and path.
	indexMapping.DefaultField = "_all"
	return indexMapping
}

func indexRows(ctx context.Context, index bleve.Index, t *Table) error {
	const batchSize = 1000

	batch := index.NewBatch()
	for i := 0; i < t.Len(); i++ {
		if i%batchSize == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		r := t.Row(i)
		doc := map[string]interface{}{
			"term":        r.Term,
			"description": r.Description,
			"source_file": r.SourceFile,
			"context":     r.Context,
			"language":    string(r.SourceLanguage),
		}
		if err := batch.Index(strconv.Itoa(i), doc); err != nil {
			return fmt.Errorf("failed to add row %d to batch: %w", i, err)
		}
		if batch.Size() >= batchSize {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("failed to execute batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("failed to execute final batch: %w", err)
		}
	}
	return nil
}

// Search runs a bleve query string. Unfielded words search term,
// description and source file together; a matching term ranks higher.
// Query string operators (+required, -excluded, "phrase", field:value)
// decide which rows match.
func (s *SearchIndex) Search(ctx context.Context, queryStr string, opts SearchOptions) ([]SearchHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	q := bleve.NewBooleanQuery()
	q.AddMust(bleve.NewQueryStringQuery(queryStr))
	if opts.Context != "" {
		ctxQuery := bleve.NewTermQuery(opts.Context)
		ctxQuery.SetField("context")
		q.AddMust(ctxQuery)
	}
	// Optional clause: only affects the score of rows already matched.
	q.AddShould(termPreference(queryStr))

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	hits := make([]SearchHit, 0, len(res.Hits))
	for _, h := range res.Hits {
		i, err := strconv.Atoi(h.ID)
		if err != nil || i < 0 || i >= s.table.Len() {
			continue
		}
		hits = append(hits, SearchHit{Row: s.table.Row(i), Score: h.Score})
	}
	return hits, nil
}

func termPreference(queryStr string) query.Query {
	m := bleve.NewMatchQuery(queryStr)
	m.SetField("term")
	m.SetBoost(termBoost)
	return m
}

// Table returns the indexed table.
func (s *SearchIndex) Table() *Table {
	return s.table
}

// Close releases the index.
func (s *SearchIndex) Close() error {
	return s.index.Close()
}
