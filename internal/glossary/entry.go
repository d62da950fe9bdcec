// Package glossary turns located documentation comments into an ordered,
// deduplicated glossary table and filters it.
package glossary

import (
	"github.com/mvp-joe/ubidoc/internal/scanner"
)

// NoContext is the context of an entry without a @context tag.
const NoContext = "(none)"

// Entry is one glossary entry.
type Entry struct {
	Term           string
	Context        string
	Description    string
	SourceFile     string
	SourceLanguage scanner.Language

	// DeclarationName and Line are kept for diagnostics and source links;
	// they are not part of the rendered row.
	DeclarationName string
	Line            int
}

// Key identifies an entry for deduplication.
type Key struct {
	Term    string
	Context string
}

// Key returns the entry's dedup key.
func (e Entry) Key() Key {
	return Key{Term: e.Term, Context: e.Context}
}

// Normalize builds the entry for a documentation block. The second result
// is false when no term can be derived: the block has neither a
// @ubiquitous tag nor an attached declaration.
func Normalize(block scanner.Block, tags scanner.Tags) (Entry, bool) {
	term, ok := tags.Get(scanner.TagUbiquitous)
	if !ok {
		term = block.Declaration
	}
	if term == "" {
		return Entry{}, false
	}

	context, ok := tags.Get(scanner.TagContext)
	if !ok {
		context = NoContext
	}

	description, ok := tags.Get(scanner.TagDescription)
	if !ok {
		description = tags.FallbackNarrative
	}

	return Entry{
		Term:            term,
		Context:         context,
		Description:     description,
		SourceFile:      block.Path,
		SourceLanguage:  block.Language,
		DeclarationName: block.Declaration,
		Line:            block.Line,
	}, true
}

// Dedupe keeps one entry per Key. The entry ingested last wins and takes
// the position of the key's first occurrence, so rows keep their place when
// a later file supersedes an earlier one. superseded counts the losers.
func Dedupe(entries []Entry) (kept []Entry, superseded int) {
	slot := make(map[Key]int, len(entries))
	kept = make([]Entry, 0, len(entries))
	for _, e := range entries {
		k := e.Key()
		if i, ok := slot[k]; ok {
			kept[i] = e
			superseded++
			continue
		}
		slot[k] = len(kept)
		kept = append(kept, e)
	}
	return kept, superseded
}
