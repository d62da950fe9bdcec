package output

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mvp-joe/ubidoc/internal/glossary"
)

// JSONFile is the JSON output's file name.
const JSONFile = "ubiquitous.json"

// Document is the JSON hand-off of a table.
type Document struct {
	Contexts []string              `json:"contexts"`
	Rows     []glossary.Projection `json:"rows"`
}

// NewDocument projects t for serialization.
func NewDocument(t *glossary.Table) Document {
	doc := Document{Contexts: t.Contexts(), Rows: t.Rows()}
	if doc.Contexts == nil {
		doc.Contexts = []string{}
	}
	if doc.Rows == nil {
		doc.Rows = []glossary.Projection{}
	}
	return doc
}

// JSONWriter writes the table's rows and contexts as indented JSON.
type JSONWriter struct {
	opts Options
}

func (w *JSONWriter) Format() string { return FormatJSON }

func (w *JSONWriter) Write(ctx context.Context, t *glossary.Table) ([]string, error) {
	data, err := json.MarshalIndent(NewDocument(t), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rows: %w", err)
	}
	dir, err := assetsDir(w.opts)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, JSONFile)
	if err := writeFileAtomic(path, append(data, '\n')); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", JSONFile, err)
	}
	return []string{path}, nil
}
