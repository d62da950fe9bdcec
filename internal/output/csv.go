package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/mvp-joe/ubidoc/internal/glossary"
)

// CSVFile is the CSV output's file name.
const CSVFile = "ubiquitous.csv"

// CSVHeader names the five projected columns.
var CSVHeader = []string{"term", "context", "description", "sourceFile", "sourceLanguage"}

// CSVWriter writes one record per row under a header.
type CSVWriter struct {
	opts Options
}

func (w *CSVWriter) Format() string { return FormatCSV }

func (w *CSVWriter) Write(ctx context.Context, t *glossary.Table) ([]string, error) {
	data, err := EncodeCSV(t)
	if err != nil {
		return nil, err
	}
	dir, err := assetsDir(w.opts)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, CSVFile)
	if err := writeFileAtomic(path, data); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", CSVFile, err)
	}
	return []string{path}, nil
}

// EncodeCSV renders t's projection in table order.
func EncodeCSV(t *glossary.Table) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(CSVHeader); err != nil {
		return nil, err
	}
	for _, p := range t.Rows() {
		if err := cw.Write([]string{p.Term, p.Context, p.Description, p.SourceFile, string(p.SourceLanguage)}); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}
	return buf.Bytes(), nil
}
