package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mvp-joe/ubidoc/internal/glossary"
)

const maxDescriptionWidth = 60

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderRows writes rows as a bordered table. Extra columns, when set, are
// appended after the five glossary columns.
func renderRows(w io.Writer, rows []glossary.Projection, extraHeader string, extra func(i int) string) error {
	headers := []string{"Ubiquitous", "Context", "Description", "Language", "Source"}
	if extra != nil {
		headers = append(headers, extraHeader)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i, r := range rows {
		cells := []string{r.Term, r.Context, clip(r.Description, maxDescriptionWidth), string(r.SourceLanguage), r.SourceFile}
		if extra != nil {
			cells = append(cells, extra(i))
		}
		t.Row(cells...)
	}

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

// clip flattens s onto one line and shortens it to max runes.
func clip(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
