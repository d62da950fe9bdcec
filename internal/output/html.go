package output

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/mvp-joe/ubidoc/internal/glossary"
)

//go:embed assets/ubiquitous.html.tmpl assets/script.js assets/style.css
var assets embed.FS

var pageTemplate = template.Must(template.ParseFS(assets, "assets/ubiquitous.html.tmpl"))

// HTML file names inside the assets directory.
const (
	HTMLFile   = "ubiquitous.html"
	ScriptFile = "script.js"
	StyleFile  = "style.css"
)

type htmlRow struct {
	Term        string
	Declaration string
	Context     string
	Description string
	Language    string
	Location    string
	URL         string
	Search      string
}

type htmlPage struct {
	Rows     []htmlRow
	Contexts []string
}

// HTMLWriter renders a filterable page with its script and stylesheet.
type HTMLWriter struct {
	opts Options
}

func (w *HTMLWriter) Format() string { return FormatHTML }

func (w *HTMLWriter) Write(ctx context.Context, t *glossary.Table) ([]string, error) {
	page, err := RenderHTML(t, w.opts.Repo, w.opts.Branch)
	if err != nil {
		return nil, err
	}
	dir, err := assetsDir(w.opts)
	if err != nil {
		return nil, err
	}

	files := map[string][]byte{HTMLFile: page}
	for _, name := range []string{ScriptFile, StyleFile} {
		data, err := assets.ReadFile("assets/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
		}
		files[name] = data
	}

	var written []string
	for _, name := range []string{HTMLFile, ScriptFile, StyleFile} {
		path := filepath.Join(dir, name)
		if err := writeFileAtomic(path, files[name]); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// RenderHTML renders the page for t in table order. Each row carries its
// search blob and context as data attributes for script.js.
func RenderHTML(t *glossary.Table, repo, branch string) ([]byte, error) {
	page := htmlPage{Contexts: t.Contexts()}
	for _, r := range t.All() {
		page.Rows = append(page.Rows, htmlRow{
			Term:        r.Term,
			Declaration: r.DeclarationName,
			Context:     r.Context,
			Description: r.Description,
			Language:    string(r.SourceLanguage),
			Location:    fmt.Sprintf("%s:%d", r.SourceFile, r.Line),
			URL:         SourceURL(repo, branch, r.SourceFile, r.Line),
			Search:      r.SearchBlob,
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return buf.Bytes(), nil
}
