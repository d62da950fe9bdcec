// Package browse is an interactive terminal view of the glossary: a keyword
// input and a context selector filter the table on every keystroke.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvp-joe/ubidoc/internal/glossary"
)

const (
	defaultWidth  = 100
	defaultHeight = 24
	// Lines used by everything except the row list.
	chromeHeight = 10
)

// TableMsg replaces the browsed table, e.g. after a re-ingestion.
type TableMsg struct {
	Table *glossary.Table
}

// Model is the bubbletea model of the browser.
type Model struct {
	input textinput.Model
	table *glossary.Table

	// contexts[0] is "" for every context.
	contexts   []string
	contextIdx int

	rows   []glossary.Row
	cursor int
	offset int

	width  int
	height int
}

// New creates a browser over t.
func New(t *glossary.Table) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter by keyword..."
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Width = 50
	ti.PromptStyle = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(Muted).Italic(true)
	ti.Focus()

	m := Model{input: ti, width: defaultWidth, height: defaultHeight}
	m.setTable(t)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-6)
		m.clampCursor()
		return m, nil

	case TableMsg:
		m.setTable(msg.Table)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.contextIdx = (m.contextIdx + 1) % len(m.contexts)
			m.refilter()
			return m, nil
		case "shift+tab":
			m.contextIdx = (m.contextIdx - 1 + len(m.contexts)) % len(m.contexts)
			m.refilter()
			return m, nil
		case "up", "ctrl+p":
			m.cursor--
			m.clampCursor()
			return m, nil
		case "down", "ctrl+n":
			m.cursor++
			m.clampCursor()
			return m, nil
		case "pgup":
			m.cursor -= m.pageSize()
			m.clampCursor()
			return m, nil
		case "pgdown":
			m.cursor += m.pageSize()
			m.clampCursor()
			return m, nil
		}
	}

	previous := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != previous {
		m.refilter()
	}
	return m, cmd
}

func (m *Model) setTable(t *glossary.Table) {
	selected := m.Context()
	m.table = t
	m.contexts = append([]string{""}, t.Contexts()...)
	m.contextIdx = 0
	// Keep the selected context if it still exists.
	for i, c := range m.contexts {
		if c == selected {
			m.contextIdx = i
		}
	}
	m.refilter()
}

func (m *Model) refilter() {
	m.rows = glossary.Filter(m.table, m.input.Value(), m.Context())
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) pageSize() int {
	return max(1, m.height-chromeHeight)
}

// Keyword returns the current keyword.
func (m Model) Keyword() string {
	return m.input.Value()
}

// Context returns the selected context, "" for all.
func (m Model) Context() string {
	if len(m.contexts) == 0 {
		return ""
	}
	return m.contexts[m.contextIdx]
}

// Rows returns the visible rows in table order.
func (m Model) Rows() []glossary.Row {
	return m.rows
}

// Selected returns the row under the cursor.
func (m Model) Selected() (glossary.Row, bool) {
	if len(m.rows) == 0 {
		return glossary.Row{}, false
	}
	return m.rows[m.cursor], true
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Ubiquitous Language"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	ctxLabel := "All contexts"
	if c := m.Context(); c != "" {
		ctxLabel = c
	}
	b.WriteString(mutedStyle.Render("Context: "))
	b.WriteString(contextStyle.Render(ctxLabel))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  (%d/%d)", m.contextIdx+1, len(m.contexts))))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(mutedStyle.Italic(true).Render("No matching terms"))
		b.WriteString("\n")
	}
	end := min(len(m.rows), m.offset+m.pageSize())
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.cursor))
		b.WriteString("\n")
	}

	if r, ok := m.Selected(); ok {
		b.WriteString(m.renderDetail(r))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d terms", len(m.rows), m.table.Len())))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Type to filter | Tab context | Up/Down move | Esc quit"))
	return b.String()
}

func (m Model) renderRow(r glossary.Row, selected bool) string {
	indicator := "  "
	if selected {
		indicator = "> "
	}
	width := max(20, m.width-4)
	term := termStyle.Render(r.Term)
	ctx := contextStyle.Render("[" + r.Context + "]")
	used := lipgloss.Width(indicator) + lipgloss.Width(term) + lipgloss.Width(ctx) + 2
	desc := mutedStyle.Render(truncate(firstLine(r.Description), width-used))

	line := indicator + term + " " + ctx + " " + desc
	if selected {
		return selectedStyle.Width(width).Render(line)
	}
	return line
}

func (m Model) renderDetail(r glossary.Row) string {
	lines := []string{
		termStyle.Render(r.Term) + " " + contextStyle.Render("["+r.Context+"]"),
		mutedStyle.Render(fmt.Sprintf("%s:%d (%s)", r.SourceFile, r.Line, r.SourceLanguage)),
	}
	if r.DeclarationName != "" {
		lines = append(lines, mutedStyle.Render("declared as "+r.DeclarationName))
	}
	if r.Description != "" {
		lines = append(lines, r.Description)
	}
	return detailStyle.Width(max(20, m.width-4)).Render(strings.Join(lines, "\n"))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// truncate shortens s to width cells, marking the cut with "...".
func truncate(s string, width int) string {
	if width <= 3 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
