package scanner

import (
	"iter"
	"strings"
)

// DefaultLookahead is how many lines after a documentation comment are
// searched for the declaration it documents.
const DefaultLookahead = 5

// Lexical locates documentation comments by delimiter matching alone.
// It understands comment syntax and declaration headers, nothing else:
// string literals that contain comment delimiters are not recognized.
type Lexical struct {
	Lookahead int
}

// NewLexical creates a lexical locator. A non-positive lookahead selects
// DefaultLookahead.
func NewLexical(lookahead int) *Lexical {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return &Lexical{Lookahead: lookahead}
}

// Locate scans text with the default lexical locator.
func Locate(text string, lang Language) iter.Seq[Block] {
	return NewLexical(DefaultLookahead).Locate(text, lang)
}

// Locate implements Locator. Unknown languages yield nothing.
func (l *Lexical) Locate(text string, lang Language) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		syn, ok := SyntaxFor(lang)
		if !ok {
			return
		}
		s := &lexScan{syn: syn, text: text, lang: lang, lookahead: l.Lookahead, line: 1}
		s.run(yield)
	}
}

// lexScan holds the state of one Locate call.
type lexScan struct {
	syn       *Syntax
	text      string
	lang      Language
	lookahead int

	// line is the 1-based line number at offset counted.
	line    int
	counted int
}

// lineAt returns the line number of pos. Positions must be non-decreasing
// between calls.
func (s *lexScan) lineAt(pos int) int {
	if pos > s.counted {
		s.line += strings.Count(s.text[s.counted:pos], "\n")
		s.counted = pos
	}
	return s.line
}

func (s *lexScan) run(yield func(Block) bool) {
	text := s.text
	atLineStart := true
	pos := 0
	for pos < len(text) {
		switch text[pos] {
		case '\n':
			atLineStart = true
			pos++
			continue
		case ' ', '\t', '\r', '\f':
			pos++
			continue
		}

		rest := text[pos:]
		switch {
		case s.syn.opensDocBlock(rest):
			b, next := s.docBlock(pos)
			if !yield(b) {
				return
			}
			pos = next
			atLineStart = false
		case atLineStart && s.syn.opensLineDoc(rest):
			b, next := s.lineDocRun(pos)
			if !yield(b) {
				return
			}
			pos = next
			atLineStart = true
		case s.syn.opensBlock(rest):
			pos = s.skipBlock(pos)
			atLineStart = false
		case s.syn.opensLineComment(rest):
			pos = skipLine(text, pos)
		default:
			pos++
			atLineStart = false
		}
	}
}

// docBlock reads a documentation block comment starting at pos.
func (s *lexScan) docBlock(pos int) (Block, int) {
	text := s.text
	contentStart := pos + len(s.syn.DocMarker)
	end := len(text)
	truncated := true
	if i := strings.Index(text[contentStart:], s.syn.BlockEnd); i >= 0 {
		end = contentStart + i + len(s.syn.BlockEnd)
		truncated = false
	}

	b := Block{
		Language:  s.lang,
		Text:      s.syn.docInner(text[pos:end], truncated),
		Start:     pos,
		End:       end,
		Line:      s.lineAt(pos),
		EndLine:   s.lineAt(end),
		Truncated: truncated,
	}
	if !truncated {
		b.Declaration = s.declarationAfter(end)
	}
	return b, end
}

// lineDocRun reads consecutive documentation line comments starting at pos,
// which must be the first non-blank byte of its line.
func (s *lexScan) lineDocRun(pos int) (Block, int) {
	text := s.text
	var lines []string
	end := pos
	next := pos
	for next < len(text) {
		lineEnd := strings.IndexByte(text[next:], '\n')
		var raw string
		if lineEnd < 0 {
			raw = text[next:]
		} else {
			raw = text[next : next+lineEnd]
		}
		trimmed := strings.TrimSpace(raw)
		if !s.syn.opensLineDoc(trimmed) {
			break
		}
		lines = append(lines, strings.TrimPrefix(trimmed, s.syn.LineDoc))
		end = next + len(strings.TrimRight(raw, " \t\r"))
		if lineEnd < 0 {
			next = len(text)
			break
		}
		next += lineEnd + 1
	}

	b := Block{
		Language: s.lang,
		Text:     strings.Join(lines, "\n"),
		Start:    pos,
		End:      end,
		Line:     s.lineAt(pos),
		EndLine:  s.lineAt(end),
	}
	b.Declaration = s.declarationAfter(next)
	return b, next
}

// skipBlock skips an ordinary block comment. An unterminated one runs to
// end of file.
func (s *lexScan) skipBlock(pos int) int {
	start := pos + len(s.syn.BlockStart)
	i := strings.Index(s.text[start:], s.syn.BlockEnd)
	if i < 0 {
		return len(s.text)
	}
	return start + i + len(s.syn.BlockEnd)
}

func skipLine(text string, pos int) int {
	i := strings.IndexByte(text[pos:], '\n')
	if i < 0 {
		return len(text)
	}
	return pos + i
}

// declarationAfter returns the declaration introduced by the first
// significant line at or after pos, within the lookahead window.
// Blank lines, comments and attributes are stepped over; another
// documentation comment ends the search.
func (s *lexScan) declarationAfter(pos int) string {
	text := s.text
	for seen := 0; pos < len(text) && seen <= s.lookahead; seen++ {
		lineEnd := strings.IndexByte(text[pos:], '\n')
		next := len(text)
		line := text[pos:]
		if lineEnd >= 0 {
			line = text[pos : pos+lineEnd]
			next = pos + lineEnd + 1
		}
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
		case s.syn.opensDocBlock(trimmed), s.syn.opensLineDoc(trimmed):
			return ""
		default:
			if name, ok := s.syn.declarationName(trimmed); ok {
				return name
			}
			switch {
			case s.syn.opensBlock(trimmed):
				// Resume right after the comment: a declaration may share its line.
				start := pos + strings.Index(line, s.syn.BlockStart)
				next = s.skipBlock(start)
				if next >= len(text) {
					return ""
				}
			case s.syn.isAttribute(trimmed):
				// The declaration may follow its annotations on the same line.
				if name, ok := s.syn.declarationName(s.syn.stripAttributes(trimmed)); ok {
					return name
				}
			case s.syn.opensLineComment(trimmed):
			default:
				return ""
			}
		}
		pos = next
	}
	return ""
}
