package scanner

import (
	"regexp"
	"strings"
)

// Syntax describes how comments and declarations look in one language.
// The locator is a single algorithm parametrized by these values.
type Syntax struct {
	// LineComments are ordinary line comment prefixes.
	LineComments []string
	// BlockStart and BlockEnd delimit ordinary block comments.
	BlockStart string
	BlockEnd   string
	// DocMarker opens a documentation block comment, e.g. "/**".
	DocMarker string
	// LineDoc prefixes a run of line comments that forms a documentation
	// comment, e.g. "///" or "#". Empty when the language only has block docs.
	LineDoc string
	// Attributes are line prefixes (annotations, decorators) allowed between
	// a documentation comment and its declaration.
	Attributes []string
	// Keywords introduce a named declaration.
	Keywords []string
	// Modifiers are regexp fragments that may precede a keyword.
	Modifiers []string

	header *regexp.Regexp
}

var syntaxes = map[Language]*Syntax{
	Kotlin: {
		LineComments: []string{"//"},
		BlockStart:   "/*",
		BlockEnd:     "*/",
		DocMarker:    "/**",
		Attributes:   []string{"@"},
		Keywords:     []string{"class", "interface", "object", "fun", "typealias"},
		Modifiers: []string{
			"public", "private", "protected", "internal", "open", "abstract", "final",
			"sealed", "data", "enum", "annotation", "inner", "value", "companion",
			"override", "suspend", "inline", "tailrec", "operator", "infix", "expect", "actual",
		},
	},
	Java: {
		LineComments: []string{"//"},
		BlockStart:   "/*",
		BlockEnd:     "*/",
		DocMarker:    "/**",
		Attributes:   []string{"@"},
		Keywords:     []string{"class", "interface", "enum", "record", "@interface"},
		Modifiers: []string{
			"public", "private", "protected", "abstract", "final", "static", "sealed",
			"non-sealed", "strictfp",
		},
	},
	PHP: {
		LineComments: []string{"//", "#"},
		BlockStart:   "/*",
		BlockEnd:     "*/",
		DocMarker:    "/**",
		Attributes:   []string{"#["},
		Keywords:     []string{"class", "interface", "trait", "enum", "function"},
		Modifiers:    []string{"abstract", "final", "readonly", "public", "private", "protected", "static"},
	},
	Ruby: {
		LineComments: []string{"#"},
		BlockStart:   "=begin",
		BlockEnd:     "=end",
		LineDoc:      "#",
		Keywords:     []string{"class", "module", "def"},
	},
	Python: {
		LineComments: []string{"#"},
		LineDoc:      "#",
		Attributes:   []string{"@"},
		Keywords:     []string{"class", "def"},
		Modifiers:    []string{"async"},
	},
	TypeScript: {
		LineComments: []string{"//"},
		BlockStart:   "/*",
		BlockEnd:     "*/",
		DocMarker:    "/**",
		Attributes:   []string{"@"},
		Keywords:     []string{"class", "interface", "function", "type", "enum", "namespace"},
		Modifiers:    []string{"export", "default", "declare", "abstract", "async", "const"},
	},
	Rust: {
		LineComments: []string{"//"},
		BlockStart:   "/*",
		BlockEnd:     "*/",
		DocMarker:    "/**",
		LineDoc:      "///",
		Attributes:   []string{"#["},
		Keywords:     []string{"struct", "enum", "trait", "fn", "type", "mod", "union"},
		Modifiers:    []string{`pub(?:\([^)]*\))?`, "async", "unsafe", "const", `extern\s+"[^"]*"`},
	},
	C: {
		LineComments: []string{"//"},
		BlockStart:   "/*",
		BlockEnd:     "*/",
		DocMarker:    "/**",
		Keywords:     []string{"struct", "enum", "union"},
		Modifiers:    []string{"typedef", "static", "const"},
	},
}

func init() {
	for _, s := range syntaxes {
		s.header = compileHeader(s.Keywords, s.Modifiers)
	}
}

// SyntaxFor returns the syntax table entry for lang.
func SyntaxFor(lang Language) (*Syntax, bool) {
	s, ok := syntaxes[lang]
	return s, ok
}

// compileHeader builds "modifiers* keyword [Receiver.]Name".
// Modifiers are regexp fragments; keywords are literal.
func compileHeader(keywords, modifiers []string) *regexp.Regexp {
	kw := make([]string, len(keywords))
	for i, k := range keywords {
		kw[i] = regexp.QuoteMeta(k)
	}
	var b strings.Builder
	b.WriteString(`^`)
	if len(modifiers) > 0 {
		b.WriteString(`(?:(?:` + strings.Join(modifiers, "|") + `)\s+)*`)
	}
	b.WriteString(`(?:` + strings.Join(kw, "|") + `)\s+`)
	b.WriteString(`(?:<[^>]*>\s*)?`)
	b.WriteString(`(?:[A-Za-z_][\w]*\.)?`)
	b.WriteString(`([A-Za-z_$][\w$]*)`)
	return regexp.MustCompile(b.String())
}

// declarationName returns the identifier declared by a trimmed source line.
func (s *Syntax) declarationName(line string) (string, bool) {
	m := s.header.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// opensDocBlock reports whether text starts a documentation block comment.
// "/**/" is an ordinary empty block comment.
func (s *Syntax) opensDocBlock(text string) bool {
	if s.DocMarker == "" || !strings.HasPrefix(text, s.DocMarker) {
		return false
	}
	return !strings.HasPrefix(text, s.BlockStart+s.BlockEnd)
}

func (s *Syntax) opensLineDoc(text string) bool {
	return s.LineDoc != "" && strings.HasPrefix(text, s.LineDoc)
}

func (s *Syntax) opensBlock(text string) bool {
	return s.BlockStart != "" && strings.HasPrefix(text, s.BlockStart)
}

func (s *Syntax) opensLineComment(text string) bool {
	for _, p := range s.LineComments {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

func (s *Syntax) isAttribute(line string) bool {
	return s.attributePrefix(line) != ""
}

func (s *Syntax) attributePrefix(line string) string {
	for _, p := range s.Attributes {
		if strings.HasPrefix(line, p) {
			return p
		}
	}
	return ""
}

// stripAttributes removes the leading attributes of a trimmed line, e.g.
// @JvmInline, @Table(name = "t") or #[derive(Debug)], and returns
// what follows them. Unbalanced brackets consume the rest of the line.
func (s *Syntax) stripAttributes(line string) string {
	for {
		p := s.attributePrefix(line)
		if p == "" {
			return line
		}
		rest := line[len(p):]
		if strings.HasSuffix(p, "[") {
			rest = skipBalanced(rest, '[', ']', 1)
		} else {
			i := 0
			for i < len(rest) && isAttributeNameByte(rest[i]) {
				i++
			}
			rest = strings.TrimLeft(rest[i:], " \t")
			if strings.HasPrefix(rest, "(") {
				rest = skipBalanced(rest[1:], '(', ')', 1)
			}
		}
		line = strings.TrimSpace(rest)
	}
}

func isAttributeNameByte(c byte) bool {
	return c == '_' || c == '.' || c == ':' || c == '$' ||
		'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// skipBalanced returns text after the bracket that closes depth open
// brackets, or "" when they never close.
func skipBalanced(text string, open, close byte, depth int) string {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[i+1:]
			}
		}
	}
	return ""
}

// docInner strips the doc delimiters from a raw documentation block.
func (s *Syntax) docInner(raw string, truncated bool) string {
	inner := strings.TrimPrefix(raw, s.DocMarker)
	if !truncated {
		inner = strings.TrimSuffix(inner, s.BlockEnd)
	}
	return inner
}
