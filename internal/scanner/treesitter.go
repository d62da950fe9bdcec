package scanner

import (
	"iter"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// grammar maps a tree-sitter grammar onto the node kinds the locator needs.
type grammar struct {
	language *sitter.Language
	// declarations are node kinds that can own a documentation comment.
	declarations map[string]bool
	// comments are comment node kinds.
	comments map[string]bool
	// wrappers are parents that carry the leading comment for a declaration,
	// such as export statements and decorated definitions.
	wrappers map[string]bool
	// skip are sibling kinds stepped over while looking for a comment.
	skip map[string]bool
}

func set(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}

func newGrammars() map[Language]*grammar {
	return map[Language]*grammar{
		Java: {
			language: sitter.NewLanguage(java.Language()),
			declarations: set("class_declaration", "interface_declaration", "enum_declaration",
				"record_declaration", "annotation_type_declaration", "method_declaration",
				"constructor_declaration"),
			comments: set("block_comment", "line_comment"),
		},
		PHP: {
			language: sitter.NewLanguage(php.LanguagePHP()),
			declarations: set("class_declaration", "interface_declaration", "trait_declaration",
				"enum_declaration", "function_definition", "method_declaration"),
			comments: set("comment"),
			skip:     set("attribute_list"),
		},
		Ruby: {
			language:     sitter.NewLanguage(ruby.Language()),
			declarations: set("class", "module", "method", "singleton_method"),
			comments:     set("comment"),
		},
		Python: {
			language:     sitter.NewLanguage(python.Language()),
			declarations: set("class_definition", "function_definition"),
			comments:     set("comment"),
			wrappers:     set("decorated_definition"),
		},
		TypeScript: {
			language: sitter.NewLanguage(typescript.LanguageTypescript()),
			declarations: set("class_declaration", "abstract_class_declaration", "interface_declaration",
				"function_declaration", "type_alias_declaration", "enum_declaration", "method_definition"),
			comments: set("comment"),
			wrappers: set("export_statement"),
		},
		Rust: {
			language: sitter.NewLanguage(rust.Language()),
			declarations: set("struct_item", "enum_item", "trait_item", "function_item", "type_item",
				"mod_item", "union_item"),
			comments: set("line_comment", "block_comment"),
			skip:     set("attribute_item"),
		},
		C: {
			language: sitter.NewLanguage(c.Language()),
			declarations: set("function_definition", "type_definition", "struct_specifier",
				"enum_specifier", "union_specifier"),
			comments: set("comment"),
			wrappers: set("declaration"),
		},
	}
}

// TreeLocator locates documentation comments through tree-sitter syntax
// trees. Languages without a grammar, and files whose tree contains syntax
// errors, are scanned by the lexical locator instead.
type TreeLocator struct {
	grammars map[Language]*grammar
	fallback *Lexical
}

// NewTreeLocator creates a syntax-tree locator falling back to a lexical
// locator with the given lookahead.
func NewTreeLocator(lookahead int) *TreeLocator {
	return &TreeLocator{
		grammars: newGrammars(),
		fallback: NewLexical(lookahead),
	}
}

// Supports reports whether lang has a grammar.
func (t *TreeLocator) Supports(lang Language) bool {
	_, ok := t.grammars[lang]
	return ok
}

// Locate implements Locator.
func (t *TreeLocator) Locate(text string, lang Language) iter.Seq[Block] {
	g, ok := t.grammars[lang]
	syn, known := SyntaxFor(lang)
	if !ok || !known {
		return t.fallback.Locate(text, lang)
	}
	return func(yield func(Block) bool) {
		blocks, clean := t.collect(g, syn, text, lang)
		if !clean {
			for b := range t.fallback.Locate(text, lang) {
				if !yield(b) {
					return
				}
			}
			return
		}
		for _, b := range blocks {
			if !yield(b) {
				return
			}
		}
	}
}

// collect parses text and returns its documentation blocks in source order.
// clean is false when the tree could not be trusted.
func (t *TreeLocator) collect(g *grammar, syn *Syntax, text string, lang Language) ([]Block, bool) {
	source := []byte(text)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(g.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, false
	}

	var docs []*sitter.Node
	owners := map[uint]string{}
	walkTree(root, func(n *sitter.Node) bool {
		kind := n.Kind()
		if g.comments[kind] {
			if isDocComment(syn, nodeText(n, source)) {
				docs = append(docs, n)
			}
			return false
		}
		if g.declarations[kind] {
			name := declarationName(n, source)
			if name != "" {
				if doc := precedingDoc(g, syn, anchorOf(g, n), source); doc != nil {
					if _, taken := owners[doc.StartByte()]; !taken {
						owners[doc.StartByte()] = name
					}
				}
			}
		}
		return true
	})

	var blocks []Block
	for _, group := range groupDocs(syn, docs, source) {
		first, last := group[0], group[len(group)-1]
		// Some grammars include the line terminator in line comment nodes.
		raw := strings.TrimRight(string(source[first.StartByte():last.EndByte()]), " \t\r\n")
		line := int(first.StartPosition().Row) + 1
		b := Block{
			Language:    lang,
			Start:       int(first.StartByte()),
			End:         int(first.StartByte()) + len(raw),
			Line:        line,
			EndLine:     line + strings.Count(raw, "\n"),
			Declaration: owners[last.StartByte()],
		}
		if syn.opensDocBlock(raw) {
			b.Text = syn.docInner(raw, false)
		} else {
			lines := make([]string, 0, len(group))
			for _, n := range group {
				lines = append(lines, strings.TrimPrefix(strings.TrimSpace(nodeText(n, source)), syn.LineDoc))
			}
			b.Text = strings.Join(lines, "\n")
		}
		blocks = append(blocks, b)
	}
	return blocks, true
}

func isDocComment(syn *Syntax, text string) bool {
	text = strings.TrimSpace(text)
	return syn.opensDocBlock(text) || syn.opensLineDoc(text)
}

// groupDocs merges documentation line comments on consecutive lines under
// the same parent. Block documentation comments always stand alone.
func groupDocs(syn *Syntax, docs []*sitter.Node, source []byte) [][]*sitter.Node {
	var groups [][]*sitter.Node
	for _, n := range docs {
		if len(groups) > 0 && !syn.opensDocBlock(strings.TrimSpace(nodeText(n, source))) {
			prev := groups[len(groups)-1]
			last := prev[len(prev)-1]
			if !syn.opensDocBlock(strings.TrimSpace(nodeText(last, source))) &&
				n.StartPosition().Row == last.StartPosition().Row+1 &&
				sameParent(n, last) {
				groups[len(groups)-1] = append(prev, n)
				continue
			}
		}
		groups = append(groups, []*sitter.Node{n})
	}
	return groups
}

func sameParent(a, b *sitter.Node) bool {
	pa, pb := a.Parent(), b.Parent()
	if pa == nil || pb == nil {
		return pa == pb
	}
	return pa.Id() == pb.Id()
}

// anchorOf climbs from a declaration to the node whose siblings hold its
// leading comment.
func anchorOf(g *grammar, n *sitter.Node) *sitter.Node {
	for {
		parent := n.Parent()
		if parent == nil || !g.wrappers[parent.Kind()] {
			return n
		}
		n = parent
	}
}

// precedingDoc walks back over siblings to the nearest documentation
// comment. Ordinary comments, skipped kinds and anonymous tokens are
// stepped over; any other named node ends the search.
func precedingDoc(g *grammar, syn *Syntax, n *sitter.Node, source []byte) *sitter.Node {
	for prev := n.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		kind := prev.Kind()
		switch {
		case g.comments[kind]:
			if isDocComment(syn, nodeText(prev, source)) {
				return prev
			}
		case g.skip[kind]:
		case prev.IsNamed():
			return nil
		}
	}
	return nil
}

// declarationName reads the "name" field, or follows "declarator" fields
// down to an identifier for C-style declarations.
func declarationName(n *sitter.Node, source []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return nodeText(name, source)
	}
	d := n.ChildByFieldName("declarator")
	for d != nil {
		switch d.Kind() {
		case "identifier", "type_identifier", "field_identifier":
			return nodeText(d, source)
		}
		d = d.ChildByFieldName("declarator")
	}
	return ""
}

func nodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

// walkTree visits nodes depth-first; returning false skips a node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), visitor)
	}
}
