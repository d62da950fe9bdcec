package scanner

import (
	"path/filepath"
	"sort"
	"strings"
)

// Language identifies the comment syntax a source file is scanned with.
type Language string

const (
	Kotlin     Language = "kotlin"
	Java       Language = "java"
	PHP        Language = "php"
	Ruby       Language = "ruby"
	Python     Language = "python"
	TypeScript Language = "typescript"
	Rust       Language = "rust"
	C          Language = "c"
)

var extensions = map[string]Language{
	".kt":   Kotlin,
	".kts":  Kotlin,
	".java": Java,
	".php":  PHP,
	".rb":   Ruby,
	".py":   Python,
	".ts":   TypeScript,
	".tsx":  TypeScript,
	".rs":   Rust,
	".c":    C,
	".h":    C,
}

// LanguageForPath infers the language from a file extension.
// Returns false for extensions without a syntax table.
func LanguageForPath(path string) (Language, bool) {
	lang, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// ParseLanguage maps a configured language name onto a Language.
func ParseLanguage(name string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(name)))
	_, ok := syntaxes[lang]
	return lang, ok
}

// Languages returns every language with a syntax table, sorted by name.
func Languages() []Language {
	langs := make([]Language, 0, len(syntaxes))
	for lang := range syntaxes {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// Extensions returns the file extensions (with leading dot) mapped to lang.
func Extensions(lang Language) []string {
	var exts []string
	for ext, l := range extensions {
		if l == lang {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}
