package ingest

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/ubidoc/internal/scanner"
)

// Source is one file to ingest. Path is what rows report as their source
// file; Content, when nil, is read from Root/Path by the ingester. Err is
// set when discovery could not walk Path; the ingester reports it as
// skipped.
type Source struct {
	Path     string
	Language scanner.Language
	Content  []byte
	Err      error
}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery finds source files under a root directory.
type Discovery struct {
	rootDir          string
	includePatterns  []compiledPattern
	ignorePatterns   []compiledPattern
	enabledLanguages map[scanner.Language]bool
	walkDir          func(root string, fn fs.WalkDirFunc) error
}

// NewDiscovery compiles include and ignore globs. Only files whose
// extension maps to one of languages are returned; an empty list enables
// every known language.
func NewDiscovery(rootDir string, include, ignore []string, languages []scanner.Language) (*Discovery, error) {
	d := &Discovery{
		rootDir:          rootDir,
		enabledLanguages: map[scanner.Language]bool{},
		walkDir:          filepath.WalkDir,
	}
	var err error
	if d.includePatterns, err = compilePatterns(include); err != nil {
		return nil, err
	}
	if d.ignorePatterns, err = compilePatterns(ignore); err != nil {
		return nil, err
	}
	if len(languages) == 0 {
		languages = scanner.Languages()
	}
	for _, lang := range languages {
		d.enabledLanguages[lang] = true
	}
	return d, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	out := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		out = append(out, compiledPattern{pattern: pattern, glob: g})
	}
	return out, nil
}

// Root returns the directory being discovered.
func (d *Discovery) Root() string {
	return d.rootDir
}

// Discover walks the tree in lexical order and returns one Source per
// matching file. Paths are relative to the root with forward slashes, and
// Content is left nil. Only a failure on the root itself is returned; a
// file or directory below it that cannot be walked becomes a Source with
// Err set and the walk moves on.
func (d *Discovery) Discover() ([]Source, error) {
	var sources []Source
	err := d.walkDir(d.rootDir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil && path == d.rootDir {
			return walkErr
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if walkErr != nil {
			isDir := entry != nil && entry.IsDir()
			if !d.shouldIgnore(relPath) {
				sources = append(sources, Source{Path: relPath, Err: walkErr})
			}
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if relPath != "." && d.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.shouldIgnore(relPath) {
			return nil
		}

		lang, ok := scanner.LanguageForPath(relPath)
		if !ok || !d.enabledLanguages[lang] {
			return nil
		}
		if len(d.includePatterns) > 0 && !matchesAnyPattern(relPath, d.includePatterns) {
			return nil
		}
		sources = append(sources, Source{Path: relPath, Language: lang})
		return nil
	})
	return sources, err
}

// Matches reports whether a root-relative path would be discovered.
func (d *Discovery) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	if d.shouldIgnore(relPath) {
		return false
	}
	lang, ok := scanner.LanguageForPath(relPath)
	if !ok || !d.enabledLanguages[lang] {
		return false
	}
	return len(d.includePatterns) == 0 || matchesAnyPattern(relPath, d.includePatterns)
}

// Ignored reports whether a root-relative file or directory is excluded.
func (d *Discovery) Ignored(relPath string) bool {
	return d.shouldIgnore(filepath.ToSlash(relPath))
}

// shouldIgnore checks if a path matches any ignore pattern.
func (d *Discovery) shouldIgnore(relPath string) bool {
	// Output and config live under .ubidoc.
	if strings.HasPrefix(relPath, ".ubidoc/") || relPath == ".ubidoc" {
		return true
	}
	if matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}
	// "node_modules" should match pattern "node_modules/**".
	return matchesAnyPattern(relPath+"/**", d.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
// Root-level files also match "**/"-prefixed patterns, so "**/*.kt"
// covers both "Main.kt" and "src/Main.kt".
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}
	if strings.Contains(path, "/") {
		return false
	}
	for _, cp := range patterns {
		if !strings.HasPrefix(cp.pattern, "**/") {
			continue
		}
		if g, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/'); err == nil && g.Match(path) {
			return true
		}
	}
	return false
}
