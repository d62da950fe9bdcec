package scanner

import (
	"strings"
	"unicode"
)

// Recognized tag names.
const (
	TagUbiquitous  = "ubiquitous"
	TagContext     = "context"
	TagDescription = "description"
)

var recognizedTags = map[string]bool{
	TagUbiquitous:  true,
	TagContext:     true,
	TagDescription: true,
}

// Tags is the structured content of one documentation comment.
type Tags struct {
	// Values holds recognized tags only. A missing key means the tag was absent.
	Values map[string]string
	// HasExplicitTags is true when at least one recognized tag was found.
	HasExplicitTags bool
	// FallbackNarrative is the first content line of an untagged comment.
	FallbackNarrative string
}

// Get returns the value of a recognized tag.
func (t Tags) Get(name string) (string, bool) {
	v, ok := t.Values[name]
	return v, ok
}

// ParseTags extracts @ubiquitous, @context and @description from comment text.
//
// A tag line is "@name value" once decoration is stripped. Unknown @words
// are ignored, as are recognized tags with no value. When a tag repeats
// within one comment the last occurrence wins.
func ParseTags(text string) Tags {
	tags := Tags{Values: map[string]string{}}
	firstLine := ""
	for _, raw := range strings.Split(text, "\n") {
		line := StripDecoration(raw)
		if line == "" {
			continue
		}
		if firstLine == "" {
			firstLine = line
		}
		name, value, ok := splitTag(line)
		if !ok || !recognizedTags[name] || value == "" {
			continue
		}
		tags.Values[name] = value
	}

	tags.HasExplicitTags = len(tags.Values) > 0
	if !tags.HasExplicitTags {
		tags.FallbackNarrative = firstLine
	}
	return tags
}

// splitTag splits "@name rest" into name and trimmed rest.
func splitTag(line string) (string, string, bool) {
	if !strings.HasPrefix(line, "@") {
		return "", "", false
	}
	body := line[1:]
	end := strings.IndexFunc(body, unicode.IsSpace)
	if end < 0 {
		return body, "", body != ""
	}
	return body[:end], strings.TrimSpace(body[end:]), end > 0
}

var decorations = []string{"/**", "/*", "///", "//", "#"}

// StripDecoration removes comment punctuation around one comment line:
// leading whitespace, one opening delimiter, leading asterisks and a
// trailing "*/".
func StripDecoration(line string) string {
	line = strings.TrimSpace(line)
	for _, d := range decorations {
		if strings.HasPrefix(line, d) {
			line = line[len(d):]
			break
		}
	}
	line = strings.TrimSuffix(strings.TrimSpace(line), "*/")
	line = strings.TrimLeft(line, "*")
	return strings.TrimSpace(line)
}
