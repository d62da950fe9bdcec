package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for ParseTags:
// - Recognized tags are extracted with trimmed values
// - Decoration ("*", "//", "#", "/**") is stripped before matching
// - Unknown @words are ignored
// - Tag names are case-sensitive
// - A repeated tag keeps its last value
// - Recognized tags with no value are treated as absent
// - Untagged comments expose the first content line as fallback narrative
// - Empty comments produce no tags and an empty narrative

func TestParseTags_RecognizedTags(t *testing.T) {
	t.Parallel()

	tags := ParseTags("\n * タグ無しのコメント\n * @ubiquitous ubiquitous langage kt\n * @context   context kt  \n * @description description kt\n ")

	assert.True(t, tags.HasExplicitTags)
	assert.Equal(t, map[string]string{
		TagUbiquitous:  "ubiquitous langage kt",
		TagContext:     "context kt",
		TagDescription: "description kt",
	}, tags.Values)
	assert.Empty(t, tags.FallbackNarrative)
}

func TestParseTags_StripsDecoration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"javadoc", "/**\n * @ubiquitous Order\n */"},
		{"rust line doc", "/// @ubiquitous Order"},
		{"hash", "# @ubiquitous Order"},
		{"double slash", "// @ubiquitous Order"},
		{"stars without space", "**@ubiquitous Order"},
		{"closing on same line", "@ubiquitous Order */"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, ok := ParseTags(tt.text).Get(TagUbiquitous)
			assert.True(t, ok)
			assert.Equal(t, "Order", v)
		})
	}
}

func TestParseTags_IgnoresUnknownTags(t *testing.T) {
	t.Parallel()

	tags := ParseTags(" * Constructor\n * @param name The name\n * @return The name")

	assert.False(t, tags.HasExplicitTags)
	assert.Empty(t, tags.Values)
	assert.Equal(t, "Constructor", tags.FallbackNarrative)
}

func TestParseTags_CaseSensitive(t *testing.T) {
	t.Parallel()

	tags := ParseTags("@Ubiquitous Order\n@CONTEXT Sales")

	assert.False(t, tags.HasExplicitTags)
	assert.Equal(t, "@Ubiquitous Order", tags.FallbackNarrative)
}

func TestParseTags_TagNameMustEndAtWhitespace(t *testing.T) {
	t.Parallel()

	tags := ParseTags("@contextual Sales\n@context Billing")

	v, ok := tags.Get(TagContext)
	assert.True(t, ok)
	assert.Equal(t, "Billing", v)
	assert.Len(t, tags.Values, 1)
}

func TestParseTags_LastOccurrenceWins(t *testing.T) {
	t.Parallel()

	tags := ParseTags("@context First\n@context Second")

	v, _ := tags.Get(TagContext)
	assert.Equal(t, "Second", v)
}

func TestParseTags_EmptyValueIsAbsent(t *testing.T) {
	t.Parallel()

	tags := ParseTags(" * @ubiquitous\n * @context   \n * @description Billing run")

	_, hasTerm := tags.Get(TagUbiquitous)
	_, hasContext := tags.Get(TagContext)
	assert.False(t, hasTerm)
	assert.False(t, hasContext)
	assert.True(t, tags.HasExplicitTags)
}

func TestParseTags_FallbackNarrative(t *testing.T) {
	t.Parallel()

	tags := ParseTags("\n    * タグ無しのコメント\n    ")

	assert.False(t, tags.HasExplicitTags)
	assert.Equal(t, "タグ無しのコメント", tags.FallbackNarrative)
}

func TestParseTags_EmptyComment(t *testing.T) {
	t.Parallel()

	tags := ParseTags("")

	assert.False(t, tags.HasExplicitTags)
	assert.Empty(t, tags.Values)
	assert.Empty(t, tags.FallbackNarrative)

	tags = ParseTags("\n *\n *\n ")
	assert.Empty(t, tags.FallbackNarrative)
}

func TestStripDecoration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text", StripDecoration("   * text"))
	assert.Equal(t, "text", StripDecoration("/** text */"))
	assert.Equal(t, "", StripDecoration(" */"))
	assert.Equal(t, "", StripDecoration("**/"))
	assert.Equal(t, "a * b", StripDecoration("* a * b"))
}
