package scanner

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for TreeLocator:
// - Java class, constructor and method doc comments are attached by syntax tree
// - PHP class doc comments are attached, untagged siblings included
// - Python "#" runs are grouped and attached through decorators
// - TypeScript doc comments attach through export statements
// - Rust "///" runs attach across attributes
// - Ordinary comments are never yielded
// - Languages without a grammar (Kotlin) use the lexical locator
// - Files with syntax errors fall back and still report truncation

func declarations(blocks []Block) []string {
	names := make([]string, 0, len(blocks))
	for _, b := range blocks {
		names = append(names, b.Declaration)
	}
	return names
}

func TestTreeLocator_JavaFixture(t *testing.T) {
	t.Parallel()

	loc := NewTreeLocator(DefaultLookahead)
	blocks := slices.Collect(loc.Locate(readFixture(t, "sample.java"), Java))

	assert.Equal(t,
		[]string{"SampleJava", "SampleJava", "getName", "SampleJava1", "SampleJava1", "getName"},
		declarations(blocks))
	assert.Equal(t, 1, blocks[0].Line)
	assert.Equal(t, 5, blocks[0].EndLine)
	assert.Contains(t, blocks[0].Text, "@ubiquitous SampleUbiquitous")
	assert.False(t, blocks[0].Truncated)
}

func TestTreeLocator_PHPFixture(t *testing.T) {
	t.Parallel()

	loc := NewTreeLocator(DefaultLookahead)
	blocks := slices.Collect(loc.Locate(readFixture(t, "sample.php"), PHP))

	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"Sample", "Sample2"}, declarations(blocks))
	assert.Equal(t, 7, blocks[0].Line)
	assert.Contains(t, blocks[1].Text, "タグ無しのコメント")
}

func TestTreeLocator_PythonDecorated(t *testing.T) {
	t.Parallel()

	src := "# A ledger.\n# @context Accounting\n@dataclass\nclass Ledger:\n    pass\n"
	blocks := slices.Collect(NewTreeLocator(0).Locate(src, Python))

	require.Len(t, blocks, 1)
	assert.Equal(t, "Ledger", blocks[0].Declaration)
	assert.Equal(t, " A ledger.\n @context Accounting", blocks[0].Text)
	assert.Equal(t, 1, blocks[0].Line)
	assert.Equal(t, 2, blocks[0].EndLine)
}

func TestTreeLocator_TypeScriptExport(t *testing.T) {
	t.Parallel()

	src := "// plain\n/** Money. */\nexport class Price {\n  /** Amount in cents. */\n  amount(): number { return 0; }\n}\n"
	blocks := slices.Collect(NewTreeLocator(0).Locate(src, TypeScript))

	assert.Equal(t, []string{"Price", "amount"}, declarations(blocks))
	assert.Equal(t, " Money. ", blocks[0].Text)
}

func TestTreeLocator_RustAttributes(t *testing.T) {
	t.Parallel()

	src := "/// A ledger.\n/// @context Accounting\n#[derive(Debug)]\npub struct Ledger;\n"
	blocks := slices.Collect(NewTreeLocator(0).Locate(src, Rust))

	require.Len(t, blocks, 1)
	assert.Equal(t, "Ledger", blocks[0].Declaration)
	assert.Equal(t, " A ledger.\n @context Accounting", blocks[0].Text)
}

func TestTreeLocator_KotlinUsesLexical(t *testing.T) {
	t.Parallel()

	loc := NewTreeLocator(DefaultLookahead)
	assert.False(t, loc.Supports(Kotlin))

	text := readFixture(t, "sample.kt")
	assert.Equal(t, slices.Collect(Locate(text, Kotlin)), slices.Collect(loc.Locate(text, Kotlin)))
}

func TestTreeLocator_SyntaxErrorFallsBack(t *testing.T) {
	t.Parallel()

	loc := NewTreeLocator(DefaultLookahead)
	blocks := slices.Collect(loc.Locate(readFixture(t, "broken/Unclosed.java"), Java))

	require.Len(t, blocks, 2)
	assert.Equal(t, "Refund", blocks[0].Declaration)
	assert.True(t, blocks[1].Truncated)
}
