package cli

// Test Plan for the ubidoc commands:
// - version prints the build information
// - generate writes every configured format under <dir>/ubi-doc
// - generate rejects a path that is not a directory
// - generate surfaces invalid configuration
// - query filters by keyword and context and prints JSON rows
// - query renders a table with a row count
// - query --db reads rows back from a SQLite export
// - search ranks rows and honours --limit
// - search rejects a non-positive --limit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ubidoc/internal/glossary"
)

const orderSource = `package shop

/**
 * @ubiquitous Order
 * @context Sales
 * @description A customer's purchase.
 */
class Order

/**
 * @ubiquitous Refund
 * @context Payments
 * @description Money returned to a customer.
 */
class Refund
`

const ledgerSource = `# @ubiquitous Ledger
# @context Accounting
# @description Groups postings by account.
class Ledger
end
`

// setupProject writes a small source tree and a config selecting formats.
func setupProject(t *testing.T, formats string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "shop"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".ubidoc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "shop", "Order.kt"), []byte(orderSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ledger.rb"), []byte(ledgerSource), 0o644))
	config := "output:\n  formats: " + formats + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".ubidoc", "config.yml"), []byte(config), 0o644))
	return root
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	logLevelFlag = ""
	quietFlag = false
	generateWatchFlag = false
	queryKeywordFlag = ""
	queryContextFlag = ""
	queryJSONFlag = false
	queryDBFlag = ""
	searchLimitFlag = glossary.DefaultSearchLimit
	searchContextFlag = ""
	searchJSONFlag = false
	browseWatchFlag = false
	mcpNoWatchFlag = false
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "ubidoc "+Version)
	assert.Contains(t, out, "Git commit: "+GitCommit)
}

func TestGenerateCommand_WritesFormats(t *testing.T) {
	root := setupProject(t, "[html, json, csv, sqlite]")

	out, err := execute(t, "generate", root, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, out)

	dir := filepath.Join(root, "ubi-doc")
	for _, name := range []string{"ubiquitous.html", "script.js", "style.css", "ubiquitous.json", "ubiquitous.csv", "ubiquitous.db"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	data, err := os.ReadFile(filepath.Join(dir, "ubiquitous.json"))
	require.NoError(t, err)
	var doc struct {
		Contexts []string               `json:"contexts"`
		Rows     []glossary.Projection `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.ElementsMatch(t, []string{"Sales", "Payments", "Accounting"}, doc.Contexts)
	assert.Len(t, doc.Rows, 3)
}

func TestGenerateCommand_PrintsWrittenFiles(t *testing.T) {
	root := setupProject(t, "[json]")

	out, err := execute(t, "generate", root)

	require.NoError(t, err)
	assert.Contains(t, out, "Glossary built: 3 entries from 2 files")
	assert.Contains(t, out, filepath.Join(root, "ubi-doc", "ubiquitous.json"))
}

func TestGenerateCommand_NotADirectory(t *testing.T) {
	root := setupProject(t, "[json]")

	_, err := execute(t, "generate", filepath.Join(root, "ledger.rb"), "--quiet")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestGenerateCommand_InvalidConfig(t *testing.T) {
	root := setupProject(t, "[pdf]")

	_, err := execute(t, "generate", root, "--quiet")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestQueryCommand_JSON(t *testing.T) {
	root := setupProject(t, "[json]")

	out, err := execute(t, "query", root, "--keyword", "CUSTOMER", "--json", "--log-level", "error")
	require.NoError(t, err)

	var rows []glossary.Projection
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Order", rows[0].Term)
	assert.Equal(t, "Refund", rows[1].Term)

	out, err = execute(t, "query", root, "--keyword", "customer", "--context", "Payments", "--json")
	require.NoError(t, err)
	rows = nil
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Refund", rows[0].Term)
}

func TestQueryCommand_Table(t *testing.T) {
	root := setupProject(t, "[json]")

	out, err := execute(t, "query", root, "--context", "Accounting")
	require.NoError(t, err)
	assert.Contains(t, out, "Ubiquitous")
	assert.Contains(t, out, "Ledger")
	assert.NotContains(t, out, "Refund")
	assert.Contains(t, out, "1 of 3 terms")

	out, err = execute(t, "query", root, "--keyword", "no such term")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching terms.")
}

func TestQueryCommand_FromSQLite(t *testing.T) {
	root := setupProject(t, "[sqlite]")
	_, err := execute(t, "generate", root, "--quiet")
	require.NoError(t, err)

	// The sources are gone; rows come from the export.
	require.NoError(t, os.Remove(filepath.Join(root, "ledger.rb")))

	out, err := execute(t, "query", "--db", filepath.Join(root, "ubi-doc", "ubiquitous.db"), "--keyword", "ledger", "--json")
	require.NoError(t, err)

	var rows []glossary.Projection
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Ledger", rows[0].Term)
	assert.Equal(t, "Accounting", rows[0].Context)
}

func TestSearchCommand(t *testing.T) {
	root := setupProject(t, "[json]")

	out, err := execute(t, "search", "refund", root, "--json")
	require.NoError(t, err)

	var hits []searchHitJSON
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	require.NotEmpty(t, hits)
	assert.Equal(t, "Refund", hits[0].Term)
	assert.Equal(t, 10, hits[0].Line)
	assert.Positive(t, hits[0].Score)

	out, err = execute(t, "search", "customer", root, "--json", "--limit", "1")
	require.NoError(t, err)
	hits = nil
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	assert.Len(t, hits, 1)
}

func TestSearchCommand_InvalidLimit(t *testing.T) {
	root := setupProject(t, "[json]")

	_, err := execute(t, "search", "order", root, "--limit", "0")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit")
}
