package output

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mvp-joe/ubidoc/internal/glossary"
	"github.com/mvp-joe/ubidoc/internal/scanner"
)

// SQLiteFile is the SQLite output's file name.
const SQLiteFile = "ubiquitous.db"

const createGlossaryTable = `
CREATE TABLE glossary (
    position INTEGER PRIMARY KEY,
    term TEXT NOT NULL,
    context TEXT NOT NULL,
    description TEXT NOT NULL,
    source_file TEXT NOT NULL,
    source_language TEXT NOT NULL,
    declaration_name TEXT NOT NULL,
    line INTEGER NOT NULL,
    UNIQUE (term, context)
)`

const createContextIndex = `CREATE INDEX idx_glossary_context ON glossary(context)`

var glossaryColumns = []string{
	"position", "term", "context", "description",
	"source_file", "source_language", "declaration_name", "line",
}

// SQLiteWriter writes the table into a fresh SQLite database. Rows keep
// their table position so readers can restore the order.
type SQLiteWriter struct {
	opts Options
}

func (w *SQLiteWriter) Format() string { return FormatSQLite }

func (w *SQLiteWriter) Write(ctx context.Context, t *glossary.Table) ([]string, error) {
	dir, err := assetsDir(w.opts)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, SQLiteFile)

	// Build into a temporary database, then swap it in.
	tmp := path + ".tmp"
	_ = os.Remove(tmp)
	if err := writeSQLite(ctx, tmp, t); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("failed to replace %s: %w", SQLiteFile, err)
	}
	return []string{path}, nil
}

func writeSQLite(ctx context.Context, path string, t *glossary.Table) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	for _, ddl := range []string{createGlossaryTable, createContextIndex} {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if t.Len() > 0 {
		sqlStr, _, err := sq.Insert("glossary").
			Columns(glossaryColumns...).
			Values(0, "", "", "", "", "", "", 0).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build SQL: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, sqlStr)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for i, r := range t.All() {
			_, err := stmt.ExecContext(ctx,
				i, r.Term, r.Context, r.Description,
				r.SourceFile, string(r.SourceLanguage), r.DeclarationName, r.Line,
			)
			if err != nil {
				return fmt.Errorf("failed to insert %q: %w", r.Term, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// readOnlyDSN returns a DSN that opens path read-only. The driver only
// passes URI parameters to SQLite for "file:" names.
func readOnlyDSN(path string) string {
	return "file:" + path + "?mode=ro"
}

// ReadSQLite loads the entries of a database written by SQLiteWriter in
// table order, optionally restricted to one context.
func ReadSQLite(ctx context.Context, path, contextValue string) ([]glossary.Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	query := sq.Select(glossaryColumns[1:]...).From("glossary").OrderBy("position")
	if contextValue != "" {
		query = query.Where(sq.Eq{"context": contextValue})
	}

	rows, err := query.RunWith(db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query glossary: %w", err)
	}
	defer rows.Close()

	var entries []glossary.Entry
	for rows.Next() {
		var e glossary.Entry
		var lang string
		if err := rows.Scan(&e.Term, &e.Context, &e.Description, &e.SourceFile, &lang, &e.DeclarationName, &e.Line); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		e.SourceLanguage = scanner.Language(lang)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return entries, nil
}
