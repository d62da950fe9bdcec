package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ubidoc/internal/glossary"
	"github.com/mvp-joe/ubidoc/internal/output"
)

var (
	queryKeywordFlag string
	queryContextFlag string
	queryJSONFlag    bool
	queryDBFlag      string
)

var queryCmd = &cobra.Command{
	Use:   "query [dir]",
	Short: "Filter the glossary by keyword and context",
	Long: `Print the glossary rows matching a keyword and a context.

The keyword matches case-insensitively anywhere in the term, context,
description or source file. The context must match exactly. Both are
combined with AND; an empty value matches everything.

With --db the rows are read from a previously generated SQLite export
instead of scanning the sources.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryKeywordFlag, "keyword", "k", "", "case-insensitive keyword")
	queryCmd.Flags().StringVarP(&queryContextFlag, "context", "c", "", "exact bounded context")
	queryCmd.Flags().BoolVar(&queryJSONFlag, "json", false, "print rows as JSON")
	queryCmd.Flags().StringVar(&queryDBFlag, "db", "", "read rows from a SQLite export")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd, args)
	if err != nil {
		return err
	}

	rows := glossary.Project(glossary.Filter(table, queryKeywordFlag, queryContextFlag))

	out := cmd.OutOrStdout()
	if queryJSONFlag {
		return writeJSON(out, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No matching terms.")
		return nil
	}
	if err := renderRows(out, rows, "", nil); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d terms\n", len(rows), table.Len())
	return nil
}

// loadTable reads the table from --db when set, otherwise scans the tree.
func loadTable(cmd *cobra.Command, args []string) (*glossary.Table, error) {
	if queryDBFlag != "" {
		entries, err := output.ReadSQLite(cmd.Context(), queryDBFlag, "")
		if err != nil {
			return nil, err
		}
		return glossary.Build(entries), nil
	}
	return scanTable(cmd, args)
}

// scanTable builds the table for the tree named by args without writing
// outputs.
func scanTable(cmd *cobra.Command, args []string) (*glossary.Table, error) {
	ws, err := openWorkspace(args, cmd.ErrOrStderr(), nil)
	if err != nil {
		return nil, err
	}
	defer ws.close()

	snap, err := ws.store.RefreshFrom(cmd.Context(), ws.discovery)
	if err != nil {
		return nil, fmt.Errorf("failed to build glossary: %w", err)
	}
	return snap.Table, nil
}
