package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ubidoc/internal/glossary"
)

var (
	searchLimitFlag   int
	searchContextFlag string
	searchJSONFlag    bool
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY [dir]",
	Short: "Ranked full-text search over the glossary",
	Long: `Rank glossary rows against a free-text query over terms, descriptions
and source files. A word found in a term ranks above the same word in a
description. Query string syntax is supported: +required, -excluded,
"exact phrase" and field:value (term, description, source_file).
--context restricts hits to one bounded context.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimitFlag, "limit", "n", glossary.DefaultSearchLimit, "maximum number of hits")
	searchCmd.Flags().StringVarP(&searchContextFlag, "context", "c", "", "exact bounded context")
	searchCmd.Flags().BoolVar(&searchJSONFlag, "json", false, "print hits as JSON")
	rootCmd.AddCommand(searchCmd)
}

type searchHitJSON struct {
	glossary.Projection
	Line  int     `json:"line"`
	Score float64 `json:"score"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchLimitFlag < 1 {
		return fmt.Errorf("--limit must be at least 1")
	}

	table, err := scanTable(cmd, args[1:])
	if err != nil {
		return err
	}

	idx, err := glossary.NewSearchIndex(cmd.Context(), table)
	if err != nil {
		return err
	}
	defer idx.Close()

	hits, err := idx.Search(cmd.Context(), args[0], glossary.SearchOptions{
		Limit:   searchLimitFlag,
		Context: searchContextFlag,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if searchJSONFlag {
		results := make([]searchHitJSON, len(hits))
		for i, h := range hits {
			results[i] = searchHitJSON{Projection: h.Row.Project(), Line: h.Row.Line, Score: h.Score}
		}
		return writeJSON(out, results)
	}
	if len(hits) == 0 {
		fmt.Fprintln(out, "No matching terms.")
		return nil
	}

	rows := make([]glossary.Projection, len(hits))
	for i, h := range hits {
		rows[i] = h.Row.Project()
	}
	return renderRows(out, rows, "Score", func(i int) string {
		return strconv.FormatFloat(hits[i].Score, 'f', 3, 64)
	})
}
