package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ubidoc/internal/browse"
)

var browseWatchFlag bool

var browseCmd = &cobra.Command{
	Use:   "browse [dir]",
	Short: "Browse the glossary interactively in the terminal",
	Long: `Open a terminal view of the glossary. Typing filters rows by keyword
on every keystroke; tab cycles the bounded context.

With --watch the view refreshes when source files change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().BoolVarP(&browseWatchFlag, "watch", "w", false, "refresh the view when source files change")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	// Logs would corrupt the alternate screen unless asked for.
	logOut := io.Discard
	if logLevelFlag != "" {
		logOut = cmd.ErrOrStderr()
	}
	ws, err := openWorkspace(args, logOut, nil)
	if err != nil {
		return err
	}
	defer ws.close()

	ctx := cmd.Context()
	if _, err := ws.store.RefreshFrom(ctx, ws.discovery); err != nil {
		return fmt.Errorf("failed to build glossary: %w", err)
	}

	if browseWatchFlag {
		fw, err := ws.newWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer fw.Stop()
		err = fw.Start(ctx, func([]string) {
			if _, err := ws.store.RefreshFrom(ctx, ws.discovery); err != nil {
				ws.logger.Error().Err(err).Msg("refresh failed")
			}
		})
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
	}

	return browse.Run(ctx, ws.store)
}
