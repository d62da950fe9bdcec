package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ubidoc/internal/ingest"
	"github.com/mvp-joe/ubidoc/internal/output"
)

var generateWatchFlag bool

var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Scan a source tree and write the glossary outputs",
	Long: `Scan a source tree for tagged documentation comments and write the
glossary in every format listed under output.formats (html, json, csv,
sqlite).

With --watch the command keeps running and regenerates the outputs whenever
a matching source file changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVarP(&generateWatchFlag, "watch", "w", false, "regenerate outputs when source files change")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var progress ingest.ProgressReporter
	if !quietFlag {
		progress = NewCLIProgressReporter(out)
	}
	ws, err := openWorkspace(args, cmd.ErrOrStderr(), progress)
	if err != nil {
		return err
	}
	defer ws.close()

	writers, err := output.NewSet(ws.cfg.Output.Formats, ws.outputOptions())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := generateOnce(ctx, ws, writers, out); err != nil {
		return err
	}
	if !generateWatchFlag {
		return nil
	}
	return watchAndGenerate(ctx, cancel, ws, writers, out)
}

// generateOnce refreshes the store and writes every configured output.
func generateOnce(ctx context.Context, ws *workspace, writers *output.Set, out io.Writer) error {
	snap, err := ws.store.RefreshFrom(ctx, ws.discovery)
	if err != nil {
		return fmt.Errorf("failed to build glossary: %w", err)
	}

	paths, err := writers.Write(ctx, snap.Table)
	if err != nil {
		return err
	}
	if !quietFlag {
		for _, p := range paths {
			fmt.Fprintf(out, "  wrote %s\n", p)
		}
	}
	ws.logger.Info().
		Uint64("generation", snap.Generation).
		Int("entries", snap.Table.Len()).
		Msg(snap.Diagnostics.Summary())
	return nil
}

func watchAndGenerate(ctx context.Context, cancel context.CancelFunc, ws *workspace, writers *output.Set, out io.Writer) error {
	fw, err := ws.newWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Stop()

	err = fw.Start(ctx, func(files []string) {
		ws.logger.Info().Strs("files", files).Msg("sources changed, regenerating")
		if err := generateOnce(ctx, ws, writers, out); err != nil && ctx.Err() == nil {
			// The previous outputs stay in place.
			ws.logger.Error().Err(err).Msg("regeneration failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Fprintf(out, "Watching %s for changes (Ctrl+C to stop)\n", ws.root)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
		ws.logger.Info().Msg("received shutdown signal")
		cancel()
	case <-ctx.Done():
	}
	return nil
}
