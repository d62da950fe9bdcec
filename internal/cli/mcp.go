package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ubidoc/internal/mcp"
	"github.com/mvp-joe/ubidoc/internal/watcher"
)

var mcpNoWatchFlag bool

var mcpCmd = &cobra.Command{
	Use:   "mcp [dir]",
	Short: "Serve the glossary to AI assistants over MCP (stdio)",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing the
glossary through the glossary_filter, glossary_contexts, glossary_search and
glossary_status tools.

The glossary is rebuilt when source files change unless --no-watch is set.
Logs go to stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpNoWatchFlag, "no-watch", false, "do not rebuild the glossary on source changes")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol.
	ws, err := openWorkspace(args, cmd.ErrOrStderr(), nil)
	if err != nil {
		return err
	}
	defer ws.close()

	service := mcp.NewGlossaryService(mcp.ServiceOptions{
		Store:     ws.store,
		Discovery: ws.discovery,
		Logger:    ws.logger,
		SourceURL: ws.sourceURL,
	})

	var fw watcher.FileWatcher
	if !mcpNoWatchFlag {
		if fw, err = ws.newWatcher(); err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
	}

	server, err := mcp.NewMCPServer(mcp.MCPServerConfig{
		Service: service,
		Watcher: fw,
		Logger:  ws.logger,
	})
	if err != nil {
		return err
	}
	defer server.Close()

	return server.Serve(cmd.Context())
}
