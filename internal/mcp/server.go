// Package mcp exposes the glossary over the Model Context Protocol on stdio.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/ubidoc/internal/logging"
	"github.com/mvp-joe/ubidoc/internal/watcher"
)

// ServerName and ServerVersion identify the server to clients.
const (
	ServerName    = "ubidoc-mcp"
	ServerVersion = "1.0.0"
)

// MCPServerConfig configures an MCPServer.
type MCPServerConfig struct {
	Service *GlossaryService
	// Watcher, when set, triggers a reload after source changes.
	Watcher watcher.FileWatcher
	Logger  *logging.Logger
}

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	service *GlossaryService
	watcher watcher.FileWatcher
	logger  *logging.Logger
	mcp     *server.MCPServer
}

// NewMCPServer creates a server with the glossary tools registered.
func NewMCPServer(config MCPServerConfig) (*MCPServer, error) {
	if config.Service == nil {
		return nil, fmt.Errorf("glossary service is required")
	}
	if config.Logger == nil {
		config.Logger = logging.Nop()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)
	AddGlossaryTools(mcpServer, config.Service)

	return &MCPServer{
		service: config.Service,
		watcher: config.Watcher,
		logger:  config.Logger,
		mcp:     mcpServer,
	}, nil
}

// Server returns the underlying mcp-go server.
func (s *MCPServer) Server() *server.MCPServer {
	return s.mcp
}

// Serve loads the glossary, starts the watcher and serves stdio until the
// client disconnects, a signal arrives or ctx is done.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.service.Reload(ctx); err != nil {
		return fmt.Errorf("initial ingestion failed: %w", err)
	}
	s.logger.Info().Int("entries", s.service.Snapshot().Table.Len()).Msg("glossary loaded")

	if s.watcher != nil {
		err := s.watcher.Start(ctx, func(files []string) {
			s.logger.Info().Strs("files", files).Msg("sources changed, reloading")
			// Errors are logged by Reload; the previous table stays published.
			_ = s.service.Reload(ctx)
		})
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer s.watcher.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Msg("starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		s.logger.Info().Msg("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *MCPServer) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	return s.service.Close()
}
