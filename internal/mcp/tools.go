package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/ubidoc/internal/glossary"
)

type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// AddGlossaryTools registers every glossary tool with s.
func AddGlossaryTools(s *server.MCPServer, g Glossary) {
	AddGlossaryFilterTool(s, g)
	AddGlossaryContextsTool(s, g)
	AddGlossarySearchTool(s, g)
	AddGlossaryStatusTool(s, g)
}

// AddGlossaryFilterTool registers glossary_filter.
func AddGlossaryFilterTool(s *server.MCPServer, g Glossary) {
	tool := mcp.NewTool(
		"glossary_filter",
		mcp.WithDescription("Filter the project's ubiquitous language glossary. The keyword is a case-insensitive substring match over term, context, description and source file; context is an exact match. Both are combined with AND. Rows come back in glossary order."),
		mcp.WithString("keyword",
			mcp.Description("Substring to look for; empty matches every row")),
		mcp.WithString("context",
			mcp.Description("Exact bounded context name, as listed by glossary_contexts; empty matches every context")),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum rows to return (1-%d, default: %d)", MaxFilterLimit, DefaultFilterLimit))),
		mcp.WithBoolean("visibility",
			mcp.Description("Return every row plus a parallel visible[] array instead of only the matching rows")),
	)
	s.AddTool(tool, createGlossaryFilterHandler(g))
}

func createGlossaryFilterHandler(g Glossary) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, err := argsOf(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		keyword, err := parseStringArg(argsMap, "keyword", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		contextValue, err := parseStringArg(argsMap, "context", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts, err := parseOptions(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := opts.limit(DefaultFilterLimit, MaxFilterLimit)

		table := g.Snapshot().Table
		response := &FilterResponse{
			Keyword:   keyword,
			Context:   contextValue,
			TableSize: table.Len(),
		}

		if opts.Visibility {
			response.Visible = glossary.Visibility(table, keyword, contextValue)
			response.Rows = rowResults(g, table.All())
			for _, v := range response.Visible {
				if v {
					response.Total++
				}
			}
			return jsonResult(response)
		}

		rows := glossary.Filter(table, keyword, contextValue)
		response.Total = len(rows)
		if len(rows) > limit {
			rows = rows[:limit]
			response.Truncated = true
		}
		response.Rows = rowResults(g, rows)
		return jsonResult(response)
	}
}

// AddGlossaryContextsTool registers glossary_contexts.
func AddGlossaryContextsTool(s *server.MCPServer, g Glossary) {
	tool := mcp.NewTool(
		"glossary_contexts",
		mcp.WithDescription("List the bounded contexts present in the glossary, in order of first appearance, with their row counts. Use these names for the context argument of the other glossary tools."),
	)
	s.AddTool(tool, createGlossaryContextsHandler(g))
}

func createGlossaryContextsHandler(g Glossary) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table := g.Snapshot().Table
		counts := map[string]int{}
		for _, r := range table.All() {
			counts[r.Context]++
		}

		response := &ContextsResponse{Contexts: []ContextCount{}}
		for _, c := range table.Contexts() {
			response.Contexts = append(response.Contexts, ContextCount{Context: c, Rows: counts[c]})
		}
		response.Total = len(response.Contexts)
		return jsonResult(response)
	}
}

// AddGlossarySearchTool registers glossary_search.
func AddGlossarySearchTool(s *server.MCPServer, g Glossary) {
	tool := mcp.NewTool(
		"glossary_search",
		mcp.WithDescription("Ranked full-text search over glossary terms, descriptions and source files. Supports query string syntax such as +required -excluded \"exact phrase\" and term:Order."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query (e.g., 'refund', 'customer order', 'term:Ledger')")),
		mcp.WithString("context",
			mcp.Description("Restrict results to one exact bounded context")),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of results to return (1-%d, default: %d)", MaxSearchLimit, glossary.DefaultSearchLimit))),
	)
	s.AddTool(tool, createGlossarySearchHandler(g))
}

func createGlossarySearchHandler(g Glossary) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, err := argsOf(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		query, err := parseStringArg(argsMap, "query", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		contextValue, err := parseStringArg(argsMap, "context", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts, err := parseOptions(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := opts.limit(glossary.DefaultSearchLimit, MaxSearchLimit)

		hits, err := g.Search(ctx, query, glossary.SearchOptions{Limit: limit, Context: contextValue})
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		response := &SearchResponse{Query: query, Context: contextValue, Results: []SearchResult{}}
		for _, h := range hits {
			response.Results = append(response.Results, SearchResult{RowResult: rowResult(g, h.Row), Score: h.Score})
		}
		response.Total = len(response.Results)
		return jsonResult(response)
	}
}

// AddGlossaryStatusTool registers glossary_status.
func AddGlossaryStatusTool(s *server.MCPServer, g Glossary) {
	tool := mcp.NewTool(
		"glossary_status",
		mcp.WithDescription("Report the state of the glossary: generation, entry count, the diagnostics of the last ingestion (skipped files, unclosed comments, dropped blocks, superseded duplicates) and reload statistics."),
	)
	s.AddTool(tool, createGlossaryStatusHandler(g))
}

func createGlossaryStatusHandler(g Glossary) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap := g.Snapshot()
		return jsonResult(&StatusResponse{
			Generation:   snap.Generation,
			Entries:      snap.Table.Len(),
			Diagnostics:  snap.Diagnostics,
			SkippedFiles: snap.Diagnostics.SkippedPaths(),
			Reloads:      g.Metrics(),
		})
	}
}

func rowResult(g Glossary, r glossary.Row) RowResult {
	return RowResult{Projection: r.Project(), Line: r.Line, URL: g.SourceURL(r.SourceFile, r.Line)}
}

func rowResults(g Glossary, rows []glossary.Row) []RowResult {
	out := make([]RowResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowResult(g, r))
	}
	return out
}

// jsonResult returns v as JSON text (mcp-go convention).
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
