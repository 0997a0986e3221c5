package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sha1n/prompts-mcp-server/internal/domain"
	"github.com/sha1n/prompts-mcp-server/internal/search"
)

// RegisterSearchTool registers the search tool with the server
func RegisterSearchTool(s *server.MCPServer, searchService search.Searcher, metadata domain.ToolMetadata) {
	tool := mcp.NewTool(
		metadata.Name,
		mcp.WithDescription(metadata.Description),
		mcp.WithString("query", mcp.Required(), mcp.Description("The search query. Use natural language or keywords.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results to return.")),
	)

	s.AddTool(tool, NewSearchToolHandler(searchService))
}

// RegisterReadTool registers the read tool with the server
func RegisterReadTool(s *server.MCPServer, searchService search.Searcher, metadata domain.ToolMetadata) {
	tool := mcp.NewTool(
		metadata.Name,
		mcp.WithDescription(metadata.Description),
		mcp.WithString("name", mcp.Required(), mcp.Description("The prompt name, as returned by the search tool.")),
	)

	s.AddTool(tool, NewReadToolHandler(searchService))
}

// NewSearchToolHandler creates the handler for the search tool
func NewSearchToolHandler(searchService search.Searcher) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := req.Params.Arguments.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid arguments format")
		}

		query, ok := args["query"].(string)
		if !ok || strings.TrimSpace(query) == "" {
			return nil, fmt.Errorf("missing 'query' argument")
		}

		limit := 0
		if l, ok := args["limit"].(float64); ok {
			limit = int(l)
		}

		slog.Info("Search request", "query", query, "limit", limit)

		results, err := searchService.Search(query, limit)
		if err != nil {
			slog.Error("Search failed", "query", query, "error", err)
			return nil, err
		}

		var sb strings.Builder
		if len(results) == 0 {
			fmt.Fprintf(&sb, "No prompts found for '%s'", query)
		} else {
			fmt.Fprintf(&sb, "Prompts matching '%s':\n\n", query)
			for _, r := range results {
				fmt.Fprintf(&sb, "- %s (%s): %s\n", r.Name, r.Title, r.Description)
			}
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

// NewReadToolHandler creates the handler for the read tool
func NewReadToolHandler(searchService search.Searcher) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := req.Params.Arguments.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid arguments format")
		}

		name, ok := args["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("missing 'name' argument")
		}

		slog.Info("Read prompt request", "name", name)

		result, err := searchService.Get(name)
		if err != nil {
			if errors.Is(err, search.ErrNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("Unknown prompt: %s", name)), nil
			}
			slog.Error("Read prompt failed", "name", name, "error", err)
			return nil, err
		}

		return mcp.NewToolResultText(result.Content), nil
	}
}
