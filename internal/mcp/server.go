package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sha1n/prompts-mcp-server/internal/domain"
	"github.com/sha1n/prompts-mcp-server/internal/search"
)

// CreateServer creates the MCP server and registers the search tools.
// Prompts and resources are added later by the prompt registry.
func CreateServer(metadata domain.McpMetadata, searchService search.Searcher) *server.MCPServer {
	s := server.NewMCPServer(
		metadata.Server.Name,
		metadata.Server.Version,
		server.WithInstructions(metadata.Server.Instructions),
		server.WithPromptCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	RegisterSearchTool(s, searchService, metadata.GetToolMetadata(domain.ToolNameSearch))
	slog.Info("Registered tool", "name", domain.ToolNameSearch)

	RegisterReadTool(s, searchService, metadata.GetToolMetadata(domain.ToolNameRead))
	slog.Info("Registered tool", "name", domain.ToolNameRead)

	return s
}
