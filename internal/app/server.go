package app

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sha1n/prompts-mcp-server/internal/config"
	"github.com/sha1n/prompts-mcp-server/internal/domain"
	"github.com/sha1n/prompts-mcp-server/internal/mcp"
	"github.com/sha1n/prompts-mcp-server/internal/prompts"
	"github.com/sha1n/prompts-mcp-server/internal/search"
)

// Server bundles the MCP server with the components that feed it
type Server struct {
	MCP      *server.MCPServer
	Registry *prompts.Registry
	Search   *search.Service

	settings *config.Settings
}

// New initializes the core MCP server components and registers every prompt
// found in the configured directory
func New(settings *config.Settings) (*Server, error) {
	metadata, err := domain.LoadMetadata(settings.MetadataPath)
	if err != nil {
		return nil, err
	}

	loader, err := prompts.NewLoaderFor(settings)
	if err != nil {
		return nil, err
	}

	searchService, err := search.NewService(settings.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize search: %w", err)
	}

	mcpServer := mcp.CreateServer(metadata, searchService)

	registry, err := prompts.NewRegistry(settings.PromptsDir, mcpServer,
		prompts.WithLoader(loader),
		prompts.WithIndexer(searchService),
		prompts.WithScheme(settings.Scheme),
	)
	if err != nil {
		searchService.Close()
		return nil, err
	}

	registry.LoadAll(context.Background())

	return &Server{
		MCP:      mcpServer,
		Registry: registry,
		Search:   searchService,
		settings: settings,
	}, nil
}

// Close releases the search index
func (s *Server) Close() {
	s.Search.Close()
}
