package domain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tool names
const (
	ToolNameSearch = "search"
	ToolNameRead   = "read"
)

// Version is the server version reported to MCP clients. Set at build time via ldflags.
var Version = "dev"

// DefaultInstructions are sent to clients when no metadata file overrides them
const DefaultInstructions = "This server exposes a library of prompts. " +
	"List prompts to discover them, or use the search tool to find prompts by topic " +
	"and the read tool to fetch a prompt's full text. " +
	"Pass an 'input' argument to append your own text after the prompt."

// DefaultToolMetadata holds the built-in tool descriptions
var DefaultToolMetadata = map[string]ToolMetadata{
	ToolNameSearch: {
		Name:        ToolNameSearch,
		Description: "Search prompts by name, description or content. Returns matching prompt names with short descriptions.",
	},
	ToolNameRead: {
		Name:        ToolNameRead,
		Description: "Read the full text of a prompt by its name.",
	},
}

// McpMetadata describes the server identity and tool descriptions
type McpMetadata struct {
	Server ServerMetadata `yaml:"server"`
	Tools  []ToolMetadata `yaml:"tools"`
}

// ServerMetadata identifies the server to clients
type ServerMetadata struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	Instructions string `yaml:"instructions"`
}

// ToolMetadata overrides a tool's description
type ToolMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// DefaultMetadata returns the metadata used when no file is configured
func DefaultMetadata() McpMetadata {
	return McpMetadata{
		Server: ServerMetadata{
			Name:         "prompts-mcp",
			Version:      Version,
			Instructions: DefaultInstructions,
		},
	}
}

// LoadMetadata reads metadata from a YAML file. An empty path yields the defaults.
func LoadMetadata(path string) (McpMetadata, error) {
	if path == "" {
		return DefaultMetadata(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return McpMetadata{}, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var metadata McpMetadata
	if err := yaml.Unmarshal(data, &metadata); err != nil {
		return McpMetadata{}, fmt.Errorf("failed to parse metadata: %w", err)
	}

	if err := metadata.Validate(); err != nil {
		return McpMetadata{}, fmt.Errorf("metadata validation failed: %w", err)
	}

	return metadata, nil
}

// Validate checks required fields and tool name uniqueness
func (m McpMetadata) Validate() error {
	if m.Server.Name == "" {
		return fmt.Errorf("server.name is required")
	}
	if m.Server.Version == "" {
		return fmt.Errorf("server.version is required")
	}
	if m.Server.Instructions == "" {
		return fmt.Errorf("server.instructions is required")
	}

	_, err := m.ToolsMap()
	return err
}

// ToolsMap indexes tool metadata by name, rejecting incomplete or duplicate entries
func (m McpMetadata) ToolsMap() (map[string]ToolMetadata, error) {
	tools := make(map[string]ToolMetadata, len(m.Tools))
	for i, t := range m.Tools {
		if t.Name == "" {
			return nil, fmt.Errorf("tools[%d].name is required", i)
		}
		if t.Description == "" {
			return nil, fmt.Errorf("tools[%d].description is required", i)
		}
		if _, dup := tools[t.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name: %s", t.Name)
		}
		tools[t.Name] = t
	}
	return tools, nil
}

// GetToolMetadata returns the configured metadata for a tool, falling back to the defaults
func (m McpMetadata) GetToolMetadata(name string) ToolMetadata {
	for _, t := range m.Tools {
		if t.Name == name {
			return t
		}
	}
	return DefaultToolMetadata[name]
}
