// Package resources exposes prompt files as MCP resources.
package resources

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// DefaultScheme is the URI scheme of prompt resources
	DefaultScheme = "prompts"
	// MIMETypeMarkdown is the MIME type of every prompt resource
	MIMETypeMarkdown = "text/markdown"
)

// Definition describes one prompt resource
type Definition struct {
	URI         string
	Name        string
	Title       string
	Description string
	MIMEType    string
	FilePath    string
	Content     string
}

// ContentTransformer rewrites a resource body before it is served
type ContentTransformer func(content string, current Definition) string

// URIFor returns the resource URI of a prompt
func URIFor(scheme, name string) string {
	return scheme + "://" + name
}

// Resource returns the MCP resource descriptor
func (d Definition) Resource() mcp.Resource {
	return mcp.Resource{
		URI:         d.URI,
		Name:        d.Name,
		Description: d.Description,
		MIMEType:    d.MIMEType,
	}
}

// NewHandler serves the definition's captured content
func NewHandler(d Definition) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      d.URI,
				MIMEType: d.MIMEType,
				Text:     d.Content,
			},
		}, nil
	}
}
