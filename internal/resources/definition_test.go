package resources

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinition_Resource(t *testing.T) {
	def := Definition{
		URI:         "prompts://summarize",
		Name:        "summarize",
		Description: "Summarizes text",
		MIMEType:    MIMETypeMarkdown,
	}

	res := def.Resource()
	assert.Equal(t, "prompts://summarize", res.URI)
	assert.Equal(t, "summarize", res.Name)
	assert.Equal(t, "Summarizes text", res.Description)
	assert.Equal(t, MIMETypeMarkdown, res.MIMEType)
}

func TestNewHandler_ServesCapturedContent(t *testing.T) {
	def := Definition{URI: "prompts://a", MIMEType: MIMETypeMarkdown, Content: "# A\nbody"}
	handler := NewHandler(def)

	contents, err := handler(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "prompts://a", text.URI)
	assert.Equal(t, MIMETypeMarkdown, text.MIMEType)
	assert.Equal(t, "# A\nbody", text.Text)
}
