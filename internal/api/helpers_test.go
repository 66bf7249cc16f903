package api

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

// callToolRequest builds a tool call request with the given arguments.
func callToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// readResourceRequest builds a resource read request for a URI.
func readResourceRequest(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

// resultText extracts the text content of a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res, "Expected a tool result")
	require.NotEmpty(t, res.Content, "Expected tool result content")
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "Expected text content in tool result")
	return text.Text
}

// resourceText extracts the text of the first resource contents entry.
func resourceText(t *testing.T, contents []mcp.ResourceContents) string {
	t.Helper()
	require.NotEmpty(t, contents, "Expected resource contents")
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "Expected text resource contents")
	return text.Text
}
