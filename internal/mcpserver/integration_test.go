package mcpserver

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestSession connects a client to the apiformat server over in-memory
// transports. Both sides shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	serverSide, clientSide := mcp.NewInMemoryTransports()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- newServer().Run(ctx, serverSide) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "apiformat-test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientSide, nil)
	if err != nil {
		cancel()
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})
	return session
}

func TestIntegration_Initialize(t *testing.T) {
	session := startTestSession(t)

	init := session.InitializeResult()
	require.NotNil(t, init)
	require.NotNil(t, init.ServerInfo)
	assert.Equal(t, "apiformat", init.ServerInfo.Name)
	assert.Contains(t, init.Instructions, "APIFORMAT_SORT_FILE")
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Tools, 2)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	for _, name := range []string{"format", "convert_case"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}
}

func TestIntegration_CallTool_Format(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "format",
		Arguments: map[string]any{
			"spec": map[string]any{
				"content": accountService,
			},
			"filter_set": map[string]any{
				"unusedComponents": []any{"schemas"},
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError, "format should succeed")

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "yaml", structured["source_format"])
	assert.Equal(t, []any{"filter", "sort"}, structured["stages"])
	assert.Equal(t, true, structured["converged"])
	assert.Equal(t, map[string]any{"schemas": []any{"Orphan"}}, structured["unused_components"])

	doc, ok := structured["document"].(string)
	require.True(t, ok, "document should be a string")
	assert.Contains(t, doc, "asyncapi: 2.6.0\n")
	assert.NotContains(t, doc, "Orphan")
}

func TestIntegration_CallTool_ConvertCase(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "convert_case",
		Arguments: map[string]any{
			"style":  "kebab",
			"values": []any{"userSignedUp", "HTTPServer"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "kebab-case", structured["style"])
	results, ok := structured["results"].([]any)
	require.True(t, ok, "results should be an array")
	require.Len(t, results, 2)
	first, ok := results[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user-signed-up", first["output"])
}

func TestIntegration_CallTool_Error_MissingSpec(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "format",
		Arguments: map[string]any{
			"spec": map[string]any{},
		},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "error content should be TextContent")
	assert.Contains(t, text.Text, "exactly one of file, url, or content")
}

// unmarshalStructured extracts the structured output from a CallToolResult.
// It first checks StructuredContent, then falls back to parsing the first TextContent.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
