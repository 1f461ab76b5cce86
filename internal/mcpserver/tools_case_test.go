package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCaseTool(t *testing.T) {
	tests := []struct {
		name      string
		style     string
		values    []string
		wantStyle string
		want      []string
	}{
		{
			name:      "snake",
			style:     "snake_case",
			values:    []string{"userId", "HTTPServer"},
			wantStyle: "snake_case",
			want:      []string{"user_id", "http_server"},
		},
		{
			name:      "loose style name",
			style:     "Kebab",
			values:    []string{"user signed up"},
			wantStyle: "kebab-case",
			want:      []string{"user-signed-up"},
		},
		{
			name:      "constant",
			style:     "SCREAMING_SNAKE",
			values:    []string{"lightMeasured"},
			wantStyle: "CONSTANT_CASE",
			want:      []string{"LIGHT_MEASURED"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, out, err := handleConvertCase(context.Background(), &mcp.CallToolRequest{}, caseInput{Style: tt.style, Values: tt.values})
			require.NoError(t, err)
			require.Nil(t, res)
			assert.Equal(t, tt.wantStyle, out.Style)
			require.Len(t, out.Results, len(tt.want))
			for i, r := range out.Results {
				assert.Equal(t, tt.values[i], r.Input)
				assert.Equal(t, tt.want[i], r.Output)
			}
		})
	}
}

func TestConvertCaseTool_DefaultStyle(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.DefaultStyle = "PascalCase" })
	res, out, err := handleConvertCase(context.Background(), &mcp.CallToolRequest{}, caseInput{Values: []string{"light_measured"}})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.Equal(t, "PascalCase", out.Style)
	assert.Equal(t, "LightMeasured", out.Results[0].Output)
}

func TestConvertCaseTool_Errors(t *testing.T) {
	withConfig(t, func(c *serverConfig) {
		c.DefaultStyle = ""
		c.MaxCaseValues = 2
	})
	tests := []struct {
		name    string
		input   caseInput
		wantErr string
	}{
		{"no style", caseInput{Values: []string{"a"}}, "style is required"},
		{"unknown style", caseInput{Style: "wavy", Values: []string{"a"}}, `unknown style "wavy"`},
		{"no values", caseInput{Style: "camel"}, "at least one value"},
		{"too many values", caseInput{Style: "camel", Values: []string{"a", "b", "c"}}, "APIFORMAT_MAX_CASE_VALUES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, err := handleConvertCase(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.True(t, res.IsError)
			text, ok := res.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.wantErr)
		})
	}
}

func TestStyleNames(t *testing.T) {
	names := styleNames()
	assert.Contains(t, names, "camelCase, PascalCase, kebab-case")
	assert.Contains(t, names, "UPPER CASE")
}
