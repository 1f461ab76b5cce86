// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes apiformat capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apiformat"
)

const serverInstructions = `apiformat MCP server: sorts, filters, re-cases and renames AsyncAPI documents.

Configuration: defaults come from APIFORMAT_* environment variables set in your MCP client config.

Key settings:
- APIFORMAT_SORT_FILE, APIFORMAT_FILTER_FILE, APIFORMAT_CASING_FILE: rule files used by format when the call gives no rules of that kind
- APIFORMAT_DEFAULT_STYLE: style used by convert_case when none is given
- APIFORMAT_CACHE_ENABLED (default: true): cache loaded documents per session
- APIFORMAT_CACHE_FILE_TTL (default: 15m), APIFORMAT_CACHE_URL_TTL (default: 5m)
- APIFORMAT_MAX_INLINE_SIZE (default: 10MiB): limit for inline content
- APIFORMAT_ALLOW_PRIVATE_IPS (default: false): allow URL inputs on private networks`

var (
	formatTool = &mcp.Tool{
		Name:        "format",
		Description: "Format an AsyncAPI document. Stages run in order: filter (when filter_set or filter_file is given), sort by key priority (unless no_sort), sort component names (sort_components), change casing (casing_set or casing_file) and rename info.title (rename). Returns the formatted document in the source format unless output_format is json or yaml. Use output to write to a file instead of returning the document inline.",
	}
	convertCaseTool = &mcp.Tool{
		Name:        "convert_case",
		Description: "Convert values to a naming style: camelCase, PascalCase, kebab-case, Train-Case, snake_case, Ada_Case, CONSTANT_CASE, COBOL-CASE, dot.notation, Space case, Capital Case, lower case or UPPER CASE. Style names are matched ignoring case and separators.",
	}
)

// Run serves the format and convert_case tools over stdio until the client
// disconnects or ctx is done.
func Run(ctx context.Context) error {
	server := newServer()
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "apiformat", Version: apiformat.Version()},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, formatTool, handleFormat)
	mcp.AddTool(server, convertCaseTool, handleConvertCase)
}

// pathPattern matches absolute paths under common roots. Tool errors replace
// them with "<path>".
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
