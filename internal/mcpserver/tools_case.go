package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apiformat/casing"
)

type caseInput struct {
	Style  string   `json:"style,omitempty" jsonschema:"Target style (e.g. camelCase\\, snake_case\\, kebab-case). Defaults to APIFORMAT_DEFAULT_STYLE."`
	Values []string `json:"values"          jsonschema:"Values to convert"`
}

type caseConversion struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

type caseOutput struct {
	Style   string           `json:"style"`
	Results []caseConversion `json:"results"`
}

func handleConvertCase(_ context.Context, _ *mcp.CallToolRequest, input caseInput) (*mcp.CallToolResult, caseOutput, error) {
	name := input.Style
	if name == "" {
		name = cfg.DefaultStyle
	}
	if name == "" {
		return errResult(fmt.Errorf("style is required; valid styles: %s", styleNames())), caseOutput{}, nil
	}
	style, ok := casing.ParseStyle(name)
	if !ok {
		return errResult(fmt.Errorf("unknown style %q; valid styles: %s", name, styleNames())), caseOutput{}, nil
	}
	if len(input.Values) == 0 {
		return errResult(fmt.Errorf("at least one value is required")), caseOutput{}, nil
	}
	if len(input.Values) > cfg.MaxCaseValues {
		return errResult(fmt.Errorf("%d values exceed the maximum of %d; set APIFORMAT_MAX_CASE_VALUES to increase",
			len(input.Values), cfg.MaxCaseValues)), caseOutput{}, nil
	}

	output := caseOutput{
		Style:   style.String(),
		Results: make([]caseConversion, 0, len(input.Values)),
	}
	for _, v := range input.Values {
		output.Results = append(output.Results, caseConversion{Input: v, Output: style.Apply(v)})
	}
	return nil, output, nil
}

func styleNames() string {
	styles := casing.Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
