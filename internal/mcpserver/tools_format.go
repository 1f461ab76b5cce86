package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apiformat/caser"
	"github.com/erraggy/apiformat/filter"
	"github.com/erraggy/apiformat/formatter"
	"github.com/erraggy/apiformat/internal/config"
	"github.com/erraggy/apiformat/internal/fileutil"
	"github.com/erraggy/apiformat/internal/pathutil"
)

type formatInput struct {
	Spec           specInput           `json:"spec"                      jsonschema:"The AsyncAPI document to format"`
	SortSet        map[string][]string `json:"sort_set,omitempty"        jsonschema:"Key priority lists by parent key name; replaces the default sort set"`
	SortFile       string              `json:"sort_file,omitempty"       jsonschema:"Path to a YAML or JSON sort set file"`
	NoSort         bool                `json:"no_sort,omitempty"         jsonschema:"Skip sorting"`
	SortComponents []string            `json:"sort_components,omitempty" jsonschema:"Component collections whose names are sorted alphabetically (e.g. schemas\\, messages)"`
	FilterSet      map[string]any      `json:"filter_set,omitempty"      jsonschema:"Filter rules: operations\\, tags\\, operationIds\\, flags\\, inverseOperations\\, inverseTags\\, inverseOperationIds\\, flagValues\\, stripFlags\\, unusedComponents\\, textReplace"`
	FilterFile     string              `json:"filter_file,omitempty"     jsonschema:"Path to a YAML or JSON filter set file"`
	CasingSet      map[string]string   `json:"casing_set,omitempty"      jsonschema:"Casing styles by position (operationId\\, properties\\, channels\\, componentsSchemas\\, ...)"`
	CasingFile     string              `json:"casing_file,omitempty"     jsonschema:"Path to a YAML or JSON casing set file"`
	Rename         string              `json:"rename,omitempty"          jsonschema:"New value for info.title"`
	OutputFormat   string              `json:"output_format,omitempty"   jsonschema:"Output format: json or yaml (default: source format)"`
	Output         string              `json:"output,omitempty"          jsonschema:"File path to write the formatted document. If omitted the document is returned inline."`
}

type formatOutput struct {
	SourceFormat     string              `json:"source_format"`
	OutputFormat     string              `json:"output_format"`
	Stages           []string            `json:"stages"`
	FilterPasses     int                 `json:"filter_passes,omitempty"`
	Converged        bool                `json:"converged"`
	UnusedComponents map[string][]string `json:"unused_components,omitempty"`
	RenameCount      int                 `json:"rename_count,omitempty"`
	WrittenTo        string              `json:"written_to,omitempty"`
	Warnings         []string            `json:"warnings,omitempty"`
	Document         string              `json:"document,omitempty"`
}

func handleFormat(_ context.Context, _ *mcp.CallToolRequest, input formatInput) (*mcp.CallToolResult, formatOutput, error) {
	opts, err := input.options()
	if err != nil {
		return errResult(err), formatOutput{}, nil
	}

	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), formatOutput{}, nil
	}

	result, err := formatter.FormatWithOptions(append(opts.FormatterOptions(), formatter.WithDocument(doc))...)
	if err != nil {
		return errResult(err), formatOutput{}, nil
	}

	format := opts.OutputFormat(result.SourceFormat)
	data, err := result.Marshal(format)
	if err != nil {
		return errResult(err), formatOutput{}, nil
	}

	output := formatOutput{
		Warnings:     casingWarnings(opts.CasingSet),
		SourceFormat: string(result.SourceFormat),
		OutputFormat: string(format),
		FilterPasses: result.FilterPasses,
		Converged:    result.Converged,
		RenameCount:  result.Renames.Count(),
	}
	output.Stages = make([]string, 0, len(result.Stages))
	for _, s := range result.Stages {
		output.Stages = append(output.Stages, string(s))
	}
	if result.UnusedComponents.Count() > 0 {
		output.UnusedComponents = result.UnusedComponents
	}

	if input.Output != "" {
		path, err := pathutil.SanitizeOutputPath(input.Output)
		if err != nil {
			return errResult(err), formatOutput{}, nil
		}
		if err := os.WriteFile(path, data, fileutil.ReadableByAll); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), formatOutput{}, nil
		}
		output.WrittenTo = path
	} else {
		output.Document = string(data)
	}
	return nil, output, nil
}

// options merges the call's rules with the server's default rule files.
// Rules given in the call win over the defaults of the same kind.
func (in formatInput) options() (*config.Options, error) {
	o := &config.Options{
		Output:            in.Output,
		SortSet:           in.SortSet,
		SortFile:          in.SortFile,
		NoSort:            in.NoSort,
		SortComponentsSet: in.SortComponents,
		FilterFile:        in.FilterFile,
		CasingSet:         in.CasingSet,
		CasingFile:        in.CasingFile,
		Rename:            in.Rename,
	}
	if o.SortSet == nil && o.SortFile == "" {
		o.SortFile = cfg.SortFile
	}
	if o.CasingSet == nil && o.CasingFile == "" {
		o.CasingFile = cfg.CasingFile
	}
	switch {
	case in.FilterSet != nil:
		// JSON is read by the YAML decoder with scalar types intact.
		data, err := json.Marshal(in.FilterSet)
		if err != nil {
			return nil, fmt.Errorf("invalid filter_set: %w", err)
		}
		fs, err := filter.ParseFilterSet(data)
		if err != nil {
			return nil, err
		}
		o.FilterSet = fs
	case o.FilterFile == "":
		o.FilterFile = cfg.FilterFile
	}

	switch in.OutputFormat {
	case "":
	case "json":
		o.JSON = true
	case "yaml", "yml":
		o.YAML = true
	default:
		return nil, fmt.Errorf("invalid output_format %q; valid values: json, yaml", in.OutputFormat)
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.LoadRules(); err != nil {
		return nil, err
	}
	return o, nil
}

// casingWarnings describes casing positions whose style is not recognized.
func casingWarnings(set caser.CasingSet) []string {
	var warnings []string
	for _, key := range set.UnknownStyles() {
		warnings = append(warnings, fmt.Sprintf("unknown casing style %q for %s; values left unchanged", set[key], key))
	}
	return warnings
}
