// Package config loads apiformat options from configuration files, rule
// files and environment variables, and merges them with command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/apierrors"
	"github.com/erraggy/apiformat/caser"
	"github.com/erraggy/apiformat/document"
	"github.com/erraggy/apiformat/filter"
	"github.com/erraggy/apiformat/formatter"
	"github.com/erraggy/apiformat/sorter"
)

// Option keys, as spelled in configuration files.
const (
	KeyOutput             = "output"
	KeySortFile           = "sortFile"
	KeyFilterFile         = "filterFile"
	KeyCasingFile         = "casingFile"
	KeySortComponentsFile = "sortComponentsFile"
	KeyNoSort             = "no-sort"
	KeyRename             = "rename"
	KeyJSON               = "json"
	KeyYAML               = "yaml"
	KeyVerbose            = "verbose"
)

// Options holds the settings of a format run.
type Options struct {
	Output             string `yaml:"output,omitempty"`
	SortFile           string `yaml:"sortFile,omitempty"`
	FilterFile         string `yaml:"filterFile,omitempty"`
	CasingFile         string `yaml:"casingFile,omitempty"`
	SortComponentsFile string `yaml:"sortComponentsFile,omitempty"`

	NoSort  bool      `yaml:"no-sort,omitempty"`
	Rename  string    `yaml:"rename,omitempty"`
	JSON    bool      `yaml:"json,omitempty"`
	YAML    bool      `yaml:"yaml,omitempty"`
	Verbose Verbosity `yaml:"verbose,omitempty"`

	// Inline rule sets. A rule file of the same kind replaces them.
	SortSet           sorter.SortSet    `yaml:"sortSet,omitempty"`
	FilterSet         *filter.FilterSet `yaml:"filterSet,omitempty"`
	CasingSet         caser.CasingSet   `yaml:"casingSet,omitempty"`
	SortComponentsSet []string          `yaml:"sortComponentsSet,omitempty"`
}

// Verbosity is a diagnostic level. Configuration files may give it as a
// number or as a boolean, true meaning 1.
type Verbosity int

// UnmarshalYAML accepts integers and booleans.
func (v *Verbosity) UnmarshalYAML(n *yaml.Node) error {
	var b bool
	if n.ShortTag() == "!!bool" {
		if err := n.Decode(&b); err != nil {
			return err
		}
		*v = 0
		if b {
			*v = 1
		}
		return nil
	}
	var i int
	if err := n.Decode(&i); err != nil {
		return fmt.Errorf("line %d: verbose must be a number or a boolean", n.Line)
	}
	*v = Verbosity(i)
	return nil
}

// Load reads options from a YAML or JSON configuration file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apierrors.ConfigError{
			Option:  "configFile",
			Value:   path,
			Message: "cannot read configuration file",
			Cause:   err,
		}
	}
	return Parse(data, path)
}

// Parse reads options from configuration file content. source names the
// content in errors.
func Parse(data []byte, source string) (*Options, error) {
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, &apierrors.ParseError{Path: source, Message: "invalid configuration", Cause: err}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Validate checks option combinations and inline rule sets.
func (o *Options) Validate() error {
	if o.JSON && o.YAML {
		return &apierrors.ConfigError{
			Option:  KeyJSON,
			Value:   true,
			Message: "json and yaml output are mutually exclusive",
		}
	}
	return o.FilterSet.Validate()
}

// Merge returns base with the options named in explicit taken from over.
// Rule sets are carried from base; over only contributes rule files.
func Merge(base, over *Options, explicit []string) *Options {
	var out Options
	if base != nil {
		out = *base
	}
	if over == nil {
		return &out
	}
	for _, key := range explicit {
		switch key {
		case KeyOutput:
			out.Output = over.Output
		case KeySortFile:
			out.SortFile = over.SortFile
		case KeyFilterFile:
			out.FilterFile = over.FilterFile
		case KeyCasingFile:
			out.CasingFile = over.CasingFile
		case KeySortComponentsFile:
			out.SortComponentsFile = over.SortComponentsFile
		case KeyNoSort:
			out.NoSort = over.NoSort
		case KeyRename:
			out.Rename = over.Rename
		case KeyJSON:
			out.JSON = over.JSON
			if over.JSON {
				out.YAML = false
			}
		case KeyYAML:
			out.YAML = over.YAML
			if over.YAML {
				out.JSON = false
			}
		case KeyVerbose:
			out.Verbose = over.Verbose
		}
	}
	return &out
}

// LoadRules reads the configured rule files into the matching rule sets.
// The sort file is skipped when sorting is disabled.
func (o *Options) LoadRules() error {
	if o.SortFile != "" && !o.NoSort {
		data, err := readRuleFile(KeySortFile, o.SortFile)
		if err != nil {
			return err
		}
		set, err := sorter.ParseSortSet(data)
		if err != nil {
			return ruleError(o.SortFile, err)
		}
		o.SortSet = set
	}
	if o.FilterFile != "" {
		data, err := readRuleFile(KeyFilterFile, o.FilterFile)
		if err != nil {
			return err
		}
		fs, err := filter.ParseFilterSet(data)
		if err != nil {
			return ruleError(o.FilterFile, err)
		}
		o.FilterSet = fs
	}
	if o.CasingFile != "" {
		data, err := readRuleFile(KeyCasingFile, o.CasingFile)
		if err != nil {
			return err
		}
		set, err := caser.ParseCasingSet(data)
		if err != nil {
			return ruleError(o.CasingFile, err)
		}
		o.CasingSet = set
	}
	if o.SortComponentsFile != "" {
		data, err := readRuleFile(KeySortComponentsFile, o.SortComponentsFile)
		if err != nil {
			return err
		}
		var list []string
		if err := yaml.Unmarshal(data, &list); err != nil {
			return ruleError(o.SortComponentsFile, err)
		}
		o.SortComponentsSet = list
	}
	return nil
}

func readRuleFile(option, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apierrors.ConfigError{
			Option:  option,
			Value:   path,
			Message: "cannot read rule file",
			Cause:   err,
		}
	}
	return data, nil
}

// ruleError keeps configuration errors as they are and reports anything
// else as a parse failure of the rule file.
func ruleError(path string, err error) error {
	if errors.Is(err, apierrors.ErrConfig) {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return &apierrors.ParseError{Path: path, Cause: err}
}

// FormatterOptions converts the options into formatter options. The input
// source option is left to the caller.
func (o *Options) FormatterOptions() []formatter.Option {
	opts := []formatter.Option{formatter.WithNoSort(o.NoSort)}
	if o.SortSet != nil {
		opts = append(opts, formatter.WithSortSet(o.SortSet))
	}
	if len(o.SortComponentsSet) > 0 {
		opts = append(opts, formatter.WithSortComponents(o.SortComponentsSet...))
	}
	if o.FilterSet != nil {
		opts = append(opts, formatter.WithFilterSet(o.FilterSet))
	}
	if !o.CasingSet.IsEmpty() {
		opts = append(opts, formatter.WithCasingSet(o.CasingSet))
	}
	if o.Rename != "" {
		opts = append(opts, formatter.WithRename(o.Rename))
	}
	return opts
}

// OutputFormat picks the output serialization: an explicit json or yaml
// option first, then the output file extension, then source.
func (o *Options) OutputFormat(source document.SourceFormat) document.SourceFormat {
	switch {
	case o.JSON:
		return document.SourceFormatJSON
	case o.YAML:
		return document.SourceFormatYAML
	}
	if o.Output != "" {
		if f := document.FormatFromPath(o.Output); f != document.SourceFormatUnknown {
			return f
		}
	}
	if source == document.SourceFormatUnknown {
		return document.SourceFormatYAML
	}
	return source
}
