package filter

import (
	"fmt"
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/apierrors"
	"github.com/erraggy/apiformat/internal/nodeutil"
)

// FilterSet configures which parts of a document are removed.
// Every list is optional; an empty list disables its rule.
type FilterSet struct {
	// Operations lists keys (typically publish or subscribe) whose fields are removed.
	Operations []string `yaml:"operations,omitempty" json:"operations,omitempty"`
	// Tags removes every object carrying one of these tags.
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	// OperationIDs removes the operations with these ids.
	OperationIDs []string `yaml:"operationIds,omitempty" json:"operationIds,omitempty"`
	// Flags removes every object that has one of these keys.
	Flags []string `yaml:"flags,omitempty" json:"flags,omitempty"`

	// InverseOperations keeps only the listed channel operation verbs.
	InverseOperations []string `yaml:"inverseOperations,omitempty" json:"inverseOperations,omitempty"`
	// InverseOperationIDs keeps only channel operations with these ids.
	InverseOperationIDs []string `yaml:"inverseOperationIds,omitempty" json:"inverseOperationIds,omitempty"`
	// InverseTags keeps only objects tagged with at least one of these tags.
	InverseTags []string `yaml:"inverseTags,omitempty" json:"inverseTags,omitempty"`

	// FlagValues removes objects holding an exact key/value pair.
	FlagValues []FlagValue `yaml:"flagValues,omitempty" json:"flagValues,omitempty"`
	// StripFlags removes only the flag fields themselves.
	StripFlags []string `yaml:"stripFlags,omitempty" json:"stripFlags,omitempty"`
	// UnusedComponents lists component collections whose unreferenced
	// entries are removed.
	UnusedComponents []string `yaml:"unusedComponents,omitempty" json:"unusedComponents,omitempty"`
	// TextReplace applies literal replacements to description, summary and
	// url values.
	TextReplace []TextReplace `yaml:"textReplace,omitempty" json:"textReplace,omitempty"`
}

// TextReplace is a literal search and replace pair.
type TextReplace struct {
	SearchFor   string `yaml:"searchFor" json:"searchFor"`
	ReplaceWith string `yaml:"replaceWith" json:"replaceWith"`
}

// FlagValue matches a field by key and value.
//
// In a filter file it is written either as {key: k, value: v} or as the
// single-entry shorthand {k: v}.
type FlagValue struct {
	Key   string
	Value *yaml.Node
}

// NewFlagValue builds a FlagValue from a Go value.
func NewFlagValue(key string, value any) (FlagValue, error) {
	var n yaml.Node
	if err := n.Encode(value); err != nil {
		return FlagValue{}, fmt.Errorf("filter: flag value for %q: %w", key, err)
	}
	return FlagValue{Key: key, Value: &n}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (fv *FlagValue) UnmarshalYAML(n *yaml.Node) error {
	if !nodeutil.IsMapping(n) {
		return fmt.Errorf("line %d: flag value must be a mapping", n.Line)
	}
	key, value := nodeutil.Get(n, "key"), nodeutil.Get(n, "value")
	if len(n.Content) == 4 && nodeutil.IsScalar(key) && value != nil {
		fv.Key, fv.Value = key.Value, nodeutil.Clone(value)
		return nil
	}
	if len(n.Content) == 2 {
		fv.Key, fv.Value = n.Content[0].Value, nodeutil.Clone(n.Content[1])
		return nil
	}
	return fmt.Errorf("line %d: flag value needs {key, value} or a single entry", n.Line)
}

// MarshalYAML implements yaml.Marshaler using the explicit form.
func (fv FlagValue) MarshalYAML() (any, error) {
	value := fv.Value
	if value == nil {
		value = nodeutil.Scalar(nodeutil.TagNull, "null")
	}
	return nodeutil.Mapping(
		nodeutil.String("key"), nodeutil.String(fv.Key),
		nodeutil.String("value"), value,
	), nil
}

// Matches reports whether the field key: n matches. A sequence matches a
// scalar flag value when any of its elements does.
func (fv FlagValue) Matches(key string, n *yaml.Node) bool {
	if key != fv.Key || fv.Value == nil || n == nil {
		return false
	}
	if nodeutil.Equal(n, fv.Value) {
		return true
	}
	if nodeutil.IsSequence(n) && nodeutil.IsScalar(fv.Value) {
		return slices.ContainsFunc(n.Content, func(item *yaml.Node) bool {
			return nodeutil.Equal(item, fv.Value)
		})
	}
	return false
}

// ParseFilterSet reads a FilterSet from YAML or JSON and validates it.
func ParseFilterSet(data []byte) (*FilterSet, error) {
	var fs FilterSet
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("filter: invalid filter set: %w", err)
	}
	if err := fs.Validate(); err != nil {
		return nil, err
	}
	return &fs, nil
}

// Validate checks that every unusedComponents entry is a tracked collection.
func (fs *FilterSet) Validate() error {
	if fs == nil {
		return nil
	}
	for _, c := range fs.UnusedComponents {
		if !IsTracked(c) {
			return &apierrors.ConfigError{
				Option:  "unusedComponents",
				Value:   c,
				Message: fmt.Sprintf("unused components can only be removed from %v", TrackedCollections()),
			}
		}
	}
	return nil
}

// IsEmpty reports whether no rule is configured.
func (fs *FilterSet) IsEmpty() bool {
	return fs == nil || (len(fs.Operations) == 0 && len(fs.Tags) == 0 &&
		len(fs.OperationIDs) == 0 && len(fs.Flags) == 0 &&
		len(fs.InverseOperations) == 0 && len(fs.InverseOperationIDs) == 0 &&
		len(fs.InverseTags) == 0 && len(fs.FlagValues) == 0 &&
		len(fs.StripFlags) == 0 && len(fs.UnusedComponents) == 0 &&
		len(fs.TextReplace) == 0)
}
