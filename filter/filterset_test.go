package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/apierrors"
	"github.com/erraggy/apiformat/internal/nodeutil"
)

func TestParseFilterSet(t *testing.T) {
	fs, err := ParseFilterSet([]byte(`
operations: [subscribe]
tags: [internal]
operationIds: [sendSignup]
flags: [x-internal]
inverseTags: [users]
flagValues:
  - key: x-visibility
    value: hidden
  - x-audience: [partner, internal]
stripFlags: [x-note]
unusedComponents: [schemas, messages]
textReplace:
  - searchFor: staging
    replaceWith: production
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"subscribe"}, fs.Operations)
	assert.Equal(t, []string{"internal"}, fs.Tags)
	assert.Equal(t, []string{"sendSignup"}, fs.OperationIDs)
	assert.Equal(t, []string{"x-internal"}, fs.Flags)
	assert.Equal(t, []string{"users"}, fs.InverseTags)
	assert.Equal(t, []string{"x-note"}, fs.StripFlags)
	assert.Equal(t, []string{"schemas", "messages"}, fs.UnusedComponents)
	assert.Equal(t, []TextReplace{{SearchFor: "staging", ReplaceWith: "production"}}, fs.TextReplace)

	require.Len(t, fs.FlagValues, 2)
	assert.Equal(t, "x-visibility", fs.FlagValues[0].Key)
	assert.Equal(t, `"hidden"`, nodeutil.Canonical(fs.FlagValues[0].Value))
	assert.Equal(t, "x-audience", fs.FlagValues[1].Key)
	assert.Equal(t, `["partner","internal"]`, nodeutil.Canonical(fs.FlagValues[1].Value))
	assert.False(t, fs.IsEmpty())
}

func TestParseFilterSet_JSON(t *testing.T) {
	fs, err := ParseFilterSet([]byte(`{"flagValues": [{"key": "x-beta", "value": true}], "inverseOperations": ["publish"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"publish"}, fs.InverseOperations)
	require.Len(t, fs.FlagValues, 1)
	assert.Equal(t, "true", nodeutil.Canonical(fs.FlagValues[0].Value))
}

func TestParseFilterSet_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		isCfg bool
	}{
		{name: "untracked collection", input: "unusedComponents: [securitySchemes]", isCfg: true},
		{name: "scalar flag value", input: "flagValues: [x-beta]"},
		{name: "too many keys", input: "flagValues: [{a: 1, b: 2}]"},
		{name: "wrong list type", input: "tags: internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilterSet([]byte(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.isCfg, errors.Is(err, apierrors.ErrConfig))
		})
	}
}

func TestFlagValue_Matches(t *testing.T) {
	hidden, err := NewFlagValue("x-visibility", "hidden")
	require.NoError(t, err)
	obj, err := NewFlagValue("x-owner", map[string]any{"team": "core"})
	require.NoError(t, err)
	quoted, err := NewFlagValue("x-beta", "true")
	require.NoError(t, err)

	tests := []struct {
		name string
		fv   FlagValue
		key  string
		src  string
		want bool
	}{
		{name: "scalar equal", fv: hidden, key: "x-visibility", src: "hidden", want: true},
		{name: "scalar different", fv: hidden, key: "x-visibility", src: "public"},
		{name: "key different", fv: hidden, key: "x-other", src: "hidden"},
		{name: "sequence contains", fv: hidden, key: "x-visibility", src: "[public, hidden]", want: true},
		{name: "sequence without", fv: hidden, key: "x-visibility", src: "[public]"},
		{name: "mapping equal", fv: obj, key: "x-owner", src: "{team: core}", want: true},
		{name: "mapping different", fv: obj, key: "x-owner", src: "{team: edge}"},
		{name: "string is not bool", fv: quoted, key: "x-beta", src: "true"},
		{name: "quoted string", fv: quoted, key: "x-beta", src: `"true"`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.src), &doc))
			assert.Equal(t, tt.want, tt.fv.Matches(tt.key, doc.Content[0]))
		})
	}
}

func TestFlagValue_MarshalYAML(t *testing.T) {
	fv, err := NewFlagValue("x-beta", true)
	require.NoError(t, err)
	out, err := yaml.Marshal(FilterSet{FlagValues: []FlagValue{fv}})
	require.NoError(t, err)

	back, err := ParseFilterSet(out)
	require.NoError(t, err)
	require.Len(t, back.FlagValues, 1)
	assert.Equal(t, "x-beta", back.FlagValues[0].Key)
	assert.True(t, nodeutil.Equal(fv.Value, back.FlagValues[0].Value))
}

func TestFilterSet_IsEmpty(t *testing.T) {
	var nilSet *FilterSet
	assert.True(t, nilSet.IsEmpty())
	assert.True(t, (&FilterSet{}).IsEmpty())
	assert.False(t, (&FilterSet{StripFlags: []string{"x"}}).IsEmpty())
	assert.NoError(t, nilSet.Validate())
}
