package caser

import (
	"fmt"
	"maps"
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/casing"
	"github.com/erraggy/apiformat/internal/pathutil"
)

// CasingSet maps a document position to the name of a casing style.
type CasingSet map[string]string

// Positions a CasingSet can configure.
const (
	KeyOperationID      = "operationId"
	KeyProperties       = "properties"
	KeyChannels         = "channels"
	KeySummary          = "summary"
	KeyDescription      = "description"
	KeyParametersQuery  = "parametersQuery"
	KeyParametersPath   = "parametersPath"
	KeyParametersHeader = "parametersHeader"

	KeyComponentsSchemas          = "componentsSchemas"
	KeyComponentsMessages         = "componentsMessages"
	KeyComponentsParameters       = "componentsParameters"
	KeyComponentsParametersQuery  = "componentsParametersQuery"
	KeyComponentsParametersPath   = "componentsParametersPath"
	KeyComponentsParametersHeader = "componentsParametersHeader"
	KeyComponentsMessageTraits    = "componentsMessageTraits"
	KeyComponentsOperationTraits  = "componentsOperationTraits"
	KeyComponentsSecuritySchemes  = "componentsSecuritySchemes"
	KeyComponentsResponses        = "componentsResponses"
	KeyComponentsRequestBodies    = "componentsRequestBodies"
	KeyComponentsExamples         = "componentsExamples"
	KeyComponentsHeaders          = "componentsHeaders"
)

// componentKeys maps the component collections whose names are cased to
// their CasingSet key.
var componentKeys = map[string]string{
	pathutil.CollectionSchemas:         KeyComponentsSchemas,
	pathutil.CollectionMessages:        KeyComponentsMessages,
	pathutil.CollectionParameters:      KeyComponentsParameters,
	pathutil.CollectionMessageTraits:   KeyComponentsMessageTraits,
	pathutil.CollectionOperationTraits: KeyComponentsOperationTraits,
	pathutil.CollectionSecuritySchemes: KeyComponentsSecuritySchemes,
	pathutil.CollectionResponses:       KeyComponentsResponses,
	pathutil.CollectionRequestBodies:   KeyComponentsRequestBodies,
	pathutil.CollectionExamples:        KeyComponentsExamples,
	pathutil.CollectionHeaders:         KeyComponentsHeaders,
}

// parameterKeys selects the parameter style by the "in" location.
var parameterKeys = map[string]struct{ component, inline string }{
	"query":  {KeyComponentsParametersQuery, KeyParametersQuery},
	"path":   {KeyComponentsParametersPath, KeyParametersPath},
	"header": {KeyComponentsParametersHeader, KeyParametersHeader},
}

// Keys returns every position a CasingSet can configure, sorted.
func Keys() []string {
	keys := []string{
		KeyOperationID, KeyProperties, KeyChannels, KeySummary, KeyDescription,
		KeyParametersQuery, KeyParametersPath, KeyParametersHeader,
		KeyComponentsParametersQuery, KeyComponentsParametersPath, KeyComponentsParametersHeader,
	}
	keys = slices.AppendSeq(keys, maps.Values(componentKeys))
	slices.Sort(keys)
	return keys
}

// ComponentKey returns the CasingSet key for a component collection, or ""
// when the collection is not cased.
func ComponentKey(collection string) string {
	return componentKeys[collection]
}

// ParseCasingSet reads a CasingSet from YAML or JSON. Style names are not
// checked; see [CasingSet.UnknownStyles].
func ParseCasingSet(data []byte) (CasingSet, error) {
	var set CasingSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("caser: invalid casing set: %w", err)
	}
	if set == nil {
		set = CasingSet{}
	}
	return set, nil
}

// UnknownStyles returns, sorted, the positions whose style name is not
// recognized. Values at those positions are left unchanged.
func (s CasingSet) UnknownStyles() []string {
	var keys []string
	for _, key := range slices.Sorted(maps.Keys(s)) {
		if style := s[key]; style != "" {
			if _, ok := casing.ParseStyle(style); !ok {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// IsEmpty reports whether no position has a style.
func (s CasingSet) IsEmpty() bool {
	for _, style := range s {
		if style != "" {
			return false
		}
	}
	return true
}

func (s CasingSet) style(key string) (string, bool) {
	style, ok := s[key]
	return style, ok && style != ""
}
