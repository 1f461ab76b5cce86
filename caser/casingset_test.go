package caser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

)

func TestParseCasingSet(t *testing.T) {
	set, err := ParseCasingSet([]byte(`
operationId: snake_case
componentsSchemas: PascalCase
properties: ""
`))
	require.NoError(t, err)
	assert.Equal(t, "snake_case", set[KeyOperationID])
	assert.False(t, set.IsEmpty())

	style, ok := set.style(KeyProperties)
	assert.False(t, ok)
	assert.Empty(t, style)

	empty, err := ParseCasingSet(nil)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	lenient, err := ParseCasingSet([]byte(`{"operationId": "wobbly", "componentsSchemas": "flatcase", "channels": "kebab"}`))
	require.NoError(t, err)
	assert.Equal(t, "wobbly", lenient[KeyOperationID])
	assert.Equal(t, []string{KeyComponentsSchemas, KeyOperationID}, lenient.UnknownStyles())

	_, err = ParseCasingSet([]byte(`operationId: [a]`))
	assert.Error(t, err)
}

func TestCasingSet_UnknownStyles(t *testing.T) {
	assert.Empty(t, CasingSet(nil).UnknownStyles())
	assert.Empty(t, CasingSet{KeyOperationID: "", KeyChannels: "Train-Case"}.UnknownStyles())
	assert.Equal(t, []string{KeyDescription}, CasingSet{KeyDescription: "shouty", KeySummary: "lower"}.UnknownStyles())
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, KeyComponentsMessageTraits)
	assert.Contains(t, keys, KeyParametersHeader)
	assert.IsIncreasing(t, keys)
	assert.Equal(t, KeyComponentsSchemas, ComponentKey("schemas"))
	assert.Empty(t, ComponentKey("servers"))
}
