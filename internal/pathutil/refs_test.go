package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name           string
		ref            string
		wantCollection string
		wantName       string
		wantOK         bool
	}{
		{"schema", "#/components/schemas/Pet", "schemas", "Pet", true},
		{"message", "#/components/messages/UserSignedUp", "messages", "UserSignedUp", true},
		{"pointer escapes", "#/components/schemas/a~1b~0c", "schemas", "a/b~c", true},
		{"percent encoding", "#/components/schemas/My%20Pet", "schemas", "My Pet", true},
		{"nested path", "#/components/schemas/Pet/properties/id", "", "", false},
		{"external", "common.yaml#/components/schemas/Pet", "", "", false},
		{"missing name", "#/components/schemas/", "", "", false},
		{"not components", "#/channels/user", "", "", false},
		{"empty", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection, name, ok := ParseRef(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCollection, collection)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestComponentRef(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Pet", ComponentRef(CollectionSchemas, "Pet"))
	assert.Equal(t, "#/components/messages/a~1b~0c", ComponentRef(CollectionMessages, "a/b~c"))

	collection, name, ok := ParseRef(ComponentRef(CollectionSchemas, "x~/y"))
	assert.True(t, ok)
	assert.Equal(t, "schemas", collection)
	assert.Equal(t, "x~/y", name)
}

func TestRenameRef(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		to   string
		want string
	}{
		{"plain", "#/components/schemas/my_pet", "My Pet", "#/components/schemas/My Pet"},
		{"encoded", "#/components/schemas/my%5Fpet", "My Pet", "#/components/schemas/My%20Pet"},
		{"encoded with pointer escape", "#/components/schemas/a%20b", "A/B", "#/components/schemas/A~1B"},
		{"encoding in collection only", "#/components/sch%65mas/pet", "Pet", "#/components/schemas/Pet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenameRef(tt.ref, CollectionSchemas, tt.to))
		})
	}
}
