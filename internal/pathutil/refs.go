package pathutil

import (
	"net/url"
	"strings"
)

// RefPrefixComponents is the local reference prefix shared by every
// component collection.
const RefPrefixComponents = "#/components/"

// Component collections that appear in AsyncAPI and OpenAPI documents.
const (
	CollectionSchemas           = "schemas"
	CollectionMessages          = "messages"
	CollectionParameters        = "parameters"
	CollectionMessageTraits     = "messageTraits"
	CollectionOperationTraits   = "operationTraits"
	CollectionSecuritySchemes   = "securitySchemes"
	CollectionResponses         = "responses"
	CollectionRequestBodies     = "requestBodies"
	CollectionExamples          = "examples"
	CollectionHeaders           = "headers"
	CollectionCorrelationIDs    = "correlationIds"
	CollectionServerBindings    = "serverBindings"
	CollectionChannelBindings   = "channelBindings"
	CollectionOperationBindings = "operationBindings"
	CollectionMessageBindings   = "messageBindings"
)

// ParseRef splits a local component reference of the form
// "#/components/<collection>/<name>" into its collection and name.
// JSON pointer escapes (~1, ~0) and percent-encoding in the name are decoded.
// ok is false for external references and anything that does not have
// exactly two segments after the prefix.
func ParseRef(ref string) (collection, name string, ok bool) {
	rest, found := strings.CutPrefix(ref, RefPrefixComponents)
	if !found {
		return "", "", false
	}
	collection, name, found = strings.Cut(rest, "/")
	if !found || collection == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return collection, UnescapePointer(name), true
}

// ComponentRef builds "#/components/{collection}/{name}", escaping the name.
func ComponentRef(collection, name string) string {
	return RefPrefixComponents + collection + "/" + EscapePointer(name)
}

// RenameRef returns a reference to name in the collection of ref. When the
// name segment of ref is percent-encoded, the new name is encoded too.
func RenameRef(ref, collection, name string) string {
	out := ComponentRef(collection, name)
	if !strings.Contains(ref[strings.LastIndexByte(ref, '/')+1:], "%") {
		return out
	}
	return RefPrefixComponents + collection + "/" + url.PathEscape(EscapePointer(name))
}

// EscapePointer escapes a single JSON pointer reference token.
func EscapePointer(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// UnescapePointer reverses EscapePointer and decodes percent-encoding.
// A token with invalid percent-encoding is returned with only the pointer
// escapes decoded.
func UnescapePointer(token string) string {
	if strings.Contains(token, "%") {
		if decoded, err := url.PathUnescape(token); err == nil {
			token = decoded
		}
	}
	if !strings.Contains(token, "~") {
		return token
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}
