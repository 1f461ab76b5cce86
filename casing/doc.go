// Package casing converts identifiers between naming styles.
//
// A value is split into words on any character that is not a letter, a
// digit, '$' or '@', on lower-to-upper transitions ("userId" -> user, Id)
// and at the end of acronyms ("HTTPServer" -> HTTP, Server). The words are
// then re-joined according to a [Style]:
//
//	casing.Convert("openapi-format", "camelCase")   // "openapiFormat"
//	casing.Convert("openapi-format", "Train-Case")  // "Openapi-Format"
//	casing.Convert("openapi-format", "CONSTANT_CASE") // "OPENAPI_FORMAT"
//
// Style names are matched case- and separator-insensitively, so
// "PascalCase", "pascal-case" and "Pascal_Case" all select [Pascal].
// Unknown style names and empty values leave the input unchanged.
// Converting an already converted value again returns it unchanged.
package casing
