// Package pathutil provides path and reference helpers for API document
// traversal.
//
// [PathBuilder] renders JSONPath strings incrementally with push/pop
// semantics, so the walker only materializes a path when a visitor asks
// for it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("components")
//	path.Push("schemas")
//	path.Push("Pet")
//	path.String() // "$.components.schemas.Pet"
//
// Keys that are not identifiers use bracket notation ("$.channels['user/signedup']").
//
// [ParseRef], [ComponentRef] and [RenameRef] convert between local component
// references ("#/components/schemas/Pet") and their collection/name pair,
// honoring JSON pointer escapes and percent-encoding.
//
// [SanitizeOutputPath] validates output file paths before the CLI or the
// MCP server writes a formatted document.
package pathutil
