// Package apierrors provides structured error types for the apiformat library.
//
// Import path: github.com/erraggy/apiformat/apierrors
//
// The engine packages (walker, sorter, filter, caser) never fail on document
// content: malformed references and unknown casing styles are passed through
// unchanged. Errors only come from the edges, where documents and rule files
// are read, and those are reported with the types below so callers can use
// [errors.Is] and [errors.As].
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures of a document or rule file
//   - [ConfigError]: invalid or conflicting configuration and options
//   - [ResourceLimitError]: a document exceeded a safety limit (alias expansion, nesting)
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrConfig]: matches any [ConfigError]
//   - [ErrResourceLimit]: matches any [ResourceLimitError]
package apierrors
