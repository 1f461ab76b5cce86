// Package apiformat normalizes AsyncAPI (and OpenAPI-shaped) documents by
// applying declarative rules for key ordering, filtering, identifier casing
// and title renaming.
//
// # Overview
//
// The library is organized as a small rewrite engine over ordered YAML node
// trees and a set of rule modules layered on it:
//
//   - document: load YAML/JSON documents and write them back with key order kept
//   - walker: depth-first traversal with in-place Replace/Delete/DeleteParent
//   - sorter: priority key ordering driven by a sort set
//   - filter: removal of operations, tags, flagged nodes and unused components
//   - caser: consistent casing of component names, refs, channels and properties
//   - casing: the string case conversion engine used by caser
//   - formatter: runs the stages in order and reports diagnostics
//
// # Quick Start
//
//	result, err := formatter.FormatWithOptions(
//	    formatter.WithFilePath("asyncapi.yaml"),
//	    formatter.WithSortSet(sorter.DefaultSortSet()),
//	    formatter.WithFilterSet(&filter.FilterSet{UnusedComponents: []string{"schemas"}}),
//	    formatter.WithCasingSet(caser.CasingSet{caser.KeyOperationID: "camelCase"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := document.Marshal(result.Document, result.SourceFormat)
//
// # Command Line
//
// The apiformat command wraps the formatter:
//
//	apiformat format asyncapi.yaml -o formatted.yaml --filterFile filter.yaml
//	apiformat case camelCase user_signed_up
//	apiformat mcp
//
// Every stage deep-copies its input; a formatting run never mutates the
// caller's tree.
package apiformat
