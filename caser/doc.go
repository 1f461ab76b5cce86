// Package caser rewrites identifiers of AsyncAPI documents in configured
// casing styles.
//
// A [CasingSet] maps a position, such as "componentsSchemas",
// "operationId" or "properties", to a style name understood by
// [github.com/erraggy/apiformat/casing]. Positions without a style are left
// alone.
//
//	out := caser.ChangeCase(root, caser.CasingSet{
//		caser.KeyComponentsSchemas: "PascalCase",
//		caser.KeyOperationID:       "camelCase",
//	})
//
// Component names are renamed first and every $ref that points at a
// renamed component is updated to match. A rename that would collide with
// an existing name is skipped. Parameters pick a style by their "in"
// location (query, path or header) when one is configured.
//
// Casing twice with the same set gives the same document as casing once.
package caser
