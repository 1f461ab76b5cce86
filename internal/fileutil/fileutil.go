// Package fileutil holds file permission modes shared by the CLI and the
// MCP server.
package fileutil

import "os"

// OwnerReadWrite is the file permission mode for formatted documents and
// test fixtures written by the CLI (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for documents written on behalf
// of MCP clients, which may run as a different user than the server.
const ReadableByAll os.FileMode = 0o644
