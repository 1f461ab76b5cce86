// Package commands provides CLI command handlers for apiformat.
package commands

import (
	"os"
	"strings"

	"github.com/erraggy/apiformat/document"
	"github.com/erraggy/apiformat/formatter"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// loadSpec reads the document named by specPath, or standard input for "-".
func loadSpec(loader *document.Loader, specPath string) (*document.Document, error) {
	if specPath == StdinFilePath {
		return loader.ParseReader(os.Stdin)
	}
	return loader.Load(specPath)
}

// stageList renders the stages that ran, e.g. "filter, sort".
func stageList(stages []formatter.Stage) string {
	if len(stages) == 0 {
		return "none"
	}
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
