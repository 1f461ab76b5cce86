package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/internal/nodeutil"
)

// Marshal serializes root in the given format. YAML output uses a 2-space
// indent; JSON output is indented with 2 spaces. Both keep key order.
// SourceFormatUnknown writes YAML.
func Marshal(root *yaml.Node, format SourceFormat) ([]byte, error) {
	if format == SourceFormatJSON {
		return MarshalJSON(root)
	}
	return MarshalYAML(root)
}

// MarshalYAML writes root as YAML.
func MarshalYAML(root *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("document: failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJSON writes root as indented JSON with a trailing newline.
func MarshalJSON(root *yaml.Node) ([]byte, error) {
	var compact bytes.Buffer
	if err := nodeutil.WriteJSON(&compact, root); err != nil {
		return nil, fmt.Errorf("document: failed to encode JSON: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("document: failed to encode JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write serializes the document in its own format to w.
func (d *Document) Write(w io.Writer) error {
	data, err := Marshal(d.Root, d.Format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
