// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/internal/fileutil"
)

// SimpleAsyncAPI is a minimal AsyncAPI 2.6 document with its root keys out
// of the default sort order.
const SimpleAsyncAPI = `info:
  version: 1.0.0
  title: Test API
asyncapi: 2.6.0
channels: {}
`

// StreetlightsAsyncAPI is an AsyncAPI 2.6 document exercising every stage:
// an internal tag, an x-internal flag, an unused schema, mixed-case
// component names and operationIds.
const StreetlightsAsyncAPI = `asyncapi: 2.6.0
info:
  title: Streetlights API
  version: 1.0.0
channels:
  smartylighting/streetlights/1/0/event/{streetlightId}/lighting/measured:
    parameters:
      streetlightId:
        $ref: '#/components/parameters/streetlightId'
    subscribe:
      operationId: receive_light_measurement
      tags:
        - name: measurements
      message:
        $ref: '#/components/messages/light_measured'
  smartylighting/streetlights/1/0/action/{streetlightId}/dim:
    parameters:
      streetlightId:
        $ref: '#/components/parameters/streetlightId'
    publish:
      operationId: dim_light
      x-internal: true
      message:
        $ref: '#/components/messages/dim_light'
components:
  messages:
    light_measured:
      payload:
        $ref: '#/components/schemas/light_measured_payload'
    dim_light:
      payload:
        $ref: '#/components/schemas/dim_light_payload'
  schemas:
    light_measured_payload:
      type: object
      properties:
        lumens:
          type: integer
    dim_light_payload:
      type: object
      properties:
        percentage:
          type: integer
    unused_payload:
      type: string
  parameters:
    streetlightId:
      schema:
        type: string
`

// WriteTemp writes content to a file named name in a temporary directory.
// Returns the path to the file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTemp(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), fileutil.OwnerReadWrite); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}

	return tmpFile
}

// WriteTempYAML marshals a value, typically a rule set, to YAML and writes it
// to a temporary file.
// Returns the path to the temporary file.
func WriteTempYAML(t *testing.T, v any) string {
	t.Helper()

	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal value to YAML: %v", err)
	}
	return WriteTemp(t, "test.yaml", string(data))
}

// WriteTempJSON marshals a value to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal value to JSON: %v", err)
	}
	return WriteTemp(t, "test.json", string(data))
}
