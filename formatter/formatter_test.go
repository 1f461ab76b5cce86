package formatter

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apiformat/apierrors"
	"github.com/erraggy/apiformat/caser"
	"github.com/erraggy/apiformat/document"
	"github.com/erraggy/apiformat/filter"
	"github.com/erraggy/apiformat/internal/nodeutil"
	"github.com/erraggy/apiformat/sorter"
)

const streetlights = `
channels:
  light/measured:
    publish:
      message:
        $ref: '#/components/messages/light_measured'
      operationId: on_light_measured
    subscribe:
      x-internal: true
      operationId: dim_light
components:
  schemas:
    lumens:
      type: integer
    unused_schema:
      type: string
  messages:
    light_measured:
      payload:
        properties:
          lumens:
            $ref: '#/components/schemas/lumens'
        type: object
      name: lightMeasured
info:
  version: 1.0.0
  title: Streetlights API
asyncapi: 2.6.0
`

func loadDoc(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestFormatWithOptions_AllStages(t *testing.T) {
	var logs bytes.Buffer
	logger := document.NewSlogAdapter(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	result, err := FormatWithOptions(
		WithDocument(loadDoc(t, streetlights)),
		WithFilterSet(&filter.FilterSet{Flags: []string{"x-internal"}, UnusedComponents: []string{"schemas"}}),
		WithSortComponents("schemas"),
		WithCasingSet(caser.CasingSet{caser.KeyComponentsMessages: "PascalCase", caser.KeyOperationID: "camelCase"}),
		WithRename("Smart Streetlights"),
		WithLogger(logger),
	)
	require.NoError(t, err)

	assert.Equal(t, []Stage{StageFilter, StageSort, StageSortComponents, StageCase, StageRename}, result.Stages)
	assert.True(t, result.HasStage(StageCase))
	assert.Equal(t, filter.UnusedComponents{"schemas": {"unused_schema"}}, result.UnusedComponents)
	assert.Equal(t, 2, result.FilterPasses)
	assert.True(t, result.Converged)
	assert.Equal(t, "LightMeasured", result.Renames["messages"]["light_measured"])
	assert.Equal(t, document.SourceFormatYAML, result.SourceFormat)

	doc := result.Document
	assert.Equal(t, []string{"asyncapi", "info", "channels", "components"}, nodeutil.Keys(doc))
	assert.Equal(t, []string{"title", "version"}, nodeutil.Keys(nodeutil.Get(doc, "info")))
	assert.Equal(t, "Smart Streetlights", nodeutil.GetPath(doc, "info", "title").Value)

	channel := nodeutil.GetPath(doc, "channels", "light/measured")
	assert.Equal(t, []string{"publish"}, nodeutil.Keys(channel))
	publish := nodeutil.Get(channel, "publish")
	assert.Equal(t, []string{"operationId", "message"}, nodeutil.Keys(publish))
	assert.Equal(t, "onLightMeasured", nodeutil.Get(publish, "operationId").Value)
	assert.Equal(t, "#/components/messages/LightMeasured", nodeutil.GetPath(publish, "message", "$ref").Value)

	assert.Equal(t, []string{"lumens"}, nodeutil.Keys(nodeutil.GetPath(doc, "components", "schemas")))
	assert.Contains(t, logs.String(), "stage=filter")
	assert.Contains(t, logs.String(), "format complete")
}

func TestFormatWithOptions_UnknownCasingStyle(t *testing.T) {
	var logs bytes.Buffer
	logger := document.NewSlogAdapter(slog.New(slog.NewTextHandler(&logs, nil)))

	result, err := FormatWithOptions(
		WithDocument(loadDoc(t, streetlights)),
		WithNoSort(true),
		WithCasingSet(caser.CasingSet{caser.KeyOperationID: "flatcase", caser.KeyComponentsMessages: "PascalCase"}),
		WithLogger(logger),
	)
	require.NoError(t, err)

	publish := nodeutil.GetPath(result.Document, "channels", "light/measured", "publish")
	assert.Equal(t, "on_light_measured", nodeutil.Get(publish, "operationId").Value)
	assert.Equal(t, "#/components/messages/LightMeasured", nodeutil.GetPath(publish, "message", "$ref").Value)
	assert.Contains(t, logs.String(), "unknown casing style")
	assert.Contains(t, logs.String(), "style=flatcase")
}

func TestFormatter_NoSort(t *testing.T) {
	f := New()
	f.NoSort = true
	f.SortComponents = []string{"schemas"}
	result, err := f.FormatDocument(loadDoc(t, streetlights))
	require.NoError(t, err)

	assert.Empty(t, result.Stages)
	assert.Equal(t, []string{"channels", "components", "info", "asyncapi"}, nodeutil.Keys(result.Document))
	assert.True(t, result.Converged)
	assert.Zero(t, result.FilterPasses)
}

func TestFormatter_CustomSortSet(t *testing.T) {
	f := &Formatter{SortSet: sorter.SortSet{sorter.RootKey: {"info"}}}
	result, err := f.Format(loadDoc(t, streetlights).Root)
	require.NoError(t, err)
	assert.Equal(t, []string{"info", "asyncapi", "channels", "components"}, nodeutil.Keys(result.Document))
	assert.Equal(t, document.SourceFormatUnknown, result.SourceFormat)
}

func TestFormatter_InputUntouched(t *testing.T) {
	doc := loadDoc(t, streetlights)
	before := nodeutil.Canonical(doc.Root)
	_, err := FormatWithOptions(WithDocument(doc), WithRename("x"), WithFilterSet(&filter.FilterSet{Flags: []string{"x-internal"}}))
	require.NoError(t, err)
	assert.Equal(t, before, nodeutil.Canonical(doc.Root))
}

func TestFormatWithOptions_FileAndReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"info": {"version": "1", "title": "T"}, "asyncapi": "2.6.0"}`), 0o600))

	result, err := FormatWithOptions(WithFilePath(path))
	require.NoError(t, err)
	assert.Equal(t, document.SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, path, result.SourcePath)

	out, err := result.Marshal(document.SourceFormatUnknown)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"asyncapi\": \"2.6.0\",\n  \"info\": {\n    \"title\": \"T\",\n    \"version\": \"1\"\n  }\n}\n", string(out))

	result, err = FormatWithOptions(WithReader(strings.NewReader("asyncapi: 2.6.0\n")), WithNoSort(true))
	require.NoError(t, err)
	assert.Equal(t, "-", result.SourcePath)
	out, err = result.Marshal(document.SourceFormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "asyncapi: 2.6.0\n", string(out))
}

func TestFormatWithOptions_Errors(t *testing.T) {
	doc := loadDoc(t, streetlights)
	tests := []struct {
		name  string
		opts  []Option
		isCfg bool
	}{
		{name: "no source"},
		{name: "two sources", opts: []Option{WithDocument(doc), WithReader(strings.NewReader("a: 1"))}},
		{name: "empty path", opts: []Option{WithFilePath("")}},
		{name: "nil reader", opts: []Option{WithReader(nil)}},
		{name: "nil document", opts: []Option{WithDocument(nil)}},
		{
			name:  "bad filter set",
			opts:  []Option{WithDocument(doc), WithFilterSet(&filter.FilterSet{UnusedComponents: []string{"servers"}})},
			isCfg: true,
		},
		{name: "missing file", opts: []Option{WithFilePath(filepath.Join(t.TempDir(), "missing.yaml"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FormatWithOptions(tt.opts...)
			require.Error(t, err)
			assert.Equal(t, tt.isCfg, errors.Is(err, apierrors.ErrConfig))
		})
	}

	_, err := New().Format(nil)
	assert.Error(t, err)
}

func TestRenameTitle(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "replaces title", src: "info:\n  title: Old\n", want: "info:\n  title: New\n"},
		{name: "no title", src: "info:\n  version: 1.0.0\n", want: "info:\n  version: 1.0.0\n"},
		{name: "no info", src: "asyncapi: 2.6.0\n", want: "asyncapi: 2.6.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := document.MarshalYAML(RenameTitle(loadDoc(t, tt.src).Root, "New"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}
