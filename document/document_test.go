package document

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apiformat/apierrors"
	"github.com/erraggy/apiformat/internal/nodeutil"
)

const sampleYAML = `asyncapi: 2.6.0
info:
  title: Streetlights
  version: 1.0.0
channels:
  light/measured:
    publish:
      operationId: onLightMeasured
`

func TestParse(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		doc, err := Parse([]byte(sampleYAML))
		require.NoError(t, err)
		assert.Equal(t, SourceFormatYAML, doc.Format)
		assert.Equal(t, []string{"asyncapi", "info", "channels"}, nodeutil.Keys(doc.Root))
	})

	t.Run("json", func(t *testing.T) {
		doc, err := Parse([]byte(`{"asyncapi": "2.6.0", "info": {"title": "x"}}`))
		require.NoError(t, err)
		assert.Equal(t, SourceFormatJSON, doc.Format)
		assert.Zero(t, doc.Root.Style)
		assert.Equal(t, "x", nodeutil.GetPath(doc.Root, "info", "title").Value)
	})

	t.Run("syntax error has position", func(t *testing.T) {
		_, err := Parse([]byte("a: 1\nb: [unclosed\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, apierrors.ErrParse)

		var pe *apierrors.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Positive(t, pe.Line)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Parse([]byte("  \n"))
		assert.ErrorIs(t, err, apierrors.ErrParse)

		_, err = Parse([]byte("# only a comment\n"))
		assert.ErrorIs(t, err, apierrors.ErrParse)
	})

	t.Run("root must be a mapping", func(t *testing.T) {
		_, err := Parse([]byte("- a\n- b\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a mapping")
	})

	t.Run("alias bomb", func(t *testing.T) {
		l := New()
		l.MaxExpandedNodes = 50
		_, err := l.Parse([]byte("a: &a [x, x, x, x, x, x, x, x]\nb: [*a, *a, *a, *a, *a, *a, *a, *a]\n"))
		assert.ErrorIs(t, err, apierrors.ErrResourceLimit)
	})
}

func TestLoad(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "asyncapi.yml")
		require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, doc.Path)
		assert.Equal(t, SourceFormatYAML, doc.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, IsNotExist(err))
	})

	t.Run("size limit", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "big.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))
		l := New()
		l.MaxFileSize = 10
		_, err := l.Load(path)
		assert.ErrorIs(t, err, apierrors.ErrResourceLimit)
	})

	t.Run("url", func(t *testing.T) {
		var gotAgent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(`{"asyncapi": "2.6.0"}`))
		}))
		defer srv.Close()

		doc, err := Load(srv.URL + "/spec")
		require.NoError(t, err)
		assert.Equal(t, SourceFormatJSON, doc.Format)
		assert.True(t, strings.HasPrefix(gotAgent, "apiformat/"))
	})

	t.Run("url error status", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := Load(srv.URL + "/missing.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
	})
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "-", doc.Path)

	l := New()
	l.MaxFileSize = 8
	_, err = l.ParseReader(strings.NewReader(sampleYAML))
	assert.ErrorIs(t, err, apierrors.ErrResourceLimit)
}

func TestFormatDetection(t *testing.T) {
	assert.Equal(t, SourceFormatJSON, FormatFromPath("a/b.JSON"))
	assert.Equal(t, SourceFormatYAML, FormatFromPath("b.yml"))
	assert.Equal(t, SourceFormatUnknown, FormatFromPath("b.txt"))

	assert.Equal(t, SourceFormatJSON, FormatFromContent([]byte("\n  [1]")))
	assert.Equal(t, SourceFormatYAML, FormatFromContent([]byte("a: 1")))
	assert.Equal(t, SourceFormatUnknown, FormatFromContent(nil))

	assert.Equal(t, SourceFormatYAML, formatFromURL("https://x/api", "text/yaml"))
	assert.Equal(t, SourceFormatJSON, formatFromURL("https://x/api.json", "text/yaml"))
	assert.Equal(t, SourceFormatUnknown, formatFromURL("https://x/api", ""))

	assert.Equal(t, SourceFormatYAML, ParseFormat("YML"))
	assert.Equal(t, SourceFormatJSON, ParseFormat("json"))
	assert.Equal(t, SourceFormatUnknown, ParseFormat("xml"))
}
