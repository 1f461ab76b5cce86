package document

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"

	apiformat "github.com/erraggy/apiformat"
	"github.com/erraggy/apiformat/apierrors"
	"github.com/erraggy/apiformat/internal/nodeutil"
)

// DefaultMaxFileSize is the default input size limit (50 MiB).
const DefaultMaxFileSize int64 = 50 << 20

// Document is a loaded API description.
type Document struct {
	// Root is the top-level node: a mapping for any valid API document.
	// Document and alias nodes are already resolved.
	Root *yaml.Node
	// Format is the serialization the document was read from.
	Format SourceFormat
	// Path is the file path or URL, or "-" for standard input.
	Path string
}

// Loader reads documents from files, URLs, readers and byte slices.
type Loader struct {
	// UserAgent is sent when fetching URLs. Defaults to apiformat.UserAgent().
	UserAgent string
	// HTTPClient fetches URLs. If nil, a client with a 30-second timeout is used.
	HTTPClient *http.Client
	// MaxFileSize limits the input size in bytes. 0 uses DefaultMaxFileSize.
	MaxFileSize int64
	// MaxExpandedNodes limits the tree size after alias expansion.
	// 0 uses nodeutil.DefaultMaxExpandedNodes.
	MaxExpandedNodes int
	// Logger receives debug output. nil disables logging.
	Logger Logger
}

// New creates a Loader with default settings.
func New() *Loader {
	return &Loader{UserAgent: apiformat.UserAgent()}
}

// Load reads a document from a file path or an http(s) URL.
func Load(path string) (*Document, error) {
	return New().Load(path)
}

// Parse reads a document from bytes.
func Parse(data []byte) (*Document, error) {
	return New().Parse(data)
}

// ParseReader reads a document from r.
func ParseReader(r io.Reader) (*Document, error) {
	return New().ParseReader(r)
}

// Load reads a document from a file path or an http(s) URL.
func (l *Loader) Load(path string) (*Document, error) {
	var (
		data   []byte
		format SourceFormat
		err    error
	)
	start := time.Now()
	if isURL(path) {
		var contentType string
		data, contentType, err = l.fetchURL(path)
		if err != nil {
			return nil, err
		}
		format = formatFromURL(path, contentType)
	} else {
		data, err = l.readFile(path)
		if err != nil {
			return nil, err
		}
		format = FormatFromPath(path)
	}

	doc, err := l.parse(data, path)
	if err != nil {
		return nil, err
	}
	if format != SourceFormatUnknown {
		doc.Format = format
	}
	doc.Path = path
	OrNop(l.Logger).Debug("loaded document", "path", path, "format", doc.Format, "bytes", len(data), "elapsed", time.Since(start))
	return doc, nil
}

// ParseReader reads a document from r. The format is detected from content.
func (l *Loader) ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxFileSize()+1))
	if err != nil {
		return nil, fmt.Errorf("document: failed to read data: %w", err)
	}
	if int64(len(data)) > l.maxFileSize() {
		return nil, l.sizeError(int64(len(data)))
	}
	doc, err := l.parse(data, "-")
	if err != nil {
		return nil, err
	}
	doc.Path = "-"
	return doc, nil
}

// Parse reads a document from bytes. The format is detected from content.
func (l *Loader) Parse(data []byte) (*Document, error) {
	return l.parse(data, "")
}

func (l *Loader) parse(data []byte, path string) (*Document, error) {
	format := FormatFromContent(data)
	if format == SourceFormatUnknown {
		return nil, &apierrors.ParseError{Path: path, Message: "empty document"}
	}

	var raw yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, newParseError(path, err)
	}
	root, err := nodeutil.Normalize(&raw, l.MaxExpandedNodes)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	if root == nil {
		return nil, &apierrors.ParseError{Path: path, Message: "empty document"}
	}
	if !nodeutil.IsMapping(root) {
		return nil, &apierrors.ParseError{
			Path:    path,
			Line:    root.Line,
			Column:  root.Column,
			Message: fmt.Sprintf("document root must be a mapping, got %s", root.ShortTag()),
		}
	}
	if format == SourceFormatJSON {
		// flow style and quoting come from JSON syntax, not from the author
		nodeutil.ResetStyle(root)
	}
	return &Document{Root: root, Format: format, Path: path}, nil
}

var yamlPosition = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)

func newParseError(path string, err error) *apierrors.ParseError {
	pe := &apierrors.ParseError{Path: path, Message: "invalid YAML/JSON", Cause: err}
	if m := yamlPosition.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			pe.Column, _ = strconv.Atoi(m[2])
		}
	}
	return pe
}

func (l *Loader) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read file: %w", err)
	}
	if info.Size() > l.maxFileSize() {
		return nil, l.sizeError(info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read file: %w", err)
	}
	return data, nil
}

func (l *Loader) fetchURL(urlStr string) ([]byte, string, error) {
	client := l.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("document: failed to create request: %w", err)
	}
	userAgent := l.UserAgent
	if userAgent == "" {
		userAgent = apiformat.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req) //nolint:gosec // URL is user-provided input (CLI)
	if err != nil {
		return nil, "", fmt.Errorf("document: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("document: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxFileSize()+1))
	if err != nil {
		return nil, "", fmt.Errorf("document: failed to read response body: %w", err)
	}
	if int64(len(data)) > l.maxFileSize() {
		return nil, "", l.sizeError(int64(len(data)))
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (l *Loader) maxFileSize() int64 {
	if l.MaxFileSize > 0 {
		return l.MaxFileSize
	}
	return DefaultMaxFileSize
}

func (l *Loader) sizeError(actual int64) error {
	return &apierrors.ResourceLimitError{
		ResourceType: "file_size",
		Limit:        l.maxFileSize(),
		Actual:       actual,
	}
}

// IsNotExist reports whether err was caused by a missing input file.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
