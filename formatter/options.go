package formatter

import (
	"fmt"
	"io"

	"github.com/erraggy/apiformat/caser"
	"github.com/erraggy/apiformat/document"
	"github.com/erraggy/apiformat/filter"
	"github.com/erraggy/apiformat/sorter"
)

// Option is a function that configures a format operation
type Option func(*formatConfig) error

// formatConfig holds configuration for a format operation
type formatConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	doc      *document.Document

	formatter Formatter
}

// FormatWithOptions formats a document using functional options.
//
// Example:
//
//	result, err := formatter.FormatWithOptions(
//	    formatter.WithFilePath("asyncapi.yaml"),
//	    formatter.WithRename("Streetlights API"),
//	)
func FormatWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("formatter: invalid options: %w", err)
	}

	f := cfg.formatter
	switch {
	case cfg.filePath != nil:
		return f.FormatFile(*cfg.filePath)
	case cfg.reader != nil:
		return f.FormatReader(cfg.reader)
	default:
		return f.FormatDocument(cfg.doc)
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*formatConfig, error) {
	cfg := &formatConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != nil {
		sources++
	}
	if cfg.reader != nil {
		sources++
	}
	if cfg.doc != nil {
		sources++
	}
	if sources == 0 {
		return nil, fmt.Errorf("no input source specified: use WithFilePath, WithReader or WithDocument")
	}
	if sources > 1 {
		return nil, fmt.Errorf("multiple input sources specified: use only one of WithFilePath, WithReader or WithDocument")
	}
	return cfg, nil
}

// WithFilePath specifies the file path (local file or URL) to format
func WithFilePath(path string) Option {
	return func(cfg *formatConfig) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithReader reads the document from r
func WithReader(r io.Reader) Option {
	return func(cfg *formatConfig) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithDocument formats an already loaded document
func WithDocument(doc *document.Document) Option {
	return func(cfg *formatConfig) error {
		if doc == nil {
			return fmt.Errorf("document cannot be nil")
		}
		cfg.doc = doc
		return nil
	}
}

// WithSortSet replaces the default sort set
func WithSortSet(set sorter.SortSet) Option {
	return func(cfg *formatConfig) error {
		cfg.formatter.SortSet = set
		return nil
	}
}

// WithSortComponents sorts the entry names of the listed component collections
func WithSortComponents(collections ...string) Option {
	return func(cfg *formatConfig) error {
		cfg.formatter.SortComponents = collections
		return nil
	}
}

// WithNoSort disables sorting
func WithNoSort(noSort bool) Option {
	return func(cfg *formatConfig) error {
		cfg.formatter.NoSort = noSort
		return nil
	}
}

// WithFilterSet enables the filter stage
func WithFilterSet(fs *filter.FilterSet) Option {
	return func(cfg *formatConfig) error {
		if err := fs.Validate(); err != nil {
			return err
		}
		cfg.formatter.FilterSet = fs
		return nil
	}
}

// WithCasingSet enables the case stage
func WithCasingSet(set caser.CasingSet) Option {
	return func(cfg *formatConfig) error {
		cfg.formatter.CasingSet = set
		return nil
	}
}

// WithRename sets a new document title
func WithRename(title string) Option {
	return func(cfg *formatConfig) error {
		cfg.formatter.Rename = title
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
func WithUserAgent(userAgent string) Option {
	return func(cfg *formatConfig) error {
		cfg.formatter.UserAgent = userAgent
		return nil
	}
}

// WithLogger sets the logger for stage diagnostics
func WithLogger(logger document.Logger) Option {
	return func(cfg *formatConfig) error {
		cfg.formatter.Logger = logger
		return nil
	}
}
